package agent

import (
	"draughts/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays a uniformly random legal move.
// It is not safe for concurrent use; give each game its own agent.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state game.State) game.Move {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		panic("no legal moves to choose from")
	}
	return moves[a.rng.Intn(len(moves))]
}

type firstAgent struct{}

// NewFirstAgent returns an agent that always plays the first legal move in
// catalog order. Games between first agents are fully deterministic.
func NewFirstAgent() Agent {
	return firstAgent{}
}

func (firstAgent) FindMove(state game.State) game.Move {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		panic("no legal moves to choose from")
	}
	return moves[0]
}
