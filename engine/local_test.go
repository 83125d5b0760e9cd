package engine

import (
	"testing"

	"draughts/agent"
	"draughts/experiments/metrics"
	"draughts/game"

	"github.com/stretchr/testify/require"
)

// illegalAgent always answers with a move that is never legal at the start.
type illegalAgent struct{}

func (illegalAgent) FindMove(state game.State) game.Move {
	return game.Move{Source: 0, Direction: game.UpLeft, Length: 1}
}

func newGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.New(game.StandardSize)
	require.NoError(t, err)
	return g
}

func TestLocalEngine(t *testing.T) {
	t.Run("panics without agents", func(t *testing.T) {
		require.Panics(t, func() { LocalEngine(newGame(t), nil, agent.NewFirstAgent()) })
		require.Panics(t, func() { LocalEngine(nil, agent.NewFirstAgent(), agent.NewFirstAgent()) })
	})

	t.Run("assigns a game id", func(t *testing.T) {
		e1 := LocalEngine(newGame(t), agent.NewFirstAgent(), agent.NewFirstAgent())
		e2 := LocalEngine(newGame(t), agent.NewFirstAgent(), agent.NewFirstAgent())
		require.NotEmpty(t, e1.GameID)
		require.NotEqual(t, e1.GameID, e2.GameID)

		e3 := LocalEngine(newGame(t), agent.NewFirstAgent(), agent.NewFirstAgent(), WithGameID("fixed"))
		require.Equal(t, "fixed", e3.GameID)
	})
}

func TestEngineRun(t *testing.T) {
	t.Run("plays a full game", func(t *testing.T) {
		g := newGame(t)
		e := LocalEngine(g, agent.NewRandomAgent(1), agent.NewRandomAgent(2), WithSamples())

		winner, gameMetric, moveMetrics := e.Run()

		require.True(t, g.IsDone(), "Game should finish before the default ply cap")
		require.NotEqual(t, ReasonPlyCap, gameMetric.Reason)
		require.Equal(t, g.Ply(), gameMetric.TotalMoves)
		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		require.Len(t, e.Updates(), gameMetric.TotalMoves)
		require.Len(t, e.Samples(), gameMetric.TotalMoves)
		require.Equal(t, g.Hash(), e.Updates()[len(e.Updates())-1].Hash)
		require.Equal(t, g.PiecesLeft(game.Black), gameMetric.BlackLeft)
		require.Equal(t, g.PiecesLeft(game.White), gameMetric.WhiteLeft)

		if side, ok := g.Winner(); ok {
			require.Equal(t, side.String(), winner)
		} else {
			require.Empty(t, winner)
			require.Equal(t, ReasonInactivity, gameMetric.Reason)
		}

		captures := 0
		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
			if mm.Capture {
				captures++
			}
		}
		require.Equal(t, captures, gameMetric.Captures)
		require.Equal(t, 24-gameMetric.BlackLeft-gameMetric.WhiteLeft, captures, "Every capture removes one piece")

		first := e.Samples()[0]
		require.Equal(t, int32(1), first.Side, "White moves first")
		require.Len(t, first.Observation, g.ObservationLen())
		for _, s := range e.Samples() {
			switch {
			case winner == "":
				require.Equal(t, metrics.OutcomeDraw, s.Outcome)
			case (s.Side == 1) == (winner == "White"):
				require.Equal(t, metrics.OutcomeWin, s.Outcome)
			default:
				require.Equal(t, metrics.OutcomeLoss, s.Outcome)
			}
		}
	})

	t.Run("stops at the ply cap", func(t *testing.T) {
		g := newGame(t)
		e := LocalEngine(g, agent.NewFirstAgent(), agent.NewFirstAgent(), WithMaxPlies(3))

		winner, gameMetric, moveMetrics := e.Run()

		require.Empty(t, winner)
		require.Equal(t, ReasonPlyCap, gameMetric.Reason)
		require.Len(t, moveMetrics, 3)
		require.False(t, g.IsDone())
		require.Empty(t, e.Samples(), "Samples are only kept on request")
	})

	t.Run("replaces illegal agent moves", func(t *testing.T) {
		g := newGame(t)
		want := g.LegalMoves()[0]
		e := LocalEngine(g, agent.NewFirstAgent(), illegalAgent{}, WithMaxPlies(1))

		e.Run()

		require.Len(t, e.Updates(), 1)
		require.Equal(t, want, e.Updates()[0].Move)
		require.Equal(t, game.White, e.Updates()[0].Side)
	})
}
