package agent

import "draughts/game"

type Agent interface {
	// FindMove returns one of the state's legal moves. It is only called on
	// live states.
	FindMove(state game.State) game.Move
}
