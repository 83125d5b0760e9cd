package game

// State is the read-only view of a game an agent needs to pick a move.
// *Game implements it.
type State interface {
	ActiveSide() Side
	LegalMoves() []Move
	IsDone() bool
	Hash() StateHash
}

var _ State = (*Game)(nil)
