package game

import "fmt"

// Tile indexes the dark squares of the board, row-major from the top.
type Tile int

// NoTile marks an absent tile (no neighbor, no active piece).
const NoTile Tile = -1

type Side int

const (
	Neutral Side = iota
	Black
	White
)

// Opponent returns the other playing side. Neutral has no opponent.
func (s Side) Opponent() Side {
	switch s {
	case Black:
		return White
	case White:
		return Black
	default:
		return Neutral
	}
}

func (s Side) String() string {
	switch s {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "Neutral"
	}
}

type Piece int

const (
	Empty Piece = iota
	BlackMan
	BlackKing
	WhiteMan
	WhiteKing
)

// SideOf returns the side owning the piece, Neutral for Empty.
func SideOf(p Piece) Side {
	switch p {
	case BlackMan, BlackKing:
		return Black
	case WhiteMan, WhiteKing:
		return White
	case Empty:
		return Neutral
	default:
		panic(fmt.Sprintf("invalid piece %d", p))
	}
}

func IsMan(p Piece) bool {
	return p == BlackMan || p == WhiteMan
}

func IsKing(p Piece) bool {
	return p == BlackKing || p == WhiteKing
}

// promote returns the king of the same side. Kings and Empty are unchanged.
func promote(p Piece) Piece {
	switch p {
	case BlackMan:
		return BlackKing
	case WhiteMan:
		return WhiteKing
	default:
		return p
	}
}

func demote(p Piece) Piece {
	switch p {
	case BlackKing:
		return BlackMan
	case WhiteKing:
		return WhiteMan
	default:
		return p
	}
}

func (p Piece) String() string {
	switch p {
	case Empty:
		return "."
	case BlackMan:
		return "b"
	case BlackKing:
		return "B"
	case WhiteMan:
		return "w"
	case WhiteKing:
		return "W"
	default:
		return "?"
	}
}

type Direction int

const (
	UpLeft Direction = iota
	UpRight
	DownLeft
	DownRight
)

// Directions lists every direction in catalog order.
var Directions = [...]Direction{UpLeft, UpRight, DownLeft, DownRight}

func (d Direction) valid() bool {
	return d >= UpLeft && d <= DownRight
}

func IsUp(d Direction) bool {
	return d == UpLeft || d == UpRight
}

func IsLeft(d Direction) bool {
	return d == UpLeft || d == DownLeft
}

func (d Direction) String() string {
	switch d {
	case UpLeft:
		return "UpLeft"
	case UpRight:
		return "UpRight"
	case DownLeft:
		return "DownLeft"
	case DownRight:
		return "DownRight"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

type Edge int

const (
	LeftEdge Edge = iota
	RightEdge
	TopEdge
	BottomEdge
)

func (e Edge) valid() bool {
	return e >= LeftEdge && e <= BottomEdge
}

// Move is a single diagonal move of Length steps from Source.
type Move struct {
	Source    Tile
	Direction Direction
	Length    int
}

func (m Move) String() string {
	return fmt.Sprintf("%d:%s:%d", m.Source, m.Direction, m.Length)
}
