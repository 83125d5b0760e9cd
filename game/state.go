package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPosition = errors.New("invalid position")

// StartingRows is the number of rows each side fills at game start.
const StartingRows = 3

// Position is a board setup a game can start from.
type Position struct {
	Board               []Piece
	ActiveSide          Side
	PliesWithoutCapture int
}

// StandardPosition returns the three-row opening setup, White to move.
// Black occupies the top rows and moves down.
func StandardPosition(c *Catalog) Position {
	t := c.Topology()
	n := t.Size() / 2 * StartingRows
	board := make([]Piece, t.NumTiles())
	for i := range board {
		switch {
		case i < n:
			board[i] = BlackMan
		case i >= len(board)-n:
			board[i] = WhiteMan
		}
	}
	return Position{Board: board, ActiveSide: White}
}

// Validation is the outcome of checking a move. Enemy is the tile of the
// captured piece, NoTile for a non-capturing move.
type Validation struct {
	Valid bool
	Enemy Tile
}

func (v Validation) Captures() bool {
	return v.Valid && v.Enemy != NoTile
}

var invalid = Validation{Valid: false, Enemy: NoTile}

// legalSet caches the legal moves of the current state. It is dropped on
// every mutation.
type legalSet struct {
	moves    []Move
	captures bool
}

// Game is the draughts rule engine for a single game. It is not safe for
// concurrent use; the Catalog it references may be shared.
type Game struct {
	catalog     *Catalog
	board       []Piece
	activeSide  Side
	activePiece Tile
	plies       int
	maxPlies    int
	piecesLeft  [3]int // Indexed by Side
	done        bool
	winner      Side
	history     history
	legal       *legalSet
}

// New builds a fresh catalog and starts a standard game on it.
func New(size int, options ...Option) (*Game, error) {
	c, err := NewCatalog(size)
	if err != nil {
		return nil, err
	}
	return NewGame(c, options...), nil
}

// NewGame starts a standard game on a shared catalog.
func NewGame(c *Catalog, options ...Option) *Game {
	g, err := NewFromPosition(c, StandardPosition(c), options...)
	if err != nil {
		panic(err) // The standard position is always valid
	}
	return g
}

// NewFromPosition starts a game from an arbitrary setup.
func NewFromPosition(c *Catalog, pos Position, options ...Option) (*Game, error) {
	if len(pos.Board) != c.Topology().NumTiles() {
		return nil, fmt.Errorf("board has %d tiles, want %d: %w", len(pos.Board), c.Topology().NumTiles(), ErrInvalidPosition)
	}
	if pos.ActiveSide != Black && pos.ActiveSide != White {
		return nil, fmt.Errorf("active side %s cannot move: %w", pos.ActiveSide, ErrInvalidPosition)
	}
	if pos.PliesWithoutCapture < 0 {
		return nil, fmt.Errorf("negative plies without capture: %w", ErrInvalidPosition)
	}

	g := &Game{
		catalog:     c,
		board:       make([]Piece, len(pos.Board)),
		activeSide:  pos.ActiveSide,
		activePiece: NoTile,
		plies:       pos.PliesWithoutCapture,
		maxPlies:    DefaultMaxPliesWithoutCapture,
		winner:      Neutral,
	}
	for _, option := range options {
		option(g)
	}

	for i, p := range pos.Board {
		if p < Empty || p > WhiteKing {
			return nil, fmt.Errorf("tile %d holds piece %d: %w", i, p, ErrInvalidPosition)
		}
		g.board[i] = p
		g.piecesLeft[SideOf(p)]++
	}

	g.checkTerminal()
	return g, nil
}

// CheckMove validates move against the current state without mutating it.
func (g *Game) CheckMove(move Move) Validation {
	v := g.inspect(move)
	if v.Valid && !v.Captures() && g.legalSet().captures {
		return invalid
	}
	return v
}

// inspect applies every rule except mandatory capture.
func (g *Game) inspect(move Move) Validation {
	t := g.catalog.Topology()
	t.mustTile(move.Source)
	if !move.Direction.valid() {
		panic(fmt.Sprintf("invalid direction %d", move.Direction))
	}
	if move.Length < 1 {
		return invalid
	}

	piece := g.board[move.Source]
	side := SideOf(piece)
	if side != g.activeSide {
		return invalid
	}
	if g.activePiece != NoTile && move.Source != g.activePiece {
		return invalid
	}

	target := move.Source
	enemy := NoTile
	for i := 0; i < move.Length; i++ {
		next, ok := t.Neighbor(target, move.Direction)
		if !ok || SideOf(g.board[next]) == side {
			return invalid
		}
		if g.board[next] != Empty {
			if enemy != NoTile {
				return invalid
			}
			enemy = next
		}
		target = next
	}
	if g.board[target] != Empty {
		return invalid
	}

	if IsMan(piece) {
		switch {
		case move.Length > MaxManLength:
			return invalid
		case move.Length == MaxManLength && enemy == NoTile:
			return invalid
		case move.Length == 1 && IsUp(move.Direction) != (side == White):
			return invalid
		}
	}
	return Validation{Valid: true, Enemy: enemy}
}

func (g *Game) legalSet() *legalSet {
	if g.legal != nil {
		return g.legal
	}

	var quiet, captures []Move
	for i, piece := range g.board {
		tile := Tile(i)
		if SideOf(piece) != g.activeSide {
			continue
		}
		if g.activePiece != NoTile && g.activePiece != tile {
			continue
		}
		for _, move := range g.catalog.MovesFrom(tile, IsMan(piece)) {
			v := g.inspect(move)
			if !v.Valid {
				continue
			}
			if v.Captures() {
				captures = append(captures, move)
			} else if len(captures) == 0 {
				quiet = append(quiet, move)
			}
		}
	}

	if len(captures) > 0 {
		g.legal = &legalSet{moves: captures, captures: true}
	} else {
		g.legal = &legalSet{moves: quiet}
	}
	return g.legal
}

// LegalMoves returns the legal moves of the side to move in catalog order.
// A finished game has none.
func (g *Game) LegalMoves() []Move {
	if g.done {
		return nil
	}
	moves := g.legalSet().moves
	out := make([]Move, len(moves))
	copy(out, moves)
	return out
}

// LegalMask returns a catalog-sized mask with true at the id of every legal
// move.
func (g *Game) LegalMask() []bool {
	mask := make([]bool, g.catalog.Len())
	if g.done {
		return mask
	}
	for _, move := range g.legalSet().moves {
		id, _ := g.catalog.IDOf(move)
		mask[id] = true
	}
	return mask
}

// CaptureAvailable reports whether the side to move is bound to capture.
func (g *Game) CaptureAvailable() bool {
	return !g.done && g.legalSet().captures
}

func (g *Game) hasCaptureFrom(tile Tile) bool {
	piece := g.board[tile]
	for _, move := range g.catalog.MovesFrom(tile, IsMan(piece)) {
		if g.inspect(move).Captures() {
			return true
		}
	}
	return false
}

// PerformMove plays move for the side to move. It returns false and leaves
// the state untouched if the move is illegal or the game is over.
func (g *Game) PerformMove(move Move) bool {
	if g.done {
		return false
	}
	v := g.CheckMove(move)
	if !v.Valid {
		return false
	}
	id, ok := g.catalog.IDOf(move)
	if !ok {
		panic(fmt.Sprintf("valid move %s missing from catalog", move))
	}
	target := g.catalog.TargetOf(id)

	rec := record{move: move, prevActive: g.activePiece, prevPlies: g.plies}
	taken := noCapture

	g.board[target] = g.board[move.Source]
	g.board[move.Source] = Empty

	if v.Captures() {
		taken = capture{tile: v.Enemy, piece: g.board[v.Enemy]}
		g.board[v.Enemy] = Empty
		g.plies = 0
		side := SideOf(taken.piece)
		g.piecesLeft[side]--
		if g.piecesLeft[side] == 0 {
			g.done = true
			g.winner = side.Opponent()
		}
	} else {
		g.plies++
	}

	rec.promoted = g.promotion(target)
	g.legal = nil
	g.activePiece = target

	if v.Captures() && g.hasCaptureFrom(target) {
		rec.turnEnded = false
	} else {
		g.endTurn()
		rec.turnEnded = true
	}

	g.history.push(rec, taken)
	g.checkTerminal()
	return true
}

// PerformMoveID plays the catalog move with the given id.
func (g *Game) PerformMoveID(id int) bool {
	return g.PerformMove(g.catalog.MoveOf(id))
}

// UndoMove reverts the latest performed move. Without history it does
// nothing.
func (g *Game) UndoMove() {
	rec, taken, ok := g.history.pop()
	if !ok {
		return
	}
	id, _ := g.catalog.IDOf(rec.move)
	target := g.catalog.TargetOf(id)

	piece := g.board[target]
	g.board[target] = Empty
	if rec.promoted {
		piece = demote(piece)
	}
	g.board[rec.move.Source] = piece

	if taken.tile != NoTile {
		g.board[taken.tile] = taken.piece
		g.piecesLeft[SideOf(taken.piece)]++
	}
	if rec.turnEnded {
		g.activeSide = g.activeSide.Opponent()
	}
	g.activePiece = rec.prevActive
	g.plies = rec.prevPlies
	g.done = false
	g.winner = Neutral
	g.legal = nil
}

func (g *Game) promotion(tile Tile) bool {
	t := g.catalog.Topology()
	switch g.board[tile] {
	case WhiteMan:
		if t.IsOnEdge(tile, TopEdge) {
			g.board[tile] = promote(WhiteMan)
			return true
		}
	case BlackMan:
		if t.IsOnEdge(tile, BottomEdge) {
			g.board[tile] = promote(BlackMan)
			return true
		}
	}
	return false
}

func (g *Game) endTurn() {
	g.activeSide = g.activeSide.Opponent()
	g.activePiece = NoTile
	g.legal = nil
}

// checkTerminal marks the game done when a side is eliminated, the side to
// move is stuck, or the inactivity ceiling is reached. Wins take precedence
// over the draw.
func (g *Game) checkTerminal() {
	if g.done {
		return
	}
	for _, side := range []Side{Black, White} {
		if g.piecesLeft[side] == 0 {
			g.done = true
			g.winner = side.Opponent()
			return
		}
	}
	if len(g.legalSet().moves) == 0 {
		g.done = true
		g.winner = g.activeSide.Opponent()
		return
	}
	if g.plies >= g.maxPlies {
		g.done = true
		g.winner = Neutral
	}
}

func (g *Game) IsDone() bool {
	return g.done
}

// Winner returns the winning side. It reports false while the game is live
// and for a draw.
func (g *Game) Winner() (Side, bool) {
	return g.winner, g.done && g.winner != Neutral
}

func (g *Game) ActiveSide() Side {
	return g.activeSide
}

// ActivePiece returns the tile of the piece that must keep capturing, if any.
func (g *Game) ActivePiece() (Tile, bool) {
	return g.activePiece, g.activePiece != NoTile
}

func (g *Game) PliesWithoutCapture() int {
	return g.plies
}

func (g *Game) MaxPliesWithoutCapture() int {
	return g.maxPlies
}

func (g *Game) PiecesLeft(side Side) int {
	if side != Black && side != White {
		return 0
	}
	return g.piecesLeft[side]
}

func (g *Game) PieceAt(tile Tile) Piece {
	g.catalog.Topology().mustTile(tile)
	return g.board[tile]
}

// Board returns a copy of the board contents indexed by tile.
func (g *Game) Board() []Piece {
	out := make([]Piece, len(g.board))
	copy(out, g.board)
	return out
}

// Ply returns the number of performed moves that can be undone.
func (g *Game) Ply() int {
	return g.history.len()
}

// LastMove returns the most recently performed move.
func (g *Game) LastMove() (Move, bool) {
	return g.history.last()
}

func (g *Game) Catalog() *Catalog {
	return g.catalog
}

func (g *Game) String() string {
	t := g.catalog.Topology()
	size := t.Size()
	rows := make([][]byte, size)
	for r := range rows {
		rows[r] = []byte(strings.Repeat(" ", size))
	}
	for i, p := range g.board {
		r, c := t.Coordinates(Tile(i))
		rows[r][c] = p.String()[0]
	}
	var sb strings.Builder
	for _, row := range rows {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "to move: %s", g.activeSide)
	return sb.String()
}
