package game

import (
	"errors"
	"fmt"
)

// StandardSize is the only supported board size.
const StandardSize = 8

var ErrUnsupportedSize = errors.New("unsupported board size")

// directionEdges lists the edges that block a step in each direction.
var directionEdges = [4][2]Edge{
	UpLeft:    {TopEdge, LeftEdge},
	UpRight:   {TopEdge, RightEdge},
	DownLeft:  {BottomEdge, LeftEdge},
	DownRight: {BottomEdge, RightEdge},
}

// Topology holds the precomputed neighbor and edge tables for a board size.
// It is immutable after construction and safe to share between goroutines.
type Topology struct {
	size      int
	neighbors [][4]Tile
	edges     [][4]bool
}

// NewTopology builds the tables for a board of the given size.
func NewTopology(size int) (*Topology, error) {
	if size != StandardSize {
		return nil, fmt.Errorf("cannot build topology for size %d: %w", size, ErrUnsupportedSize)
	}

	half := size / 2
	numTiles := size * half
	t := &Topology{
		size:      size,
		neighbors: make([][4]Tile, numTiles),
		edges:     make([][4]bool, numTiles),
	}

	for i := 0; i < numTiles; i++ {
		row, col := i/half, i%half
		oddRow := row%2 == 1
		t.edges[i][LeftEdge] = oddRow && col == 0
		t.edges[i][RightEdge] = !oddRow && col == half-1
		t.edges[i][TopEdge] = row == 0
		t.edges[i][BottomEdge] = row == size-1
	}

	for i := 0; i < numTiles; i++ {
		odd := 0
		if (i/half)%2 == 1 {
			odd = 1
		}
		for _, d := range Directions {
			blocked := false
			for _, e := range directionEdges[d] {
				if t.edges[i][e] {
					blocked = true
				}
			}
			if blocked {
				t.neighbors[i][d] = NoTile
				continue
			}
			switch d {
			case UpLeft:
				t.neighbors[i][d] = Tile(i - half - odd)
			case UpRight:
				t.neighbors[i][d] = Tile(i - half + 1 - odd)
			case DownLeft:
				t.neighbors[i][d] = Tile(i + half - odd)
			case DownRight:
				t.neighbors[i][d] = Tile(i + half + 1 - odd)
			}
		}
	}
	return t, nil
}

func (t *Topology) Size() int {
	return t.size
}

func (t *Topology) NumTiles() int {
	return len(t.neighbors)
}

// Neighbor returns the adjacent tile in direction d, or false when the step
// would leave the board.
func (t *Topology) Neighbor(tile Tile, d Direction) (Tile, bool) {
	t.mustTile(tile)
	if !d.valid() {
		panic(fmt.Sprintf("invalid direction %d", d))
	}
	n := t.neighbors[tile][d]
	return n, n != NoTile
}

// IsOnEdge reports whether tile lies on the given board edge.
func (t *Topology) IsOnEdge(tile Tile, e Edge) bool {
	t.mustTile(tile)
	if !e.valid() {
		panic(fmt.Sprintf("invalid edge %d", e))
	}
	return t.edges[tile][e]
}

// Coordinates returns the row and column of tile on the full board.
func (t *Topology) Coordinates(tile Tile) (row, col int) {
	t.mustTile(tile)
	half := t.size / 2
	row = int(tile) / half
	col = 2 * (int(tile) % half)
	if row%2 == 0 {
		col++
	}
	return row, col
}

func (t *Topology) mustTile(tile Tile) {
	if tile < 0 || int(tile) >= len(t.neighbors) {
		panic(fmt.Sprintf("tile %d out of range [0, %d)", tile, len(t.neighbors)))
	}
}
