package game

import "fmt"

// MaxManLength is the longest move a man may make: a jump over one piece.
const MaxManLength = 2

// Catalog enumerates every geometrically reachable move on a board and
// assigns each a dense id. Build it once and share it read-only between
// games.
type Catalog struct {
	topology *Topology
	moves    []Move
	targets  []Tile
	ids      map[Move]int
	allFrom  [][]Move
	manFrom  [][]Move
}

// NewCatalog builds the topology and move catalog for a board size.
func NewCatalog(size int) (*Catalog, error) {
	t, err := NewTopology(size)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}
	return NewCatalogFromTopology(t), nil
}

func NewCatalogFromTopology(t *Topology) *Catalog {
	c := &Catalog{
		topology: t,
		ids:      make(map[Move]int),
		allFrom:  make([][]Move, t.NumTiles()),
		manFrom:  make([][]Move, t.NumTiles()),
	}
	for i := 0; i < t.NumTiles(); i++ {
		source := Tile(i)
		for _, d := range Directions {
			neighbor := source
			for length := 1; ; length++ {
				next, ok := t.Neighbor(neighbor, d)
				if !ok {
					break
				}
				neighbor = next
				move := Move{Source: source, Direction: d, Length: length}
				c.ids[move] = len(c.moves)
				c.moves = append(c.moves, move)
				c.targets = append(c.targets, neighbor)
				c.allFrom[i] = append(c.allFrom[i], move)
				if length <= MaxManLength {
					c.manFrom[i] = append(c.manFrom[i], move)
				}
			}
		}
	}
	return c
}

func (c *Catalog) Topology() *Topology {
	return c.topology
}

// Len returns the number of moves in the catalog.
func (c *Catalog) Len() int {
	return len(c.moves)
}

// MovesFrom returns the catalog moves starting at tile. With manOnly set
// only moves of length <= MaxManLength are returned. The slice is shared
// and must not be modified.
func (c *Catalog) MovesFrom(tile Tile, manOnly bool) []Move {
	c.topology.mustTile(tile)
	if manOnly {
		return c.manFrom[tile]
	}
	return c.allFrom[tile]
}

// IDOf returns the id of move, or false if the move is not in the catalog.
func (c *Catalog) IDOf(move Move) (int, bool) {
	id, ok := c.ids[move]
	return id, ok
}

func (c *Catalog) MoveOf(id int) Move {
	c.mustID(id)
	return c.moves[id]
}

// TargetOf returns the destination tile of the move with the given id.
func (c *Catalog) TargetOf(id int) Tile {
	c.mustID(id)
	return c.targets[id]
}

// Moves returns every move in catalog order. The slice is shared and must
// not be modified.
func (c *Catalog) Moves() []Move {
	return c.moves
}

func (c *Catalog) mustID(id int) {
	if id < 0 || id >= len(c.moves) {
		panic(fmt.Sprintf("move id %d out of range [0, %d)", id, len(c.moves)))
	}
}
