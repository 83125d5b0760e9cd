package game

import (
	"encoding/binary"
	"hash/fnv"
)

type StateHash uint64

// Observation layout: one slot per tile, then the meta fields below.
const (
	metaActivePiece = iota
	metaActiveSide
	metaPliesWithoutCapture
	numMeta
)

var pieceValues = [...]float32{
	Empty:     0,
	BlackMan:  -1,
	BlackKing: -2,
	WhiteMan:  1,
	WhiteKing: 2,
}

var sideValues = [...]float32{
	Neutral: 0,
	Black:   -1,
	White:   1,
}

// ObservationLen returns the length of the vector built by Observation.
func (g *Game) ObservationLen() int {
	return len(g.board) + numMeta
}

// Observation encodes the state as a flat vector:
//
//	[0, n)  tiles: BlackKing -2, BlackMan -1, Empty 0, WhiteMan 1, WhiteKing 2
//	n       active piece tile, -1 when none
//	n+1     active side: Black -1, White 1
//	n+2     plies without capture
func (g *Game) Observation() []float32 {
	n := len(g.board)
	obs := make([]float32, n+numMeta)
	for i, p := range g.board {
		obs[i] = pieceValues[p]
	}
	obs[n+metaActivePiece] = float32(g.activePiece)
	obs[n+metaActiveSide] = sideValues[g.activeSide]
	obs[n+metaPliesWithoutCapture] = float32(g.plies)
	return obs
}

// Hash identifies the board and turn metadata. Undo restores it exactly.
func (g *Game) Hash() StateHash {
	hasher := fnv.New64a()

	for _, p := range g.board {
		hasher.Write([]byte{byte(p)})
	}
	binary.Write(hasher, binary.LittleEndian, int64(g.activePiece))
	binary.Write(hasher, binary.LittleEndian, int64(g.activeSide))
	binary.Write(hasher, binary.LittleEndian, int64(g.plies))

	return StateHash(hasher.Sum64())
}
