package game

// capture records a removed piece so undo can put it back.
type capture struct {
	tile  Tile
	piece Piece
}

var noCapture = capture{tile: NoTile, piece: Empty}

// record is one entry on the undo stack. It holds plain values only, so
// popping it has no effect until it is applied.
type record struct {
	move       Move
	promoted   bool
	turnEnded  bool
	prevActive Tile
	prevPlies  int
}

// history is a pair of parallel LIFO stacks: one record and one capture per
// performed move.
type history struct {
	records  []record
	captures []capture
}

func (h *history) push(r record, c capture) {
	h.records = append(h.records, r)
	h.captures = append(h.captures, c)
}

func (h *history) pop() (record, capture, bool) {
	n := len(h.records)
	if n == 0 {
		return record{}, noCapture, false
	}
	r, c := h.records[n-1], h.captures[n-1]
	h.records = h.records[:n-1]
	h.captures = h.captures[:n-1]
	return r, c, true
}

func (h *history) len() int {
	return len(h.records)
}

// last returns the most recent move, if any.
func (h *history) last() (Move, bool) {
	if len(h.records) == 0 {
		return Move{}, false
	}
	return h.records[len(h.records)-1].move, true
}
