package game

import (
	"math/bits"
	"slices"
	"strings"
)

const fullRow = uint16(1<<Width - 1)

// Board is the playfield together with the hold slot, the known queue of
// upcoming pieces and the bag of pieces that can still be drawn. A Board is a
// value: Clone before handing it to another owner.
type Board struct {
	rows    [Height]uint16 // Bit x of rows[y] is set when cell (x, y) is filled
	hold    Piece          // Valid only when hasHold is set
	hasHold bool
	queue   []Piece  // Known upcoming pieces, front first
	bag     PieceSet // Pieces not yet added to the queue from the current bag
	combo   int      // Consecutive line clearing placements
	b2b     bool     // Whether the last clear was a back-to-back eligible clear
}

// NewBoard returns an empty board with a full bag and no hold piece.
func NewBoard() Board {
	return Board{bag: AllPieces}
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() Board {
	c := *b
	c.queue = slices.Clone(b.queue)
	return c
}

// Occupied reports whether (x, y) is filled. Cells outside the playfield
// count as filled.
func (b *Board) Occupied(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return true
	}
	return b.rows[y]&(1<<x) != 0
}

// SetCell fills or clears a single cell without any line clear.
func (b *Board) SetCell(x, y int, filled bool) {
	if filled {
		b.rows[y] |= 1 << x
	} else {
		b.rows[y] &^= 1 << x
	}
}

// Row returns the fill mask of row y.
func (b *Board) Row(y int) uint16 {
	return b.rows[y]
}

// ObstructedBy reports whether any cell of p overlaps the field or the walls.
func (b *Board) ObstructedBy(p *FallingPiece) bool {
	for _, c := range p.Cells() {
		if b.Occupied(c[0], c[1]) {
			return true
		}
	}
	return false
}

// ColumnHeights returns, for every column, one past the highest filled cell.
func (b *Board) ColumnHeights() [Width]int {
	var heights [Width]int
	for y := Height - 1; y >= 0; y-- {
		row := b.rows[y]
		for x := 0; x < Width; x++ {
			if heights[x] == 0 && row&(1<<x) != 0 {
				heights[x] = y + 1
			}
		}
	}
	return heights
}

// FilledCells counts the filled cells in rows [from, Height).
func (b *Board) FilledCells(from int) int {
	n := 0
	for y := from; y < Height; y++ {
		n += bits.OnesCount16(b.rows[y])
	}
	return n
}

// SameField reports whether both boards have identical cells.
func (b *Board) SameField(other *Board) bool {
	return b.rows == other.rows
}

func (b *Board) NextPiece() (Piece, bool) {
	if len(b.queue) == 0 {
		return 0, false
	}
	return b.queue[0], true
}

func (b *Board) NextNextPiece() (Piece, bool) {
	if len(b.queue) < 2 {
		return 0, false
	}
	return b.queue[1], true
}

// Queue returns a copy of the known queue.
func (b *Board) Queue() []Piece {
	return slices.Clone(b.queue)
}

// Bag returns the pieces that may come next once the known queue runs out.
func (b *Board) Bag() PieceSet {
	return b.bag
}

// AddNextPiece appends piece to the queue and draws it from the bag. The bag
// refills once every piece has been drawn.
func (b *Board) AddNextPiece(piece Piece) {
	b.queue = append(b.queue, piece)
	b.bag = b.bag.Remove(piece)
	if b.bag.IsEmpty() {
		b.bag = AllPieces
	}
}

// AdvanceQueue pops the front of the queue.
func (b *Board) AdvanceQueue() (Piece, bool) {
	if len(b.queue) == 0 {
		return 0, false
	}
	next := b.queue[0]
	b.queue = b.queue[1:]
	return next, true
}

func (b *Board) HoldPiece() (Piece, bool) {
	return b.hold, b.hasHold
}

// Hold puts piece in the hold slot and returns the piece previously held.
func (b *Board) Hold(piece Piece) (Piece, bool) {
	prev, had := b.hold, b.hasHold
	b.hold, b.hasHold = piece, true
	return prev, had
}

// LockPiece writes the piece into the field, clears full rows and reports the
// outcome of the placement.
func (b *Board) LockPiece(piece FallingPiece) LockResult {
	result := LockResult{LockedOut: true, TSpin: piece.TSpin}
	for _, c := range piece.Cells() {
		b.SetCell(c[0], c[1], true)
		if c[1] < VisibleHeight {
			result.LockedOut = false
		}
	}

	kept := 0
	for y := 0; y < Height; y++ {
		if b.rows[y] == fullRow {
			result.ClearedLines = append(result.ClearedLines, y)
			continue
		}
		b.rows[kept] = b.rows[y]
		kept++
	}
	for y := kept; y < Height; y++ {
		b.rows[y] = 0
	}

	lines := len(result.ClearedLines)
	if lines == 0 {
		b.combo = 0
		return result
	}

	b.combo++
	result.Combo = b.combo - 1
	hard := lines == 4 || piece.TSpin != NoTSpin
	result.BackToBack = hard && b.b2b
	b.b2b = hard
	result.PerfectClear = b.FilledCells(0) == 0
	return result
}

// String renders the visible field plus any filled buffer rows, top first.
func (b *Board) String() string {
	top := VisibleHeight
	for y := Height - 1; y >= VisibleHeight; y-- {
		if b.rows[y] != 0 {
			top = y + 1
			break
		}
	}
	var sb strings.Builder
	for y := top - 1; y >= 0; y-- {
		for x := 0; x < Width; x++ {
			if b.Occupied(x, y) {
				sb.WriteString("[]")
			} else {
				sb.WriteString("..")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
