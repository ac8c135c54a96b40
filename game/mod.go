package game

import (
	"fmt"
	"strings"
)

const (
	Width         = 10 // Columns in the playfield
	Height        = 40 // Rows tracked, including the buffer zone above the visible field
	VisibleHeight = 20 // Rows 0..19 are visible; a lock entirely above is a lock out
	PieceCount    = 7  // Number of distinct piece kinds
)

// Piece is one of the seven tetromino kinds. The ordinal order is stable and
// is used to index fixed-size per-piece tables.
type Piece uint8

const (
	I Piece = iota
	O
	T
	L
	J
	S
	Z
)

// Pieces lists every piece kind in ordinal order.
var Pieces = [PieceCount]Piece{I, O, T, L, J, S, Z}

var pieceNames = [PieceCount]string{"I", "O", "T", "L", "J", "S", "Z"}

func (p Piece) String() string {
	if int(p) >= PieceCount {
		return fmt.Sprintf("Piece(%d)", uint8(p))
	}
	return pieceNames[p]
}

// ParsePiece converts a single letter into a Piece.
func ParsePiece(s string) (Piece, error) {
	for i, name := range pieceNames {
		if strings.EqualFold(s, name) {
			return Piece(i), nil
		}
	}
	return 0, fmt.Errorf("unknown piece %q", s)
}

// PieceSet is a bitset over piece kinds, used for the remaining bag.
type PieceSet uint8

// AllPieces is the full bag.
const AllPieces PieceSet = 1<<PieceCount - 1

func NewPieceSet(pieces ...Piece) PieceSet {
	var s PieceSet
	for _, p := range pieces {
		s = s.Add(p)
	}
	return s
}

func (s PieceSet) Contains(p Piece) bool {
	return s&(1<<p) != 0
}

func (s PieceSet) Add(p Piece) PieceSet {
	return s | 1<<p
}

func (s PieceSet) Remove(p Piece) PieceSet {
	return s &^ (1 << p)
}

func (s PieceSet) IsEmpty() bool {
	return s == 0
}

func (s PieceSet) Len() int {
	n := 0
	for _, p := range Pieces {
		if s.Contains(p) {
			n++
		}
	}
	return n
}

// Pieces returns the members of the set in ordinal order.
func (s PieceSet) Pieces() []Piece {
	pieces := make([]Piece, 0, PieceCount)
	for _, p := range Pieces {
		if s.Contains(p) {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

func (s PieceSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for _, p := range s.Pieces() {
		b.WriteString(p.String())
	}
	b.WriteByte('}')
	return b.String()
}
