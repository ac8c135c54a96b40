package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fillRow(b *Board, y int, except ...int) {
	for x := 0; x < Width; x++ {
		b.SetCell(x, y, true)
	}
	for _, x := range except {
		b.SetCell(x, y, false)
	}
}

func TestPieceSet(t *testing.T) {
	t.Run("all pieces", func(t *testing.T) {
		require.Equal(t, PieceCount, AllPieces.Len(), "Full bag should hold every piece")
		require.Equal(t, Pieces[:], AllPieces.Pieces(), "Pieces should be listed in ordinal order")
		require.Equal(t, "{IOTLJSZ}", AllPieces.String())
	})

	t.Run("add and remove", func(t *testing.T) {
		s := NewPieceSet(T, S)
		require.True(t, s.Contains(T))
		require.False(t, s.Contains(I))

		s = s.Remove(T).Remove(S)
		require.True(t, s.IsEmpty(), "Set should be empty after removing every member")
	})

	t.Run("parse piece", func(t *testing.T) {
		p, err := ParsePiece("t")
		require.NoError(t, err)
		require.Equal(t, T, p)

		_, err = ParsePiece("X")
		require.Error(t, err, "Unknown letters should be rejected")
	})
}

func TestBoardQueue(t *testing.T) {
	t.Run("next pieces", func(t *testing.T) {
		b := NewBoard()
		_, ok := b.NextPiece()
		require.False(t, ok, "New board should have an empty queue")

		b.AddNextPiece(T)
		b.AddNextPiece(I)
		next, ok := b.NextPiece()
		require.True(t, ok)
		require.Equal(t, T, next)
		nextNext, ok := b.NextNextPiece()
		require.True(t, ok)
		require.Equal(t, I, nextNext)
		require.Equal(t, []Piece{T, I}, b.Queue())
	})

	t.Run("bag is drawn and refilled", func(t *testing.T) {
		b := NewBoard()
		require.Equal(t, AllPieces, b.Bag())

		b.AddNextPiece(I)
		require.False(t, b.Bag().Contains(I), "Drawn piece should leave the bag")
		require.Equal(t, PieceCount-1, b.Bag().Len())

		for _, p := range []Piece{O, T, L, J, S} {
			b.AddNextPiece(p)
		}
		require.Equal(t, NewPieceSet(Z), b.Bag())

		b.AddNextPiece(Z)
		require.Equal(t, AllPieces, b.Bag(), "Bag should refill once empty")
	})

	t.Run("advance and hold", func(t *testing.T) {
		b := NewBoard()
		b.AddNextPiece(L)
		b.AddNextPiece(J)

		p, ok := b.AdvanceQueue()
		require.True(t, ok)
		require.Equal(t, L, p)

		_, had := b.Hold(L)
		require.False(t, had, "Hold should start empty")
		held, ok := b.HoldPiece()
		require.True(t, ok)
		require.Equal(t, L, held)

		prev, had := b.Hold(J)
		require.True(t, had)
		require.Equal(t, L, prev, "Hold should return the previous piece")
	})

	t.Run("clone is independent", func(t *testing.T) {
		b := NewBoard()
		b.AddNextPiece(T)
		c := b.Clone()
		c.AddNextPiece(O)
		c.SetCell(0, 0, true)

		require.Equal(t, []Piece{T}, b.Queue(), "Clone should not share the queue")
		require.False(t, b.Occupied(0, 0), "Clone should not share the field")
		require.False(t, b.SameField(&c))
	})
}

func TestBoardField(t *testing.T) {
	t.Run("walls and floor are occupied", func(t *testing.T) {
		b := NewBoard()
		require.True(t, b.Occupied(-1, 0))
		require.True(t, b.Occupied(Width, 0))
		require.True(t, b.Occupied(0, -1))
		require.False(t, b.Occupied(0, 0))
	})

	t.Run("column heights", func(t *testing.T) {
		b := NewBoard()
		b.SetCell(0, 0, true)
		b.SetCell(3, 5, true)
		heights := b.ColumnHeights()
		require.Equal(t, 1, heights[0])
		require.Equal(t, 6, heights[3])
		require.Equal(t, 0, heights[9])
		require.Equal(t, 2, b.FilledCells(0))
		require.Equal(t, 1, b.FilledCells(1))
	})
}

func TestLockPiece(t *testing.T) {
	t.Run("plain lock", func(t *testing.T) {
		b := NewBoard()
		result := b.LockPiece(FallingPiece{Kind: O, X: 4, Y: 0})
		require.False(t, result.LockedOut)
		require.Zero(t, result.Lines())
		require.True(t, b.Occupied(4, 0))
		require.True(t, b.Occupied(5, 1))
	})

	t.Run("single line clear", func(t *testing.T) {
		b := NewBoard()
		fillRow(&b, 0, 0, 1, 2, 3)
		b.SetCell(9, 1, true)

		result := b.LockPiece(FallingPiece{Kind: I, X: 1, Y: 0})
		require.Equal(t, []int{0}, result.ClearedLines)
		require.False(t, result.PerfectClear, "A cell remains above the cleared row")
		require.True(t, b.Occupied(9, 0), "Rows above should move down")
		require.False(t, b.Occupied(9, 1))
	})

	t.Run("perfect clear", func(t *testing.T) {
		b := NewBoard()
		fillRow(&b, 0, 0, 1, 2, 3)

		result := b.LockPiece(FallingPiece{Kind: I, X: 1, Y: 0})
		require.True(t, result.PerfectClear)
		require.Zero(t, b.FilledCells(0))
	})

	t.Run("lock out above the visible field", func(t *testing.T) {
		b := NewBoard()
		result := b.LockPiece(FallingPiece{Kind: I, X: 4, Y: VisibleHeight + 1})
		require.True(t, result.LockedOut)
	})

	t.Run("partially visible piece is not a lock out", func(t *testing.T) {
		b := NewBoard()
		result := b.LockPiece(FallingPiece{Kind: I, Rotation: East, X: 4, Y: VisibleHeight})
		require.False(t, result.LockedOut)
	})

	t.Run("combo and back to back", func(t *testing.T) {
		b := NewBoard()
		tetris := func() LockResult {
			for y := 0; y < 4; y++ {
				fillRow(&b, y, 0)
			}
			return b.LockPiece(FallingPiece{Kind: I, Rotation: East, X: 0, Y: 2})
		}

		first := tetris()
		require.Equal(t, 4, first.Lines())
		require.Zero(t, first.Combo)
		require.False(t, first.BackToBack, "First tetris has nothing to chain from")
		require.True(t, first.PerfectClear)

		second := tetris()
		require.Equal(t, 1, second.Combo)
		require.True(t, second.BackToBack)

		b.LockPiece(FallingPiece{Kind: O, X: 4, Y: 0})
		third := tetris()
		require.Zero(t, third.Combo, "A lock without clears should reset the combo")
		require.True(t, third.BackToBack, "A lock without clears should keep back to back")
	})
}
