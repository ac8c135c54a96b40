package moves

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stacker/game"
)

func findMoves(t *testing.T, board *game.Board, piece game.Piece, mode MovementMode) []Move {
	t.Helper()
	spawned, ok := game.SpawnPiece(piece, board)
	require.True(t, ok, "%v should spawn", piece)
	return FindMoves(board, spawned, mode)
}

func hasCells(moves []Move, cells ...[2]int) (Move, bool) {
	want := make(map[[2]int]bool, len(cells))
	for _, c := range cells {
		want[c] = true
	}
	for _, m := range moves {
		matched := 0
		for _, c := range m.Location.Cells() {
			if want[c] {
				matched++
			}
		}
		if matched == len(cells) {
			return m, true
		}
	}
	return Move{}, false
}

func TestMovementMode(t *testing.T) {
	t.Run("parses names", func(t *testing.T) {
		for _, mode := range []MovementMode{ZeroG, TwentyG, HardDropOnly} {
			parsed, err := ParseMovementMode(mode.String())
			require.NoError(t, err)
			require.Equal(t, mode, parsed)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		var mode MovementMode
		require.Error(t, mode.UnmarshalText([]byte("40g")))
	})
}

func TestHardDrops(t *testing.T) {
	b := game.NewBoard()
	expected := map[game.Piece]int{
		game.T: 34,
		game.L: 34,
		game.J: 34,
		game.O: 9,
		game.I: 17,
		game.S: 17,
		game.Z: 17,
	}
	for piece, count := range expected {
		t.Run(piece.String(), func(t *testing.T) {
			moves := findMoves(t, &b, piece, HardDropOnly)
			require.Len(t, moves, count, "Distinct resting placements of %v on an empty board", piece)
			for _, m := range moves {
				require.False(t, m.SoftDropped)
				resting := m.Location
				require.False(t, resting.Shift(&b, 0, -1), "Every placement should rest on something")
			}
		})
	}
}

func TestZeroG(t *testing.T) {
	// A shelf over columns 0..5 leaves a cave underneath
	b := game.NewBoard()
	for x := 0; x <= 5; x++ {
		b.SetCell(x, 2, true)
	}
	cave := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

	t.Run("tuck under an overhang", func(t *testing.T) {
		moves := findMoves(t, &b, game.O, ZeroG)
		m, ok := hasCells(moves, cave...)
		require.True(t, ok, "O should slide under the shelf")
		require.True(t, m.SoftDropped, "Tucks need a soft drop")
	})

	t.Run("hard drop cannot tuck", func(t *testing.T) {
		moves := findMoves(t, &b, game.O, HardDropOnly)
		_, ok := hasCells(moves, cave...)
		require.False(t, ok)
	})

	t.Run("includes every hard drop", func(t *testing.T) {
		hard := findMoves(t, &b, game.T, HardDropOnly)
		zero := findMoves(t, &b, game.T, ZeroG)
		require.GreaterOrEqual(t, len(zero), len(hard))
		for _, m := range hard {
			cells := m.Location.Cells()
			found, ok := hasCells(zero, cells[:]...)
			require.True(t, ok, "Hard drop %v should be found with zero gravity", m)
			require.False(t, found.SoftDropped)
		}
	})

	t.Run("empty board matches hard drops", func(t *testing.T) {
		empty := game.NewBoard()
		hard := findMoves(t, &empty, game.S, HardDropOnly)
		zero := findMoves(t, &empty, game.S, ZeroG)
		require.Len(t, zero, len(hard), "Nothing can be tucked on an empty board")
	})
}

func TestTwentyG(t *testing.T) {
	b := game.NewBoard()
	moves := findMoves(t, &b, game.T, TwentyG)
	require.NotEmpty(t, moves)
	for _, m := range moves {
		require.False(t, m.SoftDropped, "Placements under 20G are never soft dropped")
		resting := m.Location
		require.False(t, resting.Shift(&b, 0, -1))
	}
}
