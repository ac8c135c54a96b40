package searcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stacker/game"
	"stacker/moves"
)

func TestNewSearcher(t *testing.T) {
	t.Run("panics without a budget", func(t *testing.T) {
		require.Panics(t, func() {
			NewSearcher(boardWithQueue(game.T, game.I))
		}, "Should panic when neither nodes nor duration is set")
	})

	t.Run("starts from an unexpanded root", func(t *testing.T) {
		s := NewSearcher(boardWithQueue(game.T, game.I), WithNodes(10))
		require.False(t, s.Root().IsExpanded())
		require.False(t, s.IsDead())
	})
}

func TestThink(t *testing.T) {
	t.Run("spends the node budget", func(t *testing.T) {
		s := NewSearcher(boardWithQueue(game.T, game.I, game.O, game.L),
			WithNodes(500), WithDuration(10*time.Second), WithSeed(7),
			WithMovementMode(moves.HardDropOnly), WithMetrics())

		metric := s.Think(context.Background())
		require.GreaterOrEqual(t, s.Root().ChildNodes, 500)
		require.Equal(t, s.Root().ChildNodes, metric.TreeNodes)
		require.Equal(t, metric.TreeNodes, metric.NewNodes, "Every node was added during this search")
		require.Positive(t, metric.Expansions)
		require.Equal(t, s.Root().Depth, metric.Depth)
		require.Equal(t, s.Root().Evaluation, metric.Evaluation)
		require.False(t, metric.IsRootDead)
		require.False(t, metric.IsTreeReused)
	})

	t.Run("stops on a cancelled context", func(t *testing.T) {
		s := NewSearcher(boardWithQueue(game.T, game.I), WithNodes(1000))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s.Think(ctx)
		require.False(t, s.Root().IsExpanded(), "Nothing should be expanded after cancellation")
	})

	t.Run("stops when nothing is known", func(t *testing.T) {
		s := NewSearcher(game.NewBoard(), WithNodes(1000))
		s.Think(context.Background())
		require.False(t, s.Root().IsExpanded())
		require.False(t, s.IsDead())
	})

	t.Run("reports a dead root", func(t *testing.T) {
		board := boardWithQueue(game.T, game.I)
		board.SetCell(4, 20, true)
		s := NewSearcher(board, WithNodes(100), WithMetrics())

		metric := s.Think(context.Background())
		require.True(t, s.IsDead())
		require.True(t, metric.IsRootDead)
		_, ok := s.NextMove()
		require.False(t, ok, "Dead root has no move")
	})
}

func TestNextMove(t *testing.T) {
	t.Run("commits to the best child and reuses its subtree", func(t *testing.T) {
		s := NewSearcher(boardWithQueue(game.S, game.Z, game.T, game.I),
			WithNodes(300), WithMovementMode(moves.HardDropOnly), WithMetrics())
		s.Think(context.Background())
		best := s.Root().Children()[0]

		child, ok := s.NextMove()
		require.True(t, ok)
		require.Same(t, best, child)
		require.Same(t, child.Tree, s.Root(), "Chosen subtree should become the root")

		reused := s.Root().IsExpanded()
		s.AddNextPiece(game.O)
		queue := s.Root().Board.Queue()
		require.Equal(t, game.O, queue[len(queue)-1])

		metric := s.Think(context.Background())
		require.Equal(t, reused, metric.IsTreeReused)
	})

	t.Run("speculative root is not ready", func(t *testing.T) {
		s := NewSearcher(boardWithQueue(game.T), WithNodes(50), WithMovementMode(moves.HardDropOnly))
		s.Think(context.Background())
		require.True(t, s.Root().IsSpeculative())

		_, ok := s.NextMove()
		require.False(t, ok)

		s.AddNextPiece(game.I)
		require.False(t, s.Root().IsSpeculative(), "Revealing the next piece resolves the root")
		_, ok = s.NextMove()
		require.True(t, ok)
	})

	t.Run("reset starts over", func(t *testing.T) {
		s := NewSearcher(boardWithQueue(game.T, game.I), WithNodes(100), WithMovementMode(moves.HardDropOnly))
		s.Think(context.Background())
		s.Reset(boardWithQueue(game.O, game.O))
		require.False(t, s.Root().IsExpanded())
		require.Equal(t, []game.Piece{game.O, game.O}, s.Root().Board.Queue())
	})
}
