package searcher

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"stacker/evaluation"
	"stacker/experiments/metrics"
	"stacker/game"
	"stacker/moves"
)

// checkInterval is how many expansions run between deadline checks.
const checkInterval = 64

type Option func(s *Searcher)

// Searcher owns a search tree and drives it: it expands the root under a node
// or time budget, commits to the best move, and feeds revealed pieces in.
type Searcher struct {
	root     *Tree
	rng      *rand.Rand
	mode     moves.MovementMode
	weights  evaluation.Weights
	nodes    int
	duration time.Duration
	dead     bool
	metrics  metrics.Collector
}

func WithNodes(nodes int) Option {
	return func(s *Searcher) {
		if nodes > 0 {
			s.nodes = nodes
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(s *Searcher) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *Searcher) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMovementMode(mode moves.MovementMode) Option {
	return func(s *Searcher) {
		s.mode = mode
	}
}

func WithWeights(weights evaluation.Weights) Option {
	return func(s *Searcher) {
		s.weights = weights
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = metrics.NewCollector()
	}
}

// NewSearcher creates a searcher rooted at board. A node or duration budget
// is required.
func NewSearcher(board game.Board, options ...Option) *Searcher {
	s := &Searcher{ // Default values
		rng:     rand.New(rand.NewSource(1)),
		mode:    moves.ZeroG,
		weights: evaluation.DefaultWeights(),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.nodes <= 0 && s.duration <= 0 {
		panic("Must specify search nodes or duration")
	}
	s.Reset(board)
	return s
}

// Reset discards the tree and starts over from board.
func (s *Searcher) Reset(board game.Board) {
	s.root = NewTree(board, &game.LockResult{}, false, &s.weights)
	s.dead = false
	s.metrics.SetTreeReused(false)
}

func (s *Searcher) Root() *Tree {
	return s.root
}

// IsDead reports whether the root has no legal continuation.
func (s *Searcher) IsDead() bool {
	return s.dead
}

// Think expands the tree until the node budget is spent, the time budget
// runs out, ctx is done, or the root dies. Each budget applies per call.
func (s *Searcher) Think(ctx context.Context) metrics.SearchMetric {
	s.metrics.Start()
	start := time.Now()
	startNodes := s.root.ChildNodes

	for i := 0; !s.dead; i++ {
		if s.nodes > 0 && s.root.ChildNodes-startNodes >= s.nodes {
			break
		}
		if i%checkInterval == 0 {
			if ctx.Err() != nil {
				break
			}
			if s.duration > 0 && time.Since(start) >= s.duration {
				break
			}
		}

		before := s.root.ChildNodes
		if s.root.Expand(s.rng, s.mode, &s.weights) {
			s.dead = true
			log.Debug().Msg("root has no legal continuation")
			break
		}
		s.metrics.AddExpansion(s.root.ChildNodes - before)

		if !s.root.IsExpanded() {
			// Neither the next piece nor the hold piece is known yet.
			log.Debug().Msg("root cannot expand until more pieces are known")
			break
		}
	}

	return s.metrics.Complete(s.root.ChildNodes, s.root.Depth, s.root.Evaluation, s.dead)
}

// NextMove commits to the best known move and makes its subtree the new
// root. It returns false while the root is unexpanded or speculative.
func (s *Searcher) NextMove() (*Child, bool) {
	child, ok := s.root.IntoBestChild()
	if !ok {
		return nil, false
	}
	s.root = child.Tree
	s.metrics.SetTreeReused(s.root.IsExpanded())
	return child, true
}

// AddNextPiece reveals the piece that follows the current queue.
func (s *Searcher) AddNextPiece(piece game.Piece) {
	s.root.AddNextPiece(piece)
}
