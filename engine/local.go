package engine

import (
	"context"
	"time"

	"stacker/experiments/metrics"
	"stacker/game"
	"stacker/searcher"

	"github.com/rs/zerolog/log"
)

// maxExtraReveals bounds how many pieces beyond the preview length are shown
// while the root stays speculative.
const maxExtraReveals = 2

var _ Engine = (*Local)(nil)

// Local plays a single-player game against a seeded 7-bag randomizer.
type Local struct {
	Seed      uint64
	Previews  int
	MaxPieces int

	// OnMove is called after every committed placement.
	OnMove func(step int, board *game.Board, child *searcher.Child)

	board      game.Board
	randomizer *Randomizer
	searcher   *searcher.Searcher
}

func LocalEngine(seed uint64, previews, maxPieces int, options ...searcher.Option) *Local {
	if previews < 1 {
		panic("need at least one preview piece")
	}
	if maxPieces <= 0 || maxPieces > MaxPieces {
		maxPieces = MaxPieces
	}

	e := &Local{
		Seed:       seed,
		Previews:   previews,
		MaxPieces:  maxPieces,
		board:      game.NewBoard(),
		randomizer: NewRandomizer(seed),
	}
	for range previews {
		e.board.AddNextPiece(e.randomizer.Next())
	}
	e.searcher = searcher.NewSearcher(e.board.Clone(), options...)
	return e
}

func (e *Local) Board() *game.Board {
	return &e.board
}

// Run executes the entire game loop until the stack tops out or the piece
// limit is reached.
func (e *Local) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{Seed: e.Seed, StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("starting game with seed %d", e.Seed)

	extra := 0
	for gameMetric.Pieces < e.MaxPieces && ctx.Err() == nil {
		searchMetric := e.searcher.Think(ctx)
		if e.searcher.IsDead() {
			gameMetric.ToppedOut = true
			break
		}

		child, ok := e.searcher.NextMove()
		if !ok {
			if extra >= maxExtraReveals || ctx.Err() != nil {
				log.Warn().Msgf("no move available after %d pieces", gameMetric.Pieces)
				break
			}
			// The root is speculative; show one more piece and search again.
			e.reveal()
			extra++
			continue
		}

		lock, ok := e.apply(child)
		if !ok {
			gameMetric.ToppedOut = true
			break
		}
		gameMetric.Pieces++
		gameMetric.LinesCleared += lock.Lines()

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         gameMetric.Pieces,
			Piece:        child.Move.Location.Kind.String(),
			Hold:         child.Hold,
			SoftDropped:  child.Move.SoftDropped,
			LinesCleared: lock.Lines(),
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("piece %d: %v hold=%t eval=%d", gameMetric.Pieces, child.Move, child.Hold, child.Tree.Evaluation)
		if e.OnMove != nil {
			e.OnMove(gameMetric.Pieces, &e.board, child)
		}

		for len(e.board.Queue()) < e.Previews {
			e.reveal()
		}
		extra = max(0, len(e.board.Queue())-e.Previews)

		if !e.searcher.Root().Board.SameField(&e.board) {
			log.Warn().Msgf("search tree diverged from the game after %d pieces, resetting", gameMetric.Pieces)
			e.searcher.Reset(e.board.Clone())
		}
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	log.Info().Msgf("game with seed %d ended after %d pieces and %d lines (topped out: %t)",
		e.Seed, gameMetric.Pieces, gameMetric.LinesCleared, gameMetric.ToppedOut)
	return gameMetric, moveMetrics
}

// reveal deals the next piece to both the game and the search tree.
func (e *Local) reveal() {
	piece := e.randomizer.Next()
	e.board.AddNextPiece(piece)
	e.searcher.AddNextPiece(piece)
}

// apply plays child on the game board the same way the tree produced it. It
// returns false when the placement locks out.
func (e *Local) apply(child *searcher.Child) (game.LockResult, bool) {
	next, ok := e.board.AdvanceQueue()
	if !ok {
		panic("cannot apply move: queue is empty")
	}
	if child.Hold {
		if _, had := e.board.Hold(next); !had {
			if _, ok := e.board.AdvanceQueue(); !ok {
				panic("cannot apply move: hold is empty and the queue has no second piece")
			}
		}
	}
	lock := e.board.LockPiece(child.Move.Location)
	return lock, !lock.LockedOut
}
