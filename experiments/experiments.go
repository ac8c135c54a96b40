package experiments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"stacker/config"
	"stacker/engine"
	"stacker/evaluation"
	"stacker/experiments/metrics"
	"stacker/moves"
	"stacker/searcher"

	"github.com/rs/zerolog/log"
)

// Experiment plays a number of self-play games for every agent config. Each
// game owns its own searcher and random source, so games run in parallel.
type Experiment struct {
	Name      string
	BaseDir   string
	Configs   []metrics.AgentConfig
	Games     int    // Per agent config
	Parallel  int    // Games running at once
	Seed      uint64 // Game i of every config uses Seed+i
	MaxPieces int
	Weights   evaluation.Weights
}

// NewExperiment prepares an experiment with a single agent built from cfg.
func NewExperiment(name string, cfg config.Config, games, parallel int) *Experiment {
	return &Experiment{
		Name:      name,
		BaseDir:   "experiments",
		Configs:   []metrics.AgentConfig{agentConfig(1, cfg)},
		Games:     games,
		Parallel:  parallel,
		Seed:      cfg.Search.Seed,
		MaxPieces: cfg.Game.MaxPieces,
		Weights:   cfg.Weights,
	}
}

// NodeBudgetExperiment compares node budgets, keeping everything else as in
// cfg.
func NodeBudgetExperiment(cfg config.Config, games, parallel int) *Experiment {
	e := NewExperiment("node_budget", cfg, games, parallel)
	e.Configs = nil
	for i, nodes := range []int{500, 1000, 2000, 5000, 10000} {
		agent := agentConfig(i+1, cfg)
		agent.Nodes = nodes
		agent.Duration = 0
		e.Configs = append(e.Configs, agent)
	}
	return e
}

func agentConfig(id int, cfg config.Config) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:       id,
		Nodes:    cfg.Search.Nodes,
		Duration: cfg.Search.Duration,
		Mode:     cfg.Search.Mode.String(),
		Previews: cfg.Game.Previews,
	}
}

func (e *Experiment) Run(ctx context.Context) error {
	var (
		mu          sync.Mutex
		gameRecords []metrics.GameRecord
		moveRecords []metrics.MoveRecord
	)

	log.Info().Msgf("starting %s experiment...", e.Name)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(e.Parallel, 1))
	for ci, agent := range e.Configs {
		for i := 0; i < e.Games; i++ {
			id := ci*e.Games + i + 1
			seed := e.Seed + uint64(i)
			g.Go(func() error {
				local, err := e.newGame(agent, seed)
				if err != nil {
					return err
				}
				log.Info().Msgf("starting agent %d game %d of %d...", agent.ID, i+1, e.Games)
				gameMetric, moveMetrics := local.Run(ctx)

				mu.Lock()
				defer mu.Unlock()
				gameRecords = append(gameRecords, metrics.GameRecord{
					ID:         id,
					Agent:      agent.ID,
					GameMetric: gameMetric,
				})
				for _, mm := range moveMetrics {
					moveRecords = append(moveRecords, metrics.MoveRecord{
						Game:       id,
						MoveMetric: mm,
					})
				}
				log.Info().Msgf("completed agent %d game %d with %d pieces", agent.ID, i+1, gameMetric.Pieces)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%s experiment failed: %w", e.Name, err)
	}

	log.Info().Msgf("completed %s experiment", e.Name)
	return e.store(gameRecords, moveRecords)
}

func (e *Experiment) newGame(agent metrics.AgentConfig, seed uint64) (*engine.Local, error) {
	mode, err := moves.ParseMovementMode(agent.Mode)
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", agent.ID, err)
	}
	options := []searcher.Option{
		searcher.WithSeed(seed),
		searcher.WithMovementMode(mode),
		searcher.WithWeights(e.Weights),
		searcher.WithMetrics(),
	}
	if agent.Nodes > 0 {
		options = append(options, searcher.WithNodes(agent.Nodes))
	}
	if agent.Duration > 0 {
		options = append(options, searcher.WithDuration(agent.Duration))
	}
	return engine.LocalEngine(seed, agent.Previews, e.MaxPieces, options...), nil
}

func (e *Experiment) store(gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(e.BaseDir, e.Name, time.Now())
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(e.Configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	metrics.SortGameRecords(gameRecords)
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	metrics.SortMoveRecords(moveRecords)
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}
