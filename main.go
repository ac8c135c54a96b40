package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"stacker/config"
	"stacker/engine"
	"stacker/experiments"
	"stacker/moves"
	"stacker/searcher"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	games := flag.Int("games", 0, "Number of self-play games to record; 0 plays a single game")
	parallel := flag.Int("parallel", 4, "Number of games running at once")
	experiment := flag.String("experiment", "", "Experiment to run: node_budget or throughput")
	name := flag.String("name", "selfplay", "Name of the experiment output folder")
	nodes := flag.Int("nodes", 0, "Nodes added to the tree per move")
	duration := flag.Duration("duration", 0, "Time budget per move")
	seed := flag.Uint64("seed", 0, "Seed of the first game")
	mode := flag.String("mode", "", "Movement mode: zero-g, twenty-g or hard-drop-only")
	previews := flag.Int("previews", 0, "Number of preview pieces")
	render := flag.Bool("render", false, "Draw the field after every move")
	logLevel := flag.String("log-level", "", "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	// Flags override the config file
	if *nodes > 0 {
		cfg.Search.Nodes = *nodes
	}
	if *duration > 0 {
		cfg.Search.Duration = *duration
	}
	if *seed > 0 {
		cfg.Search.Seed = *seed
	}
	if *mode != "" {
		m, err := moves.ParseMovementMode(*mode)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid movement mode")
		}
		cfg.Search.Mode = m
	}
	if *previews > 0 {
		cfg.Game.Previews = *previews
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *games <= 0 && *experiment == "" {
		playGame(ctx, cfg, *render)
		return
	}

	var e *experiments.Experiment
	switch *experiment {
	case "":
		e = experiments.NewExperiment(*name, cfg, *games, *parallel)
	case "node_budget":
		e = experiments.NodeBudgetExperiment(cfg, max(*games, 1), *parallel)
	case "throughput":
		e = experiments.ThroughputExperiment(cfg, max(*games, 1), *parallel)
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}
	if err := e.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
}

func playGame(ctx context.Context, cfg config.Config, render bool) {
	options := []searcher.Option{
		searcher.WithSeed(cfg.Search.Seed),
		searcher.WithMovementMode(cfg.Search.Mode),
		searcher.WithWeights(cfg.Weights),
		searcher.WithNodes(cfg.Search.Nodes),
		searcher.WithDuration(cfg.Search.Duration),
	}
	e := engine.LocalEngine(cfg.Search.Seed, cfg.Game.Previews, cfg.Game.MaxPieces, options...)
	if render {
		e.OnMove = newRenderer(os.Stdout).render
	}

	gameMetric, _ := e.Run(ctx)
	log.Info().Msgf("played %d pieces, cleared %d lines in %s", gameMetric.Pieces, gameMetric.LinesCleared, gameMetric.Duration)
}
