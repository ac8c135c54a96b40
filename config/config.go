package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"stacker/evaluation"
	"stacker/meta"
	"stacker/moves"
)

type Search struct {
	Nodes    int                `yaml:"nodes"`
	Duration time.Duration      `yaml:"duration"`
	Seed     uint64             `yaml:"seed"`
	Mode     moves.MovementMode `yaml:"mode"`
}

type Game struct {
	Previews  int `yaml:"previews"`
	MaxPieces int `yaml:"max_pieces"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Config struct {
	Search  Search             `yaml:"search"`
	Game    Game               `yaml:"game"`
	Weights evaluation.Weights `yaml:"weights"`
	Log     Log                `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	mode, err := moves.ParseMovementMode(meta.MOVEMENT_MODE)
	if err != nil {
		panic(err)
	}
	return Config{
		Search: Search{
			Nodes:    meta.NODES,
			Duration: meta.DURATION,
			Seed:     meta.SEED,
			Mode:     mode,
		},
		Game: Game{
			Previews:  meta.PREVIEWS,
			MaxPieces: meta.MAX_PIECES,
		},
		Weights: evaluation.DefaultWeights(),
		Log:     Log{Level: meta.LOG_LEVEL},
	}
}

// Load reads a YAML file on top of the defaults, so fields missing from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Search.Nodes <= 0 && c.Search.Duration <= 0 {
		errs = append(errs, errors.New("search needs a node or duration budget"))
	}
	if c.Search.Nodes < 0 {
		errs = append(errs, fmt.Errorf("search nodes must not be negative, got %d", c.Search.Nodes))
	}
	if c.Game.Previews < 1 {
		errs = append(errs, fmt.Errorf("game previews must be at least 1, got %d", c.Game.Previews))
	}
	if c.Game.MaxPieces < 0 {
		errs = append(errs, fmt.Errorf("game max_pieces must not be negative, got %d", c.Game.MaxPieces))
	}
	if c.Weights.Board.MaxWellDepth < 0 {
		errs = append(errs, errors.New("weights max_well_depth must not be negative"))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	return errors.Join(errs...)
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || c.Log.Level == "" {
		return zerolog.InfoLevel
	}
	return level
}
