package experiments

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"stacker/config"
	"stacker/moves"
)

func TestRun(t *testing.T) {
	cfg := config.Default()
	cfg.Search.Nodes = 60
	cfg.Search.Mode = moves.HardDropOnly
	cfg.Game.MaxPieces = 3

	t.Run("writes records for every game", func(t *testing.T) {
		e := NewExperiment("test", cfg, 3, 2)
		e.BaseDir = t.TempDir()
		require.NoError(t, e.Run(context.Background()))

		for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			matches, err := filepath.Glob(filepath.Join(e.BaseDir, "test", "*", file))
			require.NoError(t, err)
			require.Len(t, matches, 1, "%s should be written once", file)
		}
	})

	t.Run("node budget experiment has one agent per budget", func(t *testing.T) {
		e := NodeBudgetExperiment(cfg, 1, 1)
		require.Len(t, e.Configs, 5)
		for i, agent := range e.Configs {
			require.Equal(t, i+1, agent.ID)
			require.Zero(t, agent.Duration)
		}
	})

	t.Run("throughput experiment varies the movement mode", func(t *testing.T) {
		e := ThroughputExperiment(cfg, 1, 1)
		require.Len(t, e.Configs, 3)
		for _, agent := range e.Configs {
			_, err := moves.ParseMovementMode(agent.Mode)
			require.NoError(t, err)
			require.Positive(t, agent.Duration)
		}
	})

	t.Run("invalid agent mode fails", func(t *testing.T) {
		e := NewExperiment("broken", cfg, 1, 1)
		e.BaseDir = t.TempDir()
		e.Configs[0].Mode = "40g"
		require.Error(t, e.Run(context.Background()))
	})
}
