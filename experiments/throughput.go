package experiments

import (
	"time"

	"stacker/config"
	"stacker/moves"
)

// ThroughputExperiment measures how many nodes each movement mode expands
// under the same time budget.
func ThroughputExperiment(cfg config.Config, games, parallel int) *Experiment {
	const Duration = 10 * time.Millisecond

	e := NewExperiment("throughput", cfg, games, parallel)
	e.Configs = nil
	for i, mode := range []moves.MovementMode{moves.HardDropOnly, moves.TwentyG, moves.ZeroG} {
		agent := agentConfig(i+1, cfg)
		agent.Nodes = 0
		agent.Duration = Duration
		agent.Mode = mode.String()
		e.Configs = append(e.Configs, agent)
	}
	return e
}
