package engine

import (
	"context"

	"stacker/experiments/metrics"
)

const MaxPieces = 10000

type Engine interface {
	// Run plays a game till the stack tops out, the player gets stuck or a max
	// number of pieces is reached
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
