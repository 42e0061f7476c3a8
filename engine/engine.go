package engine

import (
	"context"

	"connect4/experiments/metrics"
	"connect4/game"
)

type Engine interface {
	// Run plays a game till there's a winner, the board is full or a max
	// number of turns is reached
	Run(ctx context.Context) (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
