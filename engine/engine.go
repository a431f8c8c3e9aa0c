package engine

import (
	"blokus/experiments/metrics"
	"blokus/game"
	"context"
)

type Engine interface {
	// Run plays turns until the game is over
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
	// Submit commits a placement for an externally driven color
	Submit(p game.Placement) error
	// Pass records a failed turn for the color to move
	Pass() error
}
