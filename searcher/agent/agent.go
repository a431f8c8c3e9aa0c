package agent

import (
	"blokus/experiments/metrics"
	"blokus/game"
	"blokus/searcher"
	"context"
)

type Agent interface {
	// FindMove picks one of the legal placements and returns performance metrics (if collected)
	FindMove(ctx context.Context, pos searcher.Position, moves []game.Placement) (game.Placement, metrics.SearchMetric, error)
}
