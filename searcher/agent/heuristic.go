package agent

import (
	"blokus/experiments/metrics"
	"blokus/game"
	"blokus/searcher"
	"context"
)

type heuristicAgent struct {
	heuristic *searcher.Heuristic
}

// NewHeuristicAgent returns an agent playing the best-scoring placement.
func NewHeuristicAgent(heuristic *searcher.Heuristic) Agent {
	return heuristicAgent{heuristic: heuristic}
}

func (a heuristicAgent) FindMove(ctx context.Context, pos searcher.Position, moves []game.Placement) (game.Placement, metrics.SearchMetric, error) {
	return a.heuristic.FindMove(ctx, pos, moves)
}
