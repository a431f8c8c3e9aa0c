package agent

import (
	"blokus/experiments/metrics"
	"blokus/game"
	"blokus/searcher"
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent playing uniformly random legal
// placements drawn from rng.
func NewRandomAgent(rng *rand.Rand) Agent {
	return randomAgent{rng: rng}
}

func (a randomAgent) FindMove(ctx context.Context, pos searcher.Position, moves []game.Placement) (game.Placement, metrics.SearchMetric, error) {
	start := time.Now()
	if len(moves) == 0 {
		return game.Placement{}, metrics.SearchMetric{}, fmt.Errorf("no candidate placements")
	}
	move := moves[a.rng.Intn(len(moves))]
	return move, metrics.SearchMetric{Goroutines: 1, Duration: time.Since(start), Candidates: len(moves)}, nil
}
