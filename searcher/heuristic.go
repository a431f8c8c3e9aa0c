package searcher

import (
	"blokus/experiments/metrics"
	"blokus/game"
	"blokus/meta"
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Feature indices into Weights and Features.
const (
	Size = iota
	CenterDistance
	CornerGain
	OpponentCornerBlock
	MobilityDelta
	NumFeatures
)

var featureNames = []string{"size", "center", "corner_gain", "corner_block", "mobility"}

// Weights are the heuristic coefficients, kept L1-normalized.
type Weights [NumFeatures]float64

// Features are the normalized feature values of one placement.
type Features [NumFeatures]float64

func (w Weights) String() string {
	s := "["
	for i, v := range w {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%.3f", featureNames[i], v)
	}
	return s + "]"
}

// Normalize scales the weights so their absolute values sum to one. Weights
// that are all zero or not finite become equal weights.
func (w Weights) Normalize() Weights {
	v := w[:]
	norm := floats.Norm(v, 1)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		for i := range w {
			w[i] = 1.0 / NumFeatures
		}
		return w
	}
	floats.Scale(1/norm, v)
	return w
}

// L1 returns the sum of absolute weights.
func (w Weights) L1() float64 {
	return floats.Norm(w[:], 1)
}

// Position is the state a candidate placement is scored against.
type Position struct {
	Board     *game.Board
	Inventory *game.Inventory
	Turn      int
	Moves     int // legal placements available before the candidate is played
}

type Option func(h *Heuristic)

func WithGoroutines(goroutines int) Option {
	return func(h *Heuristic) {
		if goroutines > 0 {
			h.goroutines = goroutines
		}
	}
}

// WithMobilityFrom enables the mobility feature from the given turn. A
// negative turn disables it.
func WithMobilityFrom(turn int) Option {
	return func(h *Heuristic) {
		h.mobilityFrom = turn
	}
}

// WithCounter sets the generator used to count moves for mobility. It should
// apply the same pruning as the generator producing the candidates.
func WithCounter(counter *game.MoveGenerator) Option {
	return func(h *Heuristic) {
		if counter != nil {
			h.counter = counter
		}
	}
}

func WithMetrics() Option {
	return func(h *Heuristic) {
		h.metrics = metrics.NewCollector()
	}
}

// Heuristic ranks placements by a weighted sum of positional features.
type Heuristic struct {
	weights      Weights
	goroutines   int
	mobilityFrom int
	counter      *game.MoveGenerator
	metrics      metrics.Collector
}

func NewHeuristic(weights Weights, options ...Option) *Heuristic {
	h := &Heuristic{ // Default values
		weights:      weights.Normalize(),
		goroutines:   1,
		mobilityFrom: meta.MOBILITY_FROM_TURN,
		counter:      game.NewMoveGenerator(nil, game.WithCornerAnchors()),
		metrics:      metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(h)
	}
	return h
}

func (h *Heuristic) Weights() Weights {
	return h.weights
}

// Features computes every feature of p. The board is speculatively mutated
// and always restored.
func (h *Heuristic) Features(pos Position, p game.Placement) Features {
	var f Features
	b := pos.Board
	f[Size] = float64(p.Piece.Size()) / meta.SIZE_DIVISOR
	f[CenterDistance] = centerDistance(b, p)

	var before [meta.NUM_PLAYERS]int
	for _, c := range game.Colors() {
		before[c] = b.CornerCount(c)
	}
	mobility := h.mobility(pos)

	b.Speculate(func(b *game.Board) {
		h.metrics.AddSpeculation()
		b.Commit(p)

		gain := b.CornerCount(p.Color) - before[p.Color]
		f[CornerGain] = float64(max(0, gain)) / meta.CORNER_GAIN_DIVISOR

		blocked := 0
		for _, c := range game.Colors() {
			if c != p.Color {
				blocked += before[c] - b.CornerCount(c)
			}
		}
		f[OpponentCornerBlock] = float64(max(0, blocked)) / meta.CORNER_BLOCK_DIVISOR

		if mobility {
			inv := pos.Inventory.Clone()
			if err := inv.Consume(p.Piece.ID); err != nil {
				panic(fmt.Sprintf("scoring %s: %v", p, err))
			}
			after := h.counter.Count(inv, p.Color, b, pos.Turn)
			f[MobilityDelta] = meta.MOBILITY_SCALE * float64(after) / float64(pos.Moves)
		}
	})
	return f
}

// Score is the weighted sum of the placement's features.
func (h *Heuristic) Score(pos Position, p game.Placement) float64 {
	f := h.Features(pos, p)
	return floats.Dot(h.weights[:], f[:])
}

// FindMove scores every candidate and returns the best one. Candidates are
// scored in parallel, each worker on its own copy of the board; the choice is
// made in candidate order, so ties keep the earliest candidate.
func (h *Heuristic) FindMove(ctx context.Context, pos Position, moves []game.Placement) (game.Placement, metrics.SearchMetric, error) {
	if len(moves) == 0 {
		return game.Placement{}, metrics.SearchMetric{}, fmt.Errorf("no candidate placements")
	}
	pos.Moves = len(moves)
	h.metrics.Start(h.goroutines, h.mobility(pos))

	scores := make([]float64, len(moves))
	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(moves) + h.goroutines - 1) / h.goroutines
	for start := 0; start < len(moves); start += chunk {
		end := min(start+chunk, len(moves))
		g.Go(func() error {
			local := pos
			local.Board = pos.Board.Clone()
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				scores[i] = h.Score(local, moves[i])
				h.metrics.AddCandidate()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return game.Placement{}, h.metrics.Complete(), fmt.Errorf("failed to score candidates: %w", err)
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return moves[best], h.metrics.Complete(), nil
}

func (h *Heuristic) mobility(pos Position) bool {
	return h.mobilityFrom >= 0 && pos.Turn >= h.mobilityFrom && pos.Moves > 0
}

// centerDistance is one at the board centre and zero at a board corner,
// measured from the centroid of the placement's cells.
func centerDistance(b *game.Board, p game.Placement) float64 {
	solids := p.Piece.Solids[p.Rotation]
	var cx, cy float64
	for _, s := range solids {
		cx += float64(p.X+s.X) + 0.5
		cy += float64(p.Y+s.Y) + 0.5
	}
	cx /= float64(len(solids))
	cy /= float64(len(solids))
	mx, my := float64(b.Width)/2, float64(b.Height)/2
	return 1 - math.Hypot(cx-mx, cy-my)/math.Hypot(mx, my)
}
