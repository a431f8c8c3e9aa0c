package training

import (
	"blokus/engine"
	"blokus/experiments/metrics"
	"blokus/game"
	"blokus/meta"
	"blokus/searcher"
	"blokus/searcher/agent"
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Phase is a state of the evolution loop.
type Phase int

const (
	InitializePhase Phase = iota
	PlayPhase
	ScorePhase
	SelectPhase
	MutatePhase
)

var phaseNames = []string{"INITIALIZE", "PLAY", "SCORE", "SELECT", "MUTATE"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

type Option func(t *Trainer)

// WithMutation sets the share of the next generation derived from the
// winner and the standard deviation of the noise added to it.
func WithMutation(fraction, sigma float64) Option {
	return func(t *Trainer) {
		if fraction >= 0 && fraction <= 1 {
			t.fraction = fraction
		}
		if sigma > 0 {
			t.sigma = sigma
		}
	}
}

// WithHeuristicOptions sets the options every agent's heuristic is built
// with.
func WithHeuristicOptions(options ...searcher.Option) Option {
	return func(t *Trainer) {
		t.heuristicOptions = options
	}
}

// WithGenerator sets the options of the move generator the games enumerate
// with.
func WithGenerator(options ...game.GeneratorOption) Option {
	return func(t *Trainer) {
		t.generatorOptions = options
	}
}

// WithMoveRecords keeps a record of every agent move.
func WithMoveRecords() Option {
	return func(t *Trainer) {
		t.keepMoves = true
	}
}

// Trainer evolves one weight vector per color through repeated self-play:
// every game's winner seeds part of the next generation.
type Trainer struct {
	rng      *rand.Rand
	fraction float64
	sigma    float64

	heuristicOptions []searcher.Option
	generatorOptions []game.GeneratorOption
	keepMoves        bool

	game       *engine.Game
	phase      Phase
	generation int
	weights    [meta.NUM_PLAYERS]searcher.Weights
	scores     [meta.NUM_PLAYERS]int
	winner     int
	gameMetric metrics.GameMetric

	generations []metrics.GenerationRecord
	agents      []metrics.AgentRecord
	moves       []metrics.MoveRecord
}

func NewTrainer(rng *rand.Rand, options ...Option) *Trainer {
	t := &Trainer{ // Default values
		rng:      rng,
		fraction: 0.5,
		sigma:    0.1,
		phase:    InitializePhase,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *Trainer) Phase() Phase {
	return t.phase
}

func (t *Trainer) Generation() int {
	return t.generation
}

func (t *Trainer) Weights() [meta.NUM_PLAYERS]searcher.Weights {
	return t.weights
}

func (t *Trainer) Scores() [meta.NUM_PLAYERS]int {
	return t.scores
}

func (t *Trainer) Winner() int {
	return t.winner
}

func (t *Trainer) GenerationRecords() []metrics.GenerationRecord {
	return t.generations
}

func (t *Trainer) AgentRecords() []metrics.AgentRecord {
	return t.agents
}

func (t *Trainer) MoveRecords() []metrics.MoveRecord {
	return t.moves
}

// Advance runs the current phase and moves to the next one.
func (t *Trainer) Advance(ctx context.Context) error {
	log.Debug().Msgf("generation %d: %s", t.generation, t.phase)
	switch t.phase {
	case InitializePhase:
		for i := range t.weights {
			t.weights[i] = RandomWeights(t.rng)
		}
		t.phase = PlayPhase
	case PlayPhase:
		if err := t.play(ctx); err != nil {
			return err
		}
		t.phase = ScorePhase
	case ScorePhase:
		t.scores = t.game.Scores()
		t.phase = SelectPhase
	case SelectPhase:
		t.winner = bestIndex(t.scores)
		t.record()
		t.phase = MutatePhase
	case MutatePhase:
		t.weights = t.nextGeneration()
		t.generation++
		t.phase = PlayPhase
	default:
		panic(fmt.Sprintf("unknown phase %d", t.phase))
	}
	return nil
}

// Run plays the given number of generations. The context is checked between
// games only.
func (t *Trainer) Run(ctx context.Context, generations int) ([]metrics.GenerationRecord, error) {
	target := t.generation + generations
	for t.generation < target {
		if t.phase == PlayPhase {
			if err := ctx.Err(); err != nil {
				return t.generations, err
			}
		}
		if err := t.Advance(ctx); err != nil {
			return t.generations, fmt.Errorf("generation %d: %w", t.generation, err)
		}
	}
	return t.generations, nil
}

func (t *Trainer) play(ctx context.Context) error {
	var agents [meta.NUM_PLAYERS]agent.Agent
	for i, w := range t.weights {
		agents[i] = agent.NewHeuristicAgent(searcher.NewHeuristic(w, t.heuristicOptions...))
	}
	if t.game == nil {
		t.game = engine.New(game.NewMoveGenerator(t.rng, t.generatorOptions...), agents)
	} else {
		t.game.Reset(agents)
	}

	gameMetric, moveMetrics, err := t.game.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to play game: %w", err)
	}
	t.gameMetric = gameMetric
	if t.keepMoves {
		for _, m := range moveMetrics {
			t.moves = append(t.moves, metrics.MoveRecord{Game: t.generation, MoveMetric: m})
		}
	}
	return nil
}

func (t *Trainer) record() {
	winner := t.weights[t.winner]
	t.generations = append(t.generations, metrics.GenerationRecord{
		Generation:    t.generation,
		Winner:        t.winner,
		WinnerScore:   t.scores[t.winner],
		WinnerWeights: winner,
		GameMetric:    t.gameMetric,
	})
	for i, w := range t.weights {
		t.agents = append(t.agents, metrics.AgentRecord{
			Generation: t.generation,
			Agent:      i,
			Color:      game.Color(i).String(),
			Weights:    w,
			Score:      t.scores[i],
		})
	}
	log.Info().Msgf("generation %d: %s wins with %d (scores %v, %d turns) weights %s",
		t.generation, game.Color(t.winner), t.scores[t.winner], t.scores, t.gameMetric.Turns, winner)
}

// nextGeneration derives the first round(N*fraction) agents from the winner
// and draws the rest afresh.
func (t *Trainer) nextGeneration() [meta.NUM_PLAYERS]searcher.Weights {
	var next [meta.NUM_PLAYERS]searcher.Weights
	mutated := int(math.Round(float64(len(next)) * t.fraction))
	winner := t.weights[t.winner]
	for i := range next {
		if i < mutated {
			next[i] = Mutate(winner, t.sigma, t.rng)
		} else {
			next[i] = RandomWeights(t.rng)
		}
	}
	return next
}

func bestIndex(scores [meta.NUM_PLAYERS]int) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}
