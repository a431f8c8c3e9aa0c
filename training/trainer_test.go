package training

import (
	"blokus/meta"
	"blokus/searcher"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newTrainer(seed uint64, options ...Option) *Trainer {
	options = append([]Option{WithHeuristicOptions(searcher.WithMobilityFrom(-1))}, options...)
	return NewTrainer(rand.New(rand.NewSource(seed)), options...)
}

func requireNormalized(t *testing.T, weights [meta.NUM_PLAYERS]searcher.Weights) {
	t.Helper()
	for i, w := range weights {
		require.InDelta(t, 1.0, w.L1(), 1e-9, "Expected agent %d weights to be L1-normalized", i)
	}
}

func TestWeightOperators(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("random weights are normalized", func(t *testing.T) {
		seen := make(map[searcher.Weights]bool)
		for i := 0; i < 100; i++ {
			w := RandomWeights(rng)
			require.InDelta(t, 1.0, w.L1(), 1e-9)
			seen[w] = true
		}
		require.Len(t, seen, 100, "Expected fresh draws")
	})

	t.Run("mutation keeps the norm", func(t *testing.T) {
		parent := RandomWeights(rng)
		for i := 0; i < 100; i++ {
			child := Mutate(parent, 0.1, rng)
			require.InDelta(t, 1.0, child.L1(), 1e-9)
			require.NotEqual(t, parent, child)
		}
	})

	t.Run("small noise stays close to the parent", func(t *testing.T) {
		parent := searcher.Weights{0.4, -0.3, 0.1, 0.1, 0.1}
		child := Mutate(parent, 1e-9, rng)
		for i := range parent {
			require.InDelta(t, parent[i], child[i], 1e-6)
		}
	})

	t.Run("unnormalized parent", func(t *testing.T) {
		child := Mutate(searcher.Weights{4, 0, 0, 0, 0}, 1e-9, rng)
		require.InDelta(t, 1.0, child[searcher.Size], 1e-6)
	})

	t.Run("reproducible under a seed", func(t *testing.T) {
		a := RandomWeights(rand.New(rand.NewSource(5)))
		b := RandomWeights(rand.New(rand.NewSource(5)))
		require.Equal(t, a, b)
	})
}

func TestTrainerPhases(t *testing.T) {
	ctx := context.Background()
	tr := newTrainer(2, WithMutation(0.5, 1e-9))
	require.Equal(t, InitializePhase, tr.Phase())

	require.NoError(t, tr.Advance(ctx))
	require.Equal(t, PlayPhase, tr.Phase())
	requireNormalized(t, tr.Weights())

	require.NoError(t, tr.Advance(ctx))
	require.Equal(t, ScorePhase, tr.Phase())

	require.NoError(t, tr.Advance(ctx))
	require.Equal(t, SelectPhase, tr.Phase())
	scores := tr.Scores()
	total := 0
	for _, s := range scores {
		total += s
	}
	require.Greater(t, total, 0, "Expected a played game")

	require.NoError(t, tr.Advance(ctx))
	require.Equal(t, MutatePhase, tr.Phase())
	winner := tr.Winner()
	for i, s := range scores {
		require.LessOrEqual(t, s, scores[winner], "agent %d", i)
		if i < winner {
			require.Less(t, s, scores[winner], "Expected the first best agent to win")
		}
	}
	require.Len(t, tr.GenerationRecords(), 1)
	require.Len(t, tr.AgentRecords(), meta.NUM_PLAYERS)

	parent := tr.Weights()[winner]
	requireNormalized(t, tr.Weights())
	require.NoError(t, tr.Advance(ctx))
	require.Equal(t, PlayPhase, tr.Phase())
	require.Equal(t, 1, tr.Generation())
	requireNormalized(t, tr.Weights())

	next := tr.Weights()
	for i := 0; i < 2; i++ {
		for j := range parent {
			require.InDelta(t, parent[j], next[i][j], 1e-6, "Expected agent %d derived from the winner", i)
		}
	}
	require.NotEqual(t, parent, next[2], "Expected agent 2 drawn afresh")
	require.NotEqual(t, parent, next[3], "Expected agent 3 drawn afresh")
}

func TestTrainerRun(t *testing.T) {
	t.Run("generations", func(t *testing.T) {
		tr := newTrainer(3, WithMoveRecords())
		records, err := tr.Run(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, 0, records[0].Generation)
		require.Equal(t, 1, records[1].Generation)
		require.Equal(t, 2, tr.Generation())
		require.NotEmpty(t, tr.MoveRecords())
		for _, r := range records {
			require.InDelta(t, 1.0, searcher.Weights(r.WinnerWeights).L1(), 1e-9)
			require.Equal(t, r.Scores[r.Winner], r.WinnerScore)
		}
	})

	t.Run("reproducible under a seed", func(t *testing.T) {
		first, err := newTrainer(4).Run(context.Background(), 1)
		require.NoError(t, err)
		second, err := newTrainer(4).Run(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, first[0].WinnerWeights, second[0].WinnerWeights)
		require.Equal(t, first[0].Scores, second[0].Scores)
	})

	t.Run("cancelled between games", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		tr := newTrainer(5)
		records, err := tr.Run(ctx, 3)
		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, records)
		require.Equal(t, PlayPhase, tr.Phase())
	})
}
