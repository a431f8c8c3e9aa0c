package experiments

import (
	"blokus/engine"
	"blokus/experiments/metrics"
	"blokus/game"
	"blokus/meta"
	"blokus/searcher"
	"blokus/searcher/agent"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Fixed weights so every configuration plays games of similar length.
var throughputWeights = searcher.Weights{0.4, 0.1, 0.3, 0.1, 0.1}

type ThroughputResult struct {
	Configs []metrics.AgentConfig
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
}

// ThroughputConfigs returns one configuration per goroutine count.
func ThroughputConfigs(goroutines []int, mobilityFrom int) []metrics.AgentConfig {
	configs := make([]metrics.AgentConfig, 0, len(goroutines))
	for i, n := range goroutines {
		configs = append(configs, metrics.AgentConfig{ID: i + 1, Goroutines: n, MobilityFrom: mobilityFrom})
	}
	return configs
}

// RunThroughput plays the given number of self-play games per configuration.
// All four colors of a game share the configuration. Every configuration
// replays the same seeds.
func RunThroughput(ctx context.Context, configs []metrics.AgentConfig, games int, seed uint64) (*ThroughputResult, error) {
	result := &ThroughputResult{Configs: configs}
	count := 0

	log.Info().Msg("starting throughput experiment...")
	for _, config := range configs {
		log.Info().Msgf("starting config %+v...", config)
		for i := 0; i < games; i++ {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			gameMetric, moveMetrics, err := runGame(ctx, config, seed+uint64(i))
			if err != nil {
				return result, fmt.Errorf("config %d game %d: %w", config.ID, i, err)
			}
			count++
			result.Games = append(result.Games, metrics.GameRecord{
				ID:         count,
				Config:     config.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.Moves = append(result.Moves, metrics.MoveRecord{Game: count, MoveMetric: mm})
			}
			log.Info().Msgf("completed game %d of %d in %s with winner: %s", i+1, games, gameMetric.Duration, gameMetric.Winner)
		}
	}
	log.Info().Msg("completed throughput experiment")
	return result, nil
}

// CandidatesPerSecond sums scored candidates over search time per config.
func (r *ThroughputResult) CandidatesPerSecond() map[int]float64 {
	configOf := make(map[int]int, len(r.Games))
	for _, g := range r.Games {
		configOf[g.ID] = g.Config
	}
	candidates := make(map[int]int)
	seconds := make(map[int]float64)
	for _, m := range r.Moves {
		config := configOf[m.Game]
		candidates[config] += m.Candidates
		seconds[config] += m.Duration.Seconds()
	}
	rates := make(map[int]float64, len(candidates))
	for config, n := range candidates {
		if seconds[config] > 0 {
			rates[config] = float64(n) / seconds[config]
		}
	}
	return rates
}

// Write stores the configs, games and moves under a new run directory.
func (r *ThroughputResult) Write(root string) (string, error) {
	writer, err := metrics.NewWriter(root)
	if err != nil {
		return "", err
	}
	if err := writer.WriteAgentConfigs(r.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(r.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoves(r.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	return writer.Dir(), nil
}

func runGame(ctx context.Context, config metrics.AgentConfig, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	var agents [meta.NUM_PLAYERS]agent.Agent
	for i := range agents {
		agents[i] = agent.NewHeuristicAgent(createHeuristic(config))
	}
	generator := game.NewMoveGenerator(rand.New(rand.NewSource(seed)), game.WithCornerAnchors())
	return engine.New(generator, agents).Run(ctx)
}

func createHeuristic(config metrics.AgentConfig) *searcher.Heuristic {
	options := []searcher.Option{
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithMobilityFrom(config.MobilityFrom),
		searcher.WithMetrics(),
	}
	return searcher.NewHeuristic(throughputWeights, options...)
}
