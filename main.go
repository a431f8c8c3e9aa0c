package main

import (
	"blokus/config"
	"blokus/experiments"
	"blokus/experiments/metrics"
	"blokus/game"
	"blokus/logger"
	"blokus/searcher"
	"blokus/training"
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(os.Stderr, "info")
		log.Fatal().Err(err).Msg("failed to load config")
	}

	generations := flag.Int("generations", cfg.Generations, "Number of self-play generations")
	seed := flag.Uint64("seed", cfg.Seed, "Seed of every random draw")
	goroutines := flag.Int("goroutines", cfg.Goroutines, "Number of goroutines scoring candidates")
	mobilityFrom := flag.Int("mobility-from", cfg.MobilityFrom, "Turn from which mobility is scored, negative to disable")
	pruneFrom := flag.Int("prune-from", cfg.PruneFrom, "Turn from which distant anchors are pruned, negative to disable")
	pruneRadius := flag.Int("prune-radius", cfg.PruneRadius, "Cells around the claimed region kept by pruning")
	cornerAnchors := flag.Bool("corner-anchors", cfg.CornerAnchors, "Only scan anchors next to corner cells")
	fraction := flag.Float64("mutate-fraction", cfg.MutateFraction, "Share of agents derived from the winner")
	sigma := flag.Float64("sigma", cfg.Sigma, "Standard deviation of the mutation noise")
	out := flag.String("out", cfg.OutDir, "Directory for CSV run records, empty to skip")
	level := flag.String("log-level", cfg.LogLevel, "Log level")
	withMetrics := flag.Bool("metrics", cfg.Metrics, "Record per-move search metrics")
	experiment := flag.String("experiment", "", "Run an experiment instead of training: throughput")
	games := flag.Int("games", 3, "Games per experiment configuration")
	flag.Parse()

	logger.Init(os.Stderr, *level)
	game.StandardPieces()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *experiment {
	case "":
	case "throughput":
		runThroughput(ctx, *games, *seed, *mobilityFrom, *out)
		return
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}

	generatorOptions := []game.GeneratorOption{}
	if *pruneFrom >= 0 {
		generatorOptions = append(generatorOptions, game.WithPruning(*pruneFrom, *pruneRadius))
	}
	if *cornerAnchors {
		generatorOptions = append(generatorOptions, game.WithCornerAnchors())
	}
	heuristicOptions := []searcher.Option{
		searcher.WithGoroutines(*goroutines),
		searcher.WithMobilityFrom(*mobilityFrom),
		searcher.WithCounter(game.NewMoveGenerator(nil, generatorOptions...)),
	}
	trainerOptions := []training.Option{
		training.WithMutation(*fraction, *sigma),
		training.WithGenerator(generatorOptions...),
	}
	if *withMetrics {
		heuristicOptions = append(heuristicOptions, searcher.WithMetrics())
		trainerOptions = append(trainerOptions, training.WithMoveRecords())
	}
	trainerOptions = append(trainerOptions, training.WithHeuristicOptions(heuristicOptions...))

	log.Info().Msgf("training %d generations with seed %d", *generations, *seed)
	trainer := training.NewTrainer(rand.New(rand.NewSource(*seed)), trainerOptions...)
	records, err := trainer.Run(ctx, *generations)
	if err != nil {
		log.Error().Err(err).Msgf("stopped after %d generations", len(records))
	}

	if *out != "" {
		writeRecords(*out, trainer)
	}
	if len(records) > 0 {
		best := records[len(records)-1]
		log.Info().Msgf("last winner weights %s", searcher.Weights(best.WinnerWeights))
	}
}

func writeRecords(root string, trainer *training.Trainer) {
	writer, err := metrics.NewWriter(root)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create run directory")
	}
	if err := writer.WriteGenerations(trainer.GenerationRecords()); err != nil {
		log.Fatal().Err(err).Msg("failed to write generations")
	}
	if err := writer.WriteAgents(trainer.AgentRecords()); err != nil {
		log.Fatal().Err(err).Msg("failed to write agents")
	}
	if moves := trainer.MoveRecords(); len(moves) > 0 {
		if err := writer.WriteMoves(moves); err != nil {
			log.Fatal().Err(err).Msg("failed to write moves")
		}
	}
	log.Info().Msgf("run records written to %s", writer.Dir())
}

func runThroughput(ctx context.Context, games int, seed uint64, mobilityFrom int, out string) {
	configs := experiments.ThroughputConfigs([]int{1, 2, 4, 8, 16}, mobilityFrom)
	result, err := experiments.RunThroughput(ctx, configs, games, seed)
	if err != nil {
		log.Error().Err(err).Msgf("stopped after %d games", len(result.Games))
	}
	for _, config := range configs {
		log.Info().Msgf("%d goroutines: %.0f candidates/s", config.Goroutines, result.CandidatesPerSecond()[config.ID])
	}
	if out == "" {
		return
	}
	dir, err := result.Write(out)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to write experiment records")
	}
	log.Info().Msgf("experiment records written to %s", dir)
}
