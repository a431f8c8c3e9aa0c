package config

import (
	"blokus/meta"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds run settings loaded from BLOKUS_* environment variables.
type Config struct {
	Generations    int
	Seed           uint64
	Goroutines     int
	MobilityFrom   int
	PruneFrom      int
	PruneRadius    int
	CornerAnchors  bool
	MutateFraction float64
	Sigma          float64
	OutDir         string
	LogLevel       string
	Metrics        bool
}

// Load reads configuration from environment variables with defaults. A set
// but malformed variable is an error.
func Load() (*Config, error) {
	var err error
	c := &Config{
		OutDir:   envOrDefault("BLOKUS_OUT", ""),
		LogLevel: envOrDefault("BLOKUS_LOG_LEVEL", "info"),
	}
	if c.Generations, err = intEnv("BLOKUS_GENERATIONS", 10); err != nil {
		return nil, err
	}
	seed, err := intEnv("BLOKUS_SEED", int(time.Now().UnixNano()&0x7fffffff))
	if err != nil {
		return nil, err
	}
	c.Seed = uint64(seed)
	if c.Goroutines, err = intEnv("BLOKUS_GOROUTINES", 1); err != nil {
		return nil, err
	}
	if c.MobilityFrom, err = intEnv("BLOKUS_MOBILITY_FROM", meta.MOBILITY_FROM_TURN); err != nil {
		return nil, err
	}
	if c.PruneFrom, err = intEnv("BLOKUS_PRUNE_FROM", -1); err != nil {
		return nil, err
	}
	if c.PruneRadius, err = intEnv("BLOKUS_PRUNE_RADIUS", 3); err != nil {
		return nil, err
	}
	if c.CornerAnchors, err = boolEnv("BLOKUS_CORNER_ANCHORS", true); err != nil {
		return nil, err
	}
	if c.MutateFraction, err = floatEnv("BLOKUS_MUTATE_FRACTION", 0.5); err != nil {
		return nil, err
	}
	if c.Sigma, err = floatEnv("BLOKUS_SIGMA", 0.1); err != nil {
		return nil, err
	}
	if c.Metrics, err = boolEnv("BLOKUS_METRICS", false); err != nil {
		return nil, err
	}
	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
