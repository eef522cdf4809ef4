package config

import (
	"filler/game"
	"filler/meta"
	"filler/searcher"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds the server settings read from the environment.
type Config struct {
	Port             string
	LogLevel         zerolog.Level
	LogPretty        bool
	SearchDepth      int
	SearchGoroutines int
	AIDelay          time.Duration
	Weights          game.Weights
}

// Load reads a .env file when one exists, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only. Unset variables keep their defaults, malformed
// ones are errors.
func FromEnv() (Config, error) {
	cfg := Config{ // Default values
		Port:             meta.PORT,
		LogLevel:         zerolog.InfoLevel,
		SearchDepth:      meta.SEARCH_DEPTH,
		SearchGoroutines: meta.SEARCH_GOROUTINES,
		AIDelay:          meta.AI_DELAY,
		Weights:          game.DefaultWeights(),
	}

	var err error
	cfg.Port = getEnv("PORT", cfg.Port)
	if cfg.LogLevel, err = zerolog.ParseLevel(getEnv("LOG_LEVEL", cfg.LogLevel.String())); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if cfg.LogPretty, err = parse("LOG_PRETTY", cfg.LogPretty, strconv.ParseBool); err != nil {
		return Config{}, err
	}
	if cfg.SearchDepth, err = parse("SEARCH_DEPTH", cfg.SearchDepth, positive); err != nil {
		return Config{}, err
	}
	if cfg.SearchGoroutines, err = parse("SEARCH_GOROUTINES", cfg.SearchGoroutines, positive); err != nil {
		return Config{}, err
	}
	if cfg.AIDelay, err = parse("AI_DELAY", cfg.AIDelay, time.ParseDuration); err != nil {
		return Config{}, err
	}

	weights := []struct {
		key   string
		value *float64
	}{
		{"WEIGHT_AI_BLOB", &cfg.Weights.AIBlob},
		{"WEIGHT_PLAYER_BLOB", &cfg.Weights.PlayerBlob},
		{"WEIGHT_AI_MOBILITY", &cfg.Weights.AIMobility},
		{"WEIGHT_FRONTIER", &cfg.Weights.Frontier},
	}
	for _, w := range weights {
		if *w.value, err = parse(w.key, *w.value, parseFloat); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// SearchOptions configures a searcher.Minimax with these settings.
func (c Config) SearchOptions() []searcher.Option {
	return []searcher.Option{
		searcher.WithDepth(c.SearchDepth),
		searcher.WithGoroutines(c.SearchGoroutines),
		searcher.WithEvaluationFn(c.Weights.Evaluate),
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parse[T any](key string, def T, parseFn func(string) (T, error)) (T, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	parsed, err := parseFn(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return parsed, nil
}

func positive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("must be at least 1, got %d", n)
	}
	return n, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
