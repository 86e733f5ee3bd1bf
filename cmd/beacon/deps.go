package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/JaiveerRaikhy/beacs/internal/config"
	"github.com/JaiveerRaikhy/beacs/internal/feed"
	"github.com/JaiveerRaikhy/beacs/internal/goals"
	"github.com/JaiveerRaikhy/beacs/internal/llm"
	"github.com/JaiveerRaikhy/beacs/internal/matching"
	"github.com/JaiveerRaikhy/beacs/internal/store"
)

// openStore picks the backing store: Postgres when a database URL is
// configured, otherwise an in-memory store loaded from the profile snapshot
// file. The returned cleanup releases held resources.
func openStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	if cfg.DatabaseURL != "" {
		pg, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}

	if cfg.ProfilesPath == "" {
		return nil, nil, fmt.Errorf("either a database URL or a profiles file is required (--db-url / --profiles)")
	}
	mem := store.NewMemory()
	if err := mem.LoadSnapshot(cfg.ProfilesPath); err != nil {
		return nil, nil, err
	}
	return mem, func() {}, nil
}

// buildEstimator wires the goal alignment chain. Without an API key every
// estimate falls back to the deterministic heuristic. The returned cleanup
// closes the LLM client.
func buildEstimator(ctx context.Context, apiKey string, logger *zap.Logger) (goals.Estimator, func(), error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		logger.Info("no API key configured, goal alignment uses the heuristic estimator")
		return goals.NewFallbackEstimator(nil, logger), func() {}, nil
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	remote := goals.NewRemoteEstimator(client)
	cleanup := func() { _ = client.Close() }
	return goals.NewFallbackEstimator(remote, logger), cleanup, nil
}

// buildGenerator assembles the feed generator from configuration.
func buildGenerator(st store.Store, estimator goals.Estimator, cfg config.Config, logger *zap.Logger) *feed.Generator {
	engine := matching.NewEngine(matching.Config{GoalWeight: cfg.GoalWeight})
	opts := []feed.Option{feed.WithLogger(logger)}
	if cfg.Workers > 0 {
		opts = append(opts, feed.WithWorkers(cfg.Workers))
	}
	return feed.NewGenerator(st, engine, estimator, opts...)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadConfig merges the optional config file with flag overrides applied by
// the caller afterward.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Config{}, nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}
