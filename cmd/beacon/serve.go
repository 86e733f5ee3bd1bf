package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaiveerRaikhy/beacs/internal/logger"
	"github.com/JaiveerRaikhy/beacs/internal/server"
)

var (
	serveConfigPath  string
	serveAddr        string
	serveProfiles    string
	serveDatabaseURL string
	serveAPIKey      string
	serveFeedSize    int
	serveRateLimit   int
	serveJSONLogs    bool
	serveVerbose     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing the match feed and connection endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8080)")
	serveCmd.Flags().StringVar(&serveProfiles, "profiles", "", "Path to profile snapshot JSON (used when no database is configured)")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	serveCmd.Flags().IntVar(&serveFeedSize, "feed-size", 0, "Candidates per feed (default 20)")
	serveCmd.Flags().IntVar(&serveRateLimit, "rate-limit", 120, "Requests per minute per client (0 disables)")
	serveCmd.Flags().BoolVar(&serveJSONLogs, "json-logs", false, "Emit JSON-encoded logs")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.ListenAddr = serveAddr
	}
	if cmd.Flags().Changed("profiles") {
		cfg.ProfilesPath = serveProfiles
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = serveDatabaseURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = serveAPIKey
	}
	if cmd.Flags().Changed("feed-size") {
		cfg.FeedSize = serveFeedSize
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = envOr("DATABASE_URL", "")
	}

	log, err := logger.New(serveJSONLogs, serveVerbose || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	estimator, closeEstimator, err := buildEstimator(ctx, cfg.APIKey, log)
	if err != nil {
		return err
	}
	defer closeEstimator()

	generator := buildGenerator(st, estimator, cfg, log)

	srv, err := server.New(server.Config{
		Addr:         cfg.ListenAddr,
		FeedSize:     cfg.FeedSize,
		MinBilateral: cfg.MinBilateralScore,
		RateLimit:    serveRateLimit,
	}, st, generator, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
