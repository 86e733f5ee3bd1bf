package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaiveerRaikhy/beacs/internal/feed"
	"github.com/JaiveerRaikhy/beacs/internal/logger"
	"github.com/JaiveerRaikhy/beacs/internal/observability"
)

var (
	feedConfigPath   string
	feedProfiles     string
	feedDatabaseURL  string
	feedAPIKey       string
	feedMentorID     string
	feedSize         int
	feedMinBilateral float64
	feedExcluded     []string
	feedJSONOut      bool
	feedVerbose      bool
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Generate a ranked candidate feed for a mentor",
	Long:  `Score every candidate mentee against a mentor, with goal alignment, and print the ranked feed.`,
	RunE:  runFeed,
}

func init() {
	feedCmd.Flags().StringVar(&feedConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	feedCmd.Flags().StringVar(&feedProfiles, "profiles", "", "Path to profile snapshot JSON")
	feedCmd.Flags().StringVar(&feedDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	feedCmd.Flags().StringVar(&feedAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	feedCmd.Flags().StringVarP(&feedMentorID, "mentor", "m", "", "Mentor profile ID (required)")
	feedCmd.Flags().IntVar(&feedSize, "size", 0, "Feed size (default 5)")
	feedCmd.Flags().Float64Var(&feedMinBilateral, "min-bilateral", 0, "Bilateral score floor (default 50)")
	feedCmd.Flags().StringSliceVar(&feedExcluded, "exclude", nil, "Mentee IDs to exclude")
	feedCmd.Flags().BoolVar(&feedJSONOut, "json", false, "Print the feed as JSON instead of formatted output")
	feedCmd.Flags().BoolVarP(&feedVerbose, "verbose", "v", false, "Enable debug logging")
	_ = feedCmd.MarkFlagRequired("mentor")
	rootCmd.AddCommand(feedCmd)
}

func runFeed(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(feedConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("profiles") {
		cfg.ProfilesPath = feedProfiles
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = feedDatabaseURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = feedAPIKey
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = envOr("DATABASE_URL", "")
	}

	log, err := logger.New(false, feedVerbose || cfg.Verbose)
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

	size := cfg.FeedSize
	if cmd.Flags().Changed("size") {
		size = feedSize
	}
	minBilateral := cfg.MinBilateralScore
	if cmd.Flags().Changed("min-bilateral") {
		minBilateral = feedMinBilateral
	}

	items, err := generator.GenerateFeed(ctx, feedMentorID, feed.FeedOptions{
		Size:         size,
		MinBilateral: minBilateral,
		Excluded:     feedExcluded,
	})
	if err != nil {
		return err
	}

	if feedJSONOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	printer := observability.NewPrinter(os.Stdout)
	if mentor, err := st.GetMentor(ctx, feedMentorID); err == nil {
		printer.PrintMentor(mentor)
	}
	printer.PrintFeed(feedMentorID, items)
	return nil
}
