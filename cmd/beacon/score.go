package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaiveerRaikhy/beacs/internal/logger"
	"github.com/JaiveerRaikhy/beacs/internal/observability"
	"github.com/JaiveerRaikhy/beacs/internal/types"
)

var (
	scoreConfigPath  string
	scoreProfiles    string
	scoreDatabaseURL string
	scoreAPIKey      string
	scoreMentorID    string
	scoreMenteeID    string
	scoreWithGoals   bool
	scoreJSONOut     bool
	scoreVerbose     bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single mentor-mentee pair",
	Long:  `Run eligibility and bilateral scoring for one pair, optionally including the goal alignment factor.`,
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	scoreCmd.Flags().StringVar(&scoreProfiles, "profiles", "", "Path to profile snapshot JSON")
	scoreCmd.Flags().StringVar(&scoreDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	scoreCmd.Flags().StringVar(&scoreAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	scoreCmd.Flags().StringVarP(&scoreMentorID, "mentor", "m", "", "Mentor profile ID (required)")
	scoreCmd.Flags().StringVarP(&scoreMenteeID, "mentee", "e", "", "Mentee profile ID (required)")
	scoreCmd.Flags().BoolVar(&scoreWithGoals, "with-goals", false, "Include the goal alignment factor")
	scoreCmd.Flags().BoolVar(&scoreJSONOut, "json", false, "Print the score as JSON instead of formatted output")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Enable debug logging")
	_ = scoreCmd.MarkFlagRequired("mentor")
	_ = scoreCmd.MarkFlagRequired("mentee")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(scoreConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("profiles") {
		cfg.ProfilesPath = scoreProfiles
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = scoreDatabaseURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = scoreAPIKey
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = envOr("DATABASE_URL", "")
	}

	log, err := logger.New(false, scoreVerbose || cfg.Verbose)
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

	var score types.PairScore
	if scoreWithGoals {
		score, err = generator.ScorePairWithGoals(ctx, scoreMentorID, scoreMenteeID)
	} else {
		score, err = generator.ScorePair(ctx, scoreMentorID, scoreMenteeID)
	}
	if err != nil {
		return err
	}

	if scoreJSONOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(score)
	}

	observability.NewPrinter(os.Stdout).PrintPairScore(scoreMentorID, scoreMenteeID, score)
	return nil
}
