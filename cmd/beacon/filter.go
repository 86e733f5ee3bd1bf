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
	filterConfigPath  string
	filterProfiles    string
	filterDatabaseURL string
	filterMentorID    string
	filterMenteeIDs   []string
	filterMinMentor   float64
	filterMinMentee   float64
	filterMinPair     float64
	filterJSONOut     bool
	filterVerbose     bool
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter candidate mentees by score thresholds",
	Long:  `Score the given mentees against a mentor without goal alignment and keep only pairs clearing the mentor, mentee, and bilateral floors.`,
	RunE:  runFilter,
}

func init() {
	filterCmd.Flags().StringVar(&filterConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	filterCmd.Flags().StringVar(&filterProfiles, "profiles", "", "Path to profile snapshot JSON")
	filterCmd.Flags().StringVar(&filterDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	filterCmd.Flags().StringVarP(&filterMentorID, "mentor", "m", "", "Mentor profile ID (required)")
	filterCmd.Flags().StringSliceVar(&filterMenteeIDs, "mentees", nil, "Mentee IDs to consider (required)")
	filterCmd.Flags().Float64Var(&filterMinMentor, "min-mentor", 0, "Mentor-perspective floor (default 60)")
	filterCmd.Flags().Float64Var(&filterMinMentee, "min-mentee", 0, "Mentee-perspective floor (default 50)")
	filterCmd.Flags().Float64Var(&filterMinPair, "min-bilateral", 0, "Bilateral floor (default 55)")
	filterCmd.Flags().BoolVar(&filterJSONOut, "json", false, "Print candidates as JSON instead of formatted output")
	filterCmd.Flags().BoolVarP(&filterVerbose, "verbose", "v", false, "Enable debug logging")
	_ = filterCmd.MarkFlagRequired("mentor")
	_ = filterCmd.MarkFlagRequired("mentees")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(filterConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("profiles") {
		cfg.ProfilesPath = filterProfiles
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = filterDatabaseURL
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = envOr("DATABASE_URL", "")
	}

	log, err := logger.New(false, filterVerbose || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	generator := buildGenerator(st, nil, cfg, log)

	th := feed.Thresholds{
		MinMentor:    cfg.MinMentorScore,
		MinMentee:    cfg.MinMenteeScore,
		MinBilateral: cfg.MinPairScore,
	}
	if cmd.Flags().Changed("min-mentor") {
		th.MinMentor = filterMinMentor
	}
	if cmd.Flags().Changed("min-mentee") {
		th.MinMentee = filterMinMentee
	}
	if cmd.Flags().Changed("min-bilateral") {
		th.MinBilateral = filterMinPair
	}

	candidates, err := generator.FilterByThresholds(ctx, filterMentorID, filterMenteeIDs, th)
	if err != nil {
		return err
	}

	if filterJSONOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(candidates)
	}

	observability.NewPrinter(os.Stdout).PrintCandidates(filterMentorID, candidates)
	return nil
}
