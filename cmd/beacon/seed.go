package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JaiveerRaikhy/beacs/internal/logger"
	"github.com/JaiveerRaikhy/beacs/internal/store"
)

var (
	seedConfigPath  string
	seedProfiles    string
	seedDatabaseURL string
	seedVerbose     bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a profile snapshot into the database",
	Long:  `Read a profile snapshot JSON file and upsert every mentor and mentee into PostgreSQL.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	seedCmd.Flags().StringVar(&seedProfiles, "profiles", "", "Path to profile snapshot JSON (required)")
	seedCmd.Flags().StringVar(&seedDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	seedCmd.Flags().BoolVarP(&seedVerbose, "verbose", "v", false, "Enable debug logging")
	_ = seedCmd.MarkFlagRequired("profiles")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(seedConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("profiles") {
		cfg.ProfilesPath = seedProfiles
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = seedDatabaseURL
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = envOr("DATABASE_URL", "")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("a database URL is required (--db-url or DATABASE_URL)")
	}

	log, err := logger.New(false, seedVerbose || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	snapshot := store.NewMemory()
	if err := snapshot.LoadSnapshot(cfg.ProfilesPath); err != nil {
		return err
	}

	pg, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pg.Close()
	if err := pg.EnsureSchema(ctx); err != nil {
		return err
	}

	mentors, err := snapshot.ListMentors(ctx)
	if err != nil {
		return err
	}
	for i := range mentors {
		if err := pg.SaveMentor(ctx, &mentors[i]); err != nil {
			return fmt.Errorf("failed to save mentor %s: %w", mentors[i].ID, err)
		}
	}

	mentees, err := snapshot.ListMentees(ctx)
	if err != nil {
		return err
	}
	for i := range mentees {
		if err := pg.SaveMentee(ctx, &mentees[i]); err != nil {
			return fmt.Errorf("failed to save mentee %s: %w", mentees[i].ID, err)
		}
	}

	log.Info("snapshot seeded",
		zap.String("profiles", cfg.ProfilesPath),
		zap.Int("mentors", len(mentors)),
		zap.Int("mentees", len(mentees)),
	)
	return nil
}
