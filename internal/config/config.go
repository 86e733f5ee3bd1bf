// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is loaded from a JSON file. All fields are optional; missing
// values use defaults or must be provided via CLI flags.
type Config struct {
	// Data sources
	ProfilesPath string `json:"profiles,omitempty"`     // Path to profile snapshot JSON
	DatabaseURL  string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Server
	ListenAddr string `json:"listen_addr,omitempty"` // HTTP listen address

	// Matching
	FeedSize          int     `json:"feed_size,omitempty"`           // Candidates per feed
	MinBilateralScore float64 `json:"min_bilateral_score,omitempty"` // Feed bilateral floor
	GoalWeight        float64 `json:"goal_weight,omitempty"`         // Goal alignment factor weight
	MinMentorScore    float64 `json:"min_mentor_score,omitempty"`    // Threshold filter floors
	MinMenteeScore    float64 `json:"min_mentee_score,omitempty"`
	MinPairScore      float64 `json:"min_pair_score,omitempty"`
	Workers           int     `json:"workers,omitempty"` // Concurrent scoring bound

	// Behavior
	APIKey  string `json:"api_key,omitempty"` // Gemini API key
	Verbose bool   `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks numeric ranges and referenced file paths.
func (c *Config) Validate() error {
	if c.FeedSize < 0 {
		return fmt.Errorf("config error: 'feed_size' must be non-negative")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	for name, v := range map[string]float64{
		"min_bilateral_score": c.MinBilateralScore,
		"min_mentor_score":    c.MinMentorScore,
		"min_mentee_score":    c.MinMenteeScore,
		"min_pair_score":      c.MinPairScore,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("config error: '%s' must be between 0 and 100", name)
		}
	}
	if c.GoalWeight < 0 {
		return fmt.Errorf("config error: 'goal_weight' must be non-negative")
	}

	if c.ProfilesPath != "" {
		if _, err := os.Stat(c.ProfilesPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: profiles file not found: %s", c.ProfilesPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled
// from defaults. This applies config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ProfilesPath == "" {
		result.ProfilesPath = defaults.ProfilesPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}

	if result.FeedSize == 0 {
		result.FeedSize = defaults.FeedSize
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	if result.MinBilateralScore == 0 {
		result.MinBilateralScore = defaults.MinBilateralScore
	}
	if result.GoalWeight == 0 {
		result.GoalWeight = defaults.GoalWeight
	}
	if result.MinMentorScore == 0 {
		result.MinMentorScore = defaults.MinMentorScore
	}
	if result.MinMenteeScore == 0 {
		result.MinMenteeScore = defaults.MinMenteeScore
	}
	if result.MinPairScore == 0 {
		result.MinPairScore = defaults.MinPairScore
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
