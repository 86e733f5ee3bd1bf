package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"listen_addr": ":9090",
		"feed_size": 10,
		"min_bilateral_score": 55.5,
		"goal_weight": 3,
		"workers": 8,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 10, cfg.FeedSize)
	assert.InDelta(t, 55.5, cfg.MinBilateralScore, 1e-9)
	assert.InDelta(t, 3.0, cfg.GoalWeight, 1e-9)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		_, err := LoadConfig("")
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "{not json"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero value", Config{}, false},
		{"valid", Config{FeedSize: 5, MinBilateralScore: 50, Workers: 4}, false},
		{"negative feed size", Config{FeedSize: -1}, true},
		{"negative workers", Config{Workers: -2}, true},
		{"score over 100", Config{MinMentorScore: 120}, true},
		{"negative goal weight", Config{GoalWeight: -1}, true},
		{"missing profiles file", Config{ProfilesPath: "/nonexistent/profiles.json"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		ListenAddr:        ":8080",
		FeedSize:          5,
		MinBilateralScore: 50,
		GoalWeight:        5,
		Workers:           4,
		APIKey:            "default-key",
	}

	t.Run("empty config takes all defaults", func(t *testing.T) {
		got := (&Config{}).MergeWithDefaults(defaults)
		assert.Equal(t, defaults, got)
	})

	t.Run("set fields win", func(t *testing.T) {
		cfg := Config{ListenAddr: ":9000", FeedSize: 20, APIKey: "mine"}
		got := cfg.MergeWithDefaults(defaults)
		assert.Equal(t, ":9000", got.ListenAddr)
		assert.Equal(t, 20, got.FeedSize)
		assert.Equal(t, "mine", got.APIKey)
		assert.InDelta(t, 50.0, got.MinBilateralScore, 1e-9)
		assert.Equal(t, 4, got.Workers)
	})
}
