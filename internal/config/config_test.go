package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"variant": "ruthless",
		"phases": [1, 2, 3],
		"judges": 3,
		"store": "postgres://localhost/promotionbench",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "ruthless", cfg.Variant)
	assert.Equal(t, []int{1, 2, 3}, cfg.Phases)
	assert.Equal(t, 3, cfg.Judges)
	assert.Equal(t, "postgres://localhost/promotionbench", cfg.Store)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_UnknownVariant(t *testing.T) {
	cfg := &Config{
		Variant: "chaotic",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Variant")
}

func TestValidate_JudgesOutOfRange(t *testing.T) {
	cfg := &Config{
		Judges: 7,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Judges")
}

func TestValidate_PhaseOutOfRange(t *testing.T) {
	cfg := &Config{
		Phases: []int{1, 12},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Phases")
}

func TestValidate_UnsupportedStoreScheme(t *testing.T) {
	cfg := &Config{
		Store: "mysql://localhost/promotionbench",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store scheme")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		Variant: "neutral",
		Phases:  []int{1, 2, 3, 4, 5, 6, 7, 8, 9},
		Judges:  3,
		Store:   "results.db",
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("PROMOTIONBENCH_STORE", "postgres://env/db")

	cfg := &Config{}
	cfg.ApplyEnv()
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "postgres://env/db", cfg.Store)

	// Explicit values win over the environment.
	cfg = &Config{APIKey: "file-key", Store: "results.db"}
	cfg.ApplyEnv()
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "results.db", cfg.Store)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Variant:       "neutral",
		Judges:        3,
		CheckpointDir: "checkpoints",
		DashboardPath: "docs/data/results.json",
	}

	partial := Config{
		Variant: "ruthless",
		Store:   "results.db",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "ruthless", merged.Variant)
	assert.Equal(t, "results.db", merged.Store)

	// Default values should fill in empty fields
	assert.Equal(t, 3, merged.Judges)
	assert.Equal(t, "checkpoints", merged.CheckpointDir)
	assert.Equal(t, "docs/data/results.json", merged.DashboardPath)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Variant: "neutral",
		Judges:  2,
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "neutral", merged.Variant)
	assert.Equal(t, 2, merged.Judges)
}
