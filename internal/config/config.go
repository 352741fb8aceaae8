// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Run shape
	Variant string `json:"variant,omitempty" validate:"omitempty,oneof=neutral ruthless"`
	Phases  []int  `json:"phases,omitempty" validate:"omitempty,dive,gte=1,lte=9"`
	Judges  int    `json:"judges,omitempty" validate:"omitempty,gte=1,lte=5"`
	Seed    int64  `json:"seed,omitempty"`

	// Credentials and persistence
	APIKey        string `json:"api_key,omitempty"`        // Gemini API key
	Store         string `json:"store,omitempty"`          // results DSN: postgres:// URL or SQLite file path
	CheckpointDir string `json:"checkpoint_dir,omitempty"` // where run checkpoints live
	TranscriptDir string `json:"transcript_dir,omitempty"` // where phase transcripts are recorded
	DashboardPath string `json:"dashboard_path,omitempty"` // dashboard JSON export path

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed progress information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Anything without a scheme is treated as a SQLite file path.
	if c.Store != "" && strings.Contains(c.Store, "://") &&
		!strings.HasPrefix(c.Store, "postgres://") &&
		!strings.HasPrefix(c.Store, "postgresql://") {
		return fmt.Errorf("config error: unsupported store scheme in %q (use postgres://, postgresql://, or a SQLite file path)", c.Store)
	}

	return nil
}

// ApplyEnv fills credentials and connection fields from the environment
// when the config leaves them empty.
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Store == "" {
		c.Store = os.Getenv("PROMOTIONBENCH_STORE")
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Variant == "" {
		result.Variant = defaults.Variant
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.CheckpointDir == "" {
		result.CheckpointDir = defaults.CheckpointDir
	}
	if result.TranscriptDir == "" {
		result.TranscriptDir = defaults.TranscriptDir
	}
	if result.DashboardPath == "" {
		result.DashboardPath = defaults.DashboardPath
	}

	// Int fields: use default if zero
	if result.Judges == 0 {
		result.Judges = defaults.Judges
	}
	if result.Seed == 0 {
		result.Seed = defaults.Seed
	}

	// Slice fields: use default if unset
	if len(result.Phases) == 0 {
		result.Phases = defaults.Phases
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
