// Package config handles tool configuration stored in the user's
// .inspirecite directory.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the persisted configuration.
type Config struct {
	APIBaseURL   string `json:"api_base_url,omitempty"`  // Bibliographic service base URL override
	JournalTable string `json:"journal_table,omitempty"` // Path to a yaml journal abbreviation table
	YearMin      int    `json:"year_min,omitempty"`      // Publication-year range used by the recognizer
	YearMax      int    `json:"year_max,omitempty"`
	FuzzyDefault bool   `json:"fuzzy_default,omitempty"` // Enable fuzzy recognition by default
}

const (
	InspireciteDir = ".inspirecite"
	ConfigFile     = "config.json"
	CacheDBFile    = "cache.db"
)

// Dir returns the configuration directory. INSPIRECITE_DIR overrides the
// default under the user's home directory.
func Dir() string {
	if dir := os.Getenv("INSPIRECITE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return InspireciteDir
	}
	return filepath.Join(home, InspireciteDir)
}

// ConfigPath returns the path to config.json inside dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFile)
}

// CacheDBPath returns the path to the canonical-list cache inside dir.
func CacheDBPath(dir string) string {
	return filepath.Join(dir, CacheDBFile)
}

// Load reads configuration from dir. A missing file yields the zero config,
// not an error.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes configuration to dir, creating it if needed.
func (c *Config) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(dir), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ValidateJournalTable checks that the configured journal table file exists.
func ValidateJournalTable(path string) error {
	if path == "" {
		return nil // empty falls back to the built-in table
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("journal table does not exist: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("journal table is a directory: %s", path)
	}
	return nil
}

// ValidateYearRange checks the publication-year bounds.
func ValidateYearRange(min, max int) error {
	if min == 0 && max == 0 {
		return nil // defaults apply
	}
	if min < 1000 || max > 2999 || min >= max {
		return fmt.Errorf("invalid year range: %d-%d", min, max)
	}
	return nil
}
