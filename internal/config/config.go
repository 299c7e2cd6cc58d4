// =============================================================================
// Yard Ledger - Configuration
// =============================================================================
//
// Loads the application configuration from a YAML file, applies defaults for
// anything unset, and makes sure the working directories exist. A missing
// config file is not an error: the tool runs on defaults so a fresh checkout
// works without setup.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application settings.
type Config struct {
	// LedgerDir is the root directory of the daily partition files.
	// Default: "./ledger"
	LedgerDir string `yaml:"ledger_dir"`

	// WaybillDir is where generated waybill PDFs are written.
	// Default: "./waybills"
	WaybillDir string `yaml:"waybill_dir"`

	// LogLevel controls logging verbosity: trace, debug, info, warn, error.
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects "console" (human-readable) or "json" output.
	// Default: "console"
	LogFormat string `yaml:"log_format"`

	// Timezone is an IANA zone name used for timestamps and partition dates,
	// e.g. "America/Sao_Paulo". Empty means the host's local zone.
	Timezone string `yaml:"timezone"`
}

// Location resolves the configured timezone. An empty setting yields the
// host's local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads the configuration from path. A missing file yields the default
// configuration; a present but unparsable file is an error.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := ensureDirectories(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyDefaults fills in every unset option.
func applyDefaults(cfg *Config) {
	if cfg.LedgerDir == "" {
		cfg.LedgerDir = "./ledger"
	}
	if cfg.WaybillDir == "" {
		cfg.WaybillDir = "./waybills"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}
}

// ensureDirectories creates the working directories if they do not exist.
func ensureDirectories(cfg *Config) error {
	for _, dir := range []string{cfg.LedgerDir, cfg.WaybillDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
