package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns
// any errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment variable overrides. Environment variables follow
// the naming convention PRAETOR_SECTION_FIELD
// (e.g. PRAETOR_STORE_BACKEND) and always take precedence over
// file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables use the format PRAETOR_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Sources overrides
	if val := os.Getenv("PRAETOR_SOURCES_PATHS"); val != "" {
		cfg.Sources.Paths = splitList(val)
	}
	if val := os.Getenv("PRAETOR_SOURCES_EXTENSIONS"); val != "" {
		cfg.Sources.Extensions = splitList(val)
	}
	if val := os.Getenv("PRAETOR_SOURCES_MAX_FILE_SIZE"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Sources.MaxFileSize = i
		}
	}
	if val := os.Getenv("PRAETOR_SOURCES_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Sources.Watch = b
		}
	}
	if val := os.Getenv("PRAETOR_SOURCES_DEBOUNCE_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Sources.DebounceInterval = d
		}
	}

	// Store overrides
	if val := os.Getenv("PRAETOR_STORE_BACKEND"); val != "" {
		cfg.Store.Backend = val
	}
	if val := os.Getenv("PRAETOR_STORE_PATH"); val != "" {
		cfg.Store.Path = val
	}
	if val := os.Getenv("PRAETOR_STORE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Store.BusyTimeout = d
		}
	}

	// Archive overrides
	if val := os.Getenv("PRAETOR_ARCHIVE_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Archive.Enabled = b
		}
	}
	if val := os.Getenv("PRAETOR_ARCHIVE_BACKEND"); val != "" {
		cfg.Archive.Backend = val
	}
	if val := os.Getenv("PRAETOR_ARCHIVE_PATH"); val != "" {
		cfg.Archive.Path = val
	}
	if val := os.Getenv("PRAETOR_ARCHIVE_ACTOR"); val != "" {
		cfg.Archive.Actor = val
	}
	if val := os.Getenv("PRAETOR_ARCHIVE_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Archive.RetentionDays = i
		}
	}
	if val := os.Getenv("PRAETOR_ARCHIVE_PRUNE_SCHEDULE"); val != "" {
		cfg.Archive.PruneSchedule = val
	}

	// Metrics overrides
	if val := os.Getenv("PRAETOR_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("PRAETOR_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Metrics.ListenAddress = val
	}
	if val := os.Getenv("PRAETOR_METRICS_PATH"); val != "" {
		cfg.Metrics.Path = val
	}

	// Logging overrides
	if val := os.Getenv("PRAETOR_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("PRAETOR_LOG_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}

// splitList splits a comma-separated environment value into a slice,
// trimming whitespace and dropping empty entries.
func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
