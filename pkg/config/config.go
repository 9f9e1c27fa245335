package config

import "time"

// Config is the root configuration for Praetor. It is loaded from a
// YAML file, overlaid with defaults and environment variables, then
// validated before use.
type Config struct {
	// Sources configures where statute files are loaded from.
	Sources SourcesConfig `yaml:"sources"`

	// Store configures the compiled statute store.
	Store StoreConfig `yaml:"store"`

	// Archive configures the statute history archive.
	Archive ArchiveConfig `yaml:"archive"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`

	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`
}

// SourcesConfig configures statute source loading and watching.
type SourcesConfig struct {
	// Paths lists files or directories to load statutes from.
	Paths []string `yaml:"paths"`

	// Extensions lists the file extensions recognized as statute
	// sources. Defaults to .sdl and .statute.
	Extensions []string `yaml:"extensions"`

	// MaxFileSize is the largest statute file the loader will read,
	// in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`

	// Watch enables filesystem watching with automatic reload.
	Watch bool `yaml:"watch"`

	// DebounceInterval is how long the watcher waits after the last
	// filesystem event before reloading.
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// StoreConfig configures the statute store backend.
type StoreConfig struct {
	// Backend selects the store implementation: "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// Path is the SQLite database file path. Ignored for the memory
	// backend.
	Path string `yaml:"path"`

	// BusyTimeout is the SQLite busy timeout.
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// ArchiveConfig configures the statute history archive.
type ArchiveConfig struct {
	// Enabled turns history recording on or off.
	Enabled bool `yaml:"enabled"`

	// Backend selects the archive implementation: "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// Path is the SQLite database file path for the archive.
	Path string `yaml:"path"`

	// Actor is recorded as the originator of automated history events.
	Actor string `yaml:"actor"`

	// RetentionDays is how long history records are kept. Zero
	// disables pruning.
	RetentionDays int `yaml:"retention_days"`

	// PruneSchedule is a cron expression for scheduled pruning.
	// Empty disables the scheduler.
	PruneSchedule string `yaml:"prune_schedule"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	// Enabled turns metrics collection on or off.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address the metrics HTTP server binds to.
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path the exposition endpoint is mounted at.
	Path string `yaml:"path"`

	// Namespace is the Prometheus metric namespace.
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	Subsystem string `yaml:"subsystem"`

	// ParseDurationBuckets overrides the parse duration histogram
	// buckets, in seconds.
	ParseDurationBuckets []float64 `yaml:"parse_duration_buckets"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `yaml:"level"`

	// Format is the log output format: "text" or "json".
	Format string `yaml:"format"`
}
