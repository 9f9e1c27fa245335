package config

import "time"

// Default values for configuration fields.
const (
	// Sources defaults
	DefaultMaxFileSize      = int64(10 * 1024 * 1024) // 10MB
	DefaultWatch            = false
	DefaultDebounceInterval = 100 * time.Millisecond

	// Store defaults
	DefaultStoreBackend     = "memory"
	DefaultStorePath        = "data/statutes.db"
	DefaultStoreBusyTimeout = 5 * time.Second

	// Archive defaults
	DefaultArchiveEnabled       = true
	DefaultArchiveBackend       = "sqlite"
	DefaultArchivePath          = "data/history.db"
	DefaultArchiveActor         = "praetor"
	DefaultArchiveRetentionDays = 365
	DefaultArchivePruneSchedule = "0 3 * * *"

	// Metrics defaults
	DefaultMetricsEnabled       = false
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsPath          = "/metrics"
	DefaultMetricsNamespace     = "praetor"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// DefaultExtensions returns the default statute file extensions.
func DefaultExtensions() []string {
	return []string{".sdl", ".statute"}
}

// ApplyDefaults fills in default values for fields that are unset.
// Explicitly configured values are never overwritten.
func ApplyDefaults(cfg *Config) {
	if len(cfg.Sources.Extensions) == 0 {
		cfg.Sources.Extensions = DefaultExtensions()
	}
	if cfg.Sources.MaxFileSize == 0 {
		cfg.Sources.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Sources.DebounceInterval == 0 {
		cfg.Sources.DebounceInterval = DefaultDebounceInterval
	}

	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultStoreBackend
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultStorePath
	}
	if cfg.Store.BusyTimeout == 0 {
		cfg.Store.BusyTimeout = DefaultStoreBusyTimeout
	}

	if cfg.Archive.Backend == "" {
		cfg.Archive.Backend = DefaultArchiveBackend
	}
	if cfg.Archive.Path == "" {
		cfg.Archive.Path = DefaultArchivePath
	}
	if cfg.Archive.Actor == "" {
		cfg.Archive.Actor = DefaultArchiveActor
	}
	if cfg.Archive.RetentionDays == 0 {
		cfg.Archive.RetentionDays = DefaultArchiveRetentionDays
	}
	if cfg.Archive.PruneSchedule == "" {
		cfg.Archive.PruneSchedule = DefaultArchivePruneSchedule
	}

	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
}
