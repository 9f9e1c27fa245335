package metrics

import (
	"time"

	"veritas-hq/praetor/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the orchestrator for all Prometheus metrics in Praetor.
// It manages metric registration and provides a unified interface for
// recording metrics across the parser, registry, and archive.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Parse metrics
	parseMetrics *ParseMetrics

	// Registry metrics
	registryMetrics *RegistryMetrics

	// Archive metrics
	archiveMetrics *ArchiveMetrics
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "praetor"
	}
	if len(cfg.ParseDurationBuckets) == 0 {
		// Parsing a statute file should take well under a second
		cfg.ParseDurationBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0}
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.parseMetrics = NewParseMetrics(cfg, registry)
	c.registryMetrics = NewRegistryMetrics(cfg, registry)
	c.archiveMetrics = NewArchiveMetrics(cfg, registry)

	return c
}

// RecordParse records metrics for a completed parse attempt.
//
// Parameters:
//   - outcome: "success" or "error"
//   - duration: Total parse duration
//   - statutes: Number of statutes in the parsed document (0 on error)
func (c *Collector) RecordParse(outcome string, duration time.Duration, statutes int) {
	if !c.config.Enabled {
		return
	}
	c.parseMetrics.RecordParse(outcome, duration, statutes)
}

// RecordWarning records a parse warning by kind.
func (c *Collector) RecordWarning(kind string) {
	if !c.config.Enabled {
		return
	}
	c.parseMetrics.RecordWarning(kind)
}

// SetStatuteCount sets the current number of registered statutes.
func (c *Collector) SetStatuteCount(n int) {
	if !c.config.Enabled {
		return
	}
	c.registryMetrics.SetStatuteCount(n)
}

// RecordReload records a registry reload attempt.
func (c *Collector) RecordReload(outcome string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.registryMetrics.RecordReload(outcome, duration.Seconds())
}

// RecordArchiveEvent records a history event appended to the archive.
func (c *Collector) RecordArchiveEvent(event string) {
	if !c.config.Enabled {
		return
	}
	c.archiveMetrics.RecordEvent(event)
}

// RecordArchivePrune records the result of a retention prune run.
func (c *Collector) RecordArchivePrune(deleted int) {
	if !c.config.Enabled {
		return
	}
	c.archiveMetrics.RecordPrune(deleted)
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
