package metrics

import (
	"time"

	"veritas-hq/praetor/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ParseMetrics tracks metrics related to statute parsing.
//
// Metrics:
//   - praetor_parses_total: Total parse attempts by outcome
//   - praetor_parse_duration_seconds: Parse duration histogram
//   - praetor_parse_warnings_total: Warnings emitted during parsing by kind
//   - praetor_parse_statutes: Number of statutes in the last parsed document
type ParseMetrics struct {
	// Total parse attempts by outcome ("success", "error")
	parsesTotal *prometheus.CounterVec

	// Parse duration histogram
	parseDuration prometheus.Histogram

	// Warnings emitted during parsing, labeled by warning kind
	warningsTotal *prometheus.CounterVec

	// Statutes in the most recently parsed document
	statutes prometheus.Gauge
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		parsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parses_total",
				Help:      "Total number of parse attempts",
			},
			[]string{"outcome"},
		),

		parseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_duration_seconds",
				Help:      "Duration of statute document parsing in seconds",
				Buckets:   cfg.ParseDurationBuckets,
			},
		),

		warningsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_warnings_total",
				Help:      "Total number of parse warnings by kind",
			},
			[]string{"kind"},
		),

		statutes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_statutes",
				Help:      "Number of statutes in the most recently parsed document",
			},
		),
	}

	registry.MustRegister(
		pm.parsesTotal,
		pm.parseDuration,
		pm.warningsTotal,
		pm.statutes,
	)

	return pm
}

// RecordParse records a completed parse attempt.
func (pm *ParseMetrics) RecordParse(outcome string, duration time.Duration, statutes int) {
	pm.parsesTotal.WithLabelValues(outcome).Inc()
	pm.parseDuration.Observe(duration.Seconds())
	if outcome == "success" {
		pm.statutes.Set(float64(statutes))
	}
}

// RecordWarning records a single parse warning by kind.
func (pm *ParseMetrics) RecordWarning(kind string) {
	pm.warningsTotal.WithLabelValues(kind).Inc()
}
