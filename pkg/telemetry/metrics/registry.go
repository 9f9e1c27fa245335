package metrics

import (
	"veritas-hq/praetor/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RegistryMetrics tracks the state of the statute registry and its
// filesystem watcher.
//
// Metrics:
//   - praetor_registry_statutes: Current number of registered statutes
//   - praetor_registry_reloads_total: Registry reloads by outcome
//   - praetor_registry_load_duration_seconds: Duration of registry reloads
type RegistryMetrics struct {
	// Current number of registered statutes
	statutes prometheus.Gauge

	// Registry reloads by outcome ("success", "error")
	reloadsTotal *prometheus.CounterVec

	// Reload duration histogram
	loadDuration prometheus.Histogram
}

// NewRegistryMetrics creates and registers registry metrics with the provided registry.
func NewRegistryMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RegistryMetrics {
	rm := &RegistryMetrics{
		statutes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "registry_statutes",
				Help:      "Current number of registered statutes",
			},
		),

		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "registry_reloads_total",
				Help:      "Total number of registry reloads",
			},
			[]string{"outcome"},
		),

		loadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "registry_load_duration_seconds",
				Help:      "Duration of registry reloads in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to 4s
			},
		),
	}

	registry.MustRegister(
		rm.statutes,
		rm.reloadsTotal,
		rm.loadDuration,
	)

	return rm
}

// SetStatuteCount sets the current number of registered statutes.
func (rm *RegistryMetrics) SetStatuteCount(n int) {
	rm.statutes.Set(float64(n))
}

// RecordReload records a registry reload attempt.
func (rm *RegistryMetrics) RecordReload(outcome string, seconds float64) {
	rm.reloadsTotal.WithLabelValues(outcome).Inc()
	rm.loadDuration.Observe(seconds)
}
