package metrics

import (
	"veritas-hq/praetor/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ArchiveMetrics tracks the statute history archive.
//
// Metrics:
//   - praetor_archive_events_total: History events appended by event type
//   - praetor_archive_pruned_total: Records deleted by retention pruning
type ArchiveMetrics struct {
	eventsTotal *prometheus.CounterVec
	prunedTotal prometheus.Counter
}

// NewArchiveMetrics creates and registers archive metrics with the provided registry.
func NewArchiveMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ArchiveMetrics {
	am := &ArchiveMetrics{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "archive_events_total",
				Help:      "Total number of history events appended to the archive",
			},
			[]string{"event"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "archive_pruned_total",
				Help:      "Total number of history records deleted by retention pruning",
			},
		),
	}

	registry.MustRegister(am.eventsTotal, am.prunedTotal)
	return am
}

// RecordEvent records a history event by type ("registered", "amended", "superseded").
func (am *ArchiveMetrics) RecordEvent(event string) {
	am.eventsTotal.WithLabelValues(event).Inc()
}

// RecordPrune records records deleted by a retention prune run.
func (am *ArchiveMetrics) RecordPrune(deleted int) {
	am.prunedTotal.Add(float64(deleted))
}
