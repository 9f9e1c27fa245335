package metrics

import (
	"testing"
	"time"

	"veritas-hq/praetor/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:              true,
		Namespace:            "test",
		Subsystem:            "metrics",
		ParseDurationBuckets: []float64{0.001, 0.01, 0.1, 1.0},
	}
}

// TestCollector_NewCollector tests collector creation
func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.config != cfg {
		t.Error("Collector config not set correctly")
	}
	if collector.registry != registry {
		t.Error("Collector registry not set correctly")
	}
	if collector.Registry() != registry {
		t.Error("Registry() did not return the provided registry")
	}
}

// TestCollector_NewCollector_NilRegistry tests that a fresh registry is created
func TestCollector_NewCollector_NilRegistry(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	if collector.Registry() == nil {
		t.Error("Expected a fresh registry, got nil")
	}
}

// TestCollector_NewCollector_Defaults tests namespace and bucket defaults
func TestCollector_NewCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	NewCollector(cfg, prometheus.NewRegistry())

	if cfg.Namespace != "praetor" {
		t.Errorf("Namespace = %q, want %q", cfg.Namespace, "praetor")
	}
	if len(cfg.ParseDurationBuckets) == 0 {
		t.Error("ParseDurationBuckets not defaulted")
	}
}

// TestCollector_RecordParse tests parse recording
func TestCollector_RecordParse(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	tests := []struct {
		name     string
		outcome  string
		duration time.Duration
		statutes int
	}{
		{
			name:     "successful parse",
			outcome:  "success",
			duration: 2 * time.Millisecond,
			statutes: 3,
		},
		{
			name:     "failed parse",
			outcome:  "error",
			duration: time.Millisecond,
			statutes: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector.RecordParse(tt.outcome, tt.duration, tt.statutes)

			count := testutil.ToFloat64(collector.parseMetrics.parsesTotal.WithLabelValues(tt.outcome))
			if count < 1 {
				t.Errorf("Expected parse counter >= 1, got %f", count)
			}
		})
	}

	// The statute gauge only tracks successful parses
	statutes := testutil.ToFloat64(collector.parseMetrics.statutes)
	if statutes != 3 {
		t.Errorf("Expected statutes gauge = 3, got %f", statutes)
	}
}

// TestCollector_RecordWarning tests warning recording by kind
func TestCollector_RecordWarning(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	collector.RecordWarning("deprecated_syntax")
	collector.RecordWarning("deprecated_syntax")
	collector.RecordWarning("duplicate_clause")

	deprecated := testutil.ToFloat64(collector.parseMetrics.warningsTotal.WithLabelValues("deprecated_syntax"))
	if deprecated != 2 {
		t.Errorf("Expected deprecated_syntax count = 2, got %f", deprecated)
	}
	duplicate := testutil.ToFloat64(collector.parseMetrics.warningsTotal.WithLabelValues("duplicate_clause"))
	if duplicate != 1 {
		t.Errorf("Expected duplicate_clause count = 1, got %f", duplicate)
	}
}

// TestCollector_RegistryMetrics tests registry metric recording
func TestCollector_RegistryMetrics(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	t.Run("set statute count", func(t *testing.T) {
		collector.SetStatuteCount(42)
		count := testutil.ToFloat64(collector.registryMetrics.statutes)
		if count != 42 {
			t.Errorf("Expected statutes gauge = 42, got %f", count)
		}
	})

	t.Run("record reload", func(t *testing.T) {
		collector.RecordReload("success", 50*time.Millisecond)
		count := testutil.ToFloat64(collector.registryMetrics.reloadsTotal.WithLabelValues("success"))
		if count < 1 {
			t.Errorf("Expected reload count >= 1, got %f", count)
		}
	})
}

// TestCollector_ArchiveMetrics tests archive metric recording
func TestCollector_ArchiveMetrics(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	t.Run("record event", func(t *testing.T) {
		collector.RecordArchiveEvent("registered")
		count := testutil.ToFloat64(collector.archiveMetrics.eventsTotal.WithLabelValues("registered"))
		if count < 1 {
			t.Errorf("Expected event count >= 1, got %f", count)
		}
	})

	t.Run("record prune", func(t *testing.T) {
		collector.RecordArchivePrune(7)
		pruned := testutil.ToFloat64(collector.archiveMetrics.prunedTotal)
		if pruned != 7 {
			t.Errorf("Expected pruned total = 7, got %f", pruned)
		}
	})
}

// TestCollector_Disabled tests that metrics are not recorded when disabled
func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	// These should not panic and not record
	collector.RecordParse("success", time.Millisecond, 3)
	collector.RecordWarning("deprecated_syntax")
	collector.SetStatuteCount(42)
	collector.RecordReload("success", time.Millisecond)
	collector.RecordArchiveEvent("registered")
	collector.RecordArchivePrune(7)

	count := testutil.ToFloat64(collector.parseMetrics.parsesTotal.WithLabelValues("success"))
	if count != 0 {
		t.Errorf("Expected parse counter = 0 when disabled, got %f", count)
	}
}

// TestCollector_ConcurrentRecording tests thread-safety
func TestCollector_ConcurrentRecording(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				collector.RecordParse("success", time.Millisecond, 1)
				collector.RecordWarning("deprecated_syntax")
				collector.SetStatuteCount(j)
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	count := testutil.ToFloat64(collector.parseMetrics.parsesTotal.WithLabelValues("success"))
	if count != 1000 {
		t.Errorf("Expected 1000 parses, got %f", count)
	}
}

// TestParseMetrics_RecordParse tests direct parse metric recording
func TestParseMetrics_RecordParse(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	pm := NewParseMetrics(cfg, registry)

	pm.RecordParse("error", time.Millisecond, 0)

	count := testutil.ToFloat64(pm.parsesTotal.WithLabelValues("error"))
	if count != 1 {
		t.Errorf("Expected error count = 1, got %f", count)
	}
	// Error parses must not touch the statute gauge
	statutes := testutil.ToFloat64(pm.statutes)
	if statutes != 0 {
		t.Errorf("Expected statutes gauge = 0, got %f", statutes)
	}
}
