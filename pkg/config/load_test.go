package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
sources:
  paths:
    - statutes/
  watch: true
store:
  backend: sqlite
  path: /tmp/statutes.db
archive:
  enabled: true
  backend: memory
logging:
  level: debug
  format: json
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if len(cfg.Sources.Paths) != 1 || cfg.Sources.Paths[0] != "statutes/" {
		t.Errorf("Sources.Paths = %v, want [statutes/]", cfg.Sources.Paths)
	}
	if !cfg.Sources.Watch {
		t.Error("Sources.Watch = false, want true")
	}
	if cfg.Store.Backend != "sqlite" || cfg.Store.Path != "/tmp/statutes.db" {
		t.Errorf("Store = {%s %s}, want {sqlite /tmp/statutes.db}", cfg.Store.Backend, cfg.Store.Path)
	}
	if cfg.Archive.Backend != "memory" {
		t.Errorf("Archive.Backend = %q, want %q", cfg.Archive.Backend, "memory")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = {%s %s}, want {debug json}", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, "sources:\n  paths:\n    - statutes/\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Sources.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("MaxFileSize = %d, want %d", cfg.Sources.MaxFileSize, DefaultMaxFileSize)
	}
	if cfg.Sources.DebounceInterval != DefaultDebounceInterval {
		t.Errorf("DebounceInterval = %v, want %v", cfg.Sources.DebounceInterval, DefaultDebounceInterval)
	}
	if len(cfg.Sources.Extensions) != 2 {
		t.Errorf("Extensions = %v, want defaults", cfg.Sources.Extensions)
	}
	if cfg.Store.Backend != DefaultStoreBackend {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, DefaultStoreBackend)
	}
	if cfg.Archive.RetentionDays != DefaultArchiveRetentionDays {
		t.Errorf("Archive.RetentionDays = %d, want %d", cfg.Archive.RetentionDays, DefaultArchiveRetentionDays)
	}
	if cfg.Archive.PruneSchedule != DefaultArchivePruneSchedule {
		t.Errorf("Archive.PruneSchedule = %q, want %q", cfg.Archive.PruneSchedule, DefaultArchivePruneSchedule)
	}
	if cfg.Metrics.ListenAddress != DefaultMetricsListenAddress {
		t.Errorf("Metrics.ListenAddress = %q, want %q", cfg.Metrics.ListenAddress, DefaultMetricsListenAddress)
	}
	if cfg.Logging.Level != DefaultLogLevel || cfg.Logging.Format != DefaultLogFormat {
		t.Errorf("Logging = {%s %s}, want defaults", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("LoadConfig() error = nil, want read failure")
	}
	if !strings.Contains(err.Error(), "failed to read configuration file") {
		t.Errorf("error = %q, want read failure message", err)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "sources: [unclosed")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig() error = nil, want parse failure")
	}
	if !strings.Contains(err.Error(), "failed to parse configuration file") {
		t.Errorf("error = %q, want parse failure message", err)
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfigFile(t, "store:\n  backend: postgres\n")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig() error = nil, want validation failure")
	}
	if !strings.Contains(err.Error(), "store.backend") {
		t.Errorf("error = %q, want store.backend failure", err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, "store:\n  backend: memory\nlogging:\n  level: info\n")

	t.Setenv("PRAETOR_STORE_BACKEND", "sqlite")
	t.Setenv("PRAETOR_STORE_PATH", "/tmp/override.db")
	t.Setenv("PRAETOR_LOG_LEVEL", "debug")
	t.Setenv("PRAETOR_SOURCES_PATHS", "a/, b/")
	t.Setenv("PRAETOR_SOURCES_DEBOUNCE_INTERVAL", "250ms")
	t.Setenv("PRAETOR_ARCHIVE_RETENTION_DAYS", "30")
	t.Setenv("PRAETOR_METRICS_ENABLED", "true")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v", err)
	}

	if cfg.Store.Backend != "sqlite" {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, "sqlite")
	}
	if cfg.Store.Path != "/tmp/override.db" {
		t.Errorf("Store.Path = %q, want %q", cfg.Store.Path, "/tmp/override.db")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	wantPaths := []string{"a/", "b/"}
	if len(cfg.Sources.Paths) != 2 || cfg.Sources.Paths[0] != wantPaths[0] || cfg.Sources.Paths[1] != wantPaths[1] {
		t.Errorf("Sources.Paths = %v, want %v", cfg.Sources.Paths, wantPaths)
	}
	if cfg.Sources.DebounceInterval != 250*time.Millisecond {
		t.Errorf("DebounceInterval = %v, want 250ms", cfg.Sources.DebounceInterval)
	}
	if cfg.Archive.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, want 30", cfg.Archive.RetentionDays)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = false, want true")
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	path := writeConfigFile(t, "store:\n  backend: memory\n")

	t.Setenv("PRAETOR_STORE_BACKEND", "postgres")

	_, err := LoadConfigWithEnvOverrides(path)
	if err == nil {
		t.Fatal("LoadConfigWithEnvOverrides() error = nil, want validation failure")
	}
	if !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("error = %q, want post-override validation message", err)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a/ ,, b/ ,")
	if len(got) != 2 || got[0] != "a/" || got[1] != "b/" {
		t.Errorf("splitList() = %v, want [a/ b/]", got)
	}
}
