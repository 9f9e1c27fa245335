package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"veritas-hq/praetor/pkg/archive"
	"veritas-hq/praetor/pkg/cli"
	"veritas-hq/praetor/pkg/config"
	"veritas-hq/praetor/pkg/registry"
	"veritas-hq/praetor/pkg/store"
	"veritas-hq/praetor/pkg/telemetry/health"
	"veritas-hq/praetor/pkg/telemetry/logging"
	"veritas-hq/praetor/pkg/telemetry/metrics"
)

var runFlags struct {
	logLevel string
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the statute registry",
	Long: `Run the statute registry with the specified configuration.

The registry loads statute files from the configured sources, keeps the
statute store in sync, records lifecycle events to the history archive,
and optionally watches the sources for changes and exposes Prometheus
metrics.

Examples:
  # Run with default config
  praetor run

  # Run with custom config
  praetor run --config /etc/praetor/config.yaml

  # Validate config without starting
  praetor run --dry-run`,
	RunE: runRegistry,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting")
}

func runRegistry(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}
	if _, err := logging.Setup(cfg.Logging); err != nil {
		return cli.NewConfigError("logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}
	if len(cfg.Sources.Paths) == 0 {
		return cli.NewConfigError("sources.paths", "no statute sources configured")
	}

	ctx := cli.SetupSignalHandler()
	checker := health.New(0)
	collector := metrics.NewCollector(&cfg.Metrics, nil)

	// Statute store
	backend, err := newStoreBackend(&cfg.Store)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer backend.Close()
	checker.Register("store", func(ctx context.Context) error {
		_, err := backend.List(ctx, store.Filter{})
		return err
	})

	// History archive
	var recorder *archive.Recorder
	var pruneScheduler *archive.Scheduler
	if cfg.Archive.Enabled {
		storage, err := newArchiveStorage(&cfg.Archive)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		defer storage.Close()
		recorder = archive.NewRecorder(storage)
		checker.Register("archive", func(ctx context.Context) error {
			_, err := storage.Count(ctx)
			return err
		})

		pruner := archive.NewPruner(storage, archive.RetentionConfig{
			RetentionDays: cfg.Archive.RetentionDays,
			PruneSchedule: cfg.Archive.PruneSchedule,
			OnPrune:       collector.RecordArchivePrune,
		})
		pruneScheduler = archive.NewScheduler(pruner)
		if err := pruneScheduler.Start(ctx); err != nil {
			return cli.NewCommandError("run", err)
		}
		defer pruneScheduler.Stop()
	}

	// Metrics
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, collector.Handler())
		health.Mount(mux, checker, Version, GitCommit, BuildDate)
		metricsServer = &http.Server{
			Addr:         cfg.Metrics.ListenAddress,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
		go func() {
			slog.Info("metrics endpoint listening",
				"address", cfg.Metrics.ListenAddress,
				"path", cfg.Metrics.Path,
			)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("metrics server failed", "error", err)
			}
		}()
	}

	sync := newSyncer(ctx, cfg, backend, recorder, collector)

	// Initial load
	if err := sync.reload(); err != nil {
		return cli.NewCommandError("run", err)
	}

	if cfg.Sources.Watch {
		if err := watchSources(ctx, cfg, sync); err != nil {
			return cli.NewCommandError("run", err)
		}
	} else {
		<-ctx.Done()
	}

	slog.Info("shutting down")
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		metricsServer.Shutdown(shutdownCtx)
	}
	return nil
}

func newStoreBackend(cfg *config.StoreConfig) (store.Backend, error) {
	switch cfg.Backend {
	case "sqlite":
		return store.NewSQLiteBackendWithConfig(store.SQLiteConfig{
			DBPath:      cfg.Path,
			BusyTimeout: cfg.BusyTimeout,
		})
	default:
		return store.NewMemoryBackend(), nil
	}
}

func newArchiveStorage(cfg *config.ArchiveConfig) (archive.Storage, error) {
	switch cfg.Backend {
	case "sqlite":
		return archive.NewSQLiteStorage(cfg.Path)
	default:
		return archive.NewMemoryStorage(), nil
	}
}

// syncer reloads statute sources and keeps the store and archive in
// sync with the registry.
type syncer struct {
	ctx       context.Context
	cfg       *config.Config
	loader    *registry.Loader
	backend   store.Backend
	recorder  *archive.Recorder
	collector *metrics.Collector
	logger    *slog.Logger

	// Versions seen during the previous reload, keyed by statute ID.
	known map[string]int
}

func newSyncer(ctx context.Context, cfg *config.Config, backend store.Backend, recorder *archive.Recorder, collector *metrics.Collector) *syncer {
	loaderCfg := registry.DefaultLoaderConfig()
	loaderCfg.MaxFileSize = cfg.Sources.MaxFileSize
	loaderCfg.Extensions = cfg.Sources.Extensions
	loaderCfg.OnParse = collector.RecordParse

	return &syncer{
		ctx:       ctx,
		cfg:       cfg,
		loader:    registry.NewLoader(loaderCfg),
		backend:   backend,
		recorder:  recorder,
		collector: collector,
		logger:    slog.Default().With("component", "syncer"),
		known:     make(map[string]int),
	}
}

// reload parses all configured sources into a fresh registry and pushes
// the result to the store and archive.
func (s *syncer) reload() error {
	start := time.Now()

	reg := registry.New()
	for _, path := range s.cfg.Sources.Paths {
		result, err := s.loader.LoadPath(path)
		if err != nil {
			s.collector.RecordReload("error", time.Since(start))
			return err
		}
		for file, warnings := range result.Warnings {
			for _, w := range warnings {
				s.collector.RecordWarning(string(w.Kind))
				s.logger.Warn("parse warning",
					"file", file,
					"location", w.Location.String(),
					"message", w.Message,
				)
			}
		}
		for file, doc := range result.Documents {
			if err := reg.RegisterDocument(doc, file); err != nil {
				s.collector.RecordReload("error", time.Since(start))
				return err
			}
		}
	}

	if err := s.syncStore(reg); err != nil {
		s.collector.RecordReload("error", time.Since(start))
		return err
	}

	s.collector.RecordReload("success", time.Since(start))
	s.collector.SetStatuteCount(reg.Len())

	s.logger.Info("registry loaded",
		"statutes", reg.Len(),
		"version", reg.Version(),
		"duration", time.Since(start),
	)

	for id, missing := range reg.MissingRequirements() {
		s.logger.Warn("statute has unsatisfied requirements",
			"statute_id", id,
			"missing", missing,
		)
	}
	return nil
}

// syncStore writes every registered statute to the store and records
// lifecycle events for new and amended statutes.
func (s *syncer) syncStore(reg *registry.Registry) error {
	seen := make(map[string]int)

	for _, statute := range reg.List() {
		record := store.NewRecord(statute)
		if err := s.backend.Save(s.ctx, record); err != nil {
			return fmt.Errorf("failed to store statute %s: %w", statute.ID, err)
		}
		seen[statute.ID] = statute.Version

		if s.recorder == nil {
			continue
		}
		var archiveErr error
		prev, existed := s.known[statute.ID]
		switch {
		case !existed:
			_, archiveErr = s.recorder.RecordRegistered(s.ctx, statute)
			s.collector.RecordArchiveEvent(string(archive.EventRegistered))
		case prev != statute.Version:
			_, archiveErr = s.recorder.RecordAmended(s.ctx, statute, s.cfg.Archive.Actor, "")
			s.collector.RecordArchiveEvent(string(archive.EventAmended))
		}
		if archiveErr != nil {
			return fmt.Errorf("failed to archive statute %s: %w", statute.ID, archiveErr)
		}
	}

	if s.recorder != nil {
		for _, id := range reg.Superseded() {
			statute, ok := reg.Get(id)
			if !ok {
				continue
			}
			if _, already := s.known[id]; !already {
				if _, err := s.recorder.RecordSuperseded(s.ctx, statute, s.cfg.Archive.Actor); err != nil {
					return fmt.Errorf("failed to archive statute %s: %w", id, err)
				}
				s.collector.RecordArchiveEvent(string(archive.EventSuperseded))
			}
		}
	}

	s.known = seen
	return nil
}

// watchSources blocks watching all configured paths until the context
// is canceled.
func watchSources(ctx context.Context, cfg *config.Config, sync *syncer) error {
	watcherCfg := registry.DefaultWatcherConfig(cfg.Sources.Paths[0])
	watcherCfg.DebounceInterval = cfg.Sources.DebounceInterval
	watcherCfg.Extensions = cfg.Sources.Extensions

	watcher, err := registry.NewWatcher(watcherCfg, slog.Default())
	if err != nil {
		return err
	}
	defer watcher.Stop()

	for _, path := range cfg.Sources.Paths[1:] {
		if err := watcher.Add(path); err != nil {
			return err
		}
	}

	return watcher.Watch(ctx, sync.reload)
}
