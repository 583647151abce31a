package commands

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/contre95/presetcli/src/features/caching"
	"github.com/contre95/presetcli/src/features/config"
	"github.com/contre95/presetcli/src/features/logging"
	"github.com/contre95/presetcli/src/features/metrics"
	"github.com/contre95/presetcli/src/features/providers"
	"github.com/contre95/presetcli/src/features/synths"
	"github.com/contre95/presetcli/src/infra/database"
	"github.com/contre95/presetcli/src/infra/files"
	infraproviders "github.com/contre95/presetcli/src/infra/providers"
	"github.com/contre95/presetcli/src/preset"
)

const logFileName = "presetcli.log"

// app is the wired dependency graph shared by the commands.
type app struct {
	manager   *config.Manager
	cfg       config.Config
	logger    *slog.Logger
	logCloser io.Closer
	metrics   *metrics.Collector
	fetcher   *infraproviders.HTTPFetcher
	importers synths.Registry
	providers providers.Registry
	history   preset.History
}

type appOptions struct {
	configPath string
	debug      bool
	session    string
	// logToFile sends logs to the cache directory unless a log path is configured.
	// The browser owns the terminal while it runs.
	logToFile bool
}

func newApp(opts appOptions) (*app, error) {
	manager, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	manager = manager.WithSession(opts.session)
	cfg := manager.Get()

	logCfg := cfg.Logger
	if opts.logToFile && logCfg.Path == "" {
		logCfg.Path = filepath.Join(cfg.CachePath, logFileName)
	}
	logger, logCloser, err := logging.SetupLogger(logCfg, opts.debug)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	if err := manager.EnsureDirectories(); err != nil {
		logCloser.Close()
		return nil, err
	}

	a := &app{
		manager:   manager,
		cfg:       cfg,
		logger:    logger,
		logCloser: logCloser,
		metrics:   metrics.NewCollector(),
		fetcher:   infraproviders.NewHTTPFetcher(cfg.Providers.PresetShare.SessionID),
		importers: synths.Registry{},
	}

	if dir := cfg.Synths.Vital.PresetsDir; dir != "" {
		a.importers[preset.SynthVital] = files.NewVitalLibrary(dir)
	}
	if dir := cfg.Synths.Serum.PresetsDir; dir != "" {
		a.importers[preset.SynthSerum] = files.NewSerumLibrary(dir)
	}

	store := caching.NewStore(cfg.CachePath, preset.PresetShare, a.fetcher, a.metrics)
	a.providers = providers.Registry{
		preset.PresetShare: providers.NewClient(preset.PresetShare, store, a.importers),
	}

	if cfg.History.Enabled {
		history, err := database.NewSqliteHistory(cfg.History.Path)
		if err != nil {
			slog.Warn("Import history unavailable", "path", cfg.History.Path, "error", err)
		} else {
			a.history = history
		}
	}

	slog.Debug("Application wired", "cache", cfg.CachePath, "synths", len(a.importers), "history", a.history != nil)
	return a, nil
}

func (a *app) Close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			slog.Warn("Failed to close history database", "error", err)
		}
	}
	a.metrics.LogSummary(a.logger)
	a.logCloser.Close()
}
