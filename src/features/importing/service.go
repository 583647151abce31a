package importing

import (
	"context"
	"errors"
	"log/slog"

	"github.com/contre95/presetcli/src/features/metrics"
	"github.com/contre95/presetcli/src/features/synths"
	"github.com/contre95/presetcli/src/preset"
)

// PresetSource resolves a result's preset file through the download cache.
type PresetSource interface {
	IsDownloaded(result preset.SearchResult) bool
	DownloadPreset(ctx context.Context, result preset.SearchResult) (string, error)
}

// Service downloads presets and installs them into synth libraries.
type Service struct {
	source    PresetSource
	importers synths.Registry
	history   preset.History
	metrics   *metrics.Collector
}

// NewService creates a new importing service. history and collector may be nil.
func NewService(source PresetSource, importers synths.Registry, history preset.History, collector *metrics.Collector) *Service {
	return &Service{
		source:    source,
		importers: importers,
		history:   history,
		metrics:   collector,
	}
}

// IsDownloaded reports whether the result's preset is already cached. No network access.
func (s *Service) IsDownloaded(result preset.SearchResult) bool {
	return s.source.IsDownloaded(result)
}

// Install downloads the result's preset if needed and copies it into the synth library,
// replacing any file at the target path. It returns the library path.
func (s *Service) Install(ctx context.Context, result preset.SearchResult) (string, error) {
	importer, err := s.importers.For(result.Synth)
	if err != nil {
		return "", &preset.ImportError{Err: err}
	}

	cached, err := s.source.DownloadPreset(ctx, result)
	if err != nil {
		return "", err
	}

	target, err := importer.Import(ctx, result, cached)
	if err != nil {
		var importErr *preset.ImportError
		if errors.As(err, &importErr) {
			return "", err
		}
		return "", &preset.ImportError{Path: importer.TargetPath(result), Err: err}
	}
	s.metrics.Imported(result.Synth.String())
	slog.Info("Preset imported", "id", result.ID, "name", result.Name, "synth", result.Synth, "path", target)

	if s.history != nil {
		if err := s.history.Record(ctx, preset.NewImportRecord(result, target)); err != nil {
			slog.Warn("Failed to record import history", "id", result.ID, "error", err)
		}
	}
	return target, nil
}

// History returns the most recent imports, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]preset.ImportRecord, error) {
	if s.history == nil {
		return nil, errors.New("import history is disabled")
	}
	return s.history.List(ctx, limit)
}
