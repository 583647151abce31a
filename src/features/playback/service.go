package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/contre95/presetcli/src/preset"
)

// ErrClosed is returned by Preview after Close.
var ErrClosed = errors.New("playback closed")

// PreviewSource resolves a result's preview sample to a local file.
type PreviewSource interface {
	DownloadPreview(ctx context.Context, result preset.SearchResult) (string, error)
}

// Service plays preset previews from the download cache.
type Service struct {
	source PreviewSource
	player preset.Player

	mu     sync.Mutex
	closed bool
}

// NewService creates a new playback service.
func NewService(source PreviewSource, player preset.Player) *Service {
	return &Service{
		source: source,
		player: player,
	}
}

// Preview stops the current sample, fetches the result's preview if needed and plays it.
// The returned channel is closed when the sample stops playing.
func (s *Service) Preview(ctx context.Context, result preset.SearchResult) (<-chan struct{}, error) {
	slog.Debug("Preview requested", "id", result.ID, "name", result.Name)
	if err := s.player.Stop(); err != nil {
		slog.Warn("Failed to stop previous preview", "error", err)
	}

	path, err := s.source.DownloadPreview(ctx, result)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	done, err := s.player.Play(path)
	if err != nil {
		return nil, fmt.Errorf("failed to play preview: %w", err)
	}
	slog.Info("Playing preview", "id", result.ID, "name", result.Name, "path", path)
	return done, nil
}

// Stop ends any playing preview.
func (s *Service) Stop() error {
	return s.player.Stop()
}

// Close stops playback for good; a preview still downloading will not start.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.player.Stop()
}
