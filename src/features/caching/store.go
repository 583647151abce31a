package caching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/contre95/presetcli/src/features/metrics"
	"github.com/contre95/presetcli/src/preset"
)

// Kind is the artifact kind stored in the cache.
type Kind string

const (
	KindPreview Kind = "preview"
	KindPreset  Kind = "preset"
)

// StatusSuccess is the only status a fetch may return to be stored.
const StatusSuccess = http.StatusOK

// Fetcher retrieves a URL and returns the response status and full body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (int, []byte, error)
}

// Store is a filesystem-backed download cache for one provider. A file's presence at its
// deterministic path is the whole cache state; there is no index.
type Store struct {
	root    string
	fetcher Fetcher
	metrics *metrics.Collector
}

// NewStore creates a store rooted at <cacheRoot>/<provider name>.
func NewStore(cacheRoot string, provider preset.Provider, fetcher Fetcher, collector *metrics.Collector) *Store {
	return &Store{
		root:    filepath.Join(cacheRoot, provider.Name()),
		fetcher: fetcher,
		metrics: collector,
	}
}

// Root returns the provider's cache directory.
func (s *Store) Root() string {
	return s.root
}

// Dir returns the directory holding artifacts of the given kind.
func (s *Store) Dir(kind Kind) string {
	return filepath.Join(s.root, string(kind)+"s")
}

// Path returns the cache path for an artifact. ext may be empty.
func (s *Store) Path(kind Kind, id int, ext string) string {
	return filepath.Join(s.Dir(kind), strconv.Itoa(id)+ext)
}

// Has reports whether a cached file exists at path. It never touches the network.
func (s *Store) Has(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Fetch returns path when it already exists. Otherwise it downloads url and writes the
// full body to path, creating parent directories. On failure no file is left at path.
func (s *Store) Fetch(ctx context.Context, kind Kind, url, path string) (string, error) {
	if s.Has(path) {
		s.metrics.CacheHit(string(kind))
		slog.Debug("Cache hit", "kind", kind, "path", path)
		return path, nil
	}
	s.metrics.CacheMiss(string(kind))

	if url == "" {
		s.metrics.FetchFailed(string(kind))
		return "", &preset.FetchError{Err: preset.ErrMissingURL}
	}

	slog.Debug("Cache miss, fetching", "kind", kind, "url", url)
	status, body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.metrics.FetchFailed(string(kind))
		var fetchErr *preset.FetchError
		if errors.As(err, &fetchErr) {
			return "", err
		}
		return "", &preset.FetchError{URL: url, Err: err}
	}
	if status != StatusSuccess {
		s.metrics.FetchFailed(string(kind))
		return "", &preset.FetchError{URL: url, StatusCode: status}
	}

	if err := writeFile(path, body); err != nil {
		s.metrics.FetchFailed(string(kind))
		return "", &preset.FetchError{URL: url, Err: fmt.Errorf("failed to write %s to cache: %w", kind, err)}
	}
	slog.Info("Downloaded to cache", "kind", kind, "path", path, "bytes", len(body))
	return path, nil
}

// Clear removes the provider's whole cache tree. A missing tree is not an error.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("failed to clear cache %s: %w", s.root, err)
	}
	slog.Info("Cache cleared", "path", s.root)
	return nil
}

// writeFile writes data to a temporary sibling and renames it over path once complete.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".partial-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
