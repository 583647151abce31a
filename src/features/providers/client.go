package providers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/contre95/presetcli/src/features/caching"
	"github.com/contre95/presetcli/src/features/synths"
	"github.com/contre95/presetcli/src/preset"
)

// Client gives the browser cached access to one provider's previews and presets.
type Client struct {
	provider  preset.Provider
	store     *caching.Store
	importers synths.Registry
}

// NewClient creates a provider client. The store carries the HTTP fetcher; the importers
// resolve the preset file format for each synth.
func NewClient(provider preset.Provider, store *caching.Store, importers synths.Registry) *Client {
	return &Client{
		provider:  provider,
		store:     store,
		importers: importers,
	}
}

// Provider returns the provider this client serves.
func (c *Client) Provider() preset.Provider {
	return c.provider
}

// PresetDir is the directory holding downloaded presets.
func (c *Client) PresetDir() string {
	return c.store.Dir(caching.KindPreset)
}

// PresetPath returns where a result's preset file is cached.
func (c *Client) PresetPath(result preset.SearchResult) (string, error) {
	importer, err := c.importers.For(result.Synth)
	if err != nil {
		return "", err
	}
	return c.store.Path(caching.KindPreset, result.ID, importer.Extension()), nil
}

// PreviewPath returns where a result's preview sample is cached.
func (c *Client) PreviewPath(result preset.SearchResult) string {
	return c.store.Path(caching.KindPreview, result.ID, "")
}

// IsDownloaded reports whether the result's preset file is already in the cache.
// It looks only at the cache, so clearing the cache resets it, and a preset that
// exists solely in a synth library reports false and is fetched again on install.
func (c *Client) IsDownloaded(result preset.SearchResult) bool {
	if !result.Downloadable() {
		return false
	}
	path, err := c.PresetPath(result)
	if err != nil {
		return false
	}
	return c.store.Has(path)
}

// DownloadPreview returns the local preview file, fetching it on first use.
func (c *Client) DownloadPreview(ctx context.Context, result preset.SearchResult) (string, error) {
	if !result.HasPreview() {
		return "", &preset.FetchError{Err: fmt.Errorf("result %d has no preview: %w", result.ID, preset.ErrMissingURL)}
	}
	return c.store.Fetch(ctx, caching.KindPreview, result.PreviewURL, c.PreviewPath(result))
}

// DownloadPreset returns the local preset file, fetching it on first use.
func (c *Client) DownloadPreset(ctx context.Context, result preset.SearchResult) (string, error) {
	if !result.Downloadable() {
		return "", &preset.FetchError{Err: fmt.Errorf("result %d has no download url: %w", result.ID, preset.ErrMissingURL)}
	}
	path, err := c.PresetPath(result)
	if err != nil {
		return "", err
	}
	return c.store.Fetch(ctx, caching.KindPreset, result.DownloadURL, path)
}

// ClearCache removes every cached artifact of this provider.
func (c *Client) ClearCache() error {
	slog.Debug("Clearing provider cache", "provider", c.provider)
	return c.store.Clear()
}
