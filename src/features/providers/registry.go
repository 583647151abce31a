package providers

import (
	"context"
	"fmt"
	"sort"

	"github.com/contre95/presetcli/src/preset"
)

// Registry maps each provider to its client. Built once at startup.
type Registry map[preset.Provider]*Client

// For returns the client of a provider.
func (r Registry) For(provider preset.Provider) (*Client, error) {
	client, ok := r[provider]
	if !ok {
		return nil, fmt.Errorf("provider %s is not configured", provider)
	}
	return client, nil
}

// All returns every client in provider order.
func (r Registry) All() []*Client {
	clients := make([]*Client, 0, len(r))
	for _, c := range r {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].provider < clients[j].provider })
	return clients
}

// ClearAll clears the cache of every provider, stopping at the first failure.
func (r Registry) ClearAll() error {
	for _, c := range r.All() {
		if err := c.ClearCache(); err != nil {
			return err
		}
	}
	return nil
}

// IsDownloaded dispatches to the result's provider. Unknown providers report false.
func (r Registry) IsDownloaded(result preset.SearchResult) bool {
	client, err := r.For(result.Provider)
	if err != nil {
		return false
	}
	return client.IsDownloaded(result)
}

// DownloadPreview dispatches to the result's provider.
func (r Registry) DownloadPreview(ctx context.Context, result preset.SearchResult) (string, error) {
	client, err := r.For(result.Provider)
	if err != nil {
		return "", err
	}
	return client.DownloadPreview(ctx, result)
}

// DownloadPreset dispatches to the result's provider.
func (r Registry) DownloadPreset(ctx context.Context, result preset.SearchResult) (string, error) {
	client, err := r.For(result.Provider)
	if err != nil {
		return "", err
	}
	return client.DownloadPreset(ctx, result)
}
