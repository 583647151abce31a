package caching

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/contre95/presetcli/src/preset"
)

// fakeFetcher serves canned responses and counts calls per URL.
type fakeFetcher struct {
	status int
	body   []byte
	err    error
	calls  map[string]int
}

func newFakeFetcher(status int, body string) *fakeFetcher {
	return &fakeFetcher{status: status, body: []byte(body), calls: make(map[string]int)}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (int, []byte, error) {
	f.calls[url]++
	return f.status, f.body, f.err
}

func TestStore_PathLayout(t *testing.T) {
	store := NewStore("/cache", preset.PresetShare, nil, nil)

	if got := store.Root(); got != filepath.Join("/cache", "preset-share") {
		t.Errorf("unexpected root %q", got)
	}
	if got := store.Path(KindPreview, 42, ""); got != filepath.Join("/cache", "preset-share", "previews", "42") {
		t.Errorf("unexpected preview path %q", got)
	}
	if got := store.Path(KindPreset, 42, ".vital"); got != filepath.Join("/cache", "preset-share", "presets", "42.vital") {
		t.Errorf("unexpected preset path %q", got)
	}
}

func TestStore_FetchIsIdempotent(t *testing.T) {
	fetcher := newFakeFetcher(http.StatusOK, "preset-bytes")
	store := NewStore(t.TempDir(), preset.PresetShare, fetcher, nil)
	path := store.Path(KindPreset, 7, ".vital")

	for i := 0; i < 2; i++ {
		got, err := store.Fetch(context.Background(), KindPreset, "http://example/7", path)
		if err != nil {
			t.Fatalf("fetch %d: expected no error, got %v", i, err)
		}
		if got != path {
			t.Errorf("fetch %d: expected %q, got %q", i, path, got)
		}
	}

	if fetcher.calls["http://example/7"] != 1 {
		t.Errorf("expected exactly one network fetch, got %d", fetcher.calls["http://example/7"])
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "preset-bytes" {
		t.Errorf("unexpected cached content %q (%v)", data, err)
	}
}

func TestStore_FetchFailureLeavesNoFile(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *fakeFetcher
		url     string
		status  int
	}{
		{name: "non-success status", fetcher: newFakeFetcher(http.StatusNotFound, "nope"), url: "http://example/1", status: http.StatusNotFound},
		{name: "transport error", fetcher: &fakeFetcher{err: errors.New("connection reset"), calls: map[string]int{}}, url: "http://example/1"},
		{name: "missing url", fetcher: newFakeFetcher(http.StatusOK, "x"), url: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(t.TempDir(), preset.PresetShare, tt.fetcher, nil)
			path := store.Path(KindPreview, 1, "")

			_, err := store.Fetch(context.Background(), KindPreview, tt.url, path)
			var fetchErr *preset.FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("expected FetchError, got %v", err)
			}
			if fetchErr.StatusCode != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, fetchErr.StatusCode)
			}
			if store.Has(path) {
				t.Error("expected no cache file after failure")
			}
			entries, _ := os.ReadDir(store.Dir(KindPreview))
			if len(entries) != 0 {
				t.Errorf("expected no leftover files, found %d", len(entries))
			}
		})
	}
}

func TestStore_WriteFailureIsFetchError(t *testing.T) {
	fetcher := newFakeFetcher(http.StatusOK, "preset-bytes")
	store := NewStore(t.TempDir(), preset.PresetShare, fetcher, nil)
	path := store.Path(KindPreset, 7, ".vital")

	// A regular file where the presets directory belongs makes the write fail.
	if err := os.MkdirAll(store.Root(), 0755); err != nil {
		t.Fatalf("failed to create root: %v", err)
	}
	if err := os.WriteFile(store.Dir(KindPreset), []byte("not a dir"), 0644); err != nil {
		t.Fatalf("failed to create blocking file: %v", err)
	}

	_, err := store.Fetch(context.Background(), KindPreset, "http://example/7", path)
	var fetchErr *preset.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fetchErr.URL != "http://example/7" {
		t.Errorf("expected url on error, got %q", fetchErr.URL)
	}
	if store.Has(path) {
		t.Error("expected no cached file after failed write")
	}
}

func TestStore_MissingURLWrapsSentinel(t *testing.T) {
	store := NewStore(t.TempDir(), preset.PresetShare, newFakeFetcher(http.StatusOK, ""), nil)
	_, err := store.Fetch(context.Background(), KindPreview, "", store.Path(KindPreview, 3, ""))
	if !errors.Is(err, preset.ErrMissingURL) {
		t.Fatalf("expected ErrMissingURL, got %v", err)
	}
}

func TestStore_ClearRemovesTreeAndRefetches(t *testing.T) {
	fetcher := newFakeFetcher(http.StatusOK, "data")
	store := NewStore(t.TempDir(), preset.PresetShare, fetcher, nil)
	path := store.Path(KindPreset, 9, ".fxp")

	if _, err := store.Fetch(context.Background(), KindPreset, "http://example/9", path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("expected no error clearing, got %v", err)
	}
	if store.Has(path) {
		t.Fatal("expected cache entry to be gone after clear")
	}
	if _, err := os.Stat(store.Root()); !os.IsNotExist(err) {
		t.Errorf("expected provider cache root removed, got %v", err)
	}

	if _, err := store.Fetch(context.Background(), KindPreset, "http://example/9", path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fetcher.calls["http://example/9"] != 2 {
		t.Errorf("expected a second network fetch after clear, got %d", fetcher.calls["http://example/9"])
	}
}

func TestStore_ClearMissingTreeIsNoop(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never-created"), preset.PresetShare, nil, nil)
	if err := store.Clear(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
