package searching

import (
	"context"
	"errors"
	"testing"

	"github.com/contre95/presetcli/src/preset"
)

// fakeCatalog serves pages from a fixed set and records every query.
type fakeCatalog struct {
	pages   map[int]preset.SearchResults
	err     error
	queries []preset.SearchOptions
}

func (c *fakeCatalog) Provider() preset.Provider { return preset.PresetShare }

func (c *fakeCatalog) Search(ctx context.Context, opts preset.SearchOptions) (preset.SearchResults, error) {
	c.queries = append(c.queries, opts)
	if c.err != nil {
		return preset.SearchResults{}, c.err
	}
	return c.pages[opts.Page], nil
}

func result(id int, premium bool) preset.SearchResult {
	return preset.SearchResult{ID: id, Provider: preset.PresetShare, IsPremium: premium, DownloadURL: "http://x"}
}

func TestService_SearchFiltersPremiumAndKeepsOrder(t *testing.T) {
	catalog := &fakeCatalog{pages: map[int]preset.SearchResults{
		1: {Results: []preset.SearchResult{result(3, false), result(1, true), result(2, false)}, Page: 1, TotalPages: 1},
	}}
	service := NewService(catalog)

	got, err := service.Search(context.Background(), preset.SearchOptions{Keywords: "pad"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got.Results) != 2 || got.Results[0].ID != 3 || got.Results[1].ID != 2 {
		t.Errorf("unexpected results %+v", got.Results)
	}
	if catalog.queries[0].Page != 1 {
		t.Errorf("expected page to default to 1, got %d", catalog.queries[0].Page)
	}
	if service.HasMore() {
		t.Error("expected no more pages")
	}
	if _, err := service.Next(context.Background()); !errors.Is(err, ErrNoMorePages) {
		t.Errorf("expected ErrNoMorePages, got %v", err)
	}
}

func TestService_NextKeepsOptions(t *testing.T) {
	catalog := &fakeCatalog{pages: map[int]preset.SearchResults{
		1: {Results: []preset.SearchResult{result(1, false)}, Page: 1, TotalPages: 2},
		2: {Results: []preset.SearchResult{result(2, false)}, Page: 2, TotalPages: 2},
	}}
	service := NewService(catalog)
	opts := preset.SearchOptions{Keywords: "bass", Synth: preset.SynthVital, Sort: preset.SortMostLiked}

	if _, err := service.Search(context.Background(), opts); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !service.HasMore() {
		t.Fatal("expected more pages")
	}

	next, err := service.Next(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(next.Results) != 1 || next.Results[0].ID != 2 {
		t.Errorf("unexpected next page %+v", next)
	}
	q := catalog.queries[1]
	if q.Page != 2 || q.Keywords != "bass" || q.Synth != preset.SynthVital || q.Sort != preset.SortMostLiked {
		t.Errorf("unexpected follow-up query %+v", q)
	}
	if page, total := service.Page(); page != 2 || total != 2 {
		t.Errorf("expected 2/2, got %d/%d", page, total)
	}
	if service.HasMore() {
		t.Error("expected last page reached")
	}
}

func TestService_NextBeforeSearch(t *testing.T) {
	service := NewService(&fakeCatalog{})
	if _, err := service.Next(context.Background()); !errors.Is(err, ErrNoMorePages) {
		t.Errorf("expected ErrNoMorePages, got %v", err)
	}
}

func TestService_SearchError(t *testing.T) {
	want := &preset.FetchError{URL: "http://x", StatusCode: 500}
	service := NewService(&fakeCatalog{err: want})

	_, err := service.Search(context.Background(), preset.SearchOptions{})
	var fetchErr *preset.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if service.HasMore() {
		t.Error("failed search must not enable paging")
	}
}

func TestService_NormalizesEmptyPage(t *testing.T) {
	service := NewService(&fakeCatalog{pages: map[int]preset.SearchResults{}})
	got, err := service.Search(context.Background(), preset.SearchOptions{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Page != 1 || got.TotalPages != 1 || len(got.Results) != 0 {
		t.Errorf("expected normalized empty page, got %+v", got)
	}
}
