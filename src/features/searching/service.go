package searching

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/contre95/presetcli/src/preset"
)

// ErrNoMorePages is returned by Next once the last page has been fetched.
var ErrNoMorePages = errors.New("no more pages")

// Service runs catalog queries and keeps the pagination state of the last one.
type Service struct {
	catalog preset.Catalog

	mu         sync.Mutex
	opts       preset.SearchOptions
	page       int
	totalPages int
	searched   bool
}

// NewService creates a new search service.
func NewService(catalog preset.Catalog) *Service {
	return &Service{catalog: catalog}
}

// Provider returns the provider the service queries.
func (s *Service) Provider() preset.Provider {
	return s.catalog.Provider()
}

// Search runs a new query. Premium results are dropped; catalog order is kept.
func (s *Service) Search(ctx context.Context, opts preset.SearchOptions) (preset.SearchResults, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	results, err := s.fetch(ctx, opts)
	if err != nil {
		return preset.SearchResults{}, err
	}

	s.mu.Lock()
	s.opts = opts
	s.searched = true
	s.mu.Unlock()
	return results, nil
}

// Next fetches the page after the last one returned.
func (s *Service) Next(ctx context.Context) (preset.SearchResults, error) {
	s.mu.Lock()
	if !s.searched || s.page >= s.totalPages {
		s.mu.Unlock()
		return preset.SearchResults{}, ErrNoMorePages
	}
	opts := s.opts
	opts.Page = s.page + 1
	s.mu.Unlock()

	return s.fetch(ctx, opts)
}

// HasMore reports whether Next would fetch another page.
func (s *Service) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searched && s.page < s.totalPages
}

// Page returns the current page and the total page count.
func (s *Service) Page() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page, s.totalPages
}

func (s *Service) fetch(ctx context.Context, opts preset.SearchOptions) (preset.SearchResults, error) {
	slog.Debug("Searching catalog", "provider", s.catalog.Provider(), "keywords", opts.Keywords, "page", opts.Page)
	results, err := s.catalog.Search(ctx, opts)
	if err != nil {
		slog.Error("Catalog search failed", "provider", s.catalog.Provider(), "error", err)
		return preset.SearchResults{}, err
	}

	free := make([]preset.SearchResult, 0, len(results.Results))
	for _, r := range results.Results {
		if r.IsPremium {
			continue
		}
		free = append(free, r)
	}
	results.Results = free
	if results.Page < 1 {
		results.Page = 1
	}
	if results.TotalPages < results.Page {
		results.TotalPages = results.Page
	}

	s.mu.Lock()
	s.page = results.Page
	s.totalPages = results.TotalPages
	s.mu.Unlock()

	slog.Info("Catalog search completed", "results", len(free), "page", results.Page, "total_pages", results.TotalPages)
	return results, nil
}
