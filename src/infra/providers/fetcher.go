package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

const userAgent = "presetcli/1.0"

// HTTPFetcher performs GET requests for the catalog and the download cache. When a
// session id is set it is sent as the PHPSESSID cookie.
type HTTPFetcher struct {
	client    *http.Client
	sessionID string
}

// NewHTTPFetcher creates a fetcher. No timeout is imposed; callers bound requests through ctx.
func NewHTTPFetcher(sessionID string) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{},
		sessionID: sessionID,
	}
}

// Fetch downloads url and returns the status code with the full body.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	if f.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "PHPSESSID", Value: f.sessionID})
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}
