package preset

import "fmt"

// Provider identifies a remote preset catalog.
type Provider int

const (
	PresetShare Provider = iota
)

// Name returns the provider's stable identifier, used for cache directories and logs.
func (p Provider) Name() string {
	switch p {
	case PresetShare:
		return "preset-share"
	default:
		return fmt.Sprintf("provider-%d", int(p))
	}
}

func (p Provider) String() string {
	return p.Name()
}

// Providers lists every known provider.
func Providers() []Provider {
	return []Provider{PresetShare}
}

// SearchResult describes one catalog entry. It is never mutated once built.
type SearchResult struct {
	// ID is provider scoped. Zero means the catalog id could not be parsed.
	ID          int
	Provider    Provider
	IsPremium   bool
	Synth       Synth
	Name        string
	Author      string
	Description string
	PreviewURL  string // empty when the entry has no audio sample
	DownloadURL string // empty when unresolvable
}

// HasPreview reports whether the result carries a preview sample.
func (r SearchResult) HasPreview() bool {
	return r.PreviewURL != ""
}

// Downloadable reports whether the result can be fetched at all.
func (r SearchResult) Downloadable() bool {
	return r.DownloadURL != ""
}

// SearchResults is one page of catalog results in catalog rank order.
type SearchResults struct {
	Results    []SearchResult
	Page       int
	TotalPages int
}

// SearchOptions holds a catalog query.
type SearchOptions struct {
	Keywords string
	Synth    Synth
	Genre    Genre
	Sound    Sound
	Sort     Sort
	Page     int
}

// ParseProvider maps a provider name back to its Provider.
func ParseProvider(name string) (Provider, error) {
	for _, p := range Providers() {
		if p.Name() == name {
			return p, nil
		}
	}
	return 0, &ParseError{Kind: "provider", Input: name}
}
