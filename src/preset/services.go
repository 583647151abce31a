package preset

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Catalog queries one provider's remote catalog.
type Catalog interface {
	Provider() Provider
	Search(ctx context.Context, opts SearchOptions) (SearchResults, error)
}

// Player plays preview samples. Play replaces any current playback and returns a channel
// closed when that playback ends; Stop is a no-op when idle.
type Player interface {
	Play(path string) (<-chan struct{}, error)
	Stop() error
}

// ImportRecord is one successful installation of a preset into a synth library.
type ImportRecord struct {
	ID         string
	Provider   Provider
	PresetID   int
	Name       string
	Author     string
	Synth      Synth
	Path       string
	ImportedAt time.Time
}

// NewImportRecord builds a record for result installed at path.
func NewImportRecord(result SearchResult, path string) ImportRecord {
	return ImportRecord{
		ID:         generateID(),
		Provider:   result.Provider,
		PresetID:   result.ID,
		Name:       result.Name,
		Author:     result.Author,
		Synth:      result.Synth,
		Path:       path,
		ImportedAt: time.Now(),
	}
}

// History stores import records.
type History interface {
	Record(ctx context.Context, record ImportRecord) error
	List(ctx context.Context, limit int) ([]ImportRecord, error)
	Close() error
}

func generateID() string {
	return uuid.New().String()
}
