package importing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/contre95/presetcli/src/features/metrics"
	"github.com/contre95/presetcli/src/features/synths"
	"github.com/contre95/presetcli/src/preset"
)

// fakeSource writes a fixed preset file on download and counts downloads.
type fakeSource struct {
	dir       string
	err       error
	downloads int
}

func (s *fakeSource) IsDownloaded(result preset.SearchResult) bool {
	_, err := os.Stat(filepath.Join(s.dir, "cached"))
	return err == nil
}

func (s *fakeSource) DownloadPreset(ctx context.Context, result preset.SearchResult) (string, error) {
	s.downloads++
	if s.err != nil {
		return "", s.err
	}
	path := filepath.Join(s.dir, "cached")
	return path, os.WriteFile(path, []byte("patch"), 0644)
}

// copyImporter copies the cached file into root/<author>/<name>.vital.
type copyImporter struct {
	root string
	err  error
}

func (i copyImporter) Extension() string { return ".vital" }

func (i copyImporter) TargetPath(result preset.SearchResult) string {
	return filepath.Join(i.root, result.Author, synths.Sanitize(result.Name)+".vital")
}

func (i copyImporter) Import(ctx context.Context, result preset.SearchResult, sourceFile string) (string, error) {
	if i.err != nil {
		return "", i.err
	}
	data, err := os.ReadFile(sourceFile)
	if err != nil {
		return "", err
	}
	target := i.TargetPath(result)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", err
	}
	return target, os.WriteFile(target, data, 0644)
}

type memoryHistory struct {
	records []preset.ImportRecord
	err     error
}

func (h *memoryHistory) Record(ctx context.Context, record preset.ImportRecord) error {
	if h.err != nil {
		return h.err
	}
	h.records = append(h.records, record)
	return nil
}

func (h *memoryHistory) List(ctx context.Context, limit int) ([]preset.ImportRecord, error) {
	return h.records, nil
}

func (h *memoryHistory) Close() error { return nil }

var pad = preset.SearchResult{
	ID:          2,
	Provider:    preset.PresetShare,
	Synth:       preset.SynthVital,
	Name:        "Deep/House Pad #1",
	Author:      "alice",
	DownloadURL: "http://catalog/download/2",
}

func TestInstall_CopiesIntoLibraryAndRecords(t *testing.T) {
	root := t.TempDir()
	source := &fakeSource{dir: t.TempDir()}
	history := &memoryHistory{}
	service := NewService(source, synths.Registry{preset.SynthVital: copyImporter{root: root}}, history, metrics.NewCollector())

	target, err := service.Install(context.Background(), pad)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := filepath.Join(root, "alice", "Deep_House_Pad__1.vital")
	if target != want {
		t.Errorf("expected %q, got %q", want, target)
	}
	if data, err := os.ReadFile(target); err != nil || string(data) != "patch" {
		t.Errorf("unexpected library file %q (%v)", data, err)
	}
	if !service.IsDownloaded(pad) {
		t.Error("expected preset reported downloaded")
	}
	if len(history.records) != 1 || history.records[0].Path != want || history.records[0].PresetID != 2 {
		t.Errorf("unexpected history %+v", history.records)
	}
}

func TestInstall_UnsupportedSynth(t *testing.T) {
	source := &fakeSource{dir: t.TempDir()}
	service := NewService(source, synths.Registry{}, nil, nil)

	_, err := service.Install(context.Background(), pad)
	var importErr *preset.ImportError
	if !errors.As(err, &importErr) {
		t.Fatalf("expected ImportError, got %v", err)
	}
	if source.downloads != 0 {
		t.Error("expected no download for unsupported synth")
	}
}

func TestInstall_DownloadFailurePropagates(t *testing.T) {
	want := &preset.FetchError{URL: pad.DownloadURL, StatusCode: 500}
	source := &fakeSource{dir: t.TempDir(), err: want}
	history := &memoryHistory{}
	service := NewService(source, synths.Registry{preset.SynthVital: copyImporter{root: t.TempDir()}}, history, nil)

	if _, err := service.Install(context.Background(), pad); !errors.Is(err, want) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if len(history.records) != 0 {
		t.Error("failed install must not be recorded")
	}
}

func TestInstall_CopyFailureIsImportError(t *testing.T) {
	source := &fakeSource{dir: t.TempDir()}
	importer := copyImporter{root: t.TempDir(), err: errors.New("disk full")}
	service := NewService(source, synths.Registry{preset.SynthVital: importer}, nil, nil)

	_, err := service.Install(context.Background(), pad)
	var importErr *preset.ImportError
	if !errors.As(err, &importErr) || importErr.Path != importer.TargetPath(pad) {
		t.Fatalf("expected ImportError for target path, got %v", err)
	}
}

func TestInstall_HistoryFailureDoesNotFailImport(t *testing.T) {
	source := &fakeSource{dir: t.TempDir()}
	history := &memoryHistory{err: errors.New("database locked")}
	service := NewService(source, synths.Registry{preset.SynthVital: copyImporter{root: t.TempDir()}}, history, nil)

	if _, err := service.Install(context.Background(), pad); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestHistory_Disabled(t *testing.T) {
	service := NewService(&fakeSource{dir: t.TempDir()}, synths.Registry{}, nil, nil)
	if _, err := service.History(context.Background(), 10); err == nil {
		t.Fatal("expected error when history is disabled")
	}
}
