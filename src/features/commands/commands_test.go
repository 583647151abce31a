package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/contre95/presetcli/src/features/config"
	"github.com/contre95/presetcli/src/preset"
)

func writeTestConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cache := filepath.Join(dir, "cache")
	content := `
cache_path: ` + cache + `
logger:
  level: error
providers:
  presetshare:
    base_url: http://127.0.0.1:1
synths:
  vital:
    presets_dir: ` + filepath.Join(dir, "vital") + `
history:
  enabled: true
  path: ` + filepath.Join(dir, "history.db") + `
watch:
  enabled: false
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path, cache
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseSearchOptions(t *testing.T) {
	opts, err := parseSearchOptions(&searchFlags{keywords: "pad", synth: "Vital", genre: "dnb", sound: "reese", sort: "likes", page: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := preset.SearchOptions{Keywords: "pad", Synth: preset.SynthVital, Genre: preset.GenreDnB, Sound: preset.SoundReese, Sort: preset.SortMostLiked, Page: 2}
	if opts != want {
		t.Errorf("expected %+v, got %+v", want, opts)
	}

	tests := []struct {
		name  string
		flags searchFlags
		kind  string
	}{
		{name: "genre", flags: searchFlags{genre: "polka", page: 1}, kind: "genre"},
		{name: "sort", flags: searchFlags{sort: "newest", page: 1}, kind: "sort"},
		{name: "sound", flags: searchFlags{sound: "horn", page: 1}, kind: "sound"},
		{name: "page", flags: searchFlags{page: 0}, kind: "page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSearchOptions(&tt.flags)
			var parseErr *preset.ParseError
			if !errors.As(err, &parseErr) || parseErr.Kind != tt.kind {
				t.Fatalf("expected %s ParseError, got %v", tt.kind, err)
			}
		})
	}
}

func TestSearch_InvalidFilterFails(t *testing.T) {
	path, _ := writeTestConfig(t)
	if _, err := execute(t, "--config", path, "presetshare", "search", "-g", "polka", "--session", "x"); err == nil {
		t.Fatal("expected error for unknown genre")
	}
}

func TestSearch_MissingSessionFails(t *testing.T) {
	t.Setenv(config.SessionEnv, "")
	path, _ := writeTestConfig(t)
	_, err := execute(t, "--config", path, "presetshare", "search", "-k", "pad")
	if !errors.Is(err, ErrMissingSession) {
		t.Fatalf("expected ErrMissingSession, got %v", err)
	}
}

func TestCacheClear(t *testing.T) {
	path, cache := writeTestConfig(t)
	cached := filepath.Join(cache, preset.PresetShare.Name(), "presets", "1.vital")
	if err := os.MkdirAll(filepath.Dir(cached), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cached, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", path, "cache", "clear")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out, "Cache cleared") {
		t.Errorf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(cache, preset.PresetShare.Name())); !os.IsNotExist(err) {
		t.Errorf("expected provider cache removed, got %v", err)
	}
}

func TestConfigShowRedactsSession(t *testing.T) {
	t.Setenv(config.SessionEnv, "top-secret")
	path, _ := writeTestConfig(t)

	out, err := execute(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.Contains(out, "top-secret") {
		t.Fatalf("session leaked in output:\n%s", out)
	}
	if !strings.Contains(out, "base_url: http://127.0.0.1:1") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestHistory_Empty(t *testing.T) {
	path, _ := writeTestConfig(t)
	out, err := execute(t, "--config", path, "history")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out, "No presets imported yet") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRenderHistory(t *testing.T) {
	record := preset.NewImportRecord(preset.SearchResult{
		ID: 7, Provider: preset.PresetShare, Synth: preset.SynthVital, Name: "Warm Pad", Author: "alice",
	}, "/lib/alice/Warm_Pad.vital")

	out := renderHistory([]preset.ImportRecord{record})
	for _, want := range []string{"Warm Pad", "alice", "vital", "/lib/alice/Warm_Pad.vital"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}
