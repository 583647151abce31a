package files

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/contre95/presetcli/src/features/synths"
	"github.com/contre95/presetcli/src/preset"
)

// LibraryOrganizer is the filesystem implementation of synths.Importer. Presets live at
// <libraryPath>/<author>/<sanitized name><extension>.
type LibraryOrganizer struct {
	libraryPath string
	extension   string
}

// NewLibraryOrganizer creates an organizer for a library root and preset extension.
func NewLibraryOrganizer(libraryPath, extension string) *LibraryOrganizer {
	return &LibraryOrganizer{libraryPath: libraryPath, extension: extension}
}

// NewVitalLibrary creates the organizer for Vital's user preset folder.
func NewVitalLibrary(libraryPath string) *LibraryOrganizer {
	return NewLibraryOrganizer(libraryPath, ".vital")
}

// NewSerumLibrary creates the organizer for Serum's user preset folder.
func NewSerumLibrary(libraryPath string) *LibraryOrganizer {
	return NewLibraryOrganizer(libraryPath, ".fxp")
}

// Extension returns the preset file extension.
func (o *LibraryOrganizer) Extension() string {
	return o.extension
}

// TargetPath generates the library path for a preset without touching the filesystem.
func (o *LibraryOrganizer) TargetPath(result preset.SearchResult) string {
	return filepath.Join(o.libraryPath, result.Author, synths.Sanitize(result.Name)+o.extension)
}

// Import replaces whatever is at the target path with a copy of sourceFile.
func (o *LibraryOrganizer) Import(ctx context.Context, result preset.SearchResult, sourceFile string) (string, error) {
	target := o.TargetPath(result)
	if !o.withinLibrary(target) {
		return "", &preset.ImportError{Path: target, Err: fmt.Errorf("author %q escapes library %s", result.Author, o.libraryPath)}
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", &preset.ImportError{Path: target, Err: fmt.Errorf("failed to create directory: %w", err)}
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return "", &preset.ImportError{Path: target, Err: fmt.Errorf("failed to remove existing preset: %w", err)}
	}
	if err := copyFile(sourceFile, target); err != nil {
		return "", &preset.ImportError{Path: target, Err: fmt.Errorf("failed to copy file: %w", err)}
	}

	slog.Debug("Preset copied into library", "source", sourceFile, "path", target)
	return target, nil
}

func (o *LibraryOrganizer) withinLibrary(path string) bool {
	rel, err := filepath.Rel(o.libraryPath, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func copyFile(src, dst string) error {
	sourceFileStat, err := os.Stat(src)
	if err != nil {
		return err
	}

	if !sourceFileStat.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		os.Remove(dst)
		return err
	}
	return destination.Close()
}
