package synths

import (
	"context"
	"fmt"
	"regexp"

	"github.com/contre95/presetcli/src/preset"
)

var invalidFileNameChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// Importer knows a synth's preset library layout and installs downloaded presets into it.
type Importer interface {
	// Extension is the preset file extension including the dot, e.g. ".vital".
	Extension() string
	// TargetPath is the library location of a result. It is a pure function of the
	// library root, the result's author and its name.
	TargetPath(result preset.SearchResult) string
	// Import copies sourceFile to TargetPath, replacing any file already there.
	Import(ctx context.Context, result preset.SearchResult, sourceFile string) (string, error)
}

// Registry maps each supported synth to its importer. Built once at startup.
type Registry map[preset.Synth]Importer

// For returns the importer for a synth.
func (r Registry) For(synth preset.Synth) (Importer, error) {
	importer, ok := r[synth]
	if !ok {
		return nil, fmt.Errorf("no preset library configured for synth %s", synth)
	}
	return importer, nil
}

// Sanitize replaces every character outside [A-Za-z0-9_] with an underscore.
// Distinct names may sanitize to the same file name; the last import wins.
func Sanitize(name string) string {
	return invalidFileNameChars.ReplaceAllString(name, "_")
}
