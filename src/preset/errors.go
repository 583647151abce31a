package preset

import (
	"errors"
	"fmt"
)

// ErrMissingURL is wrapped by a FetchError when the artifact has no URL to fetch.
var ErrMissingURL = errors.New("missing url")

// FetchError reports a failed download: a transport error or a non-success status.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.Err != nil && e.URL == "":
		return fmt.Sprintf("fetch failed: %v", e.Err)
	case e.Err != nil:
		return fmt.Sprintf("fetch %s failed: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("fetch %s failed: unexpected status %d", e.URL, e.StatusCode)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports raw input that could not be mapped to a known value.
type ParseError struct {
	Kind  string // e.g. "genre", "sort", "markup"
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s %q: %v", e.Kind, e.Input, e.Err)
	}
	return fmt.Sprintf("invalid %s %q", e.Kind, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ImportError reports a failure installing a preset into a synth library.
type ImportError struct {
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import to %s failed: %v", e.Path, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
