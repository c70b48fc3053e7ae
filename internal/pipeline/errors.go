package pipeline

import (
	"errors"
	"fmt"

	"github.com/amritadottown/timetable-registry/internal"
)

var (
	ErrUnsupportedInput = errors.New("unsupported input")
	ErrFileNotFound     = errors.New("file not found")
)

// SourceError reports a document that could not be opened or decoded.
type SourceError struct {
	Path string
	Kind internal.SourceKind
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("extract %s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
