package dataset

import (
	"errors"
	"fmt"
)

// ErrNoData is the sentinel for "the source files are not there or hold
// nothing usable". Handlers map it to a placeholder payload, never a 5xx.
var ErrNoData = errors.New("no data available")

// MissingFileError reports an absent source file. It wraps ErrNoData so
// callers can match either the concrete type or the sentinel.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("dataset file missing: %s", e.Path)
}

func (e *MissingFileError) Unwrap() error { return ErrNoData }
