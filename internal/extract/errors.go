package extract

import (
	"errors"
	"fmt"
)

// ErrLabelRange is returned for a sample whose label has no class directory.
var ErrLabelRange = errors.New("extract: label outside 0-9")

// DirectoryError reports an unusable save location.
type DirectoryError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DirectoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract: %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("extract: %s: %s", e.Path, e.Reason)
}

func (e *DirectoryError) Unwrap() error { return e.Err }
