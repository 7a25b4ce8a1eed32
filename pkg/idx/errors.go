package idx

import (
	"errors"
	"fmt"
)

var (
	ErrHeaderSize    = errors.New("idx: invalid header size")
	ErrImageMagic    = errors.New("idx: image magic mismatch")
	ErrLabelMagic    = errors.New("idx: label magic mismatch")
	ErrDimensions    = errors.New("idx: unsupported image dimensions")
	ErrCountMismatch = errors.New("idx: image and label counts differ")
)

// FormatError reports a header that does not describe a supported dataset.
// Kind is one of the Err* sentinels above and is returned by Unwrap.
type FormatError struct {
	Kind     error
	Field    string
	Expected uint32
	Got      uint32
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v: %s expected %d, got %d", e.Kind, e.Field, e.Expected, e.Got)
}

func (e *FormatError) Unwrap() error { return e.Kind }

// RecordError wraps an I/O failure that happened while reading a sample.
type RecordError struct {
	Index  uint32
	Stream string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("idx: record %d: read %s: %v", e.Index, e.Stream, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
