package idx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

const readerBufSize = 64 << 10

// ReadNextRecord reads one label byte from labels and rows*cols pixel bytes
// from images. It does not know how many records remain: reading past the
// end of either stream returns the stream's own error (io.EOF or
// io.ErrUnexpectedEOF).
func ReadNextRecord(images, labels io.Reader, rows, cols int) (Grid, uint8, error) {
	var lb [1]byte
	if _, err := io.ReadFull(labels, lb[:]); err != nil {
		return Grid{}, 0, err
	}
	g := NewGrid(rows, cols)
	if _, err := io.ReadFull(images, g.Pix); err != nil {
		return Grid{}, 0, err
	}
	return g, lb[0], nil
}

// Reader yields the samples of a validated image/label stream pair in
// lockstep. It stops after the declared count.
type Reader struct {
	images io.Reader
	labels *bufio.Reader
	dims   Dims
	next   uint32
}

// NewReader reads and validates both headers. Nothing past the headers is
// consumed until Next is called.
func NewReader(images, labels io.Reader) (*Reader, error) {
	if images == nil || labels == nil {
		return nil, errors.New("idx: nil stream")
	}

	var ih [ImageHeaderSize]byte
	if _, err := io.ReadFull(images, ih[:]); err != nil {
		return nil, headerReadError("image", err)
	}
	var lh [LabelHeaderSize]byte
	if _, err := io.ReadFull(labels, lh[:]); err != nil {
		return nil, headerReadError("label", err)
	}

	dims, err := ValidateHeaders(ih[:], lh[:])
	if err != nil {
		return nil, err
	}

	return &Reader{
		images: bufio.NewReaderSize(images, readerBufSize),
		labels: bufio.NewReaderSize(labels, readerBufSize),
		dims:   dims,
	}, nil
}

func headerReadError(stream string, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("idx: read %s header: %w", stream, err)
}

func (r *Reader) Dims() Dims { return r.dims }

// Remaining reports how many samples have not been read yet.
func (r *Reader) Remaining() uint32 { return r.dims.Count - r.next }

// Next returns the next sample, or io.EOF once Count samples were returned.
// A stream that ends early yields a *RecordError wrapping
// io.ErrUnexpectedEOF.
func (r *Reader) Next() (Sample, error) {
	if r.next >= r.dims.Count {
		return Sample{}, io.EOF
	}

	// With the label byte buffered, ReadNextRecord can only fail on images.
	if _, err := r.labels.Peek(1); err != nil {
		return Sample{}, r.recordError("labels", err)
	}
	g, label, err := ReadNextRecord(r.images, r.labels, int(r.dims.Rows), int(r.dims.Cols))
	if err != nil {
		return Sample{}, r.recordError("images", err)
	}

	s := Sample{Index: r.next, Label: label, Grid: g}
	r.next++
	return s, nil
}

func (r *Reader) recordError(stream string, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &RecordError{Index: r.next, Stream: stream, Err: err}
}
