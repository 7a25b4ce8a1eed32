package idx

import (
	"errors"
	"fmt"
	"io"
)

// Writer encodes samples into an image/label stream pair. The headers are
// written by NewWriter; Close checks that exactly count records followed.
type Writer struct {
	images  io.Writer
	labels  io.Writer
	dims    Dims
	written uint32
	closed  bool
}

func NewWriter(images, labels io.Writer, count, rows, cols uint32) (*Writer, error) {
	if images == nil || labels == nil {
		return nil, errors.New("idx: nil stream")
	}

	var ih [ImageHeaderSize]byte
	encodeImageHeader(ih[:], ImageHeader{Magic: ImageMagic, Count: count, Rows: rows, Cols: cols})
	if _, err := images.Write(ih[:]); err != nil {
		return nil, err
	}
	var lh [LabelHeaderSize]byte
	encodeLabelHeader(lh[:], LabelHeader{Magic: LabelMagic, Count: count})
	if _, err := labels.Write(lh[:]); err != nil {
		return nil, err
	}

	return &Writer{
		images: images,
		labels: labels,
		dims:   Dims{Count: count, Rows: rows, Cols: cols},
	}, nil
}

func (w *Writer) Write(label uint8, g Grid) error {
	if w.closed {
		return errors.New("idx: write after close")
	}
	if w.written >= w.dims.Count {
		return fmt.Errorf("idx: declared count %d already written", w.dims.Count)
	}
	if g.Rows != int(w.dims.Rows) || g.Cols != int(w.dims.Cols) || len(g.Pix) != w.dims.PixelsPerImage() {
		return fmt.Errorf("idx: grid is %dx%d, want %dx%d", g.Rows, g.Cols, w.dims.Rows, w.dims.Cols)
	}
	if _, err := w.labels.Write([]byte{label}); err != nil {
		return err
	}
	if _, err := w.images.Write(g.Pix); err != nil {
		return err
	}
	w.written++
	return nil
}

func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.written != w.dims.Count {
		return fmt.Errorf("idx: wrote %d records, header declares %d", w.written, w.dims.Count)
	}
	return nil
}
