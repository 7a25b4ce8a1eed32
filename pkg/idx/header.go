// Package idx reads and writes the IDX image/label file pair used by the
// MNIST handwritten digit dataset.
package idx

import "encoding/binary"

const (
	ImageMagic uint32 = 2051
	LabelMagic uint32 = 2049

	// Rows and Cols are the only supported resolution.
	Rows uint32 = 28
	Cols uint32 = 28

	ImageHeaderSize = 16
	LabelHeaderSize = 8
)

// Dims is the validated shape of a dataset pair.
type Dims struct {
	Count uint32
	Rows  uint32
	Cols  uint32
}

// PixelsPerImage returns the number of bytes occupied by one image.
func (d Dims) PixelsPerImage() int {
	return int(d.Rows) * int(d.Cols)
}

type ImageHeader struct {
	Magic uint32
	Count uint32
	Rows  uint32
	Cols  uint32
}

type LabelHeader struct {
	Magic uint32
	Count uint32
}

func decodeImageHeader(b []byte) (ImageHeader, bool) {
	if len(b) != ImageHeaderSize {
		return ImageHeader{}, false
	}
	return ImageHeader{
		Magic: binary.BigEndian.Uint32(b[0:4]),
		Count: binary.BigEndian.Uint32(b[4:8]),
		Rows:  binary.BigEndian.Uint32(b[8:12]),
		Cols:  binary.BigEndian.Uint32(b[12:16]),
	}, true
}

func encodeImageHeader(dst []byte, h ImageHeader) bool {
	if len(dst) < ImageHeaderSize {
		return false
	}
	binary.BigEndian.PutUint32(dst[0:4], h.Magic)
	binary.BigEndian.PutUint32(dst[4:8], h.Count)
	binary.BigEndian.PutUint32(dst[8:12], h.Rows)
	binary.BigEndian.PutUint32(dst[12:16], h.Cols)
	return true
}

func decodeLabelHeader(b []byte) (LabelHeader, bool) {
	if len(b) != LabelHeaderSize {
		return LabelHeader{}, false
	}
	return LabelHeader{
		Magic: binary.BigEndian.Uint32(b[0:4]),
		Count: binary.BigEndian.Uint32(b[4:8]),
	}, true
}

func encodeLabelHeader(dst []byte, h LabelHeader) bool {
	if len(dst) < LabelHeaderSize {
		return false
	}
	binary.BigEndian.PutUint32(dst[0:4], h.Magic)
	binary.BigEndian.PutUint32(dst[4:8], h.Count)
	return true
}

// ValidateHeaders decodes the 16-byte image header and the 8-byte label
// header and checks that together they describe a supported dataset.
// It keeps no state; on failure the returned error is a *FormatError.
func ValidateHeaders(imageHeader, labelHeader []byte) (Dims, error) {
	ih, ok := decodeImageHeader(imageHeader)
	if !ok {
		return Dims{}, &FormatError{Kind: ErrHeaderSize, Field: "image header bytes", Expected: ImageHeaderSize, Got: uint32(len(imageHeader))}
	}
	if ih.Magic != ImageMagic {
		return Dims{}, &FormatError{Kind: ErrImageMagic, Field: "magic", Expected: ImageMagic, Got: ih.Magic}
	}
	if ih.Rows != Rows {
		return Dims{}, &FormatError{Kind: ErrDimensions, Field: "rows", Expected: Rows, Got: ih.Rows}
	}
	if ih.Cols != Cols {
		return Dims{}, &FormatError{Kind: ErrDimensions, Field: "cols", Expected: Cols, Got: ih.Cols}
	}

	lh, ok := decodeLabelHeader(labelHeader)
	if !ok {
		return Dims{}, &FormatError{Kind: ErrHeaderSize, Field: "label header bytes", Expected: LabelHeaderSize, Got: uint32(len(labelHeader))}
	}
	if lh.Magic != LabelMagic {
		return Dims{}, &FormatError{Kind: ErrLabelMagic, Field: "magic", Expected: LabelMagic, Got: lh.Magic}
	}
	if ih.Count != lh.Count {
		return Dims{}, &FormatError{Kind: ErrCountMismatch, Field: "label count", Expected: ih.Count, Got: lh.Count}
	}

	return Dims{Count: ih.Count, Rows: ih.Rows, Cols: ih.Cols}, nil
}
