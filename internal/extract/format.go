package extract

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an output image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"

	DefaultFormat      = FormatPNG
	DefaultJPEGQuality = 90
)

// Formats lists the supported encodings in display order.
var Formats = []Format{FormatPNG, FormatJPEG, FormatGIF, FormatBMP, FormatTIFF}

// ParseFormat accepts a format name or common extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "gif":
		return FormatGIF, nil
	case "bmp":
		return FormatBMP, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("extract: unsupported image format %q", s)
	}
}

// Ext is the file extension without the leading dot.
func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	case FormatTIFF:
		return "tiff"
	default:
		return string(f)
	}
}

type encoder struct {
	format      Format
	jpegQuality int
	png         png.Encoder
}

func newEncoder(f Format, jpegQuality int) (*encoder, error) {
	f, err := ParseFormat(string(f))
	if err != nil {
		return nil, err
	}
	if jpegQuality < 1 || jpegQuality > 100 {
		return nil, fmt.Errorf("extract: jpeg quality %d out of range 1-100", jpegQuality)
	}
	return &encoder{
		format:      f,
		jpegQuality: jpegQuality,
		png:         png.Encoder{CompressionLevel: png.BestSpeed},
	}, nil
}

func (e *encoder) encode(w io.Writer, img image.Image) error {
	switch e.format {
	case FormatPNG:
		return e.png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: e.jpegQuality})
	case FormatGIF:
		return gif.Encode(w, toGrayPaletted(img), nil)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("extract: unsupported image format %q", e.format)
	}
}

var grayPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}()

// toGrayPaletted maps a grayscale image onto a 256-level gray palette so the
// GIF encoder keeps every intensity instead of quantizing to Plan9.
func toGrayPaletted(img image.Image) image.Image {
	g, ok := img.(*image.Gray)
	if !ok {
		return img
	}
	p := image.NewPaletted(g.Rect, grayPalette)
	for y := g.Rect.Min.Y; y < g.Rect.Max.Y; y++ {
		copy(p.Pix[p.PixOffset(g.Rect.Min.X, y):], g.Pix[g.PixOffset(g.Rect.Min.X, y):g.PixOffset(g.Rect.Max.X, y)])
	}
	return p
}
