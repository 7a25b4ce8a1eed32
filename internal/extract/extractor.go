// Package extract writes the samples of an IDX dataset pair as individual
// image files, one subdirectory per class.
package extract

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/samcharles93/idxextract/internal/logger"
	"github.com/samcharles93/idxextract/pkg/idx"
)

// NumClasses is the number of class subdirectories, named "0".."9".
const NumClasses = 10

// Extractor owns an output tree and the identifier sequence used to name
// the files written into it. Every Extract call on the same Extractor
// continues the same sequence.
type Extractor struct {
	root     string
	enc      *encoder
	ids      IDSource
	progress Progress
	log      logger.Logger
}

type options struct {
	format      Format
	jpegQuality int
	ids         IDSource
	progress    Progress
	log         logger.Logger
}

type Option func(*options)

func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

func WithJPEGQuality(q int) Option {
	return func(o *options) { o.jpegQuality = q }
}

// WithIDs replaces the per-Extractor sequence, e.g. to share one sequence
// between several Extractors.
func WithIDs(ids IDSource) Option {
	return func(o *options) { o.ids = ids }
}

func WithProgress(p Progress) Option {
	return func(o *options) { o.progress = p }
}

// WithLogger sets the logger. Without it Extract uses logger.FromContext.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// New prepares saveLocation and its class subdirectories. Missing ancestors
// of saveLocation are created only when createParents is set.
func New(saveLocation string, createParents bool, opts ...Option) (*Extractor, error) {
	o := options{format: DefaultFormat, jpegQuality: DefaultJPEGQuality}
	for _, opt := range opts {
		opt(&o)
	}

	enc, err := newEncoder(o.format, o.jpegQuality)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(saveLocation)
	if err != nil {
		return nil, &DirectoryError{Path: saveLocation, Reason: "resolve path", Err: err}
	}
	if err := prepareTree(root, createParents); err != nil {
		return nil, err
	}

	if o.ids == nil {
		o.ids = &Sequence{}
	}
	if o.progress == nil {
		o.progress = noProgress{}
	}

	return &Extractor{
		root:     root,
		enc:      enc,
		ids:      o.ids,
		progress: o.progress,
		log:      o.log,
	}, nil
}

func prepareTree(root string, createParents bool) error {
	st, err := os.Stat(root)
	switch {
	case err == nil:
		if !st.IsDir() {
			return &DirectoryError{Path: root, Reason: "exists and is not a directory"}
		}
	case errors.Is(err, fs.ErrNotExist):
		mkdir := os.Mkdir
		if createParents {
			mkdir = os.MkdirAll
		}
		if err := mkdir(root, 0o755); err != nil {
			if !createParents && errors.Is(err, fs.ErrNotExist) {
				return &DirectoryError{Path: root, Reason: "parent directory does not exist", Err: err}
			}
			return &DirectoryError{Path: root, Reason: "create directory", Err: err}
		}
	default:
		return &DirectoryError{Path: root, Reason: "stat", Err: err}
	}

	for c := range NumClasses {
		dir := filepath.Join(root, strconv.Itoa(c))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &DirectoryError{Path: dir, Reason: "create class directory", Err: err}
		}
	}
	return nil
}

// Root is the absolute output directory.
func (e *Extractor) Root() string { return e.root }

func (e *Extractor) Format() Format { return e.enc.format }

// PathFor returns where the image with the given label and identifier is written.
func (e *Extractor) PathFor(label uint8, id uint64) string {
	name := strconv.FormatUint(id, 10) + "." + e.enc.format.Ext()
	return filepath.Join(e.root, strconv.Itoa(int(label)), name)
}

// Result summarizes one Extract call.
type Result struct {
	Root     string
	Format   Format
	Total    int
	Written  int
	PerClass [NumClasses]int
	FirstID  uint64
	LastID   uint64
}

func (r *Result) record(label uint8, id uint64) {
	if r.Written == 0 {
		r.FirstID = id
	}
	r.LastID = id
	r.Written++
	r.PerClass[label]++
}

// Extract validates the dataset pair and writes every sample under
// <root>/<label>/<id>.<ext>. Nothing is written if the headers are invalid.
// A failure part way through leaves the images written so far in place; the
// returned Result describes them.
func (e *Extractor) Extract(ctx context.Context, imagePath, labelPath string) (Result, error) {
	log := e.log
	if log == nil {
		log = logger.FromContext(ctx)
	}

	images, err := os.Open(imagePath)
	if err != nil {
		return Result{}, fmt.Errorf("extract: open images: %w", err)
	}
	defer func() { _ = images.Close() }()

	labels, err := os.Open(labelPath)
	if err != nil {
		return Result{}, fmt.Errorf("extract: open labels: %w", err)
	}
	defer func() { _ = labels.Close() }()

	r, err := idx.NewReader(images, labels)
	if err != nil {
		return Result{}, err
	}

	dims := r.Dims()
	res := Result{Root: e.root, Format: e.enc.format, Total: int(dims.Count)}
	log.Info("extracting dataset", "images", imagePath, "labels", labelPath, "count", dims.Count, "root", e.root)
	e.progress.Begin(e.root, res.Total)

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		s, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}
		if int(s.Label) >= NumClasses {
			return res, fmt.Errorf("%w: record %d has label %d", ErrLabelRange, s.Index, s.Label)
		}

		// A failed save still consumes its id; the run stops there.
		id := e.ids.Next()
		path := e.PathFor(s.Label, id)
		if err := e.save(path, grayImage(s.Grid)); err != nil {
			return res, err
		}
		res.record(s.Label, id)
		log.Debug("saved image", "id", id, "label", s.Label, "path", path)
		e.progress.Advance(res.Written, res.Total)
	}

	log.Info("extraction complete", "written", res.Written, "first_id", res.FirstID, "last_id", res.LastID)
	return res, nil
}

// grayImage wraps the grid's buffer without copying.
func grayImage(g idx.Grid) *image.Gray {
	return &image.Gray{
		Pix:    g.Pix,
		Stride: g.Cols,
		Rect:   image.Rect(0, 0, g.Cols, g.Rows),
	}
}

func (e *Extractor) save(path string, img image.Image) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("extract: create image: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("extract: close %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := e.enc.encode(bw, img); err != nil {
		return fmt.Errorf("extract: encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("extract: write %s: %w", path, err)
	}
	return nil
}
