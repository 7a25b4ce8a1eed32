package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/idxextract/internal/extract"
	"github.com/samcharles93/idxextract/pkg/idx"
)

type datasetSummary struct {
	Images      string                  `json:"images"`
	Labels      string                  `json:"labels"`
	Count       uint32                  `json:"count"`
	Rows        uint32                  `json:"rows"`
	Cols        uint32                  `json:"cols"`
	Classes     [extract.NumClasses]int `json:"classes"`
	OutOfRange  int                     `json:"out_of_range"`
	MeanPixel   float64                 `json:"mean_pixel"`
	EmptyImages int                     `json:"empty_images"`
}

// inspectDataset validates both headers and reads every record once.
func inspectDataset(imagePath, labelPath string) (datasetSummary, error) {
	images, err := os.Open(imagePath)
	if err != nil {
		return datasetSummary{}, err
	}
	defer func() { _ = images.Close() }()
	labels, err := os.Open(labelPath)
	if err != nil {
		return datasetSummary{}, err
	}
	defer func() { _ = labels.Close() }()

	r, err := idx.NewReader(images, labels)
	if err != nil {
		return datasetSummary{}, err
	}
	dims := r.Dims()
	sum := datasetSummary{Images: imagePath, Labels: labelPath, Count: dims.Count, Rows: dims.Rows, Cols: dims.Cols}

	var pixelTotal uint64
	for {
		s, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sum, err
		}
		if int(s.Label) < extract.NumClasses {
			sum.Classes[s.Label]++
		} else {
			sum.OutOfRange++
		}
		var imgTotal uint64
		for _, p := range s.Grid.Pix {
			imgTotal += uint64(p)
		}
		if imgTotal == 0 {
			sum.EmptyImages++
		}
		pixelTotal += imgTotal
	}
	if n := uint64(dims.Count) * uint64(dims.PixelsPerImage()); n > 0 {
		sum.MeanPixel = float64(pixelTotal) / float64(n)
	}
	return sum, nil
}

func inspectCmd() *cli.Command {
	var (
		imagePath string
		labelPath string
		asJSON    bool
	)

	return &cli.Command{
		Name:  "inspect",
		Usage: "Validate an IDX image/label pair and print a summary",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "image", Usage: "path to the IDX image file", Destination: &imagePath, Required: true},
			&cli.StringFlag{Name: "label", Usage: "path to the IDX label file", Destination: &labelPath, Required: true},
			&cli.BoolFlag{Name: "json", Usage: "print the summary as JSON", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sum, err := inspectDataset(imagePath, labelPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if asJSON {
				data, err := json.MarshalIndent(sum, "", "  ")
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: encode summary: %v", err), 1)
				}
				_, _ = fmt.Fprintln(cmd.Root().Writer, string(data))
				return nil
			}
			printSummary(cmd.Root().Writer, sum)
			return nil
		},
	}
}

func printSummary(w io.Writer, s datasetSummary) {
	_, _ = fmt.Fprintf(w, "Images:  %s\n", s.Images)
	_, _ = fmt.Fprintf(w, "Labels:  %s\n", s.Labels)
	_, _ = fmt.Fprintf(w, "Samples: %d (%dx%d)\n", s.Count, s.Rows, s.Cols)
	_, _ = fmt.Fprintf(w, "Mean pixel: %.2f\n", s.MeanPixel)
	if s.EmptyImages > 0 {
		_, _ = fmt.Fprintf(w, "Blank images: %d\n", s.EmptyImages)
	}
	_, _ = fmt.Fprintln(w, "\nClass  Count")
	for c, n := range s.Classes {
		_, _ = fmt.Fprintf(w, "%5d  %d\n", c, n)
	}
	if s.OutOfRange > 0 {
		_, _ = fmt.Fprintf(w, "Labels outside 0-9: %d\n", s.OutOfRange)
	}
}
