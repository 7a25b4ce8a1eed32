package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/idxextract/internal/extract"
	"github.com/samcharles93/idxextract/internal/logger"
)

type extractOptions struct {
	createParents bool
	imagePath     string
	labelPath     string
	format        string
	jpegQuality   int
	manifestPath  string
	noProgress    bool
}

var extractOpts extractOptions

// extractFlags are local to the root command so they do not leak into the
// inspect subcommand, which has its own --image/--label.
func extractFlags(opts *extractOptions) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "create-parents",
			Aliases:     []string{"f", "force"},
			Usage:       "create missing parent directories of save-location",
			Destination: &opts.createParents,
			Local:       true,
		},
		&cli.StringFlag{
			Name:        "image",
			Usage:       "path to the IDX image file (idx3-ubyte)",
			Destination: &opts.imagePath,
			Local:       true,
		},
		&cli.StringFlag{
			Name:        "label",
			Usage:       "path to the IDX label file (idx1-ubyte)",
			Destination: &opts.labelPath,
			Local:       true,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "output image format (png, jpeg, gif, bmp, tiff)",
			Value:       string(extract.DefaultFormat),
			Destination: &opts.format,
			Local:       true,
		},
		&cli.IntFlag{
			Name:        "jpeg-quality",
			Usage:       "JPEG quality 1-100 (jpeg format only)",
			Value:       extract.DefaultJPEGQuality,
			Destination: &opts.jpegQuality,
			Local:       true,
		},
		&cli.StringFlag{
			Name:        "manifest",
			Usage:       "write a JSON summary of the run to this path",
			Destination: &opts.manifestPath,
			Local:       true,
		},
		&cli.BoolFlag{
			Name:        "no-progress",
			Usage:       "disable the progress display",
			Destination: &opts.noProgress,
			Local:       true,
		},
	}
}

// runExtract is the root command's action: idxextract <save-location> -f --image PATH --label PATH.
func runExtract(ctx context.Context, cmd *cli.Command, opts *extractOptions) error {
	if cmd.Args().Len() == 0 && !cmd.IsSet("image") && !cmd.IsSet("label") {
		return cli.ShowAppHelp(cmd)
	}
	if cmd.Args().Len() != 1 || strings.TrimSpace(cmd.Args().First()) == "" {
		return cli.Exit("error: expected exactly one <save-location> argument", 1)
	}
	if opts.imagePath == "" || opts.labelPath == "" {
		return cli.Exit("error: --image and --label are required", 1)
	}
	saveLocation := cmd.Args().First()
	applyExtractConfig(cmd, loadedConfig, opts)

	format, err := extract.ParseFormat(opts.format)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}

	runID := uuid.New()
	log := logger.FromContext(ctx).With("run", runID.String())
	started := time.Now()

	progress := newProgress(os.Stderr, log, progressMode(opts.noProgress, isTerminal(os.Stderr)))
	ex, err := extract.New(saveLocation, opts.createParents,
		extract.WithFormat(format),
		extract.WithJPEGQuality(opts.jpegQuality),
		extract.WithProgress(progress),
		extract.WithLogger(log),
	)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}

	res, err := ex.Extract(ctx, opts.imagePath, opts.labelPath)
	progress.Finish()
	if err != nil {
		if res.Written > 0 {
			log.Warn("extraction stopped; images already written were kept", "written", res.Written, "root", res.Root)
		}
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}

	if opts.manifestPath != "" {
		m := newManifest(runID, opts.imagePath, opts.labelPath, res, started)
		if err := writeManifest(opts.manifestPath, m); err != nil {
			return cli.Exit(fmt.Sprintf("error: %v", err), 1)
		}
		log.Info("wrote manifest", "path", opts.manifestPath)
	}
	return nil
}
