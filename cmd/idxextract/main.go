package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/idxextract/internal/logger"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "idxextract",
		Usage:     "Extract MNIST-style IDX datasets into per-class image files",
		ArgsUsage: "<save-location>",
		Flags: append(append(loggingFlags(),
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config.yaml (default: user config dir)",
				Destination: &configFile,
			},
		), extractFlags(&extractOpts)...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := LoadConfig(configFile)
			if err != nil {
				return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			loadedConfig = cfg
			applyLoggingConfig(cmd, cfg)

			log, err := newLogger(os.Stderr)
			if err != nil {
				return ctx, cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			return logger.WithContext(ctx, log), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runExtract(ctx, cmd, &extractOpts)
		},
		Commands: []*cli.Command{
			inspectCmd(),
			versionCmd(),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
