package main

import (
	"io"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/idxextract/internal/logger"
)

var (
	configFile string
	logLevel   string
	logFormat  string
	debug      bool

	loadedConfig Config
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func newLogger(w io.Writer) (logger.Logger, error) {
	level := logLevel
	if debug {
		level = "debug"
	}
	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logger.Build(w, logFormat, lvl)
}
