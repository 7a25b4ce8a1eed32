package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the optional idxextract configuration file
// (~/.config/idxextract/config.yaml). Pointer fields distinguish "not set"
// from zero values.
type Config struct {
	Format        string `yaml:"format"`
	JPEGQuality   *int   `yaml:"jpeg_quality"`
	CreateParents *bool  `yaml:"create_parents"`
	NoProgress    *bool  `yaml:"no_progress"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "idxextract", "config.yaml")
}

// LoadConfig reads the config file at path, or at the default location when
// path is empty. A missing default file yields a zero Config; a missing
// explicit file is an error.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyLoggingConfig fills logging settings from cfg when the corresponding
// flag was not given explicitly.
func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyExtractConfig applies config file defaults to extract command options.
func applyExtractConfig(c *cli.Command, cfg Config, opts *extractOptions) {
	if cfg.Format != "" && !c.IsSet("format") {
		opts.format = cfg.Format
	}
	if cfg.JPEGQuality != nil && !c.IsSet("jpeg-quality") {
		opts.jpegQuality = *cfg.JPEGQuality
	}
	if cfg.CreateParents != nil && !c.IsSet("create-parents") {
		opts.createParents = *cfg.CreateParents
	}
	if cfg.NoProgress != nil && !c.IsSet("no-progress") {
		opts.noProgress = *cfg.NoProgress
	}
}
