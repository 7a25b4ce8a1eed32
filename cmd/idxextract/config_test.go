package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing default file is not an error", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if cfg != (Config{}) {
			t.Fatalf("expected zero config, got %+v", cfg)
		}
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Fatalf("expected error for missing explicit config")
		}
	})

	t.Run("default file is parsed", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		dir := filepath.Join(home, "idxextract")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		data := "format: bmp\njpeg_quality: 75\ncreate_parents: true\nlog_level: debug\n"
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}

		cfg, err := LoadConfig("")
		if err != nil {
			t.Fatalf("LoadConfig returned error: %v", err)
		}
		if cfg.Format != "bmp" || cfg.LogLevel != "debug" {
			t.Fatalf("unexpected config: %+v", cfg)
		}
		if cfg.JPEGQuality == nil || *cfg.JPEGQuality != 75 {
			t.Fatalf("unexpected jpeg quality: %v", cfg.JPEGQuality)
		}
		if cfg.CreateParents == nil || !*cfg.CreateParents {
			t.Fatalf("expected create_parents true")
		}
		if cfg.NoProgress != nil {
			t.Fatalf("expected no_progress unset")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("format: [unterminated"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("expected parse error")
		}
	})
}
