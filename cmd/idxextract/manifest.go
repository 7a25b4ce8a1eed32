package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/samcharles93/idxextract/internal/extract"
	"github.com/samcharles93/idxextract/internal/version"
)

type manifest struct {
	RunID      string         `json:"run_id"`
	Version    string         `json:"version"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Images     string         `json:"images"`
	Labels     string         `json:"labels"`
	Root       string         `json:"root"`
	Format     string         `json:"format"`
	Total      int            `json:"total"`
	Written    int            `json:"written"`
	FirstID    uint64         `json:"first_id,omitempty"`
	LastID     uint64         `json:"last_id,omitempty"`
	PerClass   map[string]int `json:"per_class"`
}

func newManifest(runID uuid.UUID, images, labels string, res extract.Result, started time.Time) manifest {
	perClass := make(map[string]int, extract.NumClasses)
	for c, n := range res.PerClass {
		perClass[strconv.Itoa(c)] = n
	}
	return manifest{
		RunID:      runID.String(),
		Version:    version.String(),
		StartedAt:  started.UTC(),
		FinishedAt: time.Now().UTC(),
		Images:     images,
		Labels:     labels,
		Root:       res.Root,
		Format:     string(res.Format),
		Total:      res.Total,
		Written:    res.Written,
		FirstID:    res.FirstID,
		LastID:     res.LastID,
		PerClass:   perClass,
	}
}

func writeManifest(path string, m manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
