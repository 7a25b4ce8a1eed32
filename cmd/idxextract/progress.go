package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/samcharles93/idxextract/internal/logger"
)

type progressKind int

const (
	progressOff progressKind = iota
	progressBar
	progressLog
)

// progressMode picks the display: nothing when disabled, a bar on a
// terminal, periodic log records otherwise.
func progressMode(disabled, interactive bool) progressKind {
	switch {
	case disabled:
		return progressOff
	case interactive:
		return progressBar
	default:
		return progressLog
	}
}

// progressReporter is an extract.Progress that also knows how to end its
// output once the run returns.
type progressReporter interface {
	Begin(root string, total int)
	Advance(done, total int)
	Finish()
}

func newProgress(w io.Writer, log logger.Logger, kind progressKind) progressReporter {
	switch kind {
	case progressBar:
		return &barProgress{w: w}
	case progressLog:
		return &logProgress{log: log}
	default:
		return noProgress{}
	}
}

type noProgress struct{}

func (noProgress) Begin(string, int) {}
func (noProgress) Advance(int, int)  {}
func (noProgress) Finish()           {}

// barProgress renders a "Saving (N/M)" bar on the terminal.
type barProgress struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (p *barProgress) Begin(root string, total int) {
	_, _ = fmt.Fprintf(p.w, "Saving images to %s\n", root)
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription("Saving"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionOnCompletion(func() { _, _ = fmt.Fprintln(p.w) }),
	)
}

func (p *barProgress) Advance(done, total int) {
	if p.bar != nil {
		_ = p.bar.Set(done)
	}
}

// Finish ends the bar line when the run stopped before completion.
func (p *barProgress) Finish() {
	if p.bar != nil && !p.bar.IsFinished() {
		_, _ = fmt.Fprintln(p.w)
	}
}

// logProgress reports through the logger every tenth of the dataset.
type logProgress struct {
	log  logger.Logger
	step int
	next int
}

func (p *logProgress) Begin(root string, total int) {
	p.log.Info("saving images", "root", root, "total", total)
	p.step = max(total/10, 1)
	p.next = p.step
}

func (p *logProgress) Advance(done, total int) {
	if done < p.next && done != total {
		return
	}
	p.log.Info("progress", "done", done, "total", total)
	for p.next <= done {
		p.next += p.step
	}
}

func (p *logProgress) Finish() {}
