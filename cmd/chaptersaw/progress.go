package main

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"chaptersaw/internal/pipeline"
)

// progressObserver renders segment extraction progress on a terminal. It
// stays silent until the first segment event so scan-only runs print
// nothing.
type progressObserver struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// newProgressObserver returns a terminal progress observer, or nil when
// stderr is not a TTY or quiet mode is requested.
func newProgressObserver(quiet bool) *progressObserver {
	if quiet {
		return nil
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return nil
	}
	return &progressObserver{}
}

func (p *progressObserver) OnEvent(event pipeline.Event) {
	if event.Kind != pipeline.EventSegmentExtracted {
		if event.Kind == pipeline.EventMergeCompleted {
			p.finish()
		}
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar == nil {
		p.bar = progressbar.NewOptions(event.Total,
			progressbar.OptionSetDescription("extracting"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionShowCount(),
		)
	}
	_ = p.bar.Add(1)
}

func (p *progressObserver) finish() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}

// asObserver converts a possibly-nil progress observer into the interface
// value the runner expects.
func (p *progressObserver) asObserver() pipeline.Observer {
	if p == nil {
		return nil
	}
	return p
}
