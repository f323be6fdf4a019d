// Package progress reports catalogue materialization while a search waits
// for every page of a category.
package progress

import (
	"io"
	"os"
	"sync"

	"themerr/gallery/internal/source"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
)

type Reporter interface {
	Start(total int, description string)
	Update(current int)
	Finish()
}

// NewReporter returns a TerminalReporter writing to w, or a LogReporter when
// running in CI.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LogReporter{}
	}
	return &TerminalReporter{w: w}
}

// TerminalReporter draws a progress bar.
type TerminalReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int, description string) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int) {
	if r.bar != nil {
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LogReporter writes one log line per page, for CI logs.
type LogReporter struct {
	total       int
	description string
}

func (r *LogReporter) Start(total int, description string) {
	r.total = total
	r.description = description
	log.Infof("🔄 %s: %d pages", description, total)
}

func (r *LogReporter) Update(current int) {
	log.Infof("🔄 %s [%d/%d]", r.description, current, r.total)
}

func (r *LogReporter) Finish() {
	log.Infof("✅ %s complete", r.description)
}

// Track adapts r to a source.ProgressFunc. Nothing is reported when every
// page is already cached.
func Track(r Reporter, description string) source.ProgressFunc {
	var (
		mu      sync.Mutex
		started bool
		last    int
	)

	return func(done, total int) {
		mu.Lock()
		defer mu.Unlock()

		if !started {
			if done >= total {
				return
			}
			started = true
			r.Start(total, description)
		}
		if done <= last {
			return
		}
		last = done
		r.Update(done)
		if done >= total {
			r.Finish()
			started = false
			last = 0
		}
	}
}
