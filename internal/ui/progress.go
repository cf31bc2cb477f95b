package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/abeckett/ferry/internal/event"
	"github.com/abeckett/ferry/internal/stats"
)

// ANSI escape sequences.
const (
	ansiDim   = "\033[2m"
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

const (
	progressBarWidth = 20
	minDrawInterval  = 200 * time.Millisecond // don't redraw faster than this
)

// progressPresenter provides a TTY display with a scrolling feed of
// completed items above a single status line that redraws in place.
type progressPresenter struct {
	w       io.Writer
	stats   *stats.Collector
	srcRoot string
	width   int // terminal columns, 0 means unknown
	verbose bool
	noColor bool

	// Internal state.
	statusDrawn bool
	current     string // item in flight, shown at the end of the status line
	lastDraw    time.Time
}

func (p *progressPresenter) dim(s string) string {
	if p.noColor {
		return s
	}
	return ansiDim + s + ansiReset
}

func (p *progressPresenter) Run(events <-chan event.Event) error {
	// Fire the first tick quickly to seed the ring buffer with speed data,
	// then switch to a 1s interval.
	secTicker := time.NewTicker(250 * time.Millisecond)
	defer secTicker.Stop()
	firstTickDone := false

	// Redraw ticker for when no events are flowing (e.g. a large file copy).
	redrawTicker := time.NewTicker(minDrawInterval)
	defer redrawTicker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				p.clearStatus()
				return nil
			}
			p.handleEvent(ev)
			p.maybeDrawStatus()

		case <-redrawTicker.C:
			p.maybeDrawStatus()

		case <-secTicker.C:
			p.stats.Tick()
			if !firstTickDone {
				firstTickDone = true
				secTicker.Reset(time.Second)
			}
		}
	}
}

func (p *progressPresenter) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.ItemStarted:
		p.current = filepath.Base(ev.Path)

	case event.ItemCompleted:
		p.current = ""
		switch ev.Outcome {
		case event.OutcomeFailed:
			p.printFeed(p.failedLine(ev))
		case event.OutcomeSkipped:
			if p.verbose && !ev.IsDir {
				p.printFeed(fmt.Sprintf("–  %s  %10s  %s",
					p.styledPath(ev.Path), FormatBytes(ev.Size), p.dim("skipped")))
			}
		case event.OutcomeDone:
			if !ev.IsDir {
				p.printFeed(p.completedLine(ev))
			}
		}
		if ev.VerifyFailed {
			p.printFeed(fmt.Sprintf("✗  %s  CHECKSUM MISMATCH", p.styledPath(ev.Path)))
		}

	case event.JobCompleted:
		p.current = ""
	}
}

func (p *progressPresenter) completedLine(ev event.Event) string {
	speed := p.stats.RollingSpeed(5)
	if speed > 0 {
		return fmt.Sprintf("✓  %s  %10s  %s",
			p.styledPath(ev.Path), FormatBytes(ev.Size), FormatRate(speed))
	}
	return fmt.Sprintf("✓  %s  %10s", p.styledPath(ev.Path), FormatBytes(ev.Size))
}

func (p *progressPresenter) failedLine(ev event.Event) string {
	msg := ev.Error
	if msg == "" {
		msg = "error"
	}
	return fmt.Sprintf("✗  %s  %10s  %s", p.styledPath(ev.Path), FormatBytes(ev.Size), msg)
}

// printFeed clears the status line, emits one feed line and redraws the
// status underneath it.
func (p *progressPresenter) printFeed(line string) {
	p.clearStatus()
	fmt.Fprintln(p.w, line)
	p.drawStatus()
}

func (p *progressPresenter) maybeDrawStatus() {
	if time.Since(p.lastDraw) < minDrawInterval {
		return
	}
	p.drawStatus()
}

func (p *progressPresenter) drawStatus() {
	snap := p.stats.Snapshot()

	var pct float64
	if snap.BytesTotal > 0 {
		pct = float64(snap.BytesCopied) / float64(snap.BytesTotal)
	}

	line := fmt.Sprintf(" %3.0f%%  %s   %s / %s   %s   %s / %s items   eta %s",
		pct*100, ProgressBar(pct, progressBarWidth),
		FormatBytes(snap.BytesCopied), FormatBytes(snap.BytesTotal),
		FormatRate(p.stats.RollingSpeed(10)),
		FormatCount(snap.Processed()), FormatCount(snap.ItemsTotal),
		FormatETA(p.stats.ETA()))

	// Keep the line inside the terminal: a wrapped status line cannot be
	// rewritten with \r. The path suffix is only added when it fits.
	width := p.width
	if width <= 0 {
		width = 80
	}
	if runes := []rune(line); len(runes) >= width {
		line = string(runes[:width-1])
	} else if p.current != "" {
		budget := width - len(runes) - 4
		if budget > 30 {
			budget = 30
		}
		if budget >= 8 {
			line += "   " + p.dim(truncPath(p.current, budget))
		}
	}

	// Rewrite the line in place; no trailing newline so the cursor stays
	// on the status line.
	fmt.Fprintf(p.w, "\r\033[K%s", line)
	p.statusDrawn = true
	p.lastDraw = time.Now()
}

func (p *progressPresenter) clearStatus() {
	if !p.statusDrawn {
		return
	}
	fmt.Fprint(p.w, "\r\033[K")
	p.statusDrawn = false
}

func (p *progressPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}

// styledPath returns the path with the directory portion dimmed and the
// base name in normal weight, making the file name stand out.
func (p *progressPresenter) styledPath(path string) string {
	path = StripRoot(p.srcRoot, path)
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if dir == "." || dir == "" {
		return base
	}
	return p.dim(dir+"/") + base
}

// truncPath shortens a path to fit within maxLen characters.
func truncPath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[:maxLen]
	}
	return "..." + path[len(path)-maxLen+3:]
}
