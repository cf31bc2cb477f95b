package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/abeckett/ferry/internal/event"
	"github.com/abeckett/ferry/internal/stats"
)

// plainPresenter outputs one line per completed item to stdout and
// periodic progress to stderr. Used when stdout is not a TTY.
type plainPresenter struct {
	w       io.Writer
	errW    io.Writer
	stats   *stats.Collector
	srcRoot string
	verbose bool
}

func (p *plainPresenter) Run(events <-chan event.Event) error {
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	progress := time.NewTicker(5 * time.Second)
	defer progress.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.handleEvent(ev)
		case <-tick.C:
			p.stats.Tick()
		case <-progress.C:
			p.printProgress()
		}
	}
}

func (p *plainPresenter) handleEvent(ev event.Event) {
	if ev.Type != event.ItemCompleted {
		return
	}
	path := StripRoot(p.srcRoot, ev.Path)

	switch ev.Outcome {
	case event.OutcomeFailed:
		msg := ev.Error
		if msg == "" {
			msg = "error"
		}
		fmt.Fprintf(p.w, "%s  %s  %s\n", path, FormatBytes(ev.Size), msg)
		return
	case event.OutcomeSkipped:
		if !ev.IsDir {
			fmt.Fprintf(p.w, "%s  skipped\n", path)
		}
		return
	case event.OutcomeDone:
		if !ev.IsDir {
			speed := p.stats.RollingSpeed(5)
			fmt.Fprintf(p.w, "%s  %s  %s\n", path, FormatBytes(ev.Size), FormatRate(speed))
		}
	}

	if ev.VerifyFailed {
		fmt.Fprintf(p.w, "MISMATCH: %s\n", path)
	}
}

func (p *plainPresenter) printProgress() {
	snap := p.stats.Snapshot()
	if snap.BytesTotal > 0 {
		pct := float64(snap.BytesCopied) / float64(snap.BytesTotal) * 100
		fmt.Fprintf(p.errW, "progress: %.0f%% %s/%s %s/%s items %s eta %s\n",
			pct,
			FormatBytes(snap.BytesCopied), FormatBytes(snap.BytesTotal),
			FormatCount(snap.Processed()), FormatCount(snap.ItemsTotal),
			FormatRate(p.stats.RollingSpeed(10)),
			FormatETA(p.stats.ETA()),
		)
	} else {
		fmt.Fprintf(p.errW, "progress: %s copied %s items\n",
			FormatBytes(snap.BytesCopied),
			FormatCount(snap.Processed()),
		)
	}
}

func (p *plainPresenter) Summary() string {
	return CompletionSummary(p.stats.Snapshot())
}
