package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abeckett/ferry/internal/event"
	"github.com/abeckett/ferry/internal/stats"
)

func runProgress(t *testing.T, p *progressPresenter, events ...event.Event) {
	t.Helper()
	ch := make(chan event.Event, len(events)+1)
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	assert.NoError(t, p.Run(ch))
}

func TestProgressPresenterFeedLines(t *testing.T) {
	var out bytes.Buffer
	p := &progressPresenter{w: &out, stats: stats.NewCollector()}

	runProgress(t, p,
		event.Event{Type: event.ItemStarted, Path: "dir/ok.txt"},
		event.Event{Type: event.ItemCompleted, Path: "dir/ok.txt", Size: 1024, Outcome: event.OutcomeDone},
		event.Event{
			Type: event.ItemCompleted, Path: "dir/bad.txt", Size: 512,
			Outcome: event.OutcomeFailed, Error: "write failed: dir/bad.txt: boom",
		},
	)

	s := out.String()
	assert.Contains(t, s, "✓")
	assert.Contains(t, s, "ok.txt")
	assert.Contains(t, s, "✗")
	assert.Contains(t, s, "bad.txt")
	assert.Contains(t, s, "write failed")
}

func TestProgressPresenterSkippedOnlyWhenVerbose(t *testing.T) {
	skip := event.Event{Type: event.ItemCompleted, Path: "skip.txt", Outcome: event.OutcomeSkipped}

	var quiet bytes.Buffer
	p := &progressPresenter{w: &quiet, stats: stats.NewCollector()}
	runProgress(t, p, skip)
	assert.NotContains(t, quiet.String(), "skip.txt")

	var loud bytes.Buffer
	p = &progressPresenter{w: &loud, stats: stats.NewCollector(), verbose: true}
	runProgress(t, p, skip)
	assert.Contains(t, loud.String(), "skip.txt")
	assert.Contains(t, loud.String(), "skipped")
}

func TestProgressPresenterVerifyMismatch(t *testing.T) {
	var out bytes.Buffer
	p := &progressPresenter{w: &out, stats: stats.NewCollector()}

	runProgress(t, p, event.Event{
		Type: event.ItemCompleted, Path: "bad.txt", Size: 9,
		Outcome: event.OutcomeDone, VerifyFailed: true,
	})

	assert.Contains(t, out.String(), "CHECKSUM MISMATCH")
}

func TestProgressPresenterDirsSilent(t *testing.T) {
	var out bytes.Buffer
	p := &progressPresenter{w: &out, stats: stats.NewCollector()}

	runProgress(t, p,
		event.Event{Type: event.ItemCompleted, Path: "sub", IsDir: true, Outcome: event.OutcomeDone},
	)

	assert.NotContains(t, out.String(), "sub")
}

func TestProgressPresenterStatusRespectsWidth(t *testing.T) {
	const name = "really-long-file-name.bin"

	var wide bytes.Buffer
	p := &progressPresenter{w: &wide, stats: stats.NewCollector(), width: 120, noColor: true}
	p.current = name
	p.drawStatus()
	assert.Contains(t, wide.String(), name)

	// A 40 column terminal cannot hold the counters, let alone the path.
	var narrow bytes.Buffer
	p = &progressPresenter{w: &narrow, stats: stats.NewCollector(), width: 40, noColor: true}
	p.current = name
	p.drawStatus()
	assert.NotContains(t, narrow.String(), name)
}

func TestProgressPresenterStatusLineCleared(t *testing.T) {
	var out bytes.Buffer
	p := &progressPresenter{w: &out, stats: stats.NewCollector()}

	runProgress(t, p,
		event.Event{Type: event.ItemStarted, Path: "a.txt"},
	)

	// The run ends with the status line wiped, so a summary can print on
	// a clean line.
	assert.False(t, p.statusDrawn)
}
