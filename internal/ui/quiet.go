package ui

import (
	"github.com/abeckett/ferry/internal/event"
	"github.com/abeckett/ferry/internal/stats"
)

// quietPresenter consumes events but produces no output.
type quietPresenter struct {
	stats *stats.Collector
}

func (p *quietPresenter) Run(events <-chan event.Event) error {
	for range events {
		// Counters are fed by the engine's observer directly;
		// presenters only read from the collector, never write.
	}
	return nil
}

func (p *quietPresenter) Summary() string {
	return ""
}
