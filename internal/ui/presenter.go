package ui

import (
	"io"

	"github.com/abeckett/ferry/internal/event"
	"github.com/abeckett/ferry/internal/stats"
)

// Presenter consumes transfer events and displays progress.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan event.Event) error
	// Summary returns the final summary line.
	Summary() string
}

// Config configures a Presenter.
type Config struct {
	Writer     io.Writer
	ErrWriter  io.Writer
	Stats      *stats.Collector
	SrcRoot    string
	Width      int // terminal columns, 0 means unknown
	IsTTY      bool
	Quiet      bool
	Verbose    bool
	NoProgress bool
	NoColor    bool
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // factory function returns interface by design
func NewPresenter(cfg Config) Presenter {
	if cfg.Quiet {
		return &quietPresenter{stats: cfg.Stats}
	}
	if !cfg.IsTTY || cfg.NoProgress {
		return &plainPresenter{
			w:       cfg.Writer,
			errW:    cfg.ErrWriter,
			stats:   cfg.Stats,
			srcRoot: cfg.SrcRoot,
			verbose: cfg.Verbose,
		}
	}
	return &progressPresenter{
		w:       cfg.ErrWriter, // status line renders to stderr (the TTY)
		stats:   cfg.Stats,
		srcRoot: cfg.SrcRoot,
		width:   cfg.Width,
		verbose: cfg.Verbose,
		noColor: cfg.NoColor,
	}
}
