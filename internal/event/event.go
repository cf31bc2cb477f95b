package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	JobStarted Type = iota + 1
	ItemStarted
	ItemProgress
	ItemCompleted
	JobCompleted
)

var typeNames = [...]string{
	JobStarted:    "JobStarted",
	ItemStarted:   "ItemStarted",
	ItemProgress:  "ItemProgress",
	ItemCompleted: "ItemCompleted",
	JobCompleted:  "JobCompleted",
}

func (t Type) String() string {
	if t >= 1 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Outcome is the terminal disposition of one item, carried on ItemCompleted.
type Outcome int

const (
	OutcomeDone Outcome = iota + 1
	OutcomeSkipped
	OutcomeFailed
)

var outcomeNames = [...]string{
	OutcomeDone:    "done",
	OutcomeSkipped: "skipped",
	OutcomeFailed:  "failed",
}

func (o Outcome) String() string {
	if o >= 1 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// Event is one progress record from a running job. Lifecycle events
// (JobStarted, ItemStarted, ItemCompleted, JobCompleted) are delivered in
// order and never dropped; ItemProgress records may be dropped when the
// consumer lags, so they only ever carry cumulative counters.
type Event struct {
	Type         Type
	Timestamp    time.Time
	Index        int    // item index; -1 on job-level events
	Path         string // item source path
	IsDir        bool
	Size         int64   // item size in bytes
	Bytes        int64   // cumulative bytes copied for the job so far
	TotalItems   int64   // JobStarted and JobCompleted
	TotalBytes   int64   // JobStarted and JobCompleted
	Outcome      Outcome // ItemCompleted
	Error        string  // failure or verification message, if any
	VerifyFailed bool    // ItemCompleted: a checksum mismatch was recorded
}
