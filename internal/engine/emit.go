package engine

import (
	"time"

	"github.com/abeckett/ferry/internal/event"
)

// EventEmitter bridges the Observer interface onto an event channel for
// decoupled consumers such as presenters. Lifecycle events use blocking
// sends, so none are lost and protocol order is preserved; ItemProgress
// uses a non-blocking send and is dropped when the consumer lags, which
// the protocol allows.
type EventEmitter struct {
	ch chan<- event.Event
}

// NewEventEmitter wraps ch. The caller owns the channel and closes it
// after Execute returns; a buffered channel keeps the engine from
// stalling on a busy consumer.
func NewEventEmitter(ch chan<- event.Event) *EventEmitter {
	return &EventEmitter{ch: ch}
}

func (e *EventEmitter) JobStarted(j *Job) {
	e.ch <- event.Event{
		Type:       event.JobStarted,
		Timestamp:  time.Now(),
		Index:      -1,
		TotalItems: int64(len(j.Items)),
		TotalBytes: j.BytesTotal,
	}
}

func (e *EventEmitter) ItemStarted(j *Job, index int, item *Item) {
	e.ch <- event.Event{
		Type:      event.ItemStarted,
		Timestamp: time.Now(),
		Index:     index,
		Path:      item.Source,
		IsDir:     item.IsDir,
		Size:      item.Size,
		Bytes:     j.BytesCopied,
	}
}

func (e *EventEmitter) ItemProgress(j *Job, index int, copied int64) {
	ev := event.Event{
		Type:      event.ItemProgress,
		Timestamp: time.Now(),
		Index:     index,
		Bytes:     j.BytesCopied,
	}
	select {
	case e.ch <- ev:
	default:
	}
}

func (e *EventEmitter) ItemCompleted(j *Job, index int, item *Item) {
	ev := event.Event{
		Type:      event.ItemCompleted,
		Timestamp: time.Now(),
		Index:     index,
		Path:      item.Source,
		IsDir:     item.IsDir,
		Size:      item.Size,
		Bytes:     j.BytesCopied,
		Outcome:   outcomeOf(item.State),
		Error:     item.ErrorMessage,
	}
	if vp := item.Meta.VerifyPassed; vp != nil && !*vp {
		ev.VerifyFailed = true
	}
	e.ch <- ev
}

func (e *EventEmitter) JobCompleted(j *Job) {
	e.ch <- event.Event{
		Type:       event.JobCompleted,
		Timestamp:  time.Now(),
		Index:      -1,
		Bytes:      j.BytesCopied,
		TotalItems: int64(len(j.Items)),
		TotalBytes: j.BytesTotal,
	}
}

func outcomeOf(s ItemState) event.Outcome {
	switch s {
	case ItemDone:
		return event.OutcomeDone
	case ItemSkipped:
		return event.OutcomeSkipped
	case ItemFailed:
		return event.OutcomeFailed
	default:
		return 0
	}
}
