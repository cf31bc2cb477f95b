package stats

import (
	"github.com/abeckett/ferry/internal/engine"
)

// Recorder adapts a Collector to the engine's Observer interface, so the
// transfer loop feeds counters without knowing about presenters.
type Recorder struct {
	collector *Collector
}

func NewRecorder(c *Collector) *Recorder {
	return &Recorder{collector: c}
}

func (r *Recorder) JobStarted(j *engine.Job) {
	r.collector.SetTotals(int64(len(j.Items)), j.BytesTotal)
}

func (r *Recorder) ItemStarted(*engine.Job, int, *engine.Item) {}

func (r *Recorder) ItemProgress(j *engine.Job, _ int, _ int64) {
	r.collector.SetBytesCopied(j.BytesCopied)
}

func (r *Recorder) ItemCompleted(_ *engine.Job, _ int, item *engine.Item) {
	switch item.State {
	case engine.ItemDone:
		r.collector.AddItemsDone(1)
	case engine.ItemSkipped:
		r.collector.AddItemsSkipped(1)
	case engine.ItemFailed:
		r.collector.AddItemsFailed(1)
	}
	if vp := item.Meta.VerifyPassed; vp != nil {
		if *vp {
			r.collector.AddItemsVerified(1)
		} else {
			r.collector.AddItemsVerifyFailed(1)
		}
	}
}

func (r *Recorder) JobCompleted(j *engine.Job) {
	r.collector.SetBytesCopied(j.BytesCopied)
}
