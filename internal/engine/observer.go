package engine

// Observer receives progress notifications from Execute, invoked
// synchronously on the executing goroutine. Implementations must return
// quickly: a slow observer stalls the transfer. The job and item
// references are live engine state; read them during the call rather than
// retaining them for concurrent use.
type Observer interface {
	// JobStarted fires once, right after the job enters Running.
	JobStarted(job *Job)
	// ItemStarted fires before each item is processed.
	ItemStarted(job *Job, index int, item *Item)
	// ItemProgress fires after a file's bytes land. copied is the byte
	// count for that file; job.BytesCopied carries the running total.
	ItemProgress(job *Job, index int, copied int64)
	// ItemCompleted fires once per item, with its terminal state set.
	ItemCompleted(job *Job, index int, item *Item)
	// JobCompleted fires once, after the job enters Completed.
	JobCompleted(job *Job)
}

// NopObserver discards every notification.
type NopObserver struct{}

func (NopObserver) JobStarted(*Job)                {}
func (NopObserver) ItemStarted(*Job, int, *Item)   {}
func (NopObserver) ItemProgress(*Job, int, int64)  {}
func (NopObserver) ItemCompleted(*Job, int, *Item) {}
func (NopObserver) JobCompleted(*Job)              {}

// MultiObserver fans every notification out to each observer in order.
func MultiObserver(observers ...Observer) Observer {
	return multiObserver(observers)
}

type multiObserver []Observer

func (m multiObserver) JobStarted(j *Job) {
	for _, o := range m {
		o.JobStarted(j)
	}
}

func (m multiObserver) ItemStarted(j *Job, i int, it *Item) {
	for _, o := range m {
		o.ItemStarted(j, i, it)
	}
}

func (m multiObserver) ItemProgress(j *Job, i int, n int64) {
	for _, o := range m {
		o.ItemProgress(j, i, n)
	}
}

func (m multiObserver) ItemCompleted(j *Job, i int, it *Item) {
	for _, o := range m {
		o.ItemCompleted(j, i, it)
	}
}

func (m multiObserver) JobCompleted(j *Job) {
	for _, o := range m {
		o.JobCompleted(j)
	}
}
