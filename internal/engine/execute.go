package engine

import (
	"fmt"
	"time"
)

// Execute runs the job's work list in order, synchronously, on the calling
// goroutine. It requires a Pending job and rejects anything else, which
// also prevents double execution. Item failures never abort the loop: the
// job always reaches Completed once started, and partial failure is read
// off the final item states. Notifications land on obs in protocol order;
// a nil obs is allowed.
func (j *Job) Execute(obs Observer) error {
	if j.State != JobPending {
		return newError(KindInvalidState, "",
			fmt.Errorf("execute requires a pending job, state is %s", j.State))
	}
	if obs == nil {
		obs = NopObserver{}
	}

	j.StartedAt = time.Now()
	j.State = JobRunning
	obs.JobStarted(j)

	for i := range j.Items {
		j.CurrentIndex = i
		item := &j.Items[i]
		obs.ItemStarted(j, i, item)

		if !shouldCopy(j.Policy, item) {
			item.State = ItemSkipped
			obs.ItemCompleted(j, i, item)
			continue
		}

		if item.IsDir {
			j.processDir(item)
		} else {
			j.processFile(item, i, obs)
		}
		if j.Verify && item.State == ItemDone {
			j.verifyItem(item)
		}
		obs.ItemCompleted(j, i, item)
	}

	j.CurrentIndex = -1
	j.FinishedAt = time.Now()
	j.State = JobCompleted
	obs.JobCompleted(j)
	return nil
}

// processDir materializes the directory's destination parent path. The
// directory itself is created later, when the first descendant file needs
// it.
func (j *Job) processDir(item *Item) {
	item.State = ItemCopying
	if err := ensureParentDir(item.Destination); err != nil {
		item.fail(err)
		return
	}
	item.State = ItemDone
}

func (j *Job) processFile(item *Item, index int, obs Observer) {
	item.State = ItemCopying

	n, err := copyFile(item.Source, item.Destination, item.ModTime, j.limiter)
	if err != nil {
		item.fail(err)
		return
	}

	item.BytesCopied = n
	item.State = ItemDone
	j.BytesCopied += n
	obs.ItemProgress(j, index, n)
}
