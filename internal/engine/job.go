package engine

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/abeckett/ferry/internal/checksum"
	"github.com/abeckett/ferry/internal/filter"
)

// Mode selects what a job does with its source.
type Mode int

const (
	Copy Mode = iota + 1
	Move
)

var modeNames = [...]string{
	Copy: "copy",
	Move: "move",
}

func (m Mode) String() string {
	if m >= 1 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode maps a user-supplied name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "copy":
		return Copy, nil
	case "move":
		return Move, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (use copy or move)", s)
	}
}

// OverwritePolicy decides what happens when a destination file already
// exists.
type OverwritePolicy int

const (
	Skip OverwritePolicy = iota + 1
	Overwrite
	SmartUpdate
	Ask
)

var policyNames = [...]string{
	Skip:        "skip",
	Overwrite:   "overwrite",
	SmartUpdate: "smart",
	Ask:         "ask",
}

func (p OverwritePolicy) String() string {
	if p >= 1 && int(p) < len(policyNames) {
		return policyNames[p]
	}
	return "unknown"
}

// ParseOverwritePolicy maps a user-supplied name to an OverwritePolicy.
func ParseOverwritePolicy(s string) (OverwritePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip":
		return Skip, nil
	case "overwrite":
		return Overwrite, nil
	case "smart", "smartupdate", "smart-update":
		return SmartUpdate, nil
	case "ask":
		return Ask, nil
	default:
		return 0, fmt.Errorf("unknown overwrite policy %q (use skip, overwrite, smart or ask)", s)
	}
}

// JobState is the job lifecycle state. Transitions are monotonic:
// Pending -> Running -> Completed.
type JobState int

const (
	JobPending JobState = iota + 1
	JobRunning
	JobCompleted
)

var jobStateNames = [...]string{
	JobPending:   "pending",
	JobRunning:   "running",
	JobCompleted: "completed",
}

func (s JobState) String() string {
	if s >= 1 && int(s) < len(jobStateNames) {
		return jobStateNames[s]
	}
	return "unknown"
}

// ItemState is the per-item lifecycle state.
type ItemState int

const (
	ItemPending ItemState = iota + 1
	ItemCopying
	ItemDone
	ItemSkipped
	ItemFailed
)

var itemStateNames = [...]string{
	ItemPending: "pending",
	ItemCopying: "copying",
	ItemDone:    "done",
	ItemSkipped: "skipped",
	ItemFailed:  "failed",
}

func (s ItemState) String() string {
	if s >= 1 && int(s) < len(itemStateNames) {
		return itemStateNames[s]
	}
	return "unknown"
}

// Terminal reports whether the state is final. Terminal states are never
// re-entered or replaced.
func (s ItemState) Terminal() bool {
	return s == ItemDone || s == ItemSkipped || s == ItemFailed
}

// Metadata holds per-item verification results and reserved attribute bits.
type Metadata struct {
	SourceChecksum *checksum.Value
	DestChecksum   *checksum.Value
	// VerifyPassed is nil until verification ran for this item.
	VerifyPassed *bool
	// Attributes is reserved for platform file-attribute bits.
	Attributes uint32
}

// Item is one file or directory inside a job.
type Item struct {
	ID          uuid.UUID
	Source      string
	Destination string
	Size        int64 // bytes; 0 for directories
	State       ItemState
	BytesCopied int64
	// ErrorCode is the raw OS error code when one was available, 0
	// otherwise. Set together with ErrorMessage when the item fails;
	// verification problems set ErrorMessage alone.
	ErrorCode    int
	ErrorMessage string
	IsDir        bool
	ModTime      time.Time // source mtime captured at enumeration
	Meta         Metadata
}

func (it *Item) fail(err error) {
	it.State = ItemFailed
	it.ErrorMessage = err.Error()
	if code, ok := OSCode(err); ok {
		it.ErrorCode = code
	}
}

// Spec carries the caller-chosen parameters for a new job.
type Spec struct {
	Source      string
	Destination string
	Mode        Mode            // defaults to Copy
	Policy      OverwritePolicy // defaults to Skip
	Verify      bool
	Algorithm   checksum.Algorithm // used when Verify; defaults to BLAKE3
	Filter      *filter.Chain      // optional excludes and size bounds
	BWLimit     int64              // bytes/sec; 0 means unlimited
}

// Job is one transfer: a source tree, a destination root and the ordered
// work list produced by Plan. A Job is exclusively owned by the goroutine
// driving it; Plan and Execute mutate it in place.
type Job struct {
	ID          uuid.UUID
	Mode        Mode
	Source      string
	Destination string
	Policy      OverwritePolicy
	Items       []Item
	State       JobState
	// Err records a job-level failure from Plan. Invalid-state
	// rejections are returned without being recorded so a rejected call
	// cannot mutate the job.
	Err          error
	BytesTotal   int64 // sum of file sizes to copy, set by Plan
	BytesCopied  int64
	CurrentIndex int // index of the in-flight item; -1 outside Execute
	CreatedAt    time.Time
	StartedAt    time.Time // zero until Execute begins
	FinishedAt   time.Time // zero until Execute completes
	Verify       bool
	Algorithm    checksum.Algorithm

	fltr    *filter.Chain
	limiter *rate.Limiter
}

// NewJob validates the spec and returns a Pending job with an empty item
// list. The source must exist and be a directory; the destination path
// must be non-empty but need not exist yet.
func NewJob(spec Spec) (*Job, error) {
	if strings.TrimSpace(spec.Destination) == "" {
		return nil, newError(KindInvalidPath, "", errors.New("destination path is empty"))
	}

	fi, err := os.Stat(spec.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newError(KindSourceNotFound, spec.Source, err)
		}
		return nil, newError(KindSourceAccessDenied, spec.Source, err)
	}
	if !fi.IsDir() {
		return nil, newError(KindInvalidPath, spec.Source, errors.New("source must be a directory"))
	}

	mode := spec.Mode
	if mode == 0 {
		mode = Copy
	}
	policy := spec.Policy
	if policy == 0 {
		policy = Skip
	}
	algo := spec.Algorithm
	if spec.Verify && algo == 0 {
		algo = checksum.BLAKE3
	}

	j := &Job{
		ID:           uuid.New(),
		Mode:         mode,
		Source:       spec.Source,
		Destination:  spec.Destination,
		Policy:       policy,
		State:        JobPending,
		CurrentIndex: -1,
		CreatedAt:    time.Now(),
		Verify:       spec.Verify,
		Algorithm:    algo,
		fltr:         spec.Filter,
	}
	if spec.BWLimit > 0 {
		j.limiter = NewBWLimiter(spec.BWLimit)
	}
	return j, nil
}

// Plan enumerates the source tree into the job's item list and computes
// the total bytes to copy. It may only run while the job is Pending and
// leaves the state unchanged, so Execute still sees a Pending job.
func (j *Job) Plan() error {
	if j.State != JobPending {
		return newError(KindInvalidState, "",
			fmt.Errorf("plan requires a pending job, state is %s", j.State))
	}

	items, err := enumerateTree(j.Source, j.Destination, j.fltr)
	if err != nil {
		j.Err = err
		return err
	}

	var total int64
	for i := range items {
		if !items[i].IsDir {
			total += items[i].Size
		}
	}
	j.Items = items
	j.BytesTotal = total
	return nil
}

// HasFailures reports whether any item ended Failed.
func (j *Job) HasFailures() bool {
	for i := range j.Items {
		if j.Items[i].State == ItemFailed {
			return true
		}
	}
	return false
}

// HasVerifyFailures reports whether any item's destination digest did not
// match its source digest.
func (j *Job) HasVerifyFailures() bool {
	for i := range j.Items {
		vp := j.Items[i].Meta.VerifyPassed
		if vp != nil && !*vp {
			return true
		}
	}
	return false
}
