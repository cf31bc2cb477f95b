package engine

import "os"

// Action is a transfer decision.
type Action int

const (
	ActionCopy Action = iota + 1
	ActionSkip
)

var actionNames = [...]string{
	ActionCopy: "copy",
	ActionSkip: "skip",
}

func (a Action) String() string {
	if a >= 1 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Decide is the pure policy decision: whether a file should be copied
// given the configured policy and the destination's current state. A
// missing destination is always copied, whatever the policy.
func Decide(policy OverwritePolicy, dstExists bool, srcSize, dstSize int64) Action {
	if !dstExists {
		return ActionCopy
	}

	switch policy {
	case Overwrite:
		return ActionCopy
	case SmartUpdate:
		if srcSize != dstSize {
			return ActionCopy
		}
		return ActionSkip
	case Skip, Ask:
		// Ask degrades to skip without an interactive front-end.
		return ActionSkip
	default:
		return ActionSkip
	}
}

// shouldCopy applies Decide to one item against the live destination.
// Directories always copy, since descendant placement depends on them.
// A destination stat failure is treated as absent, so the copy gets
// attempted rather than silently skipped.
func shouldCopy(policy OverwritePolicy, item *Item) bool {
	if item.IsDir {
		return true
	}

	fi, err := os.Stat(item.Destination)
	if err != nil {
		return true
	}
	return Decide(policy, true, item.Size, fi.Size()) == ActionCopy
}

// WouldCopy reports the action Execute would take for the item against
// the destination's current state. Used for dry-run previews.
func (j *Job) WouldCopy(item *Item) Action {
	if shouldCopy(j.Policy, item) {
		return ActionCopy
	}
	return ActionSkip
}
