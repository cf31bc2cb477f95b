package ui

import (
	"fmt"

	"github.com/abeckett/ferry/internal/stats"
)

// CompletionSummary builds a final summary line from a snapshot.
// Format: done ✓  items 48,917  size 2.1 GiB  avg 641 MB/s  time 3m 17s  errors 0
func CompletionSummary(snap stats.Snapshot) string {
	avgSpeed := 0.0
	if snap.Elapsed.Seconds() > 0 {
		avgSpeed = float64(snap.BytesCopied) / snap.Elapsed.Seconds()
	}

	icon := "✓"
	if snap.ItemsFailed > 0 || snap.ItemsVerifyFailed > 0 {
		icon = "✗"
	}

	base := fmt.Sprintf("done %s  items %s  size %s  avg %s  time %s",
		icon,
		FormatCount(snap.ItemsDone),
		FormatBytes(snap.BytesCopied),
		FormatRate(avgSpeed),
		FormatDuration(snap.Elapsed),
	)

	if snap.ItemsSkipped > 0 {
		base += fmt.Sprintf("  skipped %s", FormatCount(snap.ItemsSkipped))
	}
	if snap.ItemsVerified > 0 || snap.ItemsVerifyFailed > 0 {
		base += fmt.Sprintf("  verified %s", FormatCount(snap.ItemsVerified))
	}

	base += fmt.Sprintf("  errors %d", snap.ItemsFailed+snap.ItemsVerifyFailed)

	return base
}
