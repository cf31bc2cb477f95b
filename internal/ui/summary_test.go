package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/abeckett/ferry/internal/stats"
)

func TestCompletionSummary(t *testing.T) {
	s := CompletionSummary(stats.Snapshot{
		ItemsDone:   48917,
		BytesCopied: 2 << 30,
		Elapsed:     3*time.Minute + 17*time.Second,
	})

	assert.Contains(t, s, "done ✓")
	assert.Contains(t, s, "items 48,917")
	assert.Contains(t, s, "2.0 GiB")
	assert.Contains(t, s, "time 3m 17s")
	assert.Contains(t, s, "errors 0")
	assert.NotContains(t, s, "verified")
	assert.NotContains(t, s, "skipped")
}

func TestCompletionSummaryFailures(t *testing.T) {
	s := CompletionSummary(stats.Snapshot{
		ItemsDone:   10,
		ItemsFailed: 2,
		Elapsed:     time.Second,
	})

	assert.Contains(t, s, "done ✗")
	assert.Contains(t, s, "errors 2")
}

func TestCompletionSummaryVerification(t *testing.T) {
	s := CompletionSummary(stats.Snapshot{
		ItemsDone:         5,
		ItemsSkipped:      3,
		ItemsVerified:     4,
		ItemsVerifyFailed: 1,
		Elapsed:           time.Second,
	})

	assert.Contains(t, s, "done ✗")
	assert.Contains(t, s, "skipped 3")
	assert.Contains(t, s, "verified 4")
	assert.Contains(t, s, "errors 1")
}
