package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const ringSize = 60

// Collector tracks transfer statistics using lock-free atomic counters.
type Collector struct {
	itemsDone         atomic.Int64
	itemsSkipped      atomic.Int64
	itemsFailed       atomic.Int64
	itemsVerified     atomic.Int64
	itemsVerifyFailed atomic.Int64
	bytesCopied       atomic.Int64
	bytesTotal        atomic.Int64
	itemsTotal        atomic.Int64
	startTime         time.Time

	// Ring buffer, written only by the presenter's Tick(), not by the
	// transfer loop.
	mu         sync.Mutex
	throughput [ringSize]int64 // bytes delta per second
	ringIdx    int
	ringCount  int // samples written so far, capped at ringSize
	lastBytes  int64
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// SetTotals records the planned item and byte totals.
func (c *Collector) SetTotals(items, bytes int64) {
	c.itemsTotal.Store(items)
	c.bytesTotal.Store(bytes)
}

// SetBytesCopied stores the running byte total. The engine carries the
// cumulative count, so this is a store rather than an add.
func (c *Collector) SetBytesCopied(n int64) { c.bytesCopied.Store(n) }

func (c *Collector) AddItemsDone(n int64)         { c.itemsDone.Add(n) }
func (c *Collector) AddItemsSkipped(n int64)      { c.itemsSkipped.Add(n) }
func (c *Collector) AddItemsFailed(n int64)       { c.itemsFailed.Add(n) }
func (c *Collector) AddItemsVerified(n int64)     { c.itemsVerified.Add(n) }
func (c *Collector) AddItemsVerifyFailed(n int64) { c.itemsVerifyFailed.Add(n) }

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	ItemsDone         int64
	ItemsSkipped      int64
	ItemsFailed       int64
	ItemsVerified     int64
	ItemsVerifyFailed int64
	BytesCopied       int64
	BytesTotal        int64
	ItemsTotal        int64
	Elapsed           time.Duration
}

// Processed is the number of items that reached a terminal state.
func (s Snapshot) Processed() int64 {
	return s.ItemsDone + s.ItemsSkipped + s.ItemsFailed
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"done=%d skipped=%d failed=%d bytes=%d",
		s.ItemsDone, s.ItemsSkipped, s.ItemsFailed, s.BytesCopied,
	)
}

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		ItemsDone:         c.itemsDone.Load(),
		ItemsSkipped:      c.itemsSkipped.Load(),
		ItemsFailed:       c.itemsFailed.Load(),
		ItemsVerified:     c.itemsVerified.Load(),
		ItemsVerifyFailed: c.itemsVerifyFailed.Load(),
		BytesCopied:       c.bytesCopied.Load(),
		BytesTotal:        c.bytesTotal.Load(),
		ItemsTotal:        c.itemsTotal.Load(),
		Elapsed:           c.Elapsed(),
	}
}

// Tick snapshots the byte delta into the ring buffer. Called 1/sec by the
// presenter.
func (c *Collector) Tick() {
	currentBytes := c.bytesCopied.Load()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.throughput[c.ringIdx] = currentBytes - c.lastBytes
	c.lastBytes = currentBytes
	c.ringIdx = (c.ringIdx + 1) % ringSize
	if c.ringCount < ringSize {
		c.ringCount++
	}
}

// RollingSpeed returns average bytes/sec over the last n seconds of samples.
func (c *Collector) RollingSpeed(seconds int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := seconds
	if count > c.ringCount {
		count = c.ringCount
	}
	if count == 0 {
		return 0
	}
	var sum int64
	for i := 0; i < count; i++ {
		idx := (c.ringIdx - 1 - i + ringSize) % ringSize
		sum += c.throughput[idx]
	}
	return float64(sum) / float64(count)
}

// ETA estimates remaining time based on rolling speed and remaining bytes.
func (c *Collector) ETA() time.Duration {
	speed := c.RollingSpeed(10)
	if speed <= 0 {
		return 0
	}
	remaining := c.bytesTotal.Load() - c.bytesCopied.Load()
	if remaining <= 0 {
		return 0
	}
	return time.Duration(float64(remaining)/speed) * time.Second
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}
