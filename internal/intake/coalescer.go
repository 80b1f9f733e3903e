package intake

import (
	"context"
	"log"
	"sync"
	"time"
)

// FlushFunc persists one user's accumulated delta. It must be all-or-nothing
// (a single relative UPDATE) so that a failed flush can be retried without
// double-counting.
type FlushFunc func(ctx context.Context, userKey string, deltaML int) error

// Coalescer batches rapid water-intake taps into a single write per user.
// Deltas accumulate in memory and a single scheduled flush pushes them to
// the store, so ten "+1 cup" taps in a row cost one UPDATE instead of ten.
//
// Failed flushes are re-queued; the next tap or flush cycle retries them.
type Coalescer struct {
	mu      sync.Mutex
	pending map[string]int
	timer   *time.Timer
	closed  bool

	delay time.Duration
	flush FlushFunc
}

func NewCoalescer(delay time.Duration, flush FlushFunc) *Coalescer {
	return &Coalescer{
		pending: make(map[string]int),
		delay:   delay,
		flush:   flush,
	}
}

// Add records a pending delta for the user and schedules a flush if one is
// not already scheduled.
func (c *Coalescer) Add(userKey string, deltaML int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.pending[userKey] += deltaML
	if c.timer == nil {
		c.timer = time.AfterFunc(c.delay, c.flushDue)
	}
}

// Pending returns the not-yet-flushed delta for a user.
func (c *Coalescer) Pending(userKey string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending[userKey]
}

func (c *Coalescer) flushDue() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c.Flush(ctx)
}

// Flush synchronously writes out all pending deltas. Deltas that fail to
// persist go back into the pending map for the next cycle.
func (c *Coalescer) Flush(ctx context.Context) {
	c.mu.Lock()
	batch := c.pending
	c.pending = make(map[string]int)
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	for userKey, delta := range batch {
		if delta == 0 {
			continue
		}
		if err := c.flush(ctx, userKey, delta); err != nil {
			log.Printf("Coalescer: flush failed for %s (%+d ml), re-queueing: %v", userKey, delta, err)
			c.requeue(userKey, delta)
		}
	}
}

func (c *Coalescer) requeue(userKey string, deltaML int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending[userKey] += deltaML
	if c.timer == nil && !c.closed {
		c.timer = time.AfterFunc(c.delay, c.flushDue)
	}
}

// Close flushes whatever is pending and stops accepting new deltas. Called
// on shutdown so taps received just before SIGINT still land.
func (c *Coalescer) Close(ctx context.Context) {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.Flush(ctx)
}
