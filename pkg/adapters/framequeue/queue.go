// Package framequeue provides a manually driven animation-frame scheduler.
package framequeue

import (
	"sync"
	"time"

	"github.com/user/scrollytell/pkg/ports"
)

// Queue collects frame callbacks and runs them when Tick is called,
// the way a browser runs requestAnimationFrame callbacks once per rendered frame.
type Queue struct {
	mu       sync.Mutex
	pending  []func(time.Duration)
	ticks    int
	requests int
}

// New creates an empty Queue.
func New() *Queue {
	return &Queue{}
}

// RequestFrame schedules fn for the next Tick.
func (q *Queue) RequestFrame(fn func(now time.Duration)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, fn)
	q.requests++
}

// Tick runs the callbacks queued before this call.
// Callbacks requested while ticking run on the following Tick.
// It returns the number of callbacks run.
func (q *Queue) Tick(now time.Duration) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.ticks++
	q.mu.Unlock()

	for _, fn := range batch {
		fn(now)
	}
	return len(batch)
}

// Pending returns the number of queued callbacks.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Requests returns how many callbacks have been requested in total.
func (q *Queue) Requests() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.requests
}

// Ticks returns how many frames have been run.
func (q *Queue) Ticks() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ticks
}

// Ensure Queue implements ports.FrameScheduler
var _ ports.FrameScheduler = (*Queue)(nil)
