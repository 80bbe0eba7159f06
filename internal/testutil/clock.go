package testutil

import (
	"sync"
	"time"
)

// Epoch is the start time of every ManualClock created with NewManualClock.
var Epoch = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

// ManualClock is a wall clock that only moves when told to.
//
// Display and TUI tests use it to step past flash timeouts without sleeping.
// All methods are safe for concurrent use.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a clock stopped at Epoch.
func NewManualClock() *ManualClock {
	return &ManualClock{now: Epoch}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new time.
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Counter is a monotonic sequence. The first call to Next returns 1, so each
// scenario run numbers its steps from 1.
type Counter struct {
	mu  sync.Mutex
	seq int64
}

// NewCounter returns a counter at 0.
func NewCounter() *Counter {
	return &Counter{}
}

// Next increments and returns the sequence.
func (c *Counter) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}
