package agentcycle

import (
	"sync"
	"time"
)

// SystemClock reads the real monotonic clock and sleeps the calling goroutine
type SystemClock struct{}

// Now returns the current time with monotonic clock reading
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks for d
func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// ManualClock provides a controllable time source for testing.
// Sleep advances the clock instead of blocking, so a run loop driven by a
// ManualClock completes instantly.
type ManualClock struct {
	mu          sync.RWMutex
	currentTime time.Time
	slept       []time.Duration
}

// NewManualClock creates a new manual clock with the given start time
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{
		currentTime: start,
	}
}

// Now returns the current manual time
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime
}

// Set sets the current time
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
}

// Advance advances the current time by the given duration
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
}

// Sleep records d and advances the current time by it
func (c *ManualClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.currentTime = c.currentTime.Add(d)
}

// Slept returns every duration passed to Sleep, in call order
func (c *ManualClock) Slept() []time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]time.Duration, len(c.slept))
	copy(out, c.slept)
	return out
}
