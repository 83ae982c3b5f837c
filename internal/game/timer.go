package game

import (
	"time"

	"github.com/coder/quartz"
)

// Timer measures active play time. Paused intervals are not counted.
type Timer struct {
	clock   quartz.Clock
	elapsed time.Duration
	since   time.Time
	running bool
}

// NewTimer creates a stopped timer reading from clock
func NewTimer(clock quartz.Clock) *Timer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Timer{clock: clock}
}

// Start clears the timer and begins counting
func (t *Timer) Start() {
	t.elapsed = 0
	t.since = t.clock.Now()
	t.running = true
}

// Pause stops counting, keeping the accumulated time
func (t *Timer) Pause() {
	if !t.running {
		return
	}
	t.elapsed += t.clock.Since(t.since)
	t.running = false
}

// Resume continues counting after Pause
func (t *Timer) Resume() {
	if t.running {
		return
	}
	t.since = t.clock.Now()
	t.running = true
}

// Stop freezes the timer at its current value
func (t *Timer) Stop() {
	t.Pause()
}

// Reset stops the timer and clears it
func (t *Timer) Reset() {
	t.elapsed = 0
	t.running = false
}

// Running reports whether the timer is counting
func (t *Timer) Running() bool {
	return t.running
}

// Elapsed returns the accumulated play time
func (t *Timer) Elapsed() time.Duration {
	if t.running {
		return t.elapsed + t.clock.Since(t.since)
	}
	return t.elapsed
}
