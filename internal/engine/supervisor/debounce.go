package supervisor

import "time"

// Debouncer implements leading-edge debouncing of restart triggers.
// The first trigger after a quiet period is accepted; the rest of a burst is dropped.
type Debouncer struct {
	window time.Duration
	last   time.Time
}

// NewDebouncer creates a Debouncer whose quiet period starts at start.
func NewDebouncer(window time.Duration, start time.Time) *Debouncer {
	return &Debouncer{
		window: window,
		last:   start,
	}
}

// Allow reports whether a trigger at now is accepted.
// It is accepted only if more than the window has elapsed since the last accepted one.
func (d *Debouncer) Allow(now time.Time) bool {
	if now.Sub(d.last) <= d.window {
		return false
	}
	d.last = now
	return true
}
