package engine

import "time"

// Clock abstracts wall-clock reads and timer scheduling so that the
// publisher's debounce behavior is deterministic under test.
type Clock interface {
	Now() time.Time

	// AfterFunc schedules f to run after d. The returned Timer can be
	// stopped before it fires; each new mutation stops the previous timer
	// and schedules a fresh one, which is what makes rapid mutations
	// coalesce into a single remote write.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the stoppable handle returned by [Clock.AfterFunc].
type Timer interface {
	// Stop prevents the timer from firing. It reports whether the call
	// stopped the timer before it fired.
	Stop() bool
}

// systemClock is the production [Clock] backed by the time package.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock returns the production clock.
func SystemClock() Clock { return systemClock{} }
