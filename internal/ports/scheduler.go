package ports

import "time"

// CancelFunc stops a scheduled tick. It is safe to call more than once
// and never blocks waiting for an in-flight callback.
type CancelFunc func()

// Scheduler delivers periodic ticks to the timer engine.
// This is a driven port (implemented by the scheduler adapter).
type Scheduler interface {
	// ScheduleTick calls callback every interval until cancelled.
	ScheduleTick(callback func(), interval time.Duration) CancelFunc
}

// Clock supplies the current time for date keys and week boundaries.
type Clock interface {
	Now() time.Time
}
