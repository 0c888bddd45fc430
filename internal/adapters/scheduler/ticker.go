// Package scheduler provides tick sources and clocks for the timer engine.
package scheduler

import (
	"sync"
	"time"

	"github.com/xvierd/pomo-cli/internal/ports"
)

// Ticker schedules callbacks on a real time.Ticker.
type Ticker struct{}

// Ensure Ticker implements ports.Scheduler.
var _ ports.Scheduler = Ticker{}

// NewTicker creates a wall-clock scheduler.
func NewTicker() Ticker {
	return Ticker{}
}

// ScheduleTick calls callback on its own goroutine every interval until cancelled.
// Cancellation only signals the goroutine, so it is safe to call while holding
// a lock that callback also takes.
func (Ticker) ScheduleTick(callback func(), interval time.Duration) ports.CancelFunc {
	t := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				select {
				case <-done:
					return
				default:
				}
				callback()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
