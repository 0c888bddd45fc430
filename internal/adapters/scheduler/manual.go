package scheduler

import (
	"sync"
	"time"

	"github.com/xvierd/pomo-cli/internal/ports"
)

// Manual is a logical clock and scheduler advanced explicitly, for tests.
// Callbacks fire synchronously inside Advance, in due-time order.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	callback  func()
	interval  time.Duration
	next      time.Time
	cancelled bool
}

// Ensure Manual implements the scheduler and clock ports.
var (
	_ ports.Scheduler = (*Manual)(nil)
	_ ports.Clock     = (*Manual)(nil)
)

// NewManual creates a manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the logical time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to t without firing anything.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// ScheduleTick registers callback to fire every interval of logical time.
func (m *Manual) ScheduleTick(callback func(), interval time.Duration) ports.CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()

	if interval <= 0 {
		interval = time.Second
	}
	t := &manualTimer{callback: callback, interval: interval, next: m.now.Add(interval)}
	m.timers = append(m.timers, t)

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		t.cancelled = true
		m.prune()
	}
}

// Pending returns the number of live schedules.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Advance moves the clock forward by d, firing every tick that falls due on the way.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	for {
		t := m.due(target)
		if t == nil {
			break
		}
		m.now = t.next
		t.next = t.next.Add(t.interval)

		m.mu.Unlock()
		t.callback()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

// due returns the earliest live timer due at or before target.
func (m *Manual) due(target time.Time) *manualTimer {
	var earliest *manualTimer
	for _, t := range m.timers {
		if t.cancelled || t.next.After(target) {
			continue
		}
		if earliest == nil || t.next.Before(earliest.next) {
			earliest = t
		}
	}
	return earliest
}

func (m *Manual) prune() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.timers = live
}
