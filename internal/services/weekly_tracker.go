package services

import (
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// WeeklyTracker counts tasks completed in the current Monday-based week.
// Every read and write first rolls the record over when the week has changed.
type WeeklyTracker struct {
	state   *domain.AppState
	clock   ports.Clock
	persist *Persister
}

// NewWeeklyTracker creates a tracker over the weekly slice of state.
func NewWeeklyTracker(state *domain.AppState, clock ports.Clock, persist *Persister) *WeeklyTracker {
	return &WeeklyTracker{state: state, clock: clock, persist: persist}
}

func (w *WeeklyTracker) current() *domain.WeeklyProgress {
	if w.state.Weekly.Rollover(w.clock.Now()) {
		w.save()
	}
	return &w.state.Weekly
}

func (w *WeeklyTracker) save() {
	w.persist.Save(KeyWeeklyProgress, w.state.Weekly)
}

// CompleteTask records id for this week. Repeated calls count once.
func (w *WeeklyTracker) CompleteTask(id string) {
	if w.current().Add(id) {
		w.save()
	}
}

// UncompleteTask drops id from this week. Unknown ids are ignored.
func (w *WeeklyTracker) UncompleteTask(id string) {
	if w.current().Remove(id) {
		w.save()
	}
}

// Count returns the number of tasks completed this week.
func (w *WeeklyTracker) Count() int {
	return w.current().Count()
}

// IsTaskCompletedThisWeek reports whether id was completed this week.
func (w *WeeklyTracker) IsTaskCompletedThisWeek(id string) bool {
	return w.current().Contains(id)
}

// Reset empties the current week.
func (w *WeeklyTracker) Reset() {
	w.state.Weekly = domain.NewWeeklyProgress(w.clock.Now())
	w.save()
}

// Snapshot returns a copy of this week's record.
func (w *WeeklyTracker) Snapshot() domain.WeeklyProgress {
	return w.current().Clone()
}
