package domain

import (
	"slices"
	"time"
)

// DefaultWeeklyTarget is the number of completed tasks a week is measured against.
const DefaultWeeklyTarget = 10

// WeeklyProgress lists the tasks completed during the current Monday-based week.
type WeeklyProgress struct {
	WeekStartDate    string   `json:"weekStartDate" yaml:"weekStartDate"`
	CompletedTaskIDs []string `json:"completedTasks" yaml:"completedTasks"`
}

// NewWeeklyProgress starts an empty week containing now.
func NewWeeklyProgress(now time.Time) WeeklyProgress {
	return WeeklyProgress{WeekStartDate: WeekStart(now), CompletedTaskIDs: []string{}}
}

// Rollover empties the record if now falls in a different week. It reports whether it did.
func (w *WeeklyProgress) Rollover(now time.Time) bool {
	start := WeekStart(now)
	if w.WeekStartDate == start {
		return false
	}
	*w = WeeklyProgress{WeekStartDate: start, CompletedTaskIDs: []string{}}
	return true
}

// Add records a task id once. It reports whether the set changed.
func (w *WeeklyProgress) Add(id string) bool {
	if w.Contains(id) {
		return false
	}
	w.CompletedTaskIDs = append(w.CompletedTaskIDs, id)
	return true
}

// Remove drops a task id. It reports whether the set changed.
func (w *WeeklyProgress) Remove(id string) bool {
	i := slices.Index(w.CompletedTaskIDs, id)
	if i < 0 {
		return false
	}
	w.CompletedTaskIDs = slices.Delete(w.CompletedTaskIDs, i, i+1)
	return true
}

// Contains reports whether the task was completed this week.
func (w WeeklyProgress) Contains(id string) bool {
	return slices.Contains(w.CompletedTaskIDs, id)
}

// Count returns the number of tasks completed this week.
func (w WeeklyProgress) Count() int {
	return len(w.CompletedTaskIDs)
}

// Clone returns a copy that shares no slice with w.
func (w WeeklyProgress) Clone() WeeklyProgress {
	return WeeklyProgress{WeekStartDate: w.WeekStartDate, CompletedTaskIDs: slices.Clone(w.CompletedTaskIDs)}
}

// Dedupe removes repeated ids, keeping first occurrences.
func (w *WeeklyProgress) Dedupe() {
	seen := make(map[string]struct{}, len(w.CompletedTaskIDs))
	out := w.CompletedTaskIDs[:0]
	for _, id := range w.CompletedTaskIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	w.CompletedTaskIDs = out
}

// WeekRange returns the Monday and Sunday date keys of the week.
func (w WeeklyProgress) WeekRange() (monday, sunday string) {
	sunday, err := AddDays(w.WeekStartDate, 6)
	if err != nil {
		return w.WeekStartDate, ""
	}
	return w.WeekStartDate, sunday
}

// PercentOf returns the completed count against target, capped at 100.
func (w WeeklyProgress) PercentOf(target int) float64 {
	if target <= 0 {
		return 0
	}
	p := float64(w.Count()) / float64(target) * 100
	if p > 100 {
		return 100
	}
	return p
}
