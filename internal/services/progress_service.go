package services

import (
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// ProgressService aggregates focus completions into lifetime and daily statistics.
type ProgressService struct {
	state   *domain.AppState
	tasks   *TaskService
	clock   ports.Clock
	persist *Persister
}

// NewProgressService creates a progress aggregator over the progress slice of state.
func NewProgressService(state *domain.AppState, tasks *TaskService, clock ports.Clock, persist *Persister) *ProgressService {
	return &ProgressService{state: state, tasks: tasks, clock: clock, persist: persist}
}

// Today returns the current local date key.
func (s *ProgressService) Today() string {
	return domain.DateKey(s.clock.Now())
}

// RecordFocusCompletion credits one focus session of durationMinutes to today,
// and to the active task when one is selected.
func (s *ProgressService) RecordFocusCompletion(durationMinutes int) {
	s.state.Progress.RecordFocus(s.Today(), durationMinutes)
	s.persist.Save(KeyProgress, s.state.Progress)

	if s.state.ActiveTaskID != "" {
		s.tasks.IncrementPomodoros(s.state.ActiveTaskID)
	}
}

// Progress returns a copy of the lifetime history.
func (s *ProgressService) Progress() domain.UserProgress {
	return s.state.Progress.Clone()
}

// Report builds the progress summary for today.
func (s *ProgressService) Report() domain.ProgressReport {
	return domain.BuildProgressReport(s.state.Progress, s.state.Tasks, s.state.Settings, s.Today())
}
