package services

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// TaskService handles task-related use cases.
// Unknown task ids are no-ops reported through the ok result, never errors.
type TaskService struct {
	state   *domain.AppState
	weekly  *WeeklyTracker
	clock   ports.Clock
	persist *Persister
}

// NewTaskService creates a task service over the task slice of state.
func NewTaskService(state *domain.AppState, weekly *WeeklyTracker, clock ports.Clock, persist *Persister) *TaskService {
	return &TaskService{state: state, weekly: weekly, clock: clock, persist: persist}
}

func (s *TaskService) save() {
	s.persist.Save(KeyTasks, s.state.Tasks)
}

func (s *TaskService) index(id string) int {
	for i, t := range s.state.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// AddTask creates a task with a clamped estimate.
func (s *TaskService) AddTask(title string, estimated int) (domain.Task, error) {
	task, err := domain.NewTask(title, estimated, s.clock.Now())
	if err != nil {
		return domain.Task{}, fmt.Errorf("invalid task: %w", err)
	}
	s.state.Tasks = append(s.state.Tasks, task)
	s.save()
	return task, nil
}

// ListTasks returns a copy of every task in creation order.
func (s *TaskService) ListTasks() []domain.Task {
	return domain.CloneTasks(s.state.Tasks)
}

// GetTask returns the task with id.
func (s *TaskService) GetTask(id string) (domain.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return domain.Task{}, false
	}
	return s.state.Tasks[i], true
}

// EditTask applies patch to the task with id.
func (s *TaskService) EditTask(id string, patch domain.TaskPatch) (domain.Task, bool, error) {
	i := s.index(id)
	if i < 0 {
		return domain.Task{}, false, nil
	}
	edited := s.state.Tasks[i]
	if err := edited.Apply(patch); err != nil {
		return s.state.Tasks[i], true, fmt.Errorf("invalid task: %w", err)
	}
	s.state.Tasks[i] = edited
	s.save()
	return edited, true, nil
}

// ToggleTaskCompletion flips completion and updates the weekly tracker in the same step.
func (s *TaskService) ToggleTaskCompletion(id string) (domain.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return domain.Task{}, false
	}
	s.state.Tasks[i].Toggle()
	task := s.state.Tasks[i]
	s.save()

	if task.Completed {
		s.weekly.CompleteTask(id)
	} else {
		s.weekly.UncompleteTask(id)
	}
	return task, true
}

// DeleteTask removes the task and releases its weekly membership.
func (s *TaskService) DeleteTask(id string) (domain.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return domain.Task{}, false
	}
	task := s.state.Tasks[i]
	s.state.Tasks = append(s.state.Tasks[:i:i], s.state.Tasks[i+1:]...)
	s.save()
	s.weekly.UncompleteTask(id)
	return task, true
}

// ClearFinished removes every completed task and returns the removed ids.
func (s *TaskService) ClearFinished() []string {
	return s.removeWhere(func(t domain.Task) bool { return t.Completed })
}

// ClearAll removes every task and returns the removed ids.
func (s *TaskService) ClearAll() []string {
	return s.removeWhere(func(domain.Task) bool { return true })
}

func (s *TaskService) removeWhere(match func(domain.Task) bool) []string {
	var removed []string
	kept := make([]domain.Task, 0, len(s.state.Tasks))
	for _, t := range s.state.Tasks {
		if match(t) {
			removed = append(removed, t.ID)
			continue
		}
		kept = append(kept, t)
	}
	if len(removed) == 0 {
		return nil
	}
	s.state.Tasks = kept
	s.save()
	for _, id := range removed {
		s.weekly.UncompleteTask(id)
	}
	return removed
}

// IncrementPomodoros credits one pomodoro to the task, completed or not.
func (s *TaskService) IncrementPomodoros(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.state.Tasks[i].ActualPomodoros++
	s.save()
	return true
}

// ResolveTask finds a task by exact id, then unique id prefix, then best fuzzy title match.
func (s *TaskService) ResolveTask(ref string) (domain.Task, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Task{}, false
	}
	if t, ok := s.GetTask(ref); ok {
		return t, true
	}

	var prefixed []domain.Task
	for _, t := range s.state.Tasks {
		if strings.HasPrefix(t.ID, ref) {
			prefixed = append(prefixed, t)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], true
	}

	titles := make([]string, len(s.state.Tasks))
	for i, t := range s.state.Tasks {
		titles[i] = t.Title
	}
	matches := fuzzy.Find(ref, titles)
	if len(matches) == 0 {
		return domain.Task{}, false
	}
	return s.state.Tasks[matches[0].Index], true
}
