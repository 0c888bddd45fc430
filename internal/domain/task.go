// Package domain contains the core entities of the pomodoro tracker.
// These types hold the pure rules (clamping, mode rotation, streaks, week
// boundaries) and are independent of storage, scheduling or presentation.
package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Common domain errors.
var (
	ErrEmptyTaskTitle = errors.New("task title cannot be empty")
	ErrTaskNotFound   = errors.New("task not found")
	ErrInvalidMode    = errors.New("invalid timer mode")
)

// Bounds for estimated pomodoros on a task.
const (
	MinEstimatedPomodoros = 1
	MaxEstimatedPomodoros = 50
)

// Task is a unit of work with a pomodoro estimate.
type Task struct {
	ID                 string    `json:"id" yaml:"id"`
	Title              string    `json:"title" yaml:"title"`
	EstimatedPomodoros int       `json:"estimatedPomodoros" yaml:"estimatedPomodoros"`
	ActualPomodoros    int       `json:"actualPomodoros" yaml:"actualPomodoros"`
	Completed          bool      `json:"completed" yaml:"completed"`
	CreatedAt          time.Time `json:"createdAt" yaml:"createdAt"`
}

// TaskPatch describes an edit; nil fields are left unchanged.
type TaskPatch struct {
	Title              *string
	EstimatedPomodoros *int
	ActualPomodoros    *int
}

// NewTask creates a task with a trimmed title and a clamped estimate.
func NewTask(title string, estimated int, createdAt time.Time) (Task, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return Task{}, err
	}
	return Task{
		ID:                 generateID(),
		Title:              title,
		EstimatedPomodoros: ClampEstimate(estimated),
		CreatedAt:          createdAt.UTC(),
	}, nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTaskTitle
	}
	return title, nil
}

// ClampEstimate bounds an estimate to [1, 50]; zero means unset and becomes 1.
func ClampEstimate(n int) int {
	return ClampInt(n, MinEstimatedPomodoros, MaxEstimatedPomodoros)
}

// ClampActual keeps an actual pomodoro count non-negative.
func ClampActual(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Apply edits the task in place. An empty title is rejected and leaves the task untouched.
func (t *Task) Apply(p TaskPatch) error {
	title := t.Title
	if p.Title != nil {
		normalized, err := normalizeTitle(*p.Title)
		if err != nil {
			return err
		}
		title = normalized
	}
	t.Title = title
	if p.EstimatedPomodoros != nil {
		t.EstimatedPomodoros = ClampEstimate(*p.EstimatedPomodoros)
	}
	if p.ActualPomodoros != nil {
		t.ActualPomodoros = ClampActual(*p.ActualPomodoros)
	}
	return nil
}

// Toggle flips the completion flag.
func (t *Task) Toggle() {
	t.Completed = !t.Completed
}

// IsValid reports whether a task loaded from storage is usable.
func (t Task) IsValid() bool {
	return t.ID != "" && strings.TrimSpace(t.Title) != ""
}

// PomodoroLabel renders "actual/estimated".
func (t Task) PomodoroLabel() string {
	return strconv.Itoa(t.ActualPomodoros) + "/" + strconv.Itoa(t.EstimatedPomodoros)
}

// CloneTasks returns an independent copy of a task slice.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
