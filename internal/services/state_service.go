package services

import (
	"context"
	"fmt"

	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// StateService implements the MCPStateProvider interface on top of App.
// Task references are resolved by id, id prefix or title; a reference that
// matches nothing is reported as ErrTaskNotFound to the caller.
type StateService struct {
	app *App
}

// NewStateService creates a new state service.
func NewStateService(app *App) *StateService {
	return &StateService{app: app}
}

// GetCurrentState implements ports.MCPStateProvider.
func (s *StateService) GetCurrentState(ctx context.Context) (*domain.CurrentState, error) {
	return s.app.CurrentState(), nil
}

// ListTasks implements ports.MCPStateProvider.
func (s *StateService) ListTasks(ctx context.Context, filter ports.TaskFilter) ([]domain.Task, error) {
	tasks := s.app.Tasks()
	if filter == "" || filter == ports.TaskFilterAll {
		return tasks, nil
	}
	wantCompleted := filter == ports.TaskFilterCompleted
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed == wantCompleted {
			out = append(out, t)
		}
	}
	return out, nil
}

// CreateTask implements ports.MCPStateProvider.
func (s *StateService) CreateTask(ctx context.Context, title string, estimated int) (domain.Task, error) {
	return s.app.AddTask(title, estimated)
}

func (s *StateService) resolve(ref string) (domain.Task, error) {
	t, ok := s.app.ResolveTask(ref)
	if !ok {
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, ref)
	}
	return t, nil
}

// ToggleTask implements ports.MCPStateProvider.
func (s *StateService) ToggleTask(ctx context.Context, ref string) (domain.Task, error) {
	t, err := s.resolve(ref)
	if err != nil {
		return domain.Task{}, err
	}
	toggled, ok := s.app.ToggleTaskCompletion(t.ID)
	if !ok {
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, ref)
	}
	return toggled, nil
}

// DeleteTask implements ports.MCPStateProvider.
func (s *StateService) DeleteTask(ctx context.Context, ref string) (domain.Task, error) {
	t, err := s.resolve(ref)
	if err != nil {
		return domain.Task{}, err
	}
	deleted, ok := s.app.DeleteTask(t.ID)
	if !ok {
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, ref)
	}
	return deleted, nil
}

// SelectTask implements ports.MCPStateProvider.
func (s *StateService) SelectTask(ctx context.Context, ref string) (*domain.Task, error) {
	if ref == "" {
		s.app.SelectTask("")
		return nil, nil
	}
	t, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	if !s.app.SelectTask(t.ID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, ref)
	}
	return &t, nil
}

// ControlTimer implements ports.MCPStateProvider.
func (s *StateService) ControlTimer(ctx context.Context, cmd ports.TimerCommand) (domain.TimerSnapshot, error) {
	switch cmd {
	case ports.CmdStart:
		return s.app.StartTimer(), nil
	case ports.CmdPause:
		return s.app.PauseTimer(), nil
	case ports.CmdToggle:
		return s.app.ToggleTimer(), nil
	case ports.CmdReset:
		return s.app.ResetTimer(), nil
	case ports.CmdSkip:
		return s.app.SkipTimer(), nil
	case ports.CmdFocus:
		return s.app.SwitchMode(domain.ModeFocus)
	case ports.CmdBreak:
		return s.app.SwitchMode(domain.ModeBreak)
	case ports.CmdLongBreak:
		return s.app.SwitchMode(domain.ModeLongBreak)
	default:
		return s.app.Timer(), fmt.Errorf("unknown timer command %q", cmd)
	}
}

// UpdateSettings implements ports.MCPStateProvider.
func (s *StateService) UpdateSettings(ctx context.Context, settings domain.TimerSettings) (domain.TimerSettings, error) {
	return s.app.UpdateSettings(settings), nil
}

// GetProgressReport implements ports.MCPStateProvider.
func (s *StateService) GetProgressReport(ctx context.Context) (domain.ProgressReport, error) {
	return s.app.ProgressReport(), nil
}

// GetWeeklyProgress implements ports.MCPStateProvider.
func (s *StateService) GetWeeklyProgress(ctx context.Context) (domain.WeeklyProgress, error) {
	return s.app.WeeklyProgress(), nil
}

// Ensure StateService implements MCPStateProvider.
var _ ports.MCPStateProvider = (*StateService)(nil)
