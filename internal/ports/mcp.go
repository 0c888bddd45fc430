package ports

import (
	"context"

	"github.com/xvierd/pomo-cli/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error
}

// TaskFilter narrows a task listing.
type TaskFilter string

const (
	TaskFilterAll       TaskFilter = "all"
	TaskFilterOpen      TaskFilter = "open"
	TaskFilterCompleted TaskFilter = "completed"
)

// MCPStateProvider exposes application operations to the MCP server.
// This is a driven port (implemented by the services layer).
type MCPStateProvider interface {
	// GetCurrentState returns the timer, active task and today's numbers.
	GetCurrentState(ctx context.Context) (*domain.CurrentState, error)

	// ListTasks returns tasks matching filter.
	ListTasks(ctx context.Context, filter TaskFilter) ([]domain.Task, error)

	// CreateTask adds a task.
	CreateTask(ctx context.Context, title string, estimated int) (domain.Task, error)

	// ToggleTask flips completion of the task referenced by ref.
	ToggleTask(ctx context.Context, ref string) (domain.Task, error)

	// DeleteTask removes the task referenced by ref.
	DeleteTask(ctx context.Context, ref string) (domain.Task, error)

	// SelectTask makes the referenced task active; an empty ref clears the selection.
	SelectTask(ctx context.Context, ref string) (*domain.Task, error)

	// ControlTimer applies a timer command and returns the resulting snapshot.
	ControlTimer(ctx context.Context, cmd TimerCommand) (domain.TimerSnapshot, error)

	// UpdateSettings clamps and applies new timer settings.
	UpdateSettings(ctx context.Context, settings domain.TimerSettings) (domain.TimerSettings, error)

	// GetProgressReport returns the progress summary.
	GetProgressReport(ctx context.Context) (domain.ProgressReport, error)

	// GetWeeklyProgress returns this week's completed tasks.
	GetWeeklyProgress(ctx context.Context) (domain.WeeklyProgress, error)
}
