// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	weeklyTarget  int
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider, weeklyTarget int) *Server {
	if weeklyTarget <= 0 {
		weeklyTarget = domain.DefaultWeeklyTarget
	}
	s := &Server{
		stateProvider: stateProvider,
		weeklyTarget:  weeklyTarget,
	}

	s.server = server.NewMCPServer(
		"pomo",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_current_state",
			mcp.WithDescription("Get the timer state, the active task and today's focus numbers"),
		),
		s.handleGetCurrentState,
	)

	s.server.AddTool(
		mcp.NewTool(
			"list_tasks",
			mcp.WithDescription("List tasks, optionally filtered by completion"),
			mcp.WithString(
				"status",
				mcp.Description("Filter tasks: all, open, completed"),
				mcp.Enum("all", "open", "completed"),
			),
		),
		s.handleListTasks,
	)

	s.server.AddTool(
		mcp.NewTool(
			"create_task",
			mcp.WithDescription("Create a task with an estimated number of pomodoros"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
			mcp.WithNumber("estimated_pomodoros", mcp.Description("Estimated pomodoros, 1 to 50 (default: 1)")),
		),
		s.handleCreateTask,
	)

	s.server.AddTool(
		mcp.NewTool(
			"toggle_task",
			mcp.WithDescription("Mark a task completed, or reopen a completed one"),
			mcp.WithString("task", mcp.Required(), mcp.Description("Task ID, ID prefix or title")),
		),
		s.handleToggleTask,
	)

	s.server.AddTool(
		mcp.NewTool(
			"delete_task",
			mcp.WithDescription("Delete a task"),
			mcp.WithString("task", mcp.Required(), mcp.Description("Task ID, ID prefix or title")),
		),
		s.handleDeleteTask,
	)

	s.server.AddTool(
		mcp.NewTool(
			"select_task",
			mcp.WithDescription("Choose the task credited with completed focus sessions; omit task to clear"),
			mcp.WithString("task", mcp.Description("Task ID, ID prefix or title")),
		),
		s.handleSelectTask,
	)

	s.server.AddTool(
		mcp.NewTool(
			"control_timer",
			mcp.WithDescription("Start, pause, reset or skip the timer, or switch its mode"),
			mcp.WithString(
				"action",
				mcp.Required(),
				mcp.Description("Timer action"),
				mcp.Enum("start", "pause", "toggle", "reset", "skip", "focus", "break", "longBreak"),
			),
		),
		s.handleControlTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"update_settings",
			mcp.WithDescription("Change session lengths; omitted values stay as they are"),
			mcp.WithNumber("focus_duration", mcp.Description("Focus minutes, 1 to 60")),
			mcp.WithNumber("break_duration", mcp.Description("Break minutes, 1 to 30")),
			mcp.WithNumber("long_break_duration", mcp.Description("Long break minutes, 1 to 60")),
			mcp.WithNumber("long_break_interval", mcp.Description("Focus sessions per long break, 1 to 10")),
		),
		s.handleUpdateSettings,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_progress",
			mcp.WithDescription("Get lifetime totals, streak, today, the last seven days and top tasks"),
		),
		s.handleGetProgress,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_weekly_progress",
			mcp.WithDescription("Get the tasks completed this week against the weekly goal"),
		),
		s.handleGetWeeklyProgress,
	)
}

// Start serves MCP requests over stdio until ctx is cancelled or stdin closes.
func (s *Server) Start(ctx context.Context) error {
	return server.NewStdioServer(s.server).Listen(ctx, os.Stdin, os.Stdout)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func taskData(t domain.Task) map[string]interface{} {
	return map[string]interface{}{
		"id":                  t.ID,
		"title":               t.Title,
		"estimated_pomodoros": t.EstimatedPomodoros,
		"actual_pomodoros":    t.ActualPomodoros,
		"completed":           t.Completed,
		"created_at":          t.CreatedAt.Format(time.RFC3339),
	}
}

func timerData(snap domain.TimerSnapshot) map[string]interface{} {
	return map[string]interface{}{
		"mode":                     string(snap.State.Mode),
		"mode_label":               snap.State.Mode.Label(),
		"time_remaining":           snap.FormattedTime,
		"time_remaining_seconds":   snap.State.TimeRemainingSeconds,
		"is_running":               snap.State.IsRunning,
		"completed_focus_sessions": snap.State.CompletedFocusSessions,
		"progress":                 snap.Progress,
	}
}

// handleGetCurrentState handles the get_current_state tool.
func (s *Server) handleGetCurrentState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.GetCurrentState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current state: %w", err)
	}

	result := map[string]interface{}{
		"timer":       timerData(state.Timer),
		"active_task": nil,
		"today_stats": map[string]interface{}{
			"date":                state.Today.Date,
			"pomodoros_completed": state.Today.PomodorosCompleted,
			"focus_time":          domain.FormatMinutes(state.Today.FocusTimeMinutes),
		},
		"current_streak":         state.Streak,
		"weekly_tasks_completed": state.WeeklyCount,
	}
	if state.ActiveTask != nil {
		result["active_task"] = taskData(*state.ActiveTask)
	}

	return jsonResult(result)
}

// handleListTasks handles the list_tasks tool.
func (s *Server) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := request.GetString("status", string(ports.TaskFilterAll))

	tasks, err := s.stateProvider.ListTasks(ctx, ports.TaskFilter(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	list := make([]map[string]interface{}, 0, len(tasks))
	for _, t := range tasks {
		list = append(list, taskData(t))
	}

	return jsonResult(map[string]interface{}{
		"tasks":         list,
		"total_count":   len(list),
		"filter_status": status,
	})
}

// handleCreateTask handles the create_task tool.
func (s *Server) handleCreateTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required: " + err.Error()), nil
	}
	estimated := int(request.GetFloat("estimated_pomodoros", 1))

	task, err := s.stateProvider.CreateTask(ctx, title, estimated)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create task: %v", err)), nil
	}
	return jsonResult(taskData(task))
}

// handleToggleTask handles the toggle_task tool.
func (s *Server) handleToggleTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := request.RequireString("task")
	if err != nil {
		return mcp.NewToolResultError("task is required: " + err.Error()), nil
	}
	task, err := s.stateProvider.ToggleTask(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle task: %v", err)), nil
	}
	return jsonResult(taskData(task))
}

// handleDeleteTask handles the delete_task tool.
func (s *Server) handleDeleteTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := request.RequireString("task")
	if err != nil {
		return mcp.NewToolResultError("task is required: " + err.Error()), nil
	}
	task, err := s.stateProvider.DeleteTask(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete task: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{"deleted": taskData(task)})
}

// handleSelectTask handles the select_task tool.
func (s *Server) handleSelectTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref := request.GetString("task", "")
	task, err := s.stateProvider.SelectTask(ctx, ref)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to select task: %v", err)), nil
	}
	if task == nil {
		return jsonResult(map[string]interface{}{"active_task": nil})
	}
	return jsonResult(map[string]interface{}{"active_task": taskData(*task)})
}

// handleControlTimer handles the control_timer tool.
func (s *Server) handleControlTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	action, err := request.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError("action is required: " + err.Error()), nil
	}
	cmd, ok := ports.ParseTimerCommand(action)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown action %q", action)), nil
	}
	snap, err := s.stateProvider.ControlTimer(ctx, cmd)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s timer: %v", action, err)), nil
	}
	return jsonResult(timerData(snap))
}

// handleUpdateSettings handles the update_settings tool.
func (s *Server) handleUpdateSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.GetCurrentState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current state: %w", err)
	}

	settings := state.Timer.Settings
	if v := int(request.GetFloat("focus_duration", 0)); v != 0 {
		settings.FocusDuration = v
	}
	if v := int(request.GetFloat("break_duration", 0)); v != 0 {
		settings.BreakDuration = v
	}
	if v := int(request.GetFloat("long_break_duration", 0)); v != 0 {
		settings.LongBreakDuration = v
	}
	if v := int(request.GetFloat("long_break_interval", 0)); v != 0 {
		settings.LongBreakInterval = v
	}

	applied, err := s.stateProvider.UpdateSettings(ctx, settings)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update settings: %v", err)), nil
	}
	return jsonResult(map[string]interface{}{
		"focus_duration":      applied.FocusDuration,
		"break_duration":      applied.BreakDuration,
		"long_break_duration": applied.LongBreakDuration,
		"long_break_interval": applied.LongBreakInterval,
	})
}

// handleGetProgress handles the get_progress tool.
func (s *Server) handleGetProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.stateProvider.GetProgressReport(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	days := make([]map[string]interface{}, 0, len(report.LastSevenDays))
	for _, d := range report.LastSevenDays {
		days = append(days, map[string]interface{}{
			"date":                d.Date,
			"focus_minutes":       d.FocusTimeMinutes,
			"pomodoros_completed": d.PomodorosCompleted,
		})
	}
	top := make([]map[string]interface{}, 0, len(report.TopTasks))
	for _, t := range report.TopTasks {
		top = append(top, map[string]interface{}{
			"task_id":    t.TaskID,
			"title":      t.Title,
			"pomodoros":  t.Pomodoros,
			"focus_time": domain.FormatMinutes(t.FocusTimeMinutes),
		})
	}

	return jsonResult(map[string]interface{}{
		"total_focus_time":          domain.FormatMinutes(report.TotalFocusTimeMinutes),
		"total_focus_minutes":       report.TotalFocusTimeMinutes,
		"total_pomodoros_completed": report.TotalPomodorosCompleted,
		"current_streak":            report.CurrentStreak,
		"today": map[string]interface{}{
			"focus_minutes":       report.Today.FocusTimeMinutes,
			"pomodoros_completed": report.Today.PomodorosCompleted,
		},
		"last_seven_days": days,
		"top_tasks":       top,
		"tasks_completed": report.TasksCompleted,
		"tasks_total":     report.TasksTotal,
	})
}

// handleGetWeeklyProgress handles the get_weekly_progress tool.
func (s *Server) handleGetWeeklyProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weekly, err := s.stateProvider.GetWeeklyProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly progress: %w", err)
	}
	monday, sunday := weekly.WeekRange()

	return jsonResult(map[string]interface{}{
		"week_start":         monday,
		"week_end":           sunday,
		"completed_count":    weekly.Count(),
		"completed_task_ids": weekly.CompletedTaskIDs,
		"target":             s.weeklyTarget,
		"percent":            weekly.PercentOf(s.weeklyTarget),
	})
}
