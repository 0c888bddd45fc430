package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// mockStateProvider is a mock implementation of ports.MCPStateProvider for testing.
type mockStateProvider struct {
	currentState *domain.CurrentState
	tasks        []domain.Task
	report       domain.ProgressReport
	weekly       domain.WeeklyProgress

	lastFilter   ports.TaskFilter
	lastCommand  ports.TimerCommand
	lastSettings domain.TimerSettings
	selected     string
}

func (m *mockStateProvider) GetCurrentState(ctx context.Context) (*domain.CurrentState, error) {
	return m.currentState, nil
}

func (m *mockStateProvider) ListTasks(ctx context.Context, filter ports.TaskFilter) ([]domain.Task, error) {
	m.lastFilter = filter
	return m.tasks, nil
}

func (m *mockStateProvider) CreateTask(ctx context.Context, title string, estimated int) (domain.Task, error) {
	return domain.NewTask(title, estimated, time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
}

func (m *mockStateProvider) find(ref string) (domain.Task, error) {
	for _, t := range m.tasks {
		if t.ID == ref || t.Title == ref {
			return t, nil
		}
	}
	return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, ref)
}

func (m *mockStateProvider) ToggleTask(ctx context.Context, ref string) (domain.Task, error) {
	t, err := m.find(ref)
	if err != nil {
		return t, err
	}
	t.Toggle()
	return t, nil
}

func (m *mockStateProvider) DeleteTask(ctx context.Context, ref string) (domain.Task, error) {
	return m.find(ref)
}

func (m *mockStateProvider) SelectTask(ctx context.Context, ref string) (*domain.Task, error) {
	if ref == "" {
		m.selected = ""
		return nil, nil
	}
	t, err := m.find(ref)
	if err != nil {
		return nil, err
	}
	m.selected = t.ID
	return &t, nil
}

func (m *mockStateProvider) ControlTimer(ctx context.Context, cmd ports.TimerCommand) (domain.TimerSnapshot, error) {
	m.lastCommand = cmd
	return m.currentState.Timer, nil
}

func (m *mockStateProvider) UpdateSettings(ctx context.Context, s domain.TimerSettings) (domain.TimerSettings, error) {
	m.lastSettings = s
	return domain.ClampSettings(s), nil
}

func (m *mockStateProvider) GetProgressReport(ctx context.Context) (domain.ProgressReport, error) {
	return m.report, nil
}

func (m *mockStateProvider) GetWeeklyProgress(ctx context.Context) (domain.WeeklyProgress, error) {
	return m.weekly, nil
}

func newMock() *mockStateProvider {
	settings := domain.DefaultTimerSettings()
	state := domain.NewTimerState(settings)
	return &mockStateProvider{
		currentState: &domain.CurrentState{
			Timer: domain.TimerSnapshot{
				State:         state,
				Settings:      settings,
				FormattedTime: domain.FormatClock(state.TimeRemainingSeconds),
			},
			Today: domain.DailyStat{Date: "2024-01-10", FocusTimeMinutes: 50, PomodorosCompleted: 2},
		},
	}
}

func newRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// decodeResult parses the JSON text content of a tool result.
func decodeResult(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	if result == nil {
		t.Fatal("result is nil")
	}
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want mcp.TextContent", result.Content[0])
	}
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(text.Text), &data); err != nil {
		t.Fatalf("result is not JSON: %v\n%s", err, text.Text)
	}
	return data
}

func resultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	if text, ok := result.Content[0].(mcp.TextContent); ok {
		return text.Text
	}
	return ""
}

func TestNewServer(t *testing.T) {
	mock := newMock()
	server := NewServer(mock, 0)

	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.stateProvider != mock {
		t.Error("NewServer() did not set state provider correctly")
	}
	if server.server == nil {
		t.Error("NewServer() did not create MCP server")
	}
	if server.weeklyTarget != domain.DefaultWeeklyTarget {
		t.Errorf("weeklyTarget = %d, want %d", server.weeklyTarget, domain.DefaultWeeklyTarget)
	}
}

func TestServer_handleGetCurrentState(t *testing.T) {
	mock := newMock()
	task, _ := domain.NewTask("Write report", 3, time.Now())
	mock.currentState.ActiveTask = &task
	mock.currentState.Streak = 4

	server := NewServer(mock, 10)
	result, err := server.handleGetCurrentState(context.Background(), newRequest(nil))
	if err != nil {
		t.Fatalf("handleGetCurrentState() error = %v", err)
	}

	data := decodeResult(t, result)
	timer := data["timer"].(map[string]interface{})
	if timer["time_remaining"] != "25:00" {
		t.Errorf("time_remaining = %v, want 25:00", timer["time_remaining"])
	}
	if timer["mode"] != "focus" {
		t.Errorf("mode = %v, want focus", timer["mode"])
	}
	active := data["active_task"].(map[string]interface{})
	if active["title"] != "Write report" {
		t.Errorf("active_task.title = %v, want Write report", active["title"])
	}
	today := data["today_stats"].(map[string]interface{})
	if today["focus_time"] != "50m" {
		t.Errorf("today_stats.focus_time = %v, want 50m", today["focus_time"])
	}
	if data["current_streak"] != float64(4) {
		t.Errorf("current_streak = %v, want 4", data["current_streak"])
	}
}

func TestServer_handleGetCurrentState_NoActiveTask(t *testing.T) {
	server := NewServer(newMock(), 10)
	result, err := server.handleGetCurrentState(context.Background(), newRequest(nil))
	if err != nil {
		t.Fatalf("handleGetCurrentState() error = %v", err)
	}
	data := decodeResult(t, result)
	if data["active_task"] != nil {
		t.Errorf("active_task = %v, want nil", data["active_task"])
	}
}

func TestServer_handleListTasks(t *testing.T) {
	task1, _ := domain.NewTask("Task 1", 1, time.Now())
	task2, _ := domain.NewTask("Task 2", 2, time.Now())

	tests := []struct {
		name   string
		args   map[string]interface{}
		filter ports.TaskFilter
	}{
		{"default filter", nil, ports.TaskFilterAll},
		{"open filter", map[string]interface{}{"status": "open"}, ports.TaskFilterOpen},
		{"completed filter", map[string]interface{}{"status": "completed"}, ports.TaskFilterCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock()
			mock.tasks = []domain.Task{task1, task2}
			server := NewServer(mock, 10)

			result, err := server.handleListTasks(context.Background(), newRequest(tt.args))
			if err != nil {
				t.Fatalf("handleListTasks() error = %v", err)
			}
			if mock.lastFilter != tt.filter {
				t.Errorf("filter = %v, want %v", mock.lastFilter, tt.filter)
			}
			data := decodeResult(t, result)
			if data["total_count"] != float64(2) {
				t.Errorf("total_count = %v, want 2", data["total_count"])
			}
		})
	}
}

func TestServer_handleCreateTask(t *testing.T) {
	server := NewServer(newMock(), 10)

	result, err := server.handleCreateTask(context.Background(), newRequest(map[string]interface{}{
		"title":               "Review PR",
		"estimated_pomodoros": float64(3),
	}))
	if err != nil {
		t.Fatalf("handleCreateTask() error = %v", err)
	}
	data := decodeResult(t, result)
	if data["title"] != "Review PR" {
		t.Errorf("title = %v, want Review PR", data["title"])
	}
	if data["estimated_pomodoros"] != float64(3) {
		t.Errorf("estimated_pomodoros = %v, want 3", data["estimated_pomodoros"])
	}
}

func TestServer_handleCreateTask_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing title", map[string]interface{}{}, "title is required"},
		{"blank title", map[string]interface{}{"title": "   "}, "failed to create task"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(newMock(), 10)
			result, err := server.handleCreateTask(context.Background(), newRequest(tt.args))
			if err != nil {
				t.Fatalf("handleCreateTask() error = %v", err)
			}
			if !result.IsError {
				t.Error("handleCreateTask() should return an error result")
			}
			if !strings.Contains(resultText(result), tt.want) {
				t.Errorf("text = %q, want it to contain %q", resultText(result), tt.want)
			}
		})
	}
}

func TestServer_handleToggleTask(t *testing.T) {
	task, _ := domain.NewTask("Task 1", 1, time.Now())
	mock := newMock()
	mock.tasks = []domain.Task{task}
	server := NewServer(mock, 10)

	result, err := server.handleToggleTask(context.Background(), newRequest(map[string]interface{}{"task": task.ID}))
	if err != nil {
		t.Fatalf("handleToggleTask() error = %v", err)
	}
	data := decodeResult(t, result)
	if data["completed"] != true {
		t.Errorf("completed = %v, want true", data["completed"])
	}

	result, err = server.handleToggleTask(context.Background(), newRequest(map[string]interface{}{"task": "missing"}))
	if err != nil {
		t.Fatalf("handleToggleTask() error = %v", err)
	}
	if !result.IsError {
		t.Error("toggling an unknown task should return an error result")
	}
}

func TestServer_handleDeleteTask(t *testing.T) {
	task, _ := domain.NewTask("Task 1", 1, time.Now())
	mock := newMock()
	mock.tasks = []domain.Task{task}
	server := NewServer(mock, 10)

	result, err := server.handleDeleteTask(context.Background(), newRequest(map[string]interface{}{"task": "Task 1"}))
	if err != nil {
		t.Fatalf("handleDeleteTask() error = %v", err)
	}
	data := decodeResult(t, result)
	deleted := data["deleted"].(map[string]interface{})
	if deleted["id"] != task.ID {
		t.Errorf("deleted.id = %v, want %v", deleted["id"], task.ID)
	}

	result, _ = server.handleDeleteTask(context.Background(), newRequest(map[string]interface{}{}))
	if !result.IsError {
		t.Error("delete without task should return an error result")
	}
}

func TestServer_handleSelectTask(t *testing.T) {
	task, _ := domain.NewTask("Task 1", 1, time.Now())
	mock := newMock()
	mock.tasks = []domain.Task{task}
	server := NewServer(mock, 10)

	result, err := server.handleSelectTask(context.Background(), newRequest(map[string]interface{}{"task": task.ID}))
	if err != nil {
		t.Fatalf("handleSelectTask() error = %v", err)
	}
	data := decodeResult(t, result)
	if data["active_task"] == nil {
		t.Error("active_task should be set")
	}
	if mock.selected != task.ID {
		t.Errorf("selected = %q, want %q", mock.selected, task.ID)
	}

	result, err = server.handleSelectTask(context.Background(), newRequest(nil))
	if err != nil {
		t.Fatalf("handleSelectTask() error = %v", err)
	}
	data = decodeResult(t, result)
	if data["active_task"] != nil {
		t.Errorf("active_task = %v, want nil after clearing", data["active_task"])
	}
	if mock.selected != "" {
		t.Errorf("selected = %q, want empty", mock.selected)
	}
}

func TestServer_handleControlTimer(t *testing.T) {
	tests := []struct {
		action  string
		want    ports.TimerCommand
		isError bool
	}{
		{"start", ports.CmdStart, false},
		{"pause", ports.CmdPause, false},
		{"reset", ports.CmdReset, false},
		{"skip", ports.CmdSkip, false},
		{"longBreak", ports.CmdLongBreak, false},
		{"explode", "", true},
		{"quit", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			mock := newMock()
			server := NewServer(mock, 10)

			result, err := server.handleControlTimer(context.Background(), newRequest(map[string]interface{}{"action": tt.action}))
			if err != nil {
				t.Fatalf("handleControlTimer() error = %v", err)
			}
			if result.IsError != tt.isError {
				t.Fatalf("IsError = %v, want %v (%s)", result.IsError, tt.isError, resultText(result))
			}
			if mock.lastCommand != tt.want {
				t.Errorf("command = %q, want %q", mock.lastCommand, tt.want)
			}
		})
	}
}

func TestServer_handleUpdateSettings(t *testing.T) {
	mock := newMock()
	server := NewServer(mock, 10)

	result, err := server.handleUpdateSettings(context.Background(), newRequest(map[string]interface{}{
		"focus_duration": float64(50),
		"break_duration": float64(99),
	}))
	if err != nil {
		t.Fatalf("handleUpdateSettings() error = %v", err)
	}

	want := domain.TimerSettings{FocusDuration: 50, BreakDuration: 99, LongBreakDuration: 15, LongBreakInterval: 4}
	if mock.lastSettings != want {
		t.Errorf("settings passed = %+v, want %+v", mock.lastSettings, want)
	}
	data := decodeResult(t, result)
	if data["break_duration"] != float64(domain.MaxBreakDuration) {
		t.Errorf("break_duration = %v, want %d", data["break_duration"], domain.MaxBreakDuration)
	}
	if data["long_break_interval"] != float64(4) {
		t.Errorf("long_break_interval = %v, want 4", data["long_break_interval"])
	}
}

func TestServer_handleGetProgress(t *testing.T) {
	mock := newMock()
	mock.report = domain.ProgressReport{
		TotalFocusTimeMinutes:   125,
		TotalPomodorosCompleted: 5,
		CurrentStreak:           2,
		LastSevenDays:           []domain.DailyStat{{Date: "2024-01-10", FocusTimeMinutes: 25, PomodorosCompleted: 1}},
		TopTasks:                []domain.TaskBreakdown{{TaskID: "abc", Title: "Task", Pomodoros: 3, FocusTimeMinutes: 75}},
		TasksCompleted:          1,
		TasksTotal:              2,
	}
	server := NewServer(mock, 10)

	result, err := server.handleGetProgress(context.Background(), newRequest(nil))
	if err != nil {
		t.Fatalf("handleGetProgress() error = %v", err)
	}
	data := decodeResult(t, result)
	if data["total_focus_time"] != "2h 5m" {
		t.Errorf("total_focus_time = %v, want 2h 5m", data["total_focus_time"])
	}
	if data["total_pomodoros_completed"] != float64(5) {
		t.Errorf("total_pomodoros_completed = %v, want 5", data["total_pomodoros_completed"])
	}
	if days := data["last_seven_days"].([]interface{}); len(days) != 1 {
		t.Errorf("len(last_seven_days) = %d, want 1", len(days))
	}
	top := data["top_tasks"].([]interface{})
	if top[0].(map[string]interface{})["focus_time"] != "1h 15m" {
		t.Errorf("top_tasks[0].focus_time = %v, want 1h 15m", top[0])
	}
}

func TestServer_handleGetWeeklyProgress(t *testing.T) {
	mock := newMock()
	mock.weekly = domain.WeeklyProgress{
		WeekStartDate:    "2024-01-08",
		CompletedTaskIDs: []string{"a", "b"},
	}
	server := NewServer(mock, 4)

	result, err := server.handleGetWeeklyProgress(context.Background(), newRequest(nil))
	if err != nil {
		t.Fatalf("handleGetWeeklyProgress() error = %v", err)
	}
	data := decodeResult(t, result)

	checks := map[string]interface{}{
		"week_start":      "2024-01-08",
		"week_end":        "2024-01-14",
		"completed_count": float64(2),
		"target":          float64(4),
		"percent":         float64(50),
	}
	for k, want := range checks {
		if data[k] != want {
			t.Errorf("%s = %v, want %v", k, data[k], want)
		}
	}
}
