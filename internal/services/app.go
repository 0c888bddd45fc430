package services

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// Options configures an App.
type Options struct {
	Store     ports.KeyValueStore
	Scheduler ports.Scheduler
	Clock     ports.Clock
	Notifier  ports.Notifier
	Logger    *log.Logger

	// Defaults seeds the settings slice when the store holds none.
	Defaults     domain.TimerSettings
	TickInterval time.Duration
}

// App owns the application state and serializes every operation on it.
// Scheduler ticks take the same lock, so at most one event is processed at a time.
type App struct {
	mu     sync.Mutex
	state  *domain.AppState
	store  ports.KeyValueStore
	clock  ports.Clock
	logger *log.Logger

	persist  *Persister
	timer    *TimerEngine
	weekly   *WeeklyTracker
	tasks    *TaskService
	progress *ProgressService
}

// NewApp loads every persisted slice and wires the components together.
// Missing or corrupt slices fall back to their defaults.
func NewApp(ctx context.Context, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	defaults := opts.Defaults
	if defaults == (domain.TimerSettings{}) {
		defaults = domain.DefaultTimerSettings()
	}

	a := &App{
		state:   &domain.AppState{},
		store:   opts.Store,
		clock:   opts.Clock,
		logger:  logger,
		persist: NewPersister(opts.Store, logger),
	}
	a.load(ctx, defaults)

	a.weekly = NewWeeklyTracker(a.state, a.clock, a.persist)
	a.tasks = NewTaskService(a.state, a.weekly, a.clock, a.persist)
	a.progress = NewProgressService(a.state, a.tasks, a.clock, a.persist)

	a.timer = NewTimerEngine(a.state.Settings, serialScheduler{mu: &a.mu, inner: opts.Scheduler})
	a.timer.SetTickInterval(opts.TickInterval)
	if opts.Notifier != nil {
		a.timer.SetNotifier(opts.Notifier)
	}
	a.timer.OnComplete(a.handleCompletion)

	return a
}

func (a *App) load(ctx context.Context, defaults domain.TimerSettings) {
	a.state.Settings = domain.ClampSettings(defaults)
	a.state.Tasks = []domain.Task{}
	a.state.Progress = domain.NewUserProgress()
	a.state.Weekly = domain.NewWeeklyProgress(a.clock.Now())
	a.reload(ctx)
}

// reload replaces each in-memory slice with its stored copy, so writes made by
// another process on the same database are seen before they are built upon.
// A slice that is missing or unreadable keeps its in-memory value.
func (a *App) reload(ctx context.Context) {
	var settings domain.TimerSettings
	if a.persist.Load(ctx, KeySettings, &settings) {
		clamped := domain.ClampSettings(settings)
		if clamped != settings {
			a.logger.Warn("clamped stored settings", "stored", settings, "clamped", clamped)
			a.persist.Save(KeySettings, clamped)
		}
		if clamped != a.state.Settings {
			a.state.Settings = clamped
			if a.timer != nil {
				a.timer.ApplySettings(clamped)
			}
		}
	}

	var tasks []domain.Task
	if a.persist.Load(ctx, KeyTasks, &tasks) {
		valid := make([]domain.Task, 0, len(tasks))
		for _, t := range tasks {
			if !t.IsValid() {
				a.logger.Warn("dropping invalid stored task", "id", t.ID)
				continue
			}
			t.EstimatedPomodoros = domain.ClampEstimate(t.EstimatedPomodoros)
			t.ActualPomodoros = domain.ClampActual(t.ActualPomodoros)
			valid = append(valid, t)
		}
		a.state.Tasks = valid
	}

	var progress domain.UserProgress
	if a.persist.Load(ctx, KeyProgress, &progress) {
		if progress.DailyStats == nil {
			progress.DailyStats = map[string]domain.DailyStat{}
		}
		a.state.Progress = progress
	}

	var active *string
	if a.persist.Load(ctx, KeyActiveTask, &active) {
		a.state.ActiveTaskID = ""
		if active != nil {
			a.state.ActiveTaskID = *active
		}
	}
	if a.state.ActiveTaskID != "" && !a.hasTask(a.state.ActiveTaskID) {
		a.logger.Warn("clearing dangling active task", "id", a.state.ActiveTaskID)
		a.state.ActiveTaskID = ""
		a.saveActive()
	}

	var weekly domain.WeeklyProgress
	if a.persist.Load(ctx, KeyWeeklyProgress, &weekly) && weekly.WeekStartDate != "" {
		if weekly.CompletedTaskIDs == nil {
			weekly.CompletedTaskIDs = []string{}
		}
		weekly.Dedupe()
		a.state.Weekly = weekly
	}
}

// sync picks up writes from other processes. Callers hold a.mu.
func (a *App) sync() {
	a.reload(context.Background())
}

func (a *App) hasTask(id string) bool {
	for _, t := range a.state.Tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (a *App) saveActive() {
	if a.state.ActiveTaskID == "" {
		a.persist.Save(KeyActiveTask, nil)
		return
	}
	a.persist.Save(KeyActiveTask, a.state.ActiveTaskID)
}

func (a *App) handleCompletion(event domain.CompletionEvent) {
	a.logger.Info("session completed", "mode", event.Mode, "minutes", event.DurationMinutes)
	if event.Mode == domain.ModeFocus {
		a.sync()
		a.progress.RecordFocusCompletion(event.DurationMinutes)
	}
}

// releaseActive clears the active task reference when it points at a removed task.
func (a *App) releaseActive(removed ...string) {
	for _, id := range removed {
		if id != "" && id == a.state.ActiveTaskID {
			a.state.ActiveTaskID = ""
			a.saveActive()
			return
		}
	}
}

// StartTimer resumes the countdown.
func (a *App) StartTimer() domain.TimerSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timer.Start()
	return a.timer.Snapshot()
}

// PauseTimer pauses the countdown.
func (a *App) PauseTimer() domain.TimerSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timer.Pause()
	return a.timer.Snapshot()
}

// ToggleTimer starts or pauses the countdown.
func (a *App) ToggleTimer() domain.TimerSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timer.Toggle()
	return a.timer.Snapshot()
}

// ResetTimer restores the full duration of the current mode.
func (a *App) ResetTimer() domain.TimerSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timer.Reset()
	return a.timer.Snapshot()
}

// SkipTimer moves to the next mode without recording progress.
func (a *App) SkipTimer() domain.TimerSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timer.Skip()
	return a.timer.Snapshot()
}

// SwitchMode jumps to mode at full duration, paused.
func (a *App) SwitchMode(mode domain.Mode) (domain.TimerSnapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	err := a.timer.SwitchMode(mode)
	return a.timer.Snapshot(), err
}

// Timer returns the current timer snapshot.
func (a *App) Timer() domain.TimerSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer.Snapshot()
}

// Settings returns the stored settings.
func (a *App) Settings() domain.TimerSettings {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	return a.state.Settings
}

// UpdateSettings clamps, stores and applies new settings.
func (a *App) UpdateSettings(s domain.TimerSettings) domain.TimerSettings {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	clamped := domain.ClampSettings(s)
	a.state.Settings = clamped
	a.persist.Save(KeySettings, clamped)
	a.timer.ApplySettings(clamped)
	return clamped
}

// AddTask creates a task.
func (a *App) AddTask(title string, estimated int) (domain.Task, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	return a.tasks.AddTask(title, estimated)
}

// Tasks returns every task.
func (a *App) Tasks() []domain.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	return a.tasks.ListTasks()
}

// ResolveTask finds a task by id, id prefix or title.
func (a *App) ResolveTask(ref string) (domain.Task, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	return a.tasks.ResolveTask(ref)
}

// EditTask applies patch to the task with id.
func (a *App) EditTask(id string, patch domain.TaskPatch) (domain.Task, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	return a.tasks.EditTask(id, patch)
}

// ToggleTaskCompletion flips completion and keeps the weekly count in step.
func (a *App) ToggleTaskCompletion(id string) (domain.Task, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	return a.tasks.ToggleTaskCompletion(id)
}

// DeleteTask removes a task, its weekly membership and, if selected, the selection.
func (a *App) DeleteTask(id string) (domain.Task, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	task, ok := a.tasks.DeleteTask(id)
	if ok {
		a.releaseActive(id)
	}
	return task, ok
}

// ClearFinishedTasks removes completed tasks and returns how many were removed.
func (a *App) ClearFinishedTasks() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	removed := a.tasks.ClearFinished()
	a.releaseActive(removed...)
	return len(removed)
}

// ClearAllTasks removes every task and returns how many were removed.
func (a *App) ClearAllTasks() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	removed := a.tasks.ClearAll()
	a.releaseActive(removed...)
	return len(removed)
}

// SelectTask makes id the active task. An empty id clears the selection;
// an unknown id is a no-op reported as false.
func (a *App) SelectTask(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	if id != "" && !a.hasTask(id) {
		return false
	}
	if a.state.ActiveTaskID == id {
		return true
	}
	a.state.ActiveTaskID = id
	a.saveActive()
	return true
}

// ActiveTask returns the selected task.
func (a *App) ActiveTask() (domain.Task, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	return a.activeTask()
}

func (a *App) activeTask() (domain.Task, bool) {
	if a.state.ActiveTaskID == "" {
		return domain.Task{}, false
	}
	return a.tasks.GetTask(a.state.ActiveTaskID)
}

// Progress returns the lifetime focus history.
func (a *App) Progress() domain.UserProgress {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	return a.progress.Progress()
}

// ProgressReport returns the progress summary for today.
func (a *App) ProgressReport() domain.ProgressReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	return a.progress.Report()
}

// WeeklyProgress returns this week's record.
func (a *App) WeeklyProgress() domain.WeeklyProgress {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	return a.weekly.Snapshot()
}

// WeeklyCount returns the number of tasks completed this week.
func (a *App) WeeklyCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	return a.weekly.Count()
}

// IsTaskCompletedThisWeek reports whether id counts toward this week.
func (a *App) IsTaskCompletedThisWeek(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	return a.weekly.IsTaskCompletedThisWeek(id)
}

// ResetWeeklyProgress empties the current week.
func (a *App) ResetWeeklyProgress() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	a.weekly.Reset()
}

// CurrentState summarizes the timer, the active task and today's numbers.
func (a *App) CurrentState() *domain.CurrentState {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	cs := &domain.CurrentState{
		Timer:       a.timer.Snapshot(),
		Today:       a.state.Progress.Day(a.progress.Today()),
		Streak:      a.state.Progress.CurrentStreak,
		WeeklyCount: a.weekly.Count(),
	}
	if t, ok := a.activeTask(); ok {
		cs.ActiveTask = &t
	}
	return cs
}

// Export returns a deep copy of every persisted slice.
func (a *App) Export() domain.AppState {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sync()
	weekly := a.weekly.Snapshot()
	st := a.state.Clone()
	st.Weekly = weekly
	return st
}

// SubscribeProgress calls fn with the new history after every recorded focus session.
// fn runs while the App is locked and must not block or call back into the App.
func (a *App) SubscribeProgress(fn func(domain.UserProgress)) (unsubscribe func()) {
	return a.store.Subscribe(KeyProgress, func(raw []byte) {
		var p domain.UserProgress
		if err := json.Unmarshal(raw, &p); err != nil {
			a.logger.Warn("ignoring undecodable progress update", "err", err)
			return
		}
		fn(p)
	})
}

// Close stops the tick source. State is left as is.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timer.Stop()
}

// serialScheduler runs every tick under the App lock.
type serialScheduler struct {
	mu    *sync.Mutex
	inner ports.Scheduler
}

func (s serialScheduler) ScheduleTick(callback func(), interval time.Duration) ports.CancelFunc {
	return s.inner.ScheduleTick(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		callback()
	}, interval)
}
