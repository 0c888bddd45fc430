package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/pomo-cli/internal/adapters/scheduler"
	"github.com/xvierd/pomo-cli/internal/domain"
)

func TestApp_FourCycleDay(t *testing.T) {
	store := setupTestStorage(t)
	clock := scheduler.NewManual(testEpoch)
	app := newTestApp(t, store, clock)

	require.Equal(t, domain.DefaultTimerSettings(), app.Settings())

	for cycle := 1; cycle <= 4; cycle++ {
		require.Equal(t, domain.ModeFocus, app.Timer().State.Mode)
		app.StartTimer()
		clock.Advance(25 * time.Minute)

		wantBreak := domain.ModeBreak
		if cycle == 4 {
			wantBreak = domain.ModeLongBreak
		}
		snap := app.Timer()
		require.Equal(t, wantBreak, snap.State.Mode, "cycle %d", cycle)
		require.False(t, snap.State.IsRunning)

		app.StartTimer()
		clock.Advance(time.Duration(app.Settings().DurationFor(wantBreak)) * time.Minute)
	}

	progress := app.Progress()
	assert.Equal(t, 4, progress.TotalPomodorosCompleted)
	assert.Equal(t, 100, progress.TotalFocusTimeMinutes)
	today := progress.Day(domain.DateKey(testEpoch))
	assert.Equal(t, 4, today.PomodorosCompleted)
	assert.Equal(t, 100, today.FocusTimeMinutes)
	assert.Equal(t, 1, progress.CurrentStreak)
	assert.Equal(t, domain.ModeFocus, app.Timer().State.Mode)
	assert.Equal(t, 4, app.Timer().State.CompletedFocusSessions)
}

func TestApp_BreakCompletionLeavesProgressAlone(t *testing.T) {
	clock := scheduler.NewManual(testEpoch)
	app := newTestApp(t, setupTestStorage(t), clock)

	_, err := app.SwitchMode(domain.ModeBreak)
	require.NoError(t, err)
	app.StartTimer()
	clock.Advance(5 * time.Minute)

	assert.Equal(t, 0, app.Progress().TotalPomodorosCompleted)
	assert.Equal(t, domain.ModeFocus, app.Timer().State.Mode)
}

func TestApp_SkipDoesNotCredit(t *testing.T) {
	clock := scheduler.NewManual(testEpoch)
	app := newTestApp(t, setupTestStorage(t), clock)

	task, err := app.AddTask("Write tests", 2)
	require.NoError(t, err)
	require.True(t, app.SelectTask(task.ID))

	app.StartTimer()
	clock.Advance(time.Minute)
	app.SkipTimer()

	assert.Equal(t, domain.ModeBreak, app.Timer().State.Mode)
	assert.Equal(t, 0, app.Progress().TotalPomodorosCompleted)
	got, _ := app.ActiveTask()
	assert.Equal(t, 0, got.ActualPomodoros)
}

func TestApp_ActiveTaskCredit(t *testing.T) {
	clock := scheduler.NewManual(testEpoch)
	app := newTestApp(t, setupTestStorage(t), clock)
	app.UpdateSettings(quickSettings)

	task, _ := app.AddTask("Deep work", 3)
	other, _ := app.AddTask("Email", 1)
	require.True(t, app.SelectTask(task.ID))

	completeFocus(t, app, clock)
	completeFocus(t, app, clock)

	got, ok := app.ActiveTask()
	require.True(t, ok)
	assert.Equal(t, 2, got.ActualPomodoros)

	app.ToggleTaskCompletion(task.ID)
	completeFocus(t, app, clock)
	got, _ = app.ActiveTask()
	assert.Equal(t, 3, got.ActualPomodoros, "completed tasks still receive credit")

	for _, tk := range app.Tasks() {
		if tk.ID == other.ID {
			assert.Equal(t, 0, tk.ActualPomodoros)
		}
	}
}

func TestApp_SelectTask(t *testing.T) {
	app := newTestApp(t, setupTestStorage(t), scheduler.NewManual(testEpoch))
	task, _ := app.AddTask("Plan", 1)

	assert.False(t, app.SelectTask("missing"), "unknown id is a no-op")
	_, ok := app.ActiveTask()
	assert.False(t, ok)

	assert.True(t, app.SelectTask(task.ID))
	got, ok := app.ActiveTask()
	require.True(t, ok)
	assert.Equal(t, task.ID, got.ID)

	assert.True(t, app.SelectTask(""))
	_, ok = app.ActiveTask()
	assert.False(t, ok)
}

func TestApp_StreakAcrossDays(t *testing.T) {
	clock := scheduler.NewManual(testEpoch)
	app := newTestApp(t, setupTestStorage(t), clock)
	app.UpdateSettings(quickSettings)

	completeFocus(t, app, clock)
	assert.Equal(t, 1, app.Progress().CurrentStreak)

	clock.Set(testEpoch.AddDate(0, 0, 1))
	completeFocus(t, app, clock)
	completeFocus(t, app, clock)
	assert.Equal(t, 2, app.Progress().CurrentStreak)

	clock.Set(testEpoch.AddDate(0, 0, 4))
	completeFocus(t, app, clock)
	p := app.Progress()
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, domain.DateKey(testEpoch.AddDate(0, 0, 4)), p.LastActiveDate)
	assert.Len(t, p.DailyStats, 3)
}

func TestApp_UpdateSettings(t *testing.T) {
	store := setupTestStorage(t)
	app := newTestApp(t, store, scheduler.NewManual(testEpoch))

	got := app.UpdateSettings(domain.TimerSettings{FocusDuration: 120, BreakDuration: 10, LongBreakDuration: 20, LongBreakInterval: 0})
	want := domain.TimerSettings{FocusDuration: 60, BreakDuration: 10, LongBreakDuration: 20, LongBreakInterval: 4}
	assert.Equal(t, want, got)
	assert.Equal(t, 3600, app.Timer().State.TimeRemainingSeconds)

	raw, err := store.Get(context.Background(), KeySettings)
	require.NoError(t, err)
	var stored domain.TimerSettings
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, want, stored)
}

func TestApp_SubscribeProgress(t *testing.T) {
	clock := scheduler.NewManual(testEpoch)
	app := newTestApp(t, setupTestStorage(t), clock)
	app.UpdateSettings(quickSettings)

	var updates []domain.UserProgress
	unsubscribe := app.SubscribeProgress(func(p domain.UserProgress) {
		updates = append(updates, p)
	})

	completeFocus(t, app, clock)
	require.Len(t, updates, 1)
	assert.Equal(t, 1, updates[0].TotalPomodorosCompleted)

	unsubscribe()
	completeFocus(t, app, clock)
	assert.Len(t, updates, 1)
}

func TestApp_CurrentState(t *testing.T) {
	clock := scheduler.NewManual(testEpoch)
	app := newTestApp(t, setupTestStorage(t), clock)
	app.UpdateSettings(quickSettings)

	task, _ := app.AddTask("Ship it", 1)
	app.SelectTask(task.ID)
	app.ToggleTaskCompletion(task.ID)
	completeFocus(t, app, clock)

	cs := app.CurrentState()
	require.NotNil(t, cs.ActiveTask)
	assert.Equal(t, task.ID, cs.ActiveTask.ID)
	assert.Equal(t, 1, cs.Today.PomodorosCompleted)
	assert.Equal(t, 1, cs.Streak)
	assert.Equal(t, 1, cs.WeeklyCount)
	assert.Equal(t, domain.ModeBreak, cs.Timer.State.Mode)
}

func TestApp_RealTickerSerializesEvents(t *testing.T) {
	store := setupTestStorage(t)
	clock := scheduler.NewManual(testEpoch)
	app := NewApp(context.Background(), Options{
		Store:        store,
		Scheduler:    scheduler.NewTicker(),
		Clock:        clock,
		TickInterval: time.Millisecond,
	})
	defer app.Close()
	app.UpdateSettings(quickSettings)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, _ = app.AddTask("parallel", 1)
				_ = app.CurrentState()
			}
		}()
	}

	app.StartTimer()
	require.Eventually(t, func() bool {
		return app.Timer().State.Mode == domain.ModeBreak
	}, 5*time.Second, 5*time.Millisecond)
	wg.Wait()

	assert.Len(t, app.Tasks(), 80)
	assert.Equal(t, 1, app.Progress().TotalPomodorosCompleted)
	assert.False(t, app.Timer().State.IsRunning)
}
