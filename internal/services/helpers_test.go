package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/xvierd/pomo-cli/internal/adapters/scheduler"
	"github.com/xvierd/pomo-cli/internal/adapters/storage"
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

type schedulerFunc func(cb func(), interval time.Duration) func()

func (f schedulerFunc) ScheduleTick(cb func(), interval time.Duration) ports.CancelFunc {
	return f(cb, interval)
}

func setupTestStorage(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestApp(t *testing.T, store ports.KeyValueStore, clock *scheduler.Manual) *App {
	t.Helper()
	app := NewApp(context.Background(), Options{
		Store:     store,
		Scheduler: clock,
		Clock:     clock,
		Logger:    log.New(io.Discard),
	})
	t.Cleanup(app.Close)
	return app
}

// quickSettings makes every session one minute long.
var quickSettings = domain.TimerSettings{FocusDuration: 1, BreakDuration: 1, LongBreakDuration: 1, LongBreakInterval: 4}

// completeFocus runs one focus session to completion on the manual clock.
func completeFocus(t *testing.T, app *App, clock *scheduler.Manual) {
	t.Helper()
	if _, err := app.SwitchMode(domain.ModeFocus); err != nil {
		t.Fatalf("SwitchMode() error = %v", err)
	}
	app.StartTimer()
	clock.Advance(time.Duration(app.Settings().FocusDuration) * time.Minute)
}
