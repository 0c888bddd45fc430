package tui

import (
	"context"
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"github.com/xvierd/pomo-cli/internal/config"
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// Timer implements the ports.Timer interface using Bubbletea.
type Timer struct {
	mu              sync.Mutex
	theme           *config.ThemeConfig
	weeklyTarget    int
	fetchState      func() *domain.CurrentState
	cmdCallback     func(ports.TimerCommand)
	progressUpdates <-chan domain.UserProgress
}

// Ensure Timer implements ports.Timer.
var _ ports.Timer = (*Timer)(nil)

// NewTimer creates a new TUI timer adapter.
func NewTimer(theme *config.ThemeConfig, weeklyTarget int) *Timer {
	return &Timer{theme: theme, weeklyTarget: weeklyTarget}
}

// SetFetchState sets the function polled on each refresh.
func (t *Timer) SetFetchState(fetch func() *domain.CurrentState) {
	t.mu.Lock()
	t.fetchState = fetch
	t.mu.Unlock()
}

// SetCommandCallback sets a function to call when commands are received.
func (t *Timer) SetCommandCallback(callback func(cmd ports.TimerCommand)) {
	t.mu.Lock()
	t.cmdCallback = callback
	t.mu.Unlock()
}

// SetProgressUpdates sets the channel of progress published after each recorded focus session.
func (t *Timer) SetProgressUpdates(updates <-chan domain.UserProgress) {
	t.mu.Lock()
	t.progressUpdates = updates
	t.mu.Unlock()
}

// newModel builds the screen model from the adapter's settings.
func (t *Timer) newModel(initial *domain.CurrentState) Model {
	t.mu.Lock()
	defer t.mu.Unlock()

	m := NewModel(initial, t.theme)
	if t.weeklyTarget > 0 {
		m.weeklyTarget = t.weeklyTarget
	}
	m.fetchState = t.fetchState
	m.commandCallback = t.cmdCallback
	m.progressUpdates = t.progressUpdates

	if w, h, err := term.GetSize(os.Stdout.Fd()); err == nil {
		m.width, m.height = w, h
		m.help.Width = w
		m.focusBar.Width = barWidth(w)
		m.breakBar.Width = barWidth(w)
	}
	return m
}

// Run starts the timer interface and blocks until the user quits or ctx is cancelled.
func (t *Timer) Run(ctx context.Context, initialState *domain.CurrentState) error {
	program := tea.NewProgram(t.newModel(initialState), tea.WithAltScreen())

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-runCtx.Done()
		program.Quit()
	}()

	_, err := program.Run()
	cancel()
	wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
