// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/pomo-cli/internal/config"
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// refreshInterval is how often the screen polls for new state.
const refreshInterval = 250 * time.Millisecond

// flashTicks is how many refreshes a progress message stays visible.
const flashTicks = 16

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// tickMsg is sent on every refresh.
type tickMsg time.Time

// stateMsg wraps an updated state fetched asynchronously.
type stateMsg struct {
	state *domain.CurrentState
}

// progressMsg carries progress published after a focus session was recorded.
type progressMsg domain.UserProgress

// Model represents the TUI state.
type Model struct {
	state           *domain.CurrentState
	focusBar        progress.Model
	breakBar        progress.Model
	help            help.Model
	keys            keyMap
	theme           config.ThemeConfig
	width           int
	height          int
	weeklyTarget    int
	fetchState      func() *domain.CurrentState
	commandCallback func(ports.TimerCommand)
	progressUpdates <-chan domain.UserProgress

	flash      string
	flashTicks int
	quitting   bool
}

// NewModel creates a new TUI model.
func NewModel(initialState *domain.CurrentState, theme *config.ThemeConfig) Model {
	if initialState == nil {
		initialState = &domain.CurrentState{}
	}
	resolved := resolveTheme(theme)
	return Model{
		state:        initialState,
		focusBar:     progress.New(progress.WithGradient(resolved.FocusGradientStart, resolved.FocusGradientEnd)),
		breakBar:     progress.New(progress.WithGradient(resolved.BreakGradientStart, resolved.BreakGradientEnd)),
		help:         help.New(),
		keys:         defaultKeyMap(),
		theme:        resolved,
		weeklyTarget: domain.DefaultWeeklyTarget,
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), tea.SetWindowTitle(m.state.Timer.Title)}
	if m.progressUpdates != nil {
		cmds = append(cmds, waitForProgress(m.progressUpdates))
	}
	return tea.Batch(cmds...)
}

// fetchStateCmd returns a tea.Cmd that fetches state asynchronously.
func fetchStateCmd(fetch func() *domain.CurrentState) tea.Cmd {
	return func() tea.Msg {
		return stateMsg{state: fetch()}
	}
}

// waitForProgress blocks on the next progress update.
func waitForProgress(updates <-chan domain.UserProgress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-updates
		if !ok {
			return nil
		}
		return progressMsg(p)
	}
}

// send forwards a command and refreshes the state right away.
func (m Model) send(cmd ports.TimerCommand) tea.Cmd {
	if m.commandCallback != nil {
		m.commandCallback(cmd)
	}
	if m.fetchState != nil {
		return fetchStateCmd(m.fetchState)
	}
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Toggle):
			return m, m.send(ports.CmdToggle)
		case key.Matches(msg, m.keys.Reset):
			return m, m.send(ports.CmdReset)
		case key.Matches(msg, m.keys.Skip):
			return m, m.send(ports.CmdSkip)
		case key.Matches(msg, m.keys.Focus):
			return m, m.send(ports.CmdFocus)
		case key.Matches(msg, m.keys.Break):
			return m, m.send(ports.CmdBreak)
		case key.Matches(msg, m.keys.LongBreak):
			return m, m.send(ports.CmdLongBreak)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.focusBar.Width = barWidth(msg.Width)
		m.breakBar.Width = barWidth(msg.Width)
	case tickMsg:
		if m.flashTicks > 0 {
			m.flashTicks--
			if m.flashTicks == 0 {
				m.flash = ""
			}
		}
		cmds := []tea.Cmd{tickCmd()}
		if m.fetchState != nil {
			cmds = append(cmds, fetchStateCmd(m.fetchState))
		}
		return m, tea.Batch(cmds...)
	case stateMsg:
		if msg.state == nil {
			return m, nil
		}
		prevTitle := m.state.Timer.Title
		m.state = msg.state
		if m.state.Timer.Title != prevTitle {
			return m, tea.SetWindowTitle(m.state.Timer.Title)
		}
	case progressMsg:
		m.flash = progressFlash(domain.UserProgress(msg))
		m.flashTicks = flashTicks
		return m, waitForProgress(m.progressUpdates)
	case *domain.CurrentState:
		m.state = msg
	}
	return m, nil
}

// progressFlash summarizes a progress update for the status line.
func progressFlash(p domain.UserProgress) string {
	today := p.Day(p.LastActiveDate)
	return fmt.Sprintf("Focus session recorded. Today: %d pomodoros, %s focused. Streak: %d days.",
		today.PomodorosCompleted, domain.FormatMinutes(today.FocusTimeMinutes), p.CurrentStreak)
}

func barWidth(termWidth int) int {
	w := termWidth - 8
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	return w
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
