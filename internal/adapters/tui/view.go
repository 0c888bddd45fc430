package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/pomo-cli/internal/domain"
)

// modeColor returns the theme color for a timer mode.
func (m Model) modeColor(mode domain.Mode) lipgloss.Color {
	switch mode {
	case domain.ModeBreak:
		return lipgloss.Color(m.theme.ColorBreak)
	case domain.ModeLongBreak:
		return lipgloss.Color(m.theme.ColorLongBreak)
	default:
		return lipgloss.Color(m.theme.ColorFocus)
	}
}

// timerColor dims the clock while paused.
func (m Model) timerColor() lipgloss.Color {
	if !m.state.Timer.State.IsRunning {
		return lipgloss.Color(m.theme.ColorPaused)
	}
	return m.modeColor(m.state.Timer.State.Mode)
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	snap := m.state.Timer
	modeStyle := lipgloss.NewStyle().Bold(true).Foreground(m.modeColor(snap.State.Mode))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	var sections []string

	sections = append(sections, modeStyle.Render("🍅 "+snap.State.Mode.Label()))
	sections = append(sections, helpStyle.Render(cycleLine(snap)))
	sections = append(sections, "")
	sections = append(sections, renderBigTime(snap.FormattedTime, m.timerColor(), m.width))
	sections = append(sections, "")

	bar := m.focusBar
	if snap.State.Mode != domain.ModeFocus {
		bar = m.breakBar
	}
	sections = append(sections, bar.ViewAs(snap.Progress/100))

	status := "Paused"
	if snap.State.IsRunning {
		status = "Running"
	}
	sections = append(sections, lipgloss.NewStyle().Foreground(m.timerColor()).Render(status))

	if t := m.state.ActiveTask; t != nil {
		sections = append(sections, "")
		sections = append(sections, fmt.Sprintf("Working on: %s (%d/%d)", t.Title, t.ActualPomodoros, t.EstimatedPomodoros))
	}

	sections = append(sections, "")
	sections = append(sections, helpStyle.Render(m.statsLine()))

	if m.flash != "" {
		sections = append(sections, "")
		sections = append(sections, modeStyle.Render(m.flash))
	}

	sections = append(sections, "")
	sections = append(sections, m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// cycleLine shows where the current session sits in the long-break cycle.
func cycleLine(snap domain.TimerSnapshot) string {
	interval := snap.Settings.LongBreakInterval
	if interval <= 0 {
		return ""
	}
	done := snap.State.CompletedFocusSessions
	if snap.State.Mode == domain.ModeFocus {
		return fmt.Sprintf("Session %d of %d", done%interval+1, interval)
	}
	return fmt.Sprintf("%d focus sessions completed", done)
}

func (m Model) statsLine() string {
	today := m.state.Today
	return fmt.Sprintf("Today: %d pomodoros, %s  ·  Streak: %d  ·  Week: %d/%d tasks",
		today.PomodorosCompleted, domain.FormatMinutes(today.FocusTimeMinutes),
		m.state.Streak, m.state.WeeklyCount, m.weeklyTarget)
}
