package cmd

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/xvierd/pomo-cli/internal/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus time, streak and top tasks",
	Long:  `Display total focus time, the current streak, today's numbers, the last seven days and the tasks that took the most pomodoros.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := app.app.ProgressReport()
		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, report)
		}
		renderDashboard(out, report, terminalWidth(80))
		return nil
	},
}

func renderDashboard(w io.Writer, r domain.ProgressReport, width int) {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA07A"))
	barColor := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", titleStyle.Render("🍅 Progress"))
	fmt.Fprintf(w, "  %s\n\n", dimStyle.Render(strings.Repeat("─", 40)))

	fmt.Fprintf(w, "  Total: %s pomodoros, %s focused\n",
		valueStyle.Render(fmt.Sprintf("%d", r.TotalPomodorosCompleted)),
		valueStyle.Render(domain.FormatMinutes(r.TotalFocusTimeMinutes)),
	)
	fmt.Fprintf(w, "  Today: %s pomodoros, %s focused\n",
		valueStyle.Render(fmt.Sprintf("%d", r.Today.PomodorosCompleted)),
		valueStyle.Render(domain.FormatMinutes(r.Today.FocusTimeMinutes)),
	)
	fmt.Fprintf(w, "  Streak: %s\n", valueStyle.Render(pluralDays(r.CurrentStreak)))
	fmt.Fprintf(w, "  Tasks: %s completed (%.0f%%)\n\n",
		valueStyle.Render(fmt.Sprintf("%d/%d", r.TasksCompleted, r.TasksTotal)),
		r.TaskCompletionPercent(),
	)

	fmt.Fprintf(w, "  %s\n", dimStyle.Render("Last 7 days"))
	maxMinutes := 0
	for _, d := range r.LastSevenDays {
		if d.FocusTimeMinutes > maxMinutes {
			maxMinutes = d.FocusTimeMinutes
		}
	}
	maxBarWidth := dayBarWidth(width)
	for _, d := range r.LastSevenDays {
		fmt.Fprintf(w, "  %s %s %s\n",
			dimStyle.Render(dayLabel(d.Date)),
			barColor.Render(buildBar(scaleBar(d.FocusTimeMinutes, maxMinutes, maxBarWidth))),
			dimStyle.Render(fmt.Sprintf("%s (%d)", domain.FormatMinutes(d.FocusTimeMinutes), d.PomodorosCompleted)),
		)
	}
	fmt.Fprintln(w)

	if len(r.TopTasks) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s\n", dimStyle.Render("Top tasks"))
	for i, t := range r.TopTasks {
		fmt.Fprintf(w, "  %d. %s  %s\n", i+1, t.Title,
			dimStyle.Render(fmt.Sprintf("%d 🍅, %s", t.Pomodoros, domain.FormatMinutes(t.FocusTimeMinutes))))
	}
	fmt.Fprintln(w)
}

// dayLabel renders a date key as "Mon 01-08".
func dayLabel(key string) string {
	t, err := domain.ParseDateKey(key)
	if err != nil {
		return key
	}
	return t.Format("Mon 01-02")
}

// dayBarWidth sizes the daily bars to the terminal.
func dayBarWidth(termWidth int) int {
	w := termWidth - 30
	if w > 40 {
		w = 40
	}
	if w < 5 {
		w = 5
	}
	return w
}

// scaleBar maps v in [0, peak] onto [0, width]; any non-zero value gets at least one cell.
func scaleBar(v, peak, width int) int {
	if peak <= 0 || v <= 0 {
		return 0
	}
	n := int(math.Round(float64(v) / float64(peak) * float64(width)))
	if n < 1 {
		n = 1
	}
	return n
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
