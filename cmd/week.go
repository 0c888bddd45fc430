package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var weekReset bool

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show tasks completed this week",
	Long: `Show how many tasks were completed this week (Monday to Sunday) against
the weekly goal set by weekly.target in the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if weekReset {
			app.app.ResetWeeklyProgress()
		}

		weekly := app.app.WeeklyProgress()
		target := app.config.WeeklyTarget()
		monday, sunday := weekly.WeekRange()
		pct := weekly.PercentOf(target)

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, map[string]interface{}{
				"week_start":         monday,
				"week_end":           sunday,
				"completed_count":    weekly.Count(),
				"completed_task_ids": weekly.CompletedTaskIDs,
				"target":             target,
				"percent":            pct,
			})
		}

		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
		barColor := lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))

		if weekReset {
			fmt.Fprintln(out, "Weekly progress reset.")
		}
		fmt.Fprintf(out, "  %s  %s\n", titleStyle.Render("Weekly goal"), dimStyle.Render(monday+" – "+sunday))
		width := dayBarWidth(terminalWidth(80))
		fmt.Fprintf(out, "  %s %d/%d tasks (%.0f%%)\n", barColor.Render(meter(pct, width)), weekly.Count(), target, pct)
		if weekly.Count() >= target {
			fmt.Fprintf(out, "  %s\n", titleStyle.Render("🎉 Goal reached!"))
		}
		return nil
	},
}

func init() {
	weekCmd.Flags().BoolVar(&weekReset, "reset", false, "Clear this week's completed tasks first")
}
