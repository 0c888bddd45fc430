package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/xvierd/pomo-cli/internal/domain"
)

var (
	taskEstimate      int
	taskListOpen      bool
	taskListCompleted bool
	taskEditTitle     string
	taskEditEstimate  int
	taskEditActual    int
	taskClearAll      bool
)

// taskCmd groups the task list operations.
var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks", "t"},
	Short:   "Manage tasks",
	Long: `Add, edit, complete and delete tasks.

Tasks can be referenced by ID, a unique ID prefix, or (fuzzily) by title.
The selected task is credited with every completed focus session.`,
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := app.app.AddTask(strings.Join(args, " "), taskEstimate)
		if err != nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, taskData(task))
		}
		fmt.Fprintf(out, "✅ Task added: %s (%s 🍅, ID: %s)\n", task.Title, task.PomodoroLabel(), domain.ShortID(task.ID))
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var tasks []domain.Task
		for _, t := range app.app.Tasks() {
			if taskListOpen && t.Completed {
				continue
			}
			if taskListCompleted && !t.Completed {
				continue
			}
			tasks = append(tasks, t)
		}

		active, hasActive := app.app.ActiveTask()
		out := cmd.OutOrStdout()

		if jsonOutput {
			list := make([]map[string]interface{}, 0, len(tasks))
			for _, t := range tasks {
				data := taskData(t)
				data["active"] = hasActive && active.ID == t.ID
				data["completed_this_week"] = app.app.IsTaskCompletedThisWeek(t.ID)
				list = append(list, data)
			}
			return printJSON(out, list)
		}

		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks. Add one with: pomo task add <title>")
			return nil
		}

		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
		doneStyle := lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("#6B7280"))
		activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))

		for _, t := range tasks {
			box := "[ ]"
			title := t.Title
			if t.Completed {
				box = "[x]"
				title = doneStyle.Render(title)
			}
			marker := " "
			if hasActive && active.ID == t.ID {
				marker = activeStyle.Render("▶")
			}
			fmt.Fprintf(out, "%s %s %s  %s  %s\n",
				marker, box, dimStyle.Render(domain.ShortID(t.ID)), title,
				dimStyle.Render(fmt.Sprintf("%d/%d 🍅", t.ActualPomodoros, t.EstimatedPomodoros)))
		}
		return nil
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit [task]",
	Short: "Edit a task's title, estimate or pomodoro count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := requireTask(args[0])
		if err != nil {
			return err
		}

		var patch domain.TaskPatch
		if cmd.Flags().Changed("title") {
			patch.Title = &taskEditTitle
		}
		if cmd.Flags().Changed("estimate") {
			patch.EstimatedPomodoros = &taskEditEstimate
		}
		if cmd.Flags().Changed("actual") {
			patch.ActualPomodoros = &taskEditActual
		}
		if patch.Title == nil && patch.EstimatedPomodoros == nil && patch.ActualPomodoros == nil {
			return fmt.Errorf("nothing to change: use --title, --estimate or --actual")
		}

		updated, _, err := app.app.EditTask(task.ID, patch)
		if err != nil {
			return fmt.Errorf("failed to edit task: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, taskData(updated))
		}
		fmt.Fprintf(out, "✏️  Task updated: %s (%d/%d 🍅)\n", updated.Title, updated.ActualPomodoros, updated.EstimatedPomodoros)
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [task]",
	Short: "Mark a task completed, or reopen a completed one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := requireTask(args[0])
		if err != nil {
			return err
		}
		toggled, _ := app.app.ToggleTaskCompletion(task.ID)

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, taskData(toggled))
		}
		if toggled.Completed {
			fmt.Fprintf(out, "✅ Completed: %s (%d this week)\n", toggled.Title, app.app.WeeklyCount())
		} else {
			fmt.Fprintf(out, "↩️  Reopened: %s\n", toggled.Title)
		}
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete [task]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := requireTask(args[0])
		if err != nil {
			return err
		}
		app.app.DeleteTask(task.ID)

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, map[string]interface{}{"deleted": taskData(task)})
		}
		fmt.Fprintf(out, "🗑️  Deleted: %s\n", task.Title)
		return nil
	},
}

var taskClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove completed tasks (or every task with --all)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var removed int
		if taskClearAll {
			removed = app.app.ClearAllTasks()
		} else {
			removed = app.app.ClearFinishedTasks()
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, map[string]interface{}{"removed": removed})
		}
		fmt.Fprintf(out, "Removed %d task(s).\n", removed)
		return nil
	},
}

var taskSelectCmd = &cobra.Command{
	Use:   "select [task]",
	Short: "Select the task credited with focus sessions (no argument clears it)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			app.app.SelectTask("")
			if jsonOutput {
				return printJSON(out, map[string]interface{}{"active_task": nil})
			}
			fmt.Fprintln(out, "No task selected.")
			return nil
		}

		task, err := requireTask(args[0])
		if err != nil {
			return err
		}
		app.app.SelectTask(task.ID)

		if jsonOutput {
			return printJSON(out, map[string]interface{}{"active_task": taskData(task)})
		}
		fmt.Fprintf(out, "▶ Working on: %s\n", task.Title)
		return nil
	},
}

func init() {
	taskAddCmd.Flags().IntVarP(&taskEstimate, "estimate", "e", 1, "Estimated pomodoros (1-50)")

	taskListCmd.Flags().BoolVar(&taskListOpen, "open", false, "Only show open tasks")
	taskListCmd.Flags().BoolVar(&taskListCompleted, "completed", false, "Only show completed tasks")
	taskListCmd.MarkFlagsMutuallyExclusive("open", "completed")

	taskEditCmd.Flags().StringVar(&taskEditTitle, "title", "", "New title")
	taskEditCmd.Flags().IntVarP(&taskEditEstimate, "estimate", "e", 1, "Estimated pomodoros (1-50)")
	taskEditCmd.Flags().IntVar(&taskEditActual, "actual", 0, "Completed pomodoros")

	taskClearCmd.Flags().BoolVar(&taskClearAll, "all", false, "Remove every task, not only completed ones")

	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskEditCmd, taskDoneCmd, taskDeleteCmd, taskClearCmd, taskSelectCmd)
}
