package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"

	"github.com/xvierd/pomo-cli/internal/domain"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}

// taskData is the JSON shape of a task on the command line.
func taskData(t domain.Task) map[string]interface{} {
	return map[string]interface{}{
		"id":                  t.ID,
		"title":               t.Title,
		"estimated_pomodoros": t.EstimatedPomodoros,
		"actual_pomodoros":    t.ActualPomodoros,
		"completed":           t.Completed,
		"created_at":          t.CreatedAt.Format(time.RFC3339),
	}
}

// requireTask resolves a task reference or reports it as not found.
func requireTask(ref string) (domain.Task, error) {
	task, ok := app.app.ResolveTask(ref)
	if !ok {
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, ref)
	}
	return task, nil
}

// terminalWidth returns the stdout width, or fallback when it is not a terminal.
func terminalWidth(fallback int) int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// buildBar creates a horizontal bar using block characters.
func buildBar(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("█", width)
}

// meter draws a filled/empty bar of width cells for pct in [0, 100].
func meter(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return buildBar(filled) + strings.Repeat("░", width-filled)
}
