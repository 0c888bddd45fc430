package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xvierd/pomo-cli/internal/domain"
)

var (
	exportFormat string
	exportRaw    bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export settings, tasks and progress",
	Long: `Export everything pomo stores: settings, tasks, progress, the selected task and
this week's completed tasks. Formats: json, yaml, or csv (daily focus history only).
With --raw, the stored key/value pairs are dumped as they are.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json, yaml or csv")
	exportCmd.Flags().BoolVar(&exportRaw, "raw", false, "Dump the stored key/value pairs")
}

func runExport(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if exportRaw {
		return exportStore(ctx, w)
	}

	state := app.app.Export()
	switch exportFormat {
	case "json":
		return printJSON(w, state)
	case "yaml", "yml":
		return exportYAML(w, state)
	case "csv":
		return exportCSV(w, state.Progress)
	default:
		return fmt.Errorf("unknown format %q: use json, yaml or csv", exportFormat)
	}
}

func exportYAML(w io.Writer, state domain.AppState) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

func exportCSV(w io.Writer, p domain.UserProgress) error {
	cw := csv.NewWriter(w)

	_ = cw.Write([]string{"date", "focus_minutes", "pomodoros_completed"})
	for _, d := range p.SortedDays() {
		_ = cw.Write([]string{
			d.Date,
			strconv.Itoa(d.FocusTimeMinutes),
			strconv.Itoa(d.PomodorosCompleted),
		})
	}
	cw.Flush()
	return cw.Error()
}

// exportStore dumps every stored value keyed by its storage key.
func exportStore(ctx context.Context, w io.Writer) error {
	keys, err := app.store.Keys(ctx)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	dump := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		raw, err := app.store.Get(ctx, k)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", k, err)
		}
		if !json.Valid(raw) {
			quoted, _ := json.Marshal(string(raw))
			raw = quoted
		}
		dump[k] = raw
	}
	return printJSON(w, dump)
}
