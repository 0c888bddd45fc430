package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetForce bool

// sqliteSideFiles are left next to the database by WAL mode.
var sqliteSideFiles = []string{"-wal", "-shm"}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase every task, setting and pomodoro",
	Long: `Erase the pomo database: tasks, timer settings, focus history, streak and weekly progress.
The config file is kept. Pass --force to skip the question.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipServices: "true"},
	RunE:        runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	path := resolveDBPath(loadConfig())
	out := cmd.OutOrStdout()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(out, "No pomo data at %s.\n", path)
		return nil
	}

	if !resetForce && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Erase all pomo data in %s? [y/N] ", path)) {
		fmt.Fprintln(out, "Kept everything.")
		return nil
	}

	removed, err := removeDatabase(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "🧹 Erased pomo data (%d file(s)). The next run starts from scratch.\n", removed)
	return nil
}

// confirm asks a yes/no question and defaults to no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprint(out, question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// removeDatabase deletes the database file and its side files, returning how many existed.
func removeDatabase(path string) (int, error) {
	if err := os.Remove(path); err != nil {
		return 0, fmt.Errorf("failed to delete database: %w", err)
	}
	removed := 1
	for _, suffix := range sqliteSideFiles {
		if os.Remove(path+suffix) == nil {
			removed++
		}
	}
	return removed, nil
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Erase without asking")
}
