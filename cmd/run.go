package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo-cli/internal/adapters/tui"
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

var (
	runStart bool
	runMode  string
)

// runCmd opens the interactive timer.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive timer",
	Long: `Open the full-screen Pomodoro timer.

Keys: space start/pause, r reset, s skip, 1 focus, 2 break, 3 long break, q quit.`,
	Args: cobra.NoArgs,
	RunE: runTimer,
}

func init() {
	runCmd.Flags().BoolVarP(&runStart, "start", "s", false, "Start the countdown immediately")
	runCmd.Flags().StringVarP(&runMode, "mode", "m", "", "Initial mode: focus, break, longBreak")
}

// prepareTimer applies --mode and --start before the screen opens.
func prepareTimer() error {
	if runMode != "" {
		mode, err := domain.ParseMode(runMode)
		if err != nil {
			return err
		}
		if _, err := app.app.SwitchMode(mode); err != nil {
			return fmt.Errorf("failed to switch mode: %w", err)
		}
	}
	if runStart {
		app.app.StartTimer()
	}
	return nil
}

// progressChannel forwards progress updates into a channel that keeps only the latest one.
func progressChannel() (<-chan domain.UserProgress, func()) {
	updates := make(chan domain.UserProgress, 1)
	unsubscribe := app.app.SubscribeProgress(func(p domain.UserProgress) {
		select {
		case updates <- p:
		default:
			select {
			case <-updates:
			default:
			}
			select {
			case updates <- p:
			default:
			}
		}
	})
	return updates, unsubscribe
}

// runTimer launches the Bubbletea timer interface.
func runTimer(cmd *cobra.Command, args []string) error {
	if err := prepareTimer(); err != nil {
		return err
	}

	ctx := setupSignalHandler()

	updates, unsubscribe := progressChannel()
	defer unsubscribe()

	timer := tui.NewTimer(&app.config.Theme, app.config.WeeklyTarget())
	timer.SetFetchState(app.app.CurrentState)
	timer.SetCommandCallback(func(c ports.TimerCommand) {
		if _, err := app.state.ControlTimer(ctx, c); err != nil {
			app.logger.Warn("timer command failed", "command", c, "err", err)
		}
	})
	timer.SetProgressUpdates(updates)

	if err := timer.Run(ctx, app.app.CurrentState()); err != nil {
		return fmt.Errorf("timer error: %w", err)
	}

	// Leave the countdown stopped so no tick fires during shutdown.
	app.app.PauseTimer()
	return nil
}
