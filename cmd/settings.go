package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo-cli/internal/domain"
)

var (
	settingsFocus     string
	settingsBreak     string
	settingsLongBreak string
	settingsInterval  string
	settingsSave      bool
)

// settingsCmd shows or changes the stored timer settings.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change session lengths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSettings(cmd.OutOrStdout(), app.app.Settings())
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSettings(cmd.OutOrStdout(), app.app.Settings())
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change session lengths",
	Long: `Change session lengths. Values are clamped to their allowed range:
focus 1-60, break 1-30, long break 1-60 minutes, long break interval 1-10 sessions.
A value that is not a number resets the field to its default.
With --save-defaults the result also becomes the config file default for new databases.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		next := applySettingsFlags(cmd, app.app.Settings())
		if next == nil {
			return fmt.Errorf("nothing to change: use --focus, --break, --long-break or --interval")
		}
		applied := app.app.UpdateSettings(*next)
		if settingsSave {
			app.config.Timer.FocusDuration = applied.FocusDuration
			app.config.Timer.BreakDuration = applied.BreakDuration
			app.config.Timer.LongBreakDuration = applied.LongBreakDuration
			app.config.Timer.LongBreakInterval = applied.LongBreakInterval
			if err := saveConfig(app.config); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
		}
		return printSettings(cmd.OutOrStdout(), applied)
	},
}

// applySettingsFlags merges the changed flags over current. It returns nil when no flag was given.
func applySettingsFlags(cmd *cobra.Command, current domain.TimerSettings) *domain.TimerSettings {
	defaults := domain.DefaultTimerSettings()
	next := current
	changed := false

	if cmd.Flags().Changed("focus") {
		next.FocusDuration = domain.ParseBoundedInt(settingsFocus, defaults.FocusDuration, domain.MinDuration, domain.MaxFocusDuration)
		changed = true
	}
	if cmd.Flags().Changed("break") {
		next.BreakDuration = domain.ParseBoundedInt(settingsBreak, defaults.BreakDuration, domain.MinDuration, domain.MaxBreakDuration)
		changed = true
	}
	if cmd.Flags().Changed("long-break") {
		next.LongBreakDuration = domain.ParseBoundedInt(settingsLongBreak, defaults.LongBreakDuration, domain.MinDuration, domain.MaxLongBreakDuration)
		changed = true
	}
	if cmd.Flags().Changed("interval") {
		next.LongBreakInterval = domain.ParseBoundedInt(settingsInterval, defaults.LongBreakInterval, domain.MinLongBreakInterval, domain.MaxLongBreakInterval)
		changed = true
	}

	if !changed {
		return nil
	}
	return &next
}

func printSettings(w io.Writer, s domain.TimerSettings) error {
	if jsonOutput {
		return printJSON(w, s)
	}
	fmt.Fprintln(w, "⚙️  Timer settings")
	fmt.Fprintf(w, "   Focus:               %d min\n", s.FocusDuration)
	fmt.Fprintf(w, "   Short break:         %d min\n", s.BreakDuration)
	fmt.Fprintf(w, "   Long break:          %d min\n", s.LongBreakDuration)
	fmt.Fprintf(w, "   Long break every:    %d sessions\n", s.LongBreakInterval)
	return nil
}

func init() {
	settingsSetCmd.Flags().StringVar(&settingsFocus, "focus", "", "Focus minutes (1-60)")
	settingsSetCmd.Flags().StringVar(&settingsBreak, "break", "", "Short break minutes (1-30)")
	settingsSetCmd.Flags().StringVar(&settingsLongBreak, "long-break", "", "Long break minutes (1-60)")
	settingsSetCmd.Flags().StringVar(&settingsInterval, "interval", "", "Focus sessions per long break (1-10)")
	settingsSetCmd.Flags().BoolVar(&settingsSave, "save-defaults", false, "Also write the values to the config file")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
}
