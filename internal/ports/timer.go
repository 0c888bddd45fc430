package ports

import (
	"context"

	"github.com/xvierd/pomo-cli/internal/domain"
)

// TimerCommand represents a user action during timer operation.
type TimerCommand string

const (
	// CmdStart starts or resumes the countdown.
	CmdStart TimerCommand = "start"

	// CmdPause pauses the countdown.
	CmdPause TimerCommand = "pause"

	// CmdToggle starts a paused countdown or pauses a running one.
	CmdToggle TimerCommand = "toggle"

	// CmdReset restores the full duration of the current mode.
	CmdReset TimerCommand = "reset"

	// CmdSkip moves to the next mode without recording progress.
	CmdSkip TimerCommand = "skip"

	// CmdFocus switches to a focus session.
	CmdFocus TimerCommand = "focus"

	// CmdBreak switches to a short break.
	CmdBreak TimerCommand = "break"

	// CmdLongBreak switches to a long break.
	CmdLongBreak TimerCommand = "longBreak"

	// CmdQuit exits the timer screen.
	CmdQuit TimerCommand = "quit"
)

// ParseTimerCommand maps an action name to a command.
func ParseTimerCommand(s string) (TimerCommand, bool) {
	switch c := TimerCommand(s); c {
	case CmdStart, CmdPause, CmdToggle, CmdReset, CmdSkip, CmdFocus, CmdBreak, CmdLongBreak:
		return c, true
	}
	return "", false
}

// Timer is the interactive timer screen.
// This is a driving port (it calls into the application layer).
type Timer interface {
	// Run starts the screen and blocks until the user quits or ctx is cancelled.
	Run(ctx context.Context, initial *domain.CurrentState) error

	// SetFetchState sets the function polled on each refresh.
	SetFetchState(fetch func() *domain.CurrentState)

	// SetCommandCallback sets the function invoked for each user command.
	SetCommandCallback(callback func(cmd TimerCommand))

	// SetProgressUpdates sets a channel that delivers progress after each recorded focus session.
	SetProgressUpdates(updates <-chan domain.UserProgress)
}
