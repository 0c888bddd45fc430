package domain

import (
	"fmt"
	"strings"
)

// Mode identifies which kind of session the timer is counting down.
type Mode string

const (
	ModeFocus     Mode = "focus"
	ModeBreak     Mode = "break"
	ModeLongBreak Mode = "longBreak"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeFocus, ModeBreak, ModeLongBreak}

// Label returns the human-readable name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeBreak:
		return "Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// IsValid reports whether m is one of the known modes.
func (m Mode) IsValid() bool {
	switch m {
	case ModeFocus, ModeBreak, ModeLongBreak:
		return true
	}
	return false
}

// ParseMode accepts the canonical mode names and a few shell-friendly aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "focus", "work", "pomodoro":
		return ModeFocus, nil
	case "break", "short", "short_break", "short-break":
		return ModeBreak, nil
	case "longbreak", "long", "long_break", "long-break":
		return ModeLongBreak, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// NextMode returns the mode that follows current once it completes or is skipped.
// completedFocusSessions is the count before the current session is accounted for.
func NextMode(current Mode, completedFocusSessions int, s TimerSettings) Mode {
	if current != ModeFocus {
		return ModeFocus
	}
	interval := s.LongBreakInterval
	if interval < 1 {
		interval = 1
	}
	if (completedFocusSessions+1)%interval == 0 {
		return ModeLongBreak
	}
	return ModeBreak
}
