package domain

import (
	"strconv"
	"strings"
)

// Input bounds for user-editable settings, in minutes (durations) or sessions (interval).
const (
	MinDuration          = 1
	MaxFocusDuration     = 60
	MaxBreakDuration     = 30
	MaxLongBreakDuration = 60
	MinLongBreakInterval = 1
	MaxLongBreakInterval = 10
)

// TimerSettings holds the user-configured session lengths.
type TimerSettings struct {
	FocusDuration     int `json:"focusDuration" yaml:"focusDuration"`
	BreakDuration     int `json:"breakDuration" yaml:"breakDuration"`
	LongBreakDuration int `json:"longBreakDuration" yaml:"longBreakDuration"`
	LongBreakInterval int `json:"longBreakInterval" yaml:"longBreakInterval"`
}

// DefaultTimerSettings returns the classic 25/5/15 cycle with a long break every 4 sessions.
func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		FocusDuration:     25,
		BreakDuration:     5,
		LongBreakDuration: 15,
		LongBreakInterval: 4,
	}
}

// DurationFor returns the length of the given mode in minutes.
func (s TimerSettings) DurationFor(m Mode) int {
	switch m {
	case ModeBreak:
		return s.BreakDuration
	case ModeLongBreak:
		return s.LongBreakDuration
	default:
		return s.FocusDuration
	}
}

// SecondsFor returns the full countdown length of the given mode.
func (s TimerSettings) SecondsFor(m Mode) int {
	return s.DurationFor(m) * 60
}

// DurationsEqual reports whether both settings describe the same session lengths.
func (s TimerSettings) DurationsEqual(other TimerSettings) bool {
	return s.FocusDuration == other.FocusDuration &&
		s.BreakDuration == other.BreakDuration &&
		s.LongBreakDuration == other.LongBreakDuration
}

// ClampSettings forces every field into its accepted range.
// A zero field is treated as unset and takes the default value.
func ClampSettings(s TimerSettings) TimerSettings {
	d := DefaultTimerSettings()
	return TimerSettings{
		FocusDuration:     clampOrDefault(s.FocusDuration, d.FocusDuration, MinDuration, MaxFocusDuration),
		BreakDuration:     clampOrDefault(s.BreakDuration, d.BreakDuration, MinDuration, MaxBreakDuration),
		LongBreakDuration: clampOrDefault(s.LongBreakDuration, d.LongBreakDuration, MinDuration, MaxLongBreakDuration),
		LongBreakInterval: clampOrDefault(s.LongBreakInterval, d.LongBreakInterval, MinLongBreakInterval, MaxLongBreakInterval),
	}
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseBoundedInt parses user input as an integer in [lo, hi].
// Non-numeric or zero input yields fallback; out-of-range input is clamped.
func ParseBoundedInt(input string, fallback, lo, hi int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return ClampInt(fallback, lo, hi)
	}
	return clampOrDefault(n, fallback, lo, hi)
}

func clampOrDefault(v, fallback, lo, hi int) int {
	if v == 0 {
		v = fallback
	}
	return ClampInt(v, lo, hi)
}
