package domain

import "fmt"

// TimerState is the countdown state owned by the timer engine.
type TimerState struct {
	Mode                   Mode `json:"mode"`
	TimeRemainingSeconds   int  `json:"timeRemainingSeconds"`
	IsRunning              bool `json:"isRunning"`
	CompletedFocusSessions int  `json:"completedFocusSessions"`
}

// NewTimerState returns an idle focus countdown at full length.
func NewTimerState(s TimerSettings) TimerState {
	return TimerState{
		Mode:                 ModeFocus,
		TimeRemainingSeconds: s.SecondsFor(ModeFocus),
	}
}

// CompletionEvent is emitted when a countdown reaches zero by ticking.
type CompletionEvent struct {
	Mode            Mode
	DurationMinutes int
}

// TimerSnapshot is a read-only view of the timer for presentation layers.
type TimerSnapshot struct {
	State         TimerState    `json:"state"`
	Settings      TimerSettings `json:"settings"`
	FormattedTime string        `json:"formattedTime"`
	Progress      float64       `json:"progress"`
	Title         string        `json:"title"`
}

// FormatClock renders seconds as zero-padded MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ProgressPercent returns how much of a countdown has elapsed, in [0, 100].
func ProgressPercent(totalSeconds, remainingSeconds int) float64 {
	if totalSeconds <= 0 {
		return 0
	}
	p := float64(totalSeconds-remainingSeconds) / float64(totalSeconds) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// WindowTitle renders the "MM:SS - Mode" line used as a window or screen title.
func WindowTitle(remainingSeconds int, m Mode) string {
	return FormatClock(remainingSeconds) + " - " + m.Label()
}
