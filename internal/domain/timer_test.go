package domain

import "testing"

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{1500, "25:00"},
		{1499, "24:59"},
		{65, "01:05"},
		{9, "00:09"},
		{0, "00:00"},
		{-4, "00:00"},
		{3600, "60:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		remaining int
		want      float64
	}{
		{"not started", 1500, 1500, 0},
		{"half way", 1500, 750, 50},
		{"done", 300, 0, 100},
		{"zero total", 0, 0, 0},
		{"remaining above total", 300, 600, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressPercent(tt.total, tt.remaining); got != tt.want {
				t.Errorf("ProgressPercent(%d, %d) = %v, want %v", tt.total, tt.remaining, got, tt.want)
			}
		})
	}
}

func TestWindowTitle(t *testing.T) {
	if got := WindowTitle(299, ModeBreak); got != "04:59 - Break" {
		t.Errorf("WindowTitle() = %q, want %q", got, "04:59 - Break")
	}
}

func TestNewTimerState(t *testing.T) {
	st := NewTimerState(DefaultTimerSettings())
	if st.Mode != ModeFocus || st.TimeRemainingSeconds != 1500 || st.IsRunning || st.CompletedFocusSessions != 0 {
		t.Errorf("NewTimerState() = %+v, want idle focus at 1500s", st)
	}
}
