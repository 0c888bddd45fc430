package domain

import (
	"errors"
	"testing"
)

func TestNextMode(t *testing.T) {
	s := DefaultTimerSettings()

	tests := []struct {
		name      string
		current   Mode
		completed int
		interval  int
		want      Mode
	}{
		{"first focus goes to break", ModeFocus, 0, 4, ModeBreak},
		{"third focus goes to break", ModeFocus, 2, 4, ModeBreak},
		{"fourth focus goes to long break", ModeFocus, 3, 4, ModeLongBreak},
		{"eighth focus goes to long break", ModeFocus, 7, 4, ModeLongBreak},
		{"interval one always long", ModeFocus, 0, 1, ModeLongBreak},
		{"break returns to focus", ModeBreak, 1, 4, ModeFocus},
		{"long break returns to focus", ModeLongBreak, 4, 4, ModeFocus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.LongBreakInterval = tt.interval
			if got := NextMode(tt.current, tt.completed, s); got != tt.want {
				t.Errorf("NextMode(%s, %d) = %s, want %s", tt.current, tt.completed, got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"focus", ModeFocus, false},
		{"Focus", ModeFocus, false},
		{"break", ModeBreak, false},
		{"short", ModeBreak, false},
		{"longBreak", ModeLongBreak, false},
		{"long", ModeLongBreak, false},
		{"nap", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMode) {
					t.Errorf("ParseMode(%q) error = %v, want ErrInvalidMode", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMode(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestMode_Label(t *testing.T) {
	if got := ModeLongBreak.Label(); got != "Long Break" {
		t.Errorf("Label() = %q, want %q", got, "Long Break")
	}
	if Mode("nap").IsValid() {
		t.Error("IsValid() should reject unknown modes")
	}
}
