package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGlyph(t *testing.T) {
	tests := []struct {
		ch   rune
		want [5]string
	}{
		{'0', [5]string{"████", "█  █", "    ", "█  █", "████"}},
		{'1', [5]string{"    ", "   █", "    ", "   █", "    "}},
		{'7', [5]string{"████", "   █", "    ", "   █", "    "}},
		{'8', [5]string{"████", "█  █", "████", "█  █", "████"}},
		{':', [5]string{" ", "█", " ", "█", " "}},
		{'x', [5]string{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.ch), func(t *testing.T) {
			if got := glyph(tt.ch); got != tt.want {
				t.Errorf("glyph(%q) = %q, want %q", tt.ch, got, tt.want)
			}
		})
	}
}

func TestRenderBigTime(t *testing.T) {
	color := lipgloss.Color("#FF6B6B")

	narrow := renderBigTime("25:00", color, 20)
	if strings.Contains(narrow, "\n") {
		t.Error("narrow terminals should get a single line")
	}
	if !strings.Contains(narrow, "25:00") {
		t.Errorf("narrow render = %q, want the plain clock", narrow)
	}

	wide := renderBigTime("25:00", color, 80)
	if lines := strings.Split(wide, "\n"); len(lines) != 5 {
		t.Errorf("wide render has %d lines, want 5", len(lines))
	}
	if strings.Contains(wide, "25:00") {
		t.Error("wide render should not contain the plain clock")
	}
}
