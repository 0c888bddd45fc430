package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Segment bits of a seven-segment digit.
const (
	segTop = 1 << iota
	segTopLeft
	segTopRight
	segMiddle
	segBottomLeft
	segBottomRight
	segBottom
)

var digitSegments = map[rune]int{
	'0': segTop | segTopLeft | segTopRight | segBottomLeft | segBottomRight | segBottom,
	'1': segTopRight | segBottomRight,
	'2': segTop | segTopRight | segMiddle | segBottomLeft | segBottom,
	'3': segTop | segTopRight | segMiddle | segBottomRight | segBottom,
	'4': segTopLeft | segTopRight | segMiddle | segBottomRight,
	'5': segTop | segTopLeft | segMiddle | segBottomRight | segBottom,
	'6': segTop | segTopLeft | segMiddle | segBottomLeft | segBottomRight | segBottom,
	'7': segTop | segTopRight | segBottomRight,
	'8': segTop | segTopLeft | segTopRight | segMiddle | segBottomLeft | segBottomRight | segBottom,
	'9': segTop | segTopLeft | segTopRight | segMiddle | segBottomRight | segBottom,
}

// bigFontMinWidth is the narrowest terminal that gets the large clock.
const bigFontMinWidth = 40

// glyph draws one character five rows high.
func glyph(ch rune) [5]string {
	if ch == ':' {
		return [5]string{" ", "█", " ", "█", " "}
	}
	segs, ok := digitSegments[ch]
	if !ok {
		return [5]string{}
	}
	on := func(bit int, s string) string {
		if segs&bit != 0 {
			return s
		}
		return strings.Repeat(" ", len([]rune(s)))
	}
	side := func(left, right int) string {
		return on(left, "█") + "  " + on(right, "█")
	}
	return [5]string{
		on(segTop, "████"),
		side(segTopLeft, segTopRight),
		on(segMiddle, "████"),
		side(segBottomLeft, segBottomRight),
		on(segBottom, "████"),
	}
}

// renderBigTime draws a clock string such as "24:59" in block digits.
// Narrow terminals get a single bold line instead.
func renderBigTime(clock string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < bigFontMinWidth {
		return style.Render(clock)
	}

	var rows [5][]string
	for _, ch := range clock {
		g := glyph(ch)
		if g[0] == "" {
			continue
		}
		for i := range rows {
			rows[i] = append(rows[i], g[i])
		}
	}

	out := make([]string, len(rows))
	for i, parts := range rows {
		out[i] = style.Render(strings.Join(parts, " "))
	}
	return strings.Join(out, "\n")
}
