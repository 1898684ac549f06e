package tui

import "github.com/charmbracelet/x/ansi"

// truncateLine hard-truncates a styled line to the given display width,
// counting cells rather than bytes so escape sequences and wide runes
// don't skew the cut point.
func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
