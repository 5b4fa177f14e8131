package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncate shortens a string to the given display width, adding an
// ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "\n", " "))
	if limit <= 0 {
		return ""
	}
	if ansi.StringWidth(value) <= limit {
		return value
	}
	return ansi.Truncate(value, limit, "…")
}

// padRight pads a string with spaces to the given display width.
func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
