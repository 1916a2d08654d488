package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderProgressBar draws a filled/empty bar for position pos (1-based) of total.
func RenderProgressBar(pos, total, width int) (filled, empty string) {
	if width <= 0 || total <= 0 {
		return "", ""
	}
	n := (pos * width) / total
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n), strings.Repeat("░", width-n)
}

// PageIndicator returns the "[k/N]" counter shown in the header.
func PageIndicator(pos, total int) string {
	return fmt.Sprintf("[%d/%d]", pos, total)
}

// TruncateTitle shortens s to fit width terminal cells.
func TruncateTitle(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
