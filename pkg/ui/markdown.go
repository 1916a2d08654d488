package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders slide bodies with Glamour at a fixed wrap width.
type MarkdownRenderer struct {
	tr    *glamour.TermRenderer
	style string
	width int
}

// NewMarkdownRenderer builds a renderer for a glamour standard style
// ("dark", "light", "notty", ...).
func NewMarkdownRenderer(width int, style string) *MarkdownRenderer {
	m := &MarkdownRenderer{style: style}
	m.SetWidth(width)
	return m
}

// SetWidth rebuilds the renderer when the wrap width changes.
func (m *MarkdownRenderer) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	if m.tr != nil && width == m.width {
		return
	}
	m.width = width
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Unknown style; Render falls back to raw markdown.
		m.tr = nil
		return
	}
	m.tr = tr
}

// Width returns the current wrap width.
func (m *MarkdownRenderer) Width() int { return m.width }

// Render returns styled markdown, or the raw text if rendering fails.
func (m *MarkdownRenderer) Render(md string) string {
	if m == nil || m.tr == nil {
		return md
	}
	out, err := m.tr.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
