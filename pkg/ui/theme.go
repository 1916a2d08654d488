package ui

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Pagination
	Active   lipgloss.AdaptiveColor
	Inactive lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor

	// Styles
	Base    lipgloss.Style
	Header  lipgloss.Style
	Control lipgloss.Style
	Status  lipgloss.Style
	Hint    lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#999999", Dark: "#BFBFBF"}, // Dim
		Muted:     lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#44475A"},

		Active:   lipgloss.AdaptiveColor{Light: "#00A800", Dark: "#50FA7B"}, // Green
		Inactive: lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#6272A4"},

		Border:    lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#44475A"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Header = t.Base.
		Bold(true).
		Foreground(t.Primary)

	t.Control = t.Base.
		Bold(true).
		Foreground(t.Primary)

	t.Status = t.Base.
		Foreground(t.Subtext).
		Italic(true)

	t.Hint = t.Base.
		Foreground(t.Secondary).
		Faint(true)

	return t
}

// DotStyle returns the style for a pagination marker. The active dot sits
// on the highlight background.
func (t Theme) DotStyle(active bool) lipgloss.Style {
	s := t.Base.Foreground(t.DotColor(active))
	if active {
		s = s.Background(t.Highlight)
	}
	return s
}

// DotColor returns the pagination color for a dot's marker.
func (t Theme) DotColor(active bool) lipgloss.AdaptiveColor {
	if active {
		return t.Active
	}
	return t.Inactive
}
