package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lumina/pkg/model"
)

// Theme holds the colours and base styles shared by every view.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor

	// Block kinds
	Title     lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	Image     lipgloss.AdaptiveColor
	Button    lipgloss.AdaptiveColor
	Container lipgloss.AdaptiveColor

	Base     lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Status   lipgloss.Style
}

// DefaultTheme builds the theme for renderer r.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#60a5fa"},
		Secondary: lipgloss.AdaptiveColor{Light: "#6d28d9", Dark: "#c4b5fd"},
		Highlight: lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"},
		Muted:     lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"},
		Danger:    lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#ef5350"},

		Title:     lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"},
		Text:      lipgloss.AdaptiveColor{Light: "#334155", Dark: "#cbd5e1"},
		Image:     lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#81c784"},
		Button:    lipgloss.AdaptiveColor{Light: "#be185d", Dark: "#f9a8d4"},
		Container: lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#93c5fd"},
	}
	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1e293b", Dark: "#e2e8f0"})
	t.Selected = r.NewStyle().
		Background(lipgloss.AdaptiveColor{Light: "#dbeafe", Dark: "#1e3a5f"}).
		Bold(true)
	t.Cursor = r.NewStyle().
		Background(lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#2a2a2a"})
	t.Status = r.NewStyle().Foreground(t.Muted)
	return t
}

// ApplyPreference forces a light or dark background on r. "auto" and ""
// keep terminal detection.
func ApplyPreference(r *lipgloss.Renderer, pref string) {
	switch pref {
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	}
}

// KindIcon returns the glyph and colour used for a block kind.
func (t Theme) KindIcon(k model.Kind) (string, lipgloss.AdaptiveColor) {
	switch k {
	case model.KindTitle:
		return "H", t.Title
	case model.KindText:
		return "¶", t.Text
	case model.KindImage:
		return "▣", t.Image
	case model.KindButton:
		return "◉", t.Button
	case model.KindContainer:
		return "▤", t.Container
	}
	return "?", t.Muted
}
