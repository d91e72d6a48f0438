package ui

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// MarkdownRenderer renders the page outline for the preview pane.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
	useTheme bool
	theme    *Theme
}

// NewMarkdownRenderer uses glamour's automatic dark/light style.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	mr := &MarkdownRenderer{width: width}
	mr.rebuild()
	return mr
}

// NewMarkdownRendererWithTheme colours headings and links from theme.
func NewMarkdownRendererWithTheme(width int, theme Theme) *MarkdownRenderer {
	mr := &MarkdownRenderer{width: width, useTheme: true, theme: &theme}
	mr.rebuild()
	return mr
}

func (mr *MarkdownRenderer) rebuild() {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(mr.width)}
	if mr.useTheme && mr.theme != nil {
		opts = append(opts, glamour.WithStyles(buildStyleFromTheme(*mr.theme, mr.IsDarkMode())))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		mr.renderer = nil
		return
	}
	mr.renderer = r
}

// Render returns styled output, or the raw markdown when no renderer could
// be built.
func (mr *MarkdownRenderer) Render(md string) (string, error) {
	if mr.renderer == nil {
		return md, nil
	}
	return mr.renderer.Render(md)
}

// SetWidth rebuilds the renderer for a new wrap width.
func (mr *MarkdownRenderer) SetWidth(width int) {
	if width <= 0 || width == mr.width {
		return
	}
	mr.width = width
	mr.rebuild()
}

// SetWidthWithTheme switches to themed rendering at width.
func (mr *MarkdownRenderer) SetWidthWithTheme(width int, theme Theme) {
	mr.width = width
	mr.useTheme = true
	mr.theme = &theme
	mr.rebuild()
}

// IsDarkMode reports whether the terminal background is dark.
func (mr *MarkdownRenderer) IsDarkMode() bool {
	if mr.theme != nil && mr.theme.Renderer != nil {
		return mr.theme.Renderer.HasDarkBackground()
	}
	return lipgloss.HasDarkBackground()
}

func extractHex(c lipgloss.AdaptiveColor, dark bool) string {
	if dark {
		return c.Dark
	}
	return c.Light
}

func buildStyleFromTheme(theme Theme, dark bool) ansi.StyleConfig {
	cfg := styles.LightStyleConfig
	doc := "#000000"
	if dark {
		cfg = styles.DarkStyleConfig
		doc = "#f8f8f2"
	}
	primary := extractHex(theme.Primary, dark)
	title := extractHex(theme.Title, dark)
	link := extractHex(theme.Highlight, dark)

	cfg.Document.Color = &doc
	cfg.H1.Color = &primary
	cfg.H2.Color = &primary
	cfg.H3.Color = &title
	cfg.Link.Color = &link
	cfg.LinkText.Color = &link
	return cfg
}
