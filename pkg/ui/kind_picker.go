package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lumina/pkg/model"
)

// PickerPurpose says what happens with the kind the user picks.
type PickerPurpose int

const (
	// PickAdd adds the block inside the selected container or at the top.
	PickAdd PickerPurpose = iota
	// PickInsert drops the new block onto the block under the cursor.
	PickInsert
)

// KindPickerModel is the block palette shown as a modal.
type KindPickerModel struct {
	kinds         []model.Kind
	selectedIndex int
	purpose       PickerPurpose
	target        string
	width         int
	height        int
	theme         Theme
}

// NewKindPickerModel creates a palette. target names the block a PickInsert
// drop lands on.
func NewKindPickerModel(purpose PickerPurpose, target string, theme Theme) KindPickerModel {
	return KindPickerModel{
		kinds:   model.Kinds,
		purpose: purpose,
		target:  target,
		theme:   theme,
	}
}

// SetSize updates the picker dimensions
func (m *KindPickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// MoveUp moves selection up
func (m *KindPickerModel) MoveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
}

// MoveDown moves selection down
func (m *KindPickerModel) MoveDown() {
	if m.selectedIndex < len(m.kinds)-1 {
		m.selectedIndex++
	}
}

// SelectIndex jumps to the i-th kind (0-based); out of range is ignored.
func (m *KindPickerModel) SelectIndex(i int) {
	if i >= 0 && i < len(m.kinds) {
		m.selectedIndex = i
	}
}

// SelectedKind returns the highlighted kind.
func (m *KindPickerModel) SelectedKind() model.Kind {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.kinds) {
		return m.kinds[m.selectedIndex]
	}
	return ""
}

// Purpose reports what the pick is for.
func (m *KindPickerModel) Purpose() PickerPurpose { return m.purpose }

// Target is the drop target for PickInsert.
func (m *KindPickerModel) Target() string { return m.target }

// View renders the picker overlay
func (m *KindPickerModel) View() string {
	if m.width == 0 {
		m.width = 60
	}
	if m.height == 0 {
		m.height = 20
	}
	t := m.theme

	boxWidth := 35
	if m.width < 45 {
		boxWidth = m.width - 10
	}
	if boxWidth < 25 {
		boxWidth = 25
	}

	var lines []string
	title := "Add Block"
	if m.purpose == PickInsert {
		title = "Insert Block Here"
	}
	titleStyle := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
	lines = append(lines, titleStyle.Render(title), "")

	for i, k := range m.kinds {
		isSelected := i == m.selectedIndex
		itemStyle := t.Renderer.NewStyle()
		prefix := "  "
		if isSelected {
			itemStyle = itemStyle.Foreground(t.Primary).Bold(true)
			prefix = "> "
		} else {
			itemStyle = itemStyle.Foreground(t.Base.GetForeground())
		}
		icon, c := t.KindIcon(k)
		num := t.Renderer.NewStyle().Foreground(t.Muted).Render(string(rune('1' + i)))
		lines = append(lines, itemStyle.Render(prefix)+num+" "+
			t.Renderer.NewStyle().Foreground(c).Render(icon)+" "+itemStyle.Render(k.Label()))
	}

	lines = append(lines, "")
	footerStyle := t.Renderer.NewStyle().Foreground(t.Secondary).Italic(true)
	lines = append(lines, footerStyle.Render("j/k: navigate | enter: add | esc: cancel"))

	box := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
