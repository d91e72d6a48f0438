package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Top       key.Binding
	Bottom    key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Select    key.Binding
	Deselect  key.Binding
	Add       key.Binding
	Insert    key.Binding
	Delete    key.Binding
	Duplicate key.Binding
	Move      key.Binding
	Edit      key.Binding
	Style     key.Binding
	Wider     key.Binding
	Narrower  key.Binding
	Suggest   key.Binding
	Colors    key.Binding
	Preview   key.Binding
	Export    key.Binding
	Copy      key.Binding
	New       key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "collapse")),
		Right:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "expand")),
		Top:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		PageUp:    key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("ctrl+u", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("ctrl+d", "page down")),
		Select:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select / drop")),
		Deselect:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect / cancel")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add block")),
		Insert:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insert at cursor")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Duplicate: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "duplicate")),
		Move:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit content")),
		Style:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "properties")),
		Wider:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "wider")),
		Narrower:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrower")),
		Suggest:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "suggest content")),
		Colors:    key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "suggest colors")),
		Preview:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Export:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export html")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy html")),
		New:       key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new canvas")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Style, k.Move, k.Delete, k.Preview, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Select, k.Deselect, k.Add, k.Insert, k.Delete, k.Duplicate, k.Move},
		{k.Edit, k.Style, k.Wider, k.Narrower, k.Suggest, k.Colors},
		{k.Preview, k.Export, k.Copy, k.New, k.Help, k.Quit},
	}
}
