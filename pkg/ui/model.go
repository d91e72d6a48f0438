// Package ui provides the terminal page editor for lumina.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vanderheijden86/lumina/pkg/debug"
	"github.com/vanderheijden86/lumina/pkg/editor"
	"github.com/vanderheijden86/lumina/pkg/export"
	"github.com/vanderheijden86/lumina/pkg/model"
	"github.com/vanderheijden86/lumina/pkg/store"
	"github.com/vanderheijden86/lumina/pkg/suggest"
)

// ResizeStep is how many percentage points + and - change a width.
const ResizeStep = 5

type mode int

const (
	modeTree mode = iota
	modePicker
	modeEdit
	modeProperties
)

// Options configures the editor.
type Options struct {
	KV        store.KV // nil disables saving
	Key       string
	Suggester suggest.Suggester
	ExportDir string
	BundleDir string // rewritten after every change when set
	Theme     string // auto, dark, light
	Renderer  *lipgloss.Renderer
}

type tickMsg time.Time

type lastSavedMsg struct {
	at time.Time
	ok bool
}

type exportedMsg struct {
	path string
	size int64
	err  error
}

type copiedMsg struct {
	err error
}

// Model is the bubbletea model of the page editor.
type Model struct {
	state editor.State
	opts  Options
	theme Theme
	keys  keyMap
	help  help.Model

	tree        TreeModel
	picker      KindPickerModel
	form        *PropertiesForm
	input       textinput.Model
	editID      string
	preview     viewport.Model
	md          *MarkdownRenderer
	showPreview bool

	saver      *SaveWorker
	seq        uint64
	savedAt    time.Time
	suggesting int

	mode        mode
	status      string
	statusIsErr bool

	width  int
	height int
	ctx    context.Context
	cancel context.CancelFunc
	now    func() time.Time
}

// NewModel starts editing doc.
func NewModel(doc model.Document, opts Options) Model {
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	ApplyPreference(r, opts.Theme)
	theme := DefaultTheme(r)

	if opts.Suggester == nil {
		opts.Suggester = suggest.Disabled{}
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	in := textinput.New()
	in.Prompt = "content> "
	in.CharLimit = 2000

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		state:   editor.NewState(doc),
		opts:    opts,
		theme:   theme,
		keys:    defaultKeyMap(),
		help:    help.New(),
		tree:    NewTreeModel(theme),
		input:   in,
		preview: viewport.New(40, 20),
		md:      NewMarkdownRendererWithTheme(40, theme),
		saver:   NewSaveWorker(opts.KV, opts.Key, opts.BundleDir),
		ctx:     ctx,
		cancel:  cancel,
		now:     time.Now,
	}
	m.tree.Build(doc)
	m.syncTree()
	return m
}

// State exposes the current editor state.
func (m Model) State() editor.State { return m.state }

// Status is the current status-line message.
func (m Model) Status() string { return m.status }

func tickCmd() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	saver, ctx := m.saver, m.ctx
	return tea.Batch(tickCmd(), func() tea.Msg {
		at, ok := saver.LastSaved(ctx)
		return lastSavedMsg{at: at, ok: ok}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tickMsg:
		return m, tickCmd()

	case lastSavedMsg:
		if msg.ok && m.savedAt.IsZero() {
			m.savedAt = msg.at
		}
		return m, nil

	case SavedMsg:
		switch {
		case msg.Skipped:
		case msg.Err != nil:
			debug.Warn(msg.Err, "saving page")
			m.setError("save failed: %v", msg.Err)
		default:
			m.savedAt = msg.At
		}
		if msg.BundleErr != nil {
			debug.Warn(msg.BundleErr, "writing preview bundle")
		}
		return m, nil

	case suggest.SuggestionMsg:
		m.suggesting--
		if msg.Err != nil {
			debug.Warn(msg.Err, "%s suggestion for %s", msg.Request, msg.BlockID)
			m.setError("no suggestion: %v", msg.Err)
			return m, nil
		}
		next := m.state
		next.Document = suggest.Apply(m.state.Document, msg)
		if editor.SameForest(next.Document, m.state.Document) {
			m.setStatus("suggestion discarded: block is gone")
			return m, nil
		}
		m.setStatus("%s suggestion applied", msg.Request)
		return m, m.commit(next)

	case exportedMsg:
		if msg.err != nil {
			m.setError("export failed: %v", msg.err)
		} else {
			m.setStatus("exported %s (%s)", msg.path, humanize.Bytes(uint64(msg.size)))
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setError("copy failed: %v", msg.err)
		} else {
			m.setStatus("HTML copied to clipboard")
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modePicker:
			return m.updatePicker(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeProperties:
			return m.updateProperties(msg)
		}
		return m.updateTree(msg)

	case tea.MouseMsg:
		if m.showPreview {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
	}

	switch m.mode {
	case modeEdit:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case modeProperties:
		return m.updateProperties(msg)
	}
	return m, nil
}

func (m Model) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	cursor := m.tree.SelectedID()

	switch {
	case key.Matches(msg, k.Quit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, k.Up):
		m.tree.MoveUp()
	case key.Matches(msg, k.Down):
		m.tree.MoveDown()
	case key.Matches(msg, k.Left):
		m.tree.CollapseOrJumpToParent()
	case key.Matches(msg, k.Right):
		m.tree.ExpandOrMoveToChild()
	case key.Matches(msg, k.Top):
		m.tree.JumpToTop()
	case key.Matches(msg, k.Bottom):
		m.tree.JumpToBottom()
	case key.Matches(msg, k.PageUp):
		m.tree.PageUp()
	case key.Matches(msg, k.PageDown):
		m.tree.PageDown()

	case key.Matches(msg, k.Select):
		if m.state.Dragging() {
			return m, m.drop(cursor)
		}
		if m.state.SelectedID() == cursor {
			m.state = m.state.Deselect()
		} else {
			m.state = m.state.Select(cursor)
		}
		m.syncTree()
		return m, nil

	case key.Matches(msg, k.Deselect):
		if m.state.Dragging() {
			m.state = m.state.CancelDrag()
			m.setStatus("move cancelled")
		} else {
			m.state = m.state.Deselect()
		}
		m.syncTree()
		return m, nil

	case key.Matches(msg, k.Add):
		m.openPicker(PickAdd, "")
		return m, nil
	case key.Matches(msg, k.Insert):
		m.openPicker(PickInsert, cursor)
		return m, nil

	case key.Matches(msg, k.Delete):
		if cursor == "" {
			return m, nil
		}
		return m, m.commit(m.state.Delete(cursor))

	case key.Matches(msg, k.Duplicate):
		return m, m.commit(m.state.Duplicate(cursor))

	case key.Matches(msg, k.Move):
		if m.state.Dragging() {
			return m, m.drop(cursor)
		}
		m.state = m.state.BeginDrag(cursor)
		if m.state.Dragging() {
			m.setStatus("moving: pick a target and press enter (esc cancels)")
		}
		m.syncTree()
		return m, nil

	case key.Matches(msg, k.Edit):
		return m, m.startEdit(cursor)

	case key.Matches(msg, k.Style):
		b, ok := model.FindByID(m.state.Document, cursor)
		if !ok {
			return m, nil
		}
		m.state = m.state.Select(cursor)
		m.form = NewPropertiesForm(b, m.paneWidth())
		m.mode = modeProperties
		m.syncTree()
		return m, m.form.Init()

	case key.Matches(msg, k.Wider), key.Matches(msg, k.Narrower):
		delta := float64(ResizeStep)
		if key.Matches(msg, k.Narrower) {
			delta = -delta
		}
		return m, m.commit(m.state.Select(cursor).ResizeSelected(delta))

	case key.Matches(msg, k.Suggest):
		return m, m.requestContent(cursor)
	case key.Matches(msg, k.Colors):
		return m, m.requestColors(cursor)

	case key.Matches(msg, k.Preview):
		m.showPreview = !m.showPreview
		m.layout()
		return m, nil

	case key.Matches(msg, k.Export):
		return m, exportCmd(m.state.Document, m.opts.ExportDir, m.now())
	case key.Matches(msg, k.Copy):
		return m, copyCmd(m.state.Document)

	case key.Matches(msg, k.New):
		m.setStatus("new canvas")
		return m, m.commit(m.state.Clear())

	default:
		return m, nil
	}

	// cursor moved: the selection follows it
	if id := m.tree.SelectedID(); id != "" {
		m.state = m.state.Select(id)
	}
	m.syncTree()
	return m, nil
}

func (m *Model) drop(target string) tea.Cmd {
	before := m.state.Document
	next := m.state.DropOnto(target)
	if editor.SameForest(before, next.Document) {
		m.state = next
		m.setError("can't move a block there")
		m.syncTree()
		return nil
	}
	m.setStatus("moved")
	return m.commit(next)
}

func (m *Model) openPicker(purpose PickerPurpose, target string) {
	m.picker = NewKindPickerModel(purpose, target, m.theme)
	m.picker.SetSize(m.width, m.height)
	m.mode = modePicker
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeTree
		return m, nil
	case "k", "up":
		m.picker.MoveUp()
		return m, nil
	case "j", "down":
		m.picker.MoveDown()
		return m, nil
	case "1", "2", "3", "4", "5":
		m.picker.SelectIndex(int(msg.String()[0] - '1'))
	case "enter", " ":
	default:
		return m, nil
	}

	m.mode = modeTree
	kind := m.picker.SelectedKind()
	var next editor.State
	if m.picker.Purpose() == PickInsert {
		next = m.state.DropNew(kind, m.picker.Target())
	} else {
		next = m.state.AddBlock(kind)
	}
	m.setStatus("added %s", strings.ToLower(kind.Label()))
	return m, m.commit(next)
}

func (m *Model) startEdit(id string) tea.Cmd {
	b, ok := model.FindByID(m.state.Document, id)
	if !ok {
		return nil
	}
	if b.IsContainer() {
		m.setError("containers have no content; use s for properties")
		return nil
	}
	m.state = m.state.Select(id)
	m.editID = id
	m.input.SetValue(b.Content())
	m.input.CursorEnd()
	m.mode = modeEdit
	m.syncTree()
	return m.input.Focus()
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.mode = modeTree
		return m, nil
	case "enter":
		m.input.Blur()
		m.mode = modeTree
		return m, m.commit(m.state.Select(m.editID).EditContent(m.input.Value()))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateProperties(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		m.form = nil
		m.mode = modeTree
		return m, nil
	}
	cmd := m.form.Update(msg)
	switch {
	case m.form.Done():
		next := m.state.Select(m.form.BlockID())
		changes := m.form.Changes()
		for _, c := range changes {
			next = next.EditStyle(c.Key, c.Value)
		}
		m.form = nil
		m.mode = modeTree
		m.setStatus("%d properties updated", len(changes))
		return m, m.commit(next)
	case m.form.Aborted():
		m.form = nil
		m.mode = modeTree
		return m, nil
	}
	return m, cmd
}

func (m *Model) requestContent(id string) tea.Cmd {
	b, ok := model.FindByID(m.state.Document, id)
	if !ok {
		return nil
	}
	if !b.Kind().IsTextual() {
		m.setError("content suggestions need a title or text block")
		return nil
	}
	m.suggesting++
	m.setStatus("asking for a %s…", strings.ToLower(b.Kind().Label()))
	return suggest.ContentCmd(m.ctx, m.opts.Suggester, b)
}

func (m *Model) requestColors(id string) tea.Cmd {
	b, ok := model.FindByID(m.state.Document, id)
	if !ok {
		return nil
	}
	if bg, _ := b.StyleValue(model.StyleBackgroundColor); bg == "" {
		m.setError("set a background color first")
		return nil
	}
	m.suggesting++
	m.setStatus("asking for a color pairing…")
	return suggest.ColorsCmd(m.ctx, m.opts.Suggester, b)
}

// commit installs next. When the document changed, the tree and preview
// are rebuilt and a save is scheduled.
func (m *Model) commit(next editor.State) tea.Cmd {
	changed := !editor.SameForest(m.state.Document, next.Document)
	m.state = next
	if !changed {
		m.syncTree()
		return nil
	}
	m.tree.Build(next.Document)
	m.syncTree()
	m.refreshPreview()
	m.seq++
	return m.saver.PersistCmd(m.ctx, m.seq, next.Document)
}

// syncTree moves the cursor to the selection and refreshes row marks.
func (m *Model) syncTree() {
	if id := m.state.SelectedID(); id != "" {
		m.tree.SelectByID(id)
	}
	m.tree.SetMarks(m.state.SelectedID(), m.state.DragSource)
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusIsErr = false
}

func (m *Model) setError(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusIsErr = true
}

func (m *Model) paneWidth() int {
	if m.width <= 0 {
		return 60
	}
	return m.width / 2
}

func (m *Model) layout() {
	helpLines := 1
	if m.help.ShowAll {
		helpLines = 6
	}
	bodyHeight := m.height - 2 - helpLines
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	treeWidth := m.width
	if m.showPreview {
		treeWidth = m.paneWidth()
		m.preview.Width = m.width - treeWidth - 1
		m.preview.Height = bodyHeight
		m.md.SetWidth(m.preview.Width - 2)
		m.refreshPreview()
	}
	m.tree.SetSize(treeWidth, bodyHeight)
	m.picker.SetSize(m.width, m.height)
	m.help.Width = m.width
	m.input.Width = m.width - len(m.input.Prompt) - 1
}

func (m *Model) refreshPreview() {
	if !m.showPreview {
		return
	}
	out, err := m.md.Render(export.GenerateMarkdown(m.state.Document, export.PageTitle))
	if err != nil {
		debug.Warn(err, "rendering preview")
		out = err.Error()
	}
	m.preview.SetContent(out)
}

func (m Model) View() string {
	if m.mode == modePicker {
		return m.picker.View()
	}

	body := m.tree.View()
	side := ""
	switch {
	case m.mode == modeProperties && m.form != nil:
		side = m.form.View()
	case m.showPreview:
		side = m.preview.View()
	}
	if side != "" {
		left := m.theme.Renderer.NewStyle().Width(m.paneWidth()).Render(body)
		sep := m.theme.Renderer.NewStyle().Foreground(m.theme.Muted).Render("│")
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, sep, side)
	}

	var sb strings.Builder
	sb.WriteString(m.headerView())
	sb.WriteString("\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	if m.mode == modeEdit {
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
	}
	sb.WriteString(m.statusView())
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) headerView() string {
	r := m.theme.Renderer
	title := r.NewStyle().Foreground(m.theme.Primary).Bold(true).Render("Lumina")
	doc := m.state.Document
	info := fmt.Sprintf(" %d blocks · depth %d", model.Count(doc), model.MaxDepth(doc))
	if m.suggesting > 0 {
		info += " · suggesting…"
	}
	return title + r.NewStyle().Foreground(m.theme.Muted).Render(info)
}

func (m Model) statusView() string {
	r := m.theme.Renderer
	var parts []string
	if b, ok := m.state.Selected(); ok {
		parts = append(parts, fmt.Sprintf("%s %s · width %s", b.Kind().Label(), b.ID(), widthLabel(b)))
	}
	if !m.savedAt.IsZero() {
		parts = append(parts, "saved "+humanize.Time(m.savedAt))
	} else if m.opts.KV == nil {
		parts = append(parts, "not saving")
	}
	line := m.theme.Status.Render(strings.Join(parts, " · "))
	if m.status != "" {
		color := m.theme.Secondary
		if m.statusIsErr {
			color = m.theme.Danger
		}
		line = r.NewStyle().Foreground(color).Render(m.status) + "  " + line
	}
	return line
}

func exportCmd(doc model.Document, dir string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportedMsg{err: fmt.Errorf("create export dir: %w", err)}
		}
		path := filepath.Join(dir, export.DefaultExportName(now))
		if err := export.WriteHTMLFile(doc, path); err != nil {
			return exportedMsg{err: err}
		}
		info, err := os.Stat(path)
		if err != nil {
			return exportedMsg{path: path, err: err}
		}
		return exportedMsg{path: path, size: info.Size()}
	}
}

func copyCmd(doc model.Document) tea.Cmd {
	return func() tea.Msg {
		if clipboard.Unsupported {
			return copiedMsg{err: errors.New("no clipboard available")}
		}
		return copiedMsg{err: clipboard.WriteAll(export.ExportToMarkup(doc))}
	}
}
