// tree.go - hierarchical view of the page's block tree
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/lumina/pkg/editor"
	"github.com/vanderheijden86/lumina/pkg/model"
)

// BlockNode is one block in the rendered tree.
type BlockNode struct {
	Block    *model.Block
	Children []*BlockNode
	Expanded bool
	Depth    int
	Parent   *BlockNode
}

// TreeModel manages the block tree view: which nodes are expanded, where
// the cursor is, and how rows are drawn.
type TreeModel struct {
	roots          []*BlockNode
	flatList       []*BlockNode          // visible nodes in display order
	cursor         int                   // index into flatList
	nodes          map[string]*BlockNode // by block id
	collapsed      map[string]bool       // survives rebuilds
	theme          Theme
	width          int
	height         int
	viewportOffset int // index of first visible node

	selectedID string
	dragID     string
	built      bool
}

// NewTreeModel creates an empty tree model
func NewTreeModel(theme Theme) TreeModel {
	return TreeModel{
		theme:     theme,
		nodes:     make(map[string]*BlockNode),
		collapsed: make(map[string]bool),
	}
}

// SetSize updates the available dimensions for the tree view
func (t *TreeModel) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.ensureCursorVisible()
}

// SetMarks records which block is selected and which is being moved.
func (t *TreeModel) SetMarks(selectedID, dragID string) {
	t.selectedID = selectedID
	t.dragID = dragID
}

// Build rebuilds the tree from doc. The cursor stays on the same block when
// it still exists.
func (t *TreeModel) Build(doc model.Document) {
	prev := t.SelectedID()
	prevCursor := t.cursor

	t.roots = nil
	t.flatList = nil
	t.nodes = make(map[string]*BlockNode)
	for _, b := range doc {
		t.roots = append(t.roots, t.buildNode(b, 0, nil))
	}
	t.rebuildFlatList()
	t.built = true

	if prev == "" || !t.SelectByID(prev) {
		t.cursor = prevCursor
		t.clampCursor()
	}
	t.ensureCursorVisible()
}

func (t *TreeModel) buildNode(b *model.Block, depth int, parent *BlockNode) *BlockNode {
	node := &BlockNode{
		Block:    b,
		Depth:    depth,
		Parent:   parent,
		Expanded: !t.collapsed[b.ID()],
	}
	t.nodes[b.ID()] = node
	for _, c := range b.Children() {
		node.Children = append(node.Children, t.buildNode(c, depth+1, node))
	}
	return node
}

// View renders the visible rows of the tree.
func (t *TreeModel) View() string {
	if !t.built || len(t.flatList) == 0 {
		return t.renderEmptyState()
	}

	var sb strings.Builder
	start, end := t.visibleRange()
	for i := start; i < end; i++ {
		node := t.flatList[i]
		line := t.renderNode(node)
		switch {
		case node.Block.ID() == t.selectedID:
			line = t.theme.Selected.Render(line)
		case i == t.cursor:
			line = t.theme.Cursor.Render(line)
		}
		sb.WriteString(line)
		if i < end-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (t *TreeModel) renderEmptyState() string {
	r := t.theme.Renderer
	titleStyle := r.NewStyle().Foreground(t.theme.Primary).Bold(true)
	mutedStyle := r.NewStyle().Foreground(t.theme.Muted)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Empty canvas"))
	sb.WriteString("\n\n")
	sb.WriteString(mutedStyle.Render("Press a to add a block."))
	return sb.String()
}

// renderNode renders a single row: branch prefix, expand indicator, kind
// icon, label and width.
func (t *TreeModel) renderNode(node *BlockNode) string {
	r := t.theme.Renderer
	b := node.Block
	var sb strings.Builder

	prefix := t.buildTreePrefix(node)
	sb.WriteString(prefix)

	sb.WriteString(r.NewStyle().Foreground(t.theme.Secondary).Render(t.getExpandIndicator(node)))
	sb.WriteString(" ")

	icon, iconColor := t.theme.KindIcon(b.Kind())
	sb.WriteString(r.NewStyle().Foreground(iconColor).Bold(true).Render(icon))
	sb.WriteString(" ")

	width := ""
	if w, ok := b.StyleValue(model.StyleWidth); ok {
		width = " " + w
	}
	moving := ""
	if b.ID() == t.dragID {
		moving = " ⇄ moving"
	}

	maxLabel := t.width - lipgloss.Width(prefix) - 4 - runewidth.StringWidth(width+moving)
	if maxLabel < 12 {
		maxLabel = 12
	}
	sb.WriteString(runewidth.Truncate(blockLabel(b), maxLabel, "…"))

	if width != "" {
		sb.WriteString(r.NewStyle().Foreground(t.theme.Muted).Render(width))
	}
	if moving != "" {
		sb.WriteString(r.NewStyle().Foreground(t.theme.Danger).Bold(true).Render(moving))
	}
	return sb.String()
}

// blockLabel is the one-line description shown for a block.
func blockLabel(b *model.Block) string {
	if b.IsContainer() {
		dir, _ := b.StyleValue(model.StyleFlexDirection)
		if dir == "" {
			dir = "column"
		}
		return fmt.Sprintf("Container (%s, %d)", dir, b.ChildCount())
	}
	content := strings.Join(strings.Fields(b.Content()), " ")
	if content == "" {
		return b.Kind().Label()
	}
	return content
}

// buildTreePrefix builds the indentation and branch characters for a node.
func (t *TreeModel) buildTreePrefix(node *BlockNode) string {
	if node.Depth == 0 {
		return ""
	}

	var parts []string
	ancestors := t.getAncestors(node)
	for i := 0; i < len(ancestors)-1; i++ {
		if ancestors[i].Depth == 0 {
			continue
		}
		if t.hasSiblingsBelow(ancestors[i]) {
			parts = append(parts, "│   ")
		} else {
			parts = append(parts, "    ")
		}
	}
	if t.isLastChild(node) {
		parts = append(parts, "└── ")
	} else {
		parts = append(parts, "├── ")
	}
	return t.theme.Renderer.NewStyle().Foreground(t.theme.Muted).Render(strings.Join(parts, ""))
}

// getAncestors returns the ancestors of a node from root to parent, with
// the node itself at the end.
func (t *TreeModel) getAncestors(node *BlockNode) []*BlockNode {
	var ancestors []*BlockNode
	for cur := node.Parent; cur != nil; cur = cur.Parent {
		ancestors = append([]*BlockNode{cur}, ancestors...)
	}
	return append(ancestors, node)
}

func (t *TreeModel) siblings(node *BlockNode) []*BlockNode {
	if node.Parent == nil {
		return t.roots
	}
	return node.Parent.Children
}

func (t *TreeModel) hasSiblingsBelow(node *BlockNode) bool {
	sibs := t.siblings(node)
	for i, s := range sibs {
		if s == node {
			return i < len(sibs)-1
		}
	}
	return false
}

func (t *TreeModel) isLastChild(node *BlockNode) bool {
	sibs := t.siblings(node)
	return len(sibs) > 0 && sibs[len(sibs)-1] == node
}

func (t *TreeModel) getExpandIndicator(node *BlockNode) string {
	if !node.Block.IsContainer() {
		return "•"
	}
	if len(node.Children) == 0 {
		return "◦"
	}
	if node.Expanded {
		return "▾"
	}
	return "▸"
}

// SelectedNode returns the node under the cursor, or nil.
func (t *TreeModel) SelectedNode() *BlockNode {
	if t.cursor >= 0 && t.cursor < len(t.flatList) {
		return t.flatList[t.cursor]
	}
	return nil
}

// SelectedID returns the id of the block under the cursor, or "".
func (t *TreeModel) SelectedID() string {
	if node := t.SelectedNode(); node != nil {
		return node.Block.ID()
	}
	return ""
}

// SelectByID moves the cursor to id, expanding its ancestors. Returns
// false when id is not in the tree.
func (t *TreeModel) SelectByID(id string) bool {
	node, ok := t.nodes[id]
	if !ok {
		return false
	}
	changed := false
	for p := node.Parent; p != nil; p = p.Parent {
		if !p.Expanded {
			p.Expanded = true
			delete(t.collapsed, p.Block.ID())
			changed = true
		}
	}
	if changed {
		t.rebuildFlatList()
	}
	for i, n := range t.flatList {
		if n == node {
			t.cursor = i
			t.ensureCursorVisible()
			return true
		}
	}
	return false
}

// MoveDown moves the cursor down in the flat list.
func (t *TreeModel) MoveDown() {
	if t.cursor < len(t.flatList)-1 {
		t.cursor++
	}
	t.ensureCursorVisible()
}

// MoveUp moves the cursor up in the flat list.
func (t *TreeModel) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
	}
	t.ensureCursorVisible()
}

// JumpToTop moves cursor to the first node.
func (t *TreeModel) JumpToTop() {
	t.cursor = 0
	t.ensureCursorVisible()
}

// JumpToBottom moves cursor to the last node.
func (t *TreeModel) JumpToBottom() {
	if len(t.flatList) > 0 {
		t.cursor = len(t.flatList) - 1
	}
	t.ensureCursorVisible()
}

// JumpToParent moves cursor to the parent of the current node.
func (t *TreeModel) JumpToParent() {
	node := t.SelectedNode()
	if node == nil || node.Parent == nil {
		return
	}
	t.SelectByID(node.Parent.Block.ID())
}

// ToggleExpand expands or collapses the container under the cursor.
func (t *TreeModel) ToggleExpand() {
	node := t.SelectedNode()
	if node == nil || len(node.Children) == 0 {
		return
	}
	t.setExpanded(node, !node.Expanded)
}

// ExpandOrMoveToChild handles → / l: expand a collapsed container, or
// step into an expanded one.
func (t *TreeModel) ExpandOrMoveToChild() {
	node := t.SelectedNode()
	if node == nil || len(node.Children) == 0 {
		return
	}
	if !node.Expanded {
		t.setExpanded(node, true)
		return
	}
	t.SelectByID(node.Children[0].Block.ID())
}

// CollapseOrJumpToParent handles ← / h: collapse an expanded container,
// otherwise jump to the parent.
func (t *TreeModel) CollapseOrJumpToParent() {
	node := t.SelectedNode()
	if node == nil {
		return
	}
	if len(node.Children) > 0 && node.Expanded {
		t.setExpanded(node, false)
		return
	}
	t.JumpToParent()
}

// ExpandAll expands every container.
func (t *TreeModel) ExpandAll() {
	t.collapsed = make(map[string]bool)
	for _, n := range t.nodes {
		n.Expanded = true
	}
	t.rebuildFlatList()
}

func (t *TreeModel) setExpanded(node *BlockNode, expanded bool) {
	node.Expanded = expanded
	if expanded {
		delete(t.collapsed, node.Block.ID())
	} else {
		t.collapsed[node.Block.ID()] = true
	}
	t.rebuildFlatList()
}

// PageDown moves cursor down by half a viewport.
func (t *TreeModel) PageDown() {
	t.cursor += t.pageSize()
	t.clampCursor()
	t.ensureCursorVisible()
}

// PageUp moves cursor up by half a viewport.
func (t *TreeModel) PageUp() {
	t.cursor -= t.pageSize()
	t.clampCursor()
	t.ensureCursorVisible()
}

func (t *TreeModel) pageSize() int {
	if n := t.height / 2; n >= 1 {
		return n
	}
	return 5
}

func (t *TreeModel) visibleCount() int {
	if t.height <= 0 {
		return 20
	}
	return t.height
}

// visibleRange returns the [start, end) indices of rows to render.
func (t *TreeModel) visibleRange() (start, end int) {
	if len(t.flatList) == 0 {
		return 0, 0
	}
	start = t.viewportOffset
	end = start + t.visibleCount()
	if end > len(t.flatList) {
		end = len(t.flatList)
		start = max(end-t.visibleCount(), 0)
	}
	return max(start, 0), end
}

func (t *TreeModel) ensureCursorVisible() {
	n := t.visibleCount()
	if t.cursor < t.viewportOffset {
		t.viewportOffset = t.cursor
	}
	if t.cursor >= t.viewportOffset+n {
		t.viewportOffset = t.cursor - n + 1
	}
	if t.viewportOffset < 0 {
		t.viewportOffset = 0
	}
}

func (t *TreeModel) clampCursor() {
	if t.cursor >= len(t.flatList) {
		t.cursor = len(t.flatList) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// rebuildFlatList rebuilds the flattened list of visible nodes.
func (t *TreeModel) rebuildFlatList() {
	t.flatList = t.flatList[:0]
	for _, root := range t.roots {
		t.appendVisible(root)
	}
	t.clampCursor()
}

func (t *TreeModel) appendVisible(node *BlockNode) {
	t.flatList = append(t.flatList, node)
	if node.Expanded {
		for _, child := range node.Children {
			t.appendVisible(child)
		}
	}
}

// IsBuilt returns whether the tree has been built.
func (t *TreeModel) IsBuilt() bool { return t.built }

// NodeCount returns the number of visible nodes.
func (t *TreeModel) NodeCount() int { return len(t.flatList) }

// RootCount returns the number of top-level blocks.
func (t *TreeModel) RootCount() int { return len(t.roots) }

// widthLabel formats a block's effective width for the status bar.
func widthLabel(b *model.Block) string {
	return fmt.Sprintf("%.0f%%", editor.WidthPercent(b))
}
