package editor

import "github.com/vanderheijden86/lumina/pkg/model"

// State is everything the editor host keeps between events: the document,
// the selected block and, while a move is in progress, the block being
// dragged. Every method returns a new State and leaves the receiver alone.
type State struct {
	Document   model.Document
	Selection  Selection
	DragSource string
}

// NewState starts editing doc with nothing selected.
func NewState(doc model.Document) State {
	return State{Document: doc}
}

// Selected resolves the current selection against the document.
func (s State) Selected() (*model.Block, bool) {
	return s.Selection.Resolve(s.Document)
}

// SelectedID returns the selected id or "".
func (s State) SelectedID() string {
	id, _ := s.Selection.ID()
	return id
}

// Select selects id when it exists in the document.
func (s State) Select(id string) State {
	if _, ok := model.FindByID(s.Document, id); !ok {
		return s
	}
	s.Selection = s.Selection.Set(id)
	return s
}

// Deselect clears the selection.
func (s State) Deselect() State {
	s.Selection = s.Selection.Clear()
	return s
}

// AddBlock creates a block of kind inside the selected container, or at the
// top level, and selects it.
func (s State) AddBlock(kind model.Kind) State {
	doc, id := AddAsChildOfSelection(s.Document, s.SelectedID(), kind)
	if id == "" {
		return s
	}
	s.Document = doc
	s.Selection = s.Selection.Set(id)
	return s
}

// DropNew creates a block of kind and drops it onto targetID using the
// Insert placement rules. An empty target, as when dropping on the bare
// canvas, appends at the top level. A missing target leaves the state
// unchanged.
func (s State) DropNew(kind model.Kind, targetID string) State {
	blk := CreateBlock(kind)
	if blk == nil {
		return s
	}
	var doc model.Document
	if targetID == "" {
		doc = AppendTopLevel(s.Document, blk)
	} else {
		doc = Insert(s.Document, blk, targetID)
		if _, ok := model.FindByID(doc, blk.ID()); !ok {
			return s
		}
	}
	s.Document = doc
	s.Selection = s.Selection.Set(blk.ID())
	return s
}

// BeginDrag marks id as the block being moved.
func (s State) BeginDrag(id string) State {
	if _, ok := model.FindByID(s.Document, id); !ok {
		return s
	}
	s.DragSource = id
	return s
}

// Dragging reports whether a move is in progress.
func (s State) Dragging() bool {
	return s.DragSource != ""
}

// DropOnto finishes a move by relocating the drag source onto targetID.
// The drag ends whether or not the move was allowed; a successful move
// selects the moved block.
func (s State) DropOnto(targetID string) State {
	src := s.DragSource
	s.DragSource = ""
	if src == "" {
		return s
	}
	doc := Relocate(s.Document, src, targetID)
	if SameForest(doc, s.Document) {
		return s
	}
	s.Document = doc
	s.Selection = s.Selection.Set(src)
	return s
}

// CancelDrag abandons a move.
func (s State) CancelDrag() State {
	s.DragSource = ""
	return s
}

// Delete removes the block named id and its subtree. The selection is
// cleared when it pointed into the removed subtree, and so is the drag
// source.
func (s State) Delete(id string) State {
	b, ok := model.FindByID(s.Document, id)
	if !ok {
		return s
	}
	removed := make(map[string]bool)
	for _, rid := range model.SubtreeIDs(b) {
		removed[rid] = true
	}
	s.Document = Remove(s.Document, id)
	if sel, ok := s.Selection.ID(); ok && removed[sel] {
		s.Selection = s.Selection.Clear()
	}
	if removed[s.DragSource] {
		s.DragSource = ""
	}
	return s
}

// DeleteSelected removes the selected block.
func (s State) DeleteSelected() State {
	id, ok := s.Selection.ID()
	if !ok {
		return s
	}
	return s.Delete(id)
}

// Duplicate copies the block named id in place and selects the copy.
func (s State) Duplicate(id string) State {
	doc, newID := DuplicateBlock(s.Document, id)
	if newID == "" {
		return s
	}
	s.Document = doc
	s.Selection = s.Selection.Set(newID)
	return s
}

// EditContent replaces the content of the selected block.
func (s State) EditContent(content string) State {
	id, ok := s.Selection.ID()
	if !ok {
		return s
	}
	s.Document = UpdateContent(s.Document, id, content)
	return s
}

// EditStyle sets one style entry of the selected block. An empty value
// removes the entry.
func (s State) EditStyle(key model.StyleKey, value string) State {
	id, ok := s.Selection.ID()
	if !ok {
		return s
	}
	if value == "" {
		s.Document = ClearStyle(s.Document, id, key)
	} else {
		s.Document = UpdateStyle(s.Document, id, key, value)
	}
	return s
}

// ResizeSelected changes the width of the selected block by delta points.
func (s State) ResizeSelected(delta float64) State {
	id, ok := s.Selection.ID()
	if !ok {
		return s
	}
	s.Document = ResizeBy(s.Document, id, delta)
	return s
}

// Clear starts a new, empty canvas.
func (s State) Clear() State {
	return State{Document: model.Document{}}
}

// Replace swaps in a whole document, e.g. after loading. The selection is
// kept only if it still resolves.
func (s State) Replace(doc model.Document) State {
	s.Document = doc
	s.DragSource = ""
	if _, ok := s.Selection.Resolve(doc); !ok {
		s.Selection = s.Selection.Clear()
	}
	return s
}

// SameForest reports whether a and b hold the same top-level pointers. Since
// every change copies its top-level ancestor, this detects no-op operations.
func SameForest(a, b model.Document) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
