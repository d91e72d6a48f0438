package editor

import (
	"testing"

	"github.com/vanderheijden86/lumina/pkg/model"
)

func TestSelection(t *testing.T) {
	var s Selection
	if _, ok := s.ID(); ok {
		t.Error("zero selection should be empty")
	}
	s = s.Set("a")
	if id, ok := s.ID(); !ok || id != "a" {
		t.Errorf("ID() = %q, %v", id, ok)
	}
	if !s.IsSelected("a") || s.IsSelected("b") {
		t.Error("IsSelected mismatch")
	}
	if b, ok := s.Resolve(fixture()); !ok || b.ID() != "a" {
		t.Error("Resolve should find a")
	}
	if _, ok := s.Resolve(model.Document{}); ok {
		t.Error("Resolve in a forest without a should fail")
	}
	if _, ok := s.Clear().ID(); ok {
		t.Error("Clear should empty the selection")
	}
	if _, ok := s.Set("").ID(); ok {
		t.Error("Set(\"\") should empty the selection")
	}
}

func TestState_AddBlockWithoutSelection(t *testing.T) {
	s := NewState(fixture())
	next := s.AddBlock(model.KindTitle)

	if len(next.Document) != len(s.Document)+1 {
		t.Fatalf("top level size %d -> %d", len(s.Document), len(next.Document))
	}
	added := next.Document[len(next.Document)-1]
	if added.Kind() != model.KindTitle || added.Content() != DefaultTitle {
		t.Errorf("added %s %q", added.Kind(), added.Content())
	}
	if next.SelectedID() != added.ID() {
		t.Errorf("selection = %q, want new block %q", next.SelectedID(), added.ID())
	}
	if s.SelectedID() != "" || len(s.Document) != 2 {
		t.Error("receiver state changed")
	}
}

func TestState_AddBlockIntoSelectedContainer(t *testing.T) {
	s := NewState(fixture()).Select("inner").AddBlock(model.KindImage)
	if got := parentID(t, s.Document, s.SelectedID()); got != "inner" {
		t.Errorf("parent = %q", got)
	}
}

func TestState_SelectUnknownIsIgnored(t *testing.T) {
	s := NewState(fixture()).Select("a").Select("nope")
	if s.SelectedID() != "a" {
		t.Errorf("selection = %q", s.SelectedID())
	}
	if s.Deselect().SelectedID() != "" {
		t.Error("Deselect failed")
	}
}

func TestState_DropNew(t *testing.T) {
	s := NewState(fixture())

	onLeaf := s.DropNew(model.KindButton, "a")
	if got := parentID(t, onLeaf.Document, onLeaf.SelectedID()); got != "root" {
		t.Errorf("parent = %q", got)
	}

	onCanvas := s.DropNew(model.KindText, "")
	last := onCanvas.Document[len(onCanvas.Document)-1]
	if last.ID() != onCanvas.SelectedID() {
		t.Error("canvas drop should append at top level and select")
	}

	missing := s.DropNew(model.KindText, "ghost")
	if !SameForest(missing.Document, s.Document) || missing.SelectedID() != "" {
		t.Error("drop on a missing target should change nothing")
	}

	if bad := s.DropNew("video", ""); !SameForest(bad.Document, s.Document) {
		t.Error("unknown kind should change nothing")
	}
}

func TestState_DragAndDrop(t *testing.T) {
	s := NewState(fixture()).BeginDrag("c")
	if !s.Dragging() {
		t.Fatal("drag not started")
	}
	s = s.DropOnto("inner")
	if s.Dragging() {
		t.Error("drag should end after drop")
	}
	if got := parentID(t, s.Document, "c"); got != "inner" {
		t.Errorf("c parent = %q", got)
	}
	if s.SelectedID() != "c" {
		t.Errorf("moved block should be selected, got %q", s.SelectedID())
	}
}

func TestState_DropIntoOwnSubtreeRejected(t *testing.T) {
	start := NewState(fixture())
	s := start.BeginDrag("root").DropOnto("b")
	if s.Dragging() {
		t.Error("drag should end even when the move is refused")
	}
	if !SameForest(s.Document, start.Document) {
		t.Error("document changed")
	}
	if s.SelectedID() != "" {
		t.Error("refused drop should not select")
	}
}

func TestState_BeginDragUnknownAndCancel(t *testing.T) {
	s := NewState(fixture()).BeginDrag("ghost")
	if s.Dragging() {
		t.Error("drag of unknown block should not start")
	}
	s = s.BeginDrag("a").CancelDrag()
	if s.Dragging() {
		t.Error("CancelDrag failed")
	}
	if out := s.DropOnto("c"); !SameForest(out.Document, s.Document) {
		t.Error("drop without a drag should change nothing")
	}
}

func TestState_DeleteClearsSelectionInSubtree(t *testing.T) {
	s := NewState(fixture()).Select("b").BeginDrag("b")
	s = s.Delete("root")
	if s.SelectedID() != "" {
		t.Errorf("selection should be cleared, got %q", s.SelectedID())
	}
	if s.Dragging() {
		t.Error("drag source inside removed subtree should be cleared")
	}
	for _, id := range []string{"root", "a", "inner", "b"} {
		if _, ok := model.FindByID(s.Document, id); ok {
			t.Errorf("%s still present", id)
		}
	}
}

func TestState_DeleteKeepsUnrelatedSelection(t *testing.T) {
	s := NewState(fixture()).Select("c").Delete("a")
	if s.SelectedID() != "c" {
		t.Errorf("selection = %q", s.SelectedID())
	}
	s = s.DeleteSelected()
	if s.SelectedID() != "" {
		t.Error("DeleteSelected should clear selection")
	}
	if _, ok := model.FindByID(s.Document, "c"); ok {
		t.Error("c should be removed")
	}
	if out := s.DeleteSelected(); !SameForest(out.Document, s.Document) {
		t.Error("DeleteSelected with nothing selected should be a no-op")
	}
}

func TestState_DuplicateSelectsCopy(t *testing.T) {
	s := NewState(fixture()).Duplicate("inner")
	id := s.SelectedID()
	if id == "" || id == "inner" {
		t.Fatalf("selection = %q", id)
	}
	if got := parentID(t, s.Document, id); got != "root" {
		t.Errorf("copy parent = %q", got)
	}
}

func TestState_EditSelected(t *testing.T) {
	s := NewState(fixture()).Select("a")
	s = s.EditContent("hello").EditStyle(model.StyleColor, "red")
	a, _ := s.Selected()
	if a.Content() != "hello" {
		t.Errorf("content = %q", a.Content())
	}
	if v, _ := a.StyleValue(model.StyleColor); v != "red" {
		t.Errorf("color = %q", v)
	}
	s = s.EditStyle(model.StyleColor, "")
	a, _ = s.Selected()
	if _, ok := a.Style()[model.StyleColor]; ok {
		t.Error("empty value should remove the key")
	}

	none := NewState(fixture())
	if out := none.EditContent("x"); !SameForest(out.Document, none.Document) {
		t.Error("edit without selection should be a no-op")
	}
}

func TestState_ResizeSelected(t *testing.T) {
	s := NewState(rowOf("row", sized("a", "60%"), sized("b", "40%"))).Select("a").ResizeSelected(10)
	if got := widthOf(t, s.Document, "b"); got != "30.0%" {
		t.Errorf("b = %q", got)
	}
}

func TestState_ClearAndReplace(t *testing.T) {
	s := NewState(fixture()).Select("a").BeginDrag("c")
	cleared := s.Clear()
	if len(cleared.Document) != 0 || cleared.SelectedID() != "" || cleared.Dragging() {
		t.Error("Clear should reset everything")
	}
	if cleared.Document == nil {
		t.Error("cleared document should be empty, not nil")
	}

	kept := s.Replace(Duplicate(s.Document, "c"))
	if kept.SelectedID() != "a" || kept.Dragging() {
		t.Errorf("Replace: selection=%q dragging=%v", kept.SelectedID(), kept.Dragging())
	}
	dropped := s.Replace(model.DefaultDocument())
	if dropped.SelectedID() != "" {
		t.Error("selection should be cleared when it no longer resolves")
	}
}
