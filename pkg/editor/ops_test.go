package editor

import (
	"slices"
	"testing"

	"github.com/vanderheijden86/lumina/pkg/model"
)

func leaf(id string) *model.Block {
	return model.NewBlock(id, model.KindText, id, model.Style{model.StyleWidth: "100%"})
}

func box(id string, children ...*model.Block) *model.Block {
	return model.NewBlock(id, model.KindContainer, "", model.Style{model.StyleFlexDirection: "column"}, children...)
}

// fixture:
//
//	root
//	  a
//	  inner
//	    b
//	c
func fixture() model.Document {
	return model.Document{
		box("root", leaf("a"), box("inner", leaf("b"))),
		leaf("c"),
	}
}

func parentID(t *testing.T, doc model.Document, id string) string {
	t.Helper()
	p, ok := model.ParentOf(doc, id)
	if !ok {
		t.Fatalf("%s not found", id)
	}
	if p == nil {
		return ""
	}
	return p.ID()
}

func childIDs(b *model.Block) []string {
	var ids []string
	for _, c := range b.Children() {
		ids = append(ids, c.ID())
	}
	return ids
}

func topIDs(doc model.Document) []string {
	var ids []string
	for _, b := range doc {
		ids = append(ids, b.ID())
	}
	return ids
}

func TestCreateBlock_Defaults(t *testing.T) {
	tests := []struct {
		kind    model.Kind
		content string
	}{
		{model.KindTitle, "New Title"},
		{model.KindText, "New Text Content"},
		{model.KindImage, "https://picsum.photos/800/400"},
		{model.KindButton, "Click Me"},
		{model.KindContainer, ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			b := CreateBlock(tt.kind)
			if b == nil {
				t.Fatal("CreateBlock returned nil")
			}
			if b.Content() != tt.content {
				t.Errorf("content = %q, want %q", b.Content(), tt.content)
			}
			if b.Kind() != tt.kind {
				t.Errorf("kind = %s", b.Kind())
			}
			if err := b.Validate(); err != nil {
				t.Errorf("invalid block: %v", err)
			}
			if (b.Children() != nil) != tt.kind.IsContainer() {
				t.Errorf("children presence wrong for %s", tt.kind)
			}
		})
	}

	c := CreateBlock(model.KindContainer)
	if v, _ := c.StyleValue(model.StyleGap); v != "20px" {
		t.Errorf("container gap = %q", v)
	}
	if v, _ := c.StyleValue(model.StyleBackgroundColor); v != "#f8fafc" {
		t.Errorf("container background = %q", v)
	}
	l := CreateBlock(model.KindButton)
	if v, _ := l.StyleValue(model.StylePadding); v != "10px 0" {
		t.Errorf("leaf padding = %q", v)
	}
	if CreateBlock("video") != nil {
		t.Error("unknown kind should produce nil")
	}
	if CreateBlock(model.KindText).ID() == CreateBlock(model.KindText).ID() {
		t.Error("ids must be fresh")
	}
}

func TestInsert(t *testing.T) {
	t.Run("container target prepends", func(t *testing.T) {
		out := Insert(fixture(), leaf("n"), "inner")
		inner, _ := model.FindByID(out, "inner")
		if got := childIDs(inner); !slices.Equal(got, []string{"n", "b"}) {
			t.Errorf("inner children = %v", got)
		}
	})
	t.Run("leaf target places after", func(t *testing.T) {
		out := Insert(fixture(), leaf("n"), "a")
		root, _ := model.FindByID(out, "root")
		if got := childIDs(root); !slices.Equal(got, []string{"a", "n", "inner"}) {
			t.Errorf("root children = %v", got)
		}
	})
	t.Run("top level leaf target", func(t *testing.T) {
		out := Insert(fixture(), leaf("n"), "c")
		if got := topIDs(out); !slices.Equal(got, []string{"root", "c", "n"}) {
			t.Errorf("top level = %v", got)
		}
	})
	t.Run("unknown target is a no-op", func(t *testing.T) {
		in := fixture()
		out := Insert(in, leaf("n"), "missing")
		if !SameForest(in, out) || len(in) != len(out) {
			t.Error("forest changed")
		}
	})
	t.Run("self target is a no-op", func(t *testing.T) {
		in := fixture()
		out := Insert(in, leaf("a"), "a")
		if !SameForest(in, out) {
			t.Error("forest changed")
		}
	})
	t.Run("nil source is a no-op", func(t *testing.T) {
		in := fixture()
		if out := Insert(in, nil, "a"); !SameForest(in, out) {
			t.Error("forest changed")
		}
	})
}

func TestInsert_DoesNotMutateInput(t *testing.T) {
	in := fixture()
	before := model.IDs(in)
	_ = Insert(in, leaf("n"), "b")
	if got := model.IDs(in); !slices.Equal(got, before) {
		t.Errorf("input changed: %v", got)
	}
}

func TestInsert_SharesUntouchedSubtrees(t *testing.T) {
	in := fixture()
	out := Insert(in, leaf("n"), "b")
	if out[1] != in[1] {
		t.Error("sibling c should be shared")
	}
	if out[0] == in[0] {
		t.Error("root lies on the path and must be copied")
	}
	if out[0].Child(0) != in[0].Child(0) {
		t.Error("a is off the path and should be shared")
	}
}

func TestRelocate(t *testing.T) {
	tests := []struct {
		name      string
		src, dst  string
		wantMoved bool
		parent    string
	}{
		{"into container", "c", "inner", true, "inner"},
		{"after leaf", "c", "a", true, "root"},
		{"out of container", "b", "c", true, ""},
		{"onto self", "a", "a", false, "root"},
		{"into own subtree", "root", "inner", false, ""},
		{"into own grandchild", "root", "b", false, ""},
		{"missing source", "zzz", "a", false, ""},
		{"missing target", "a", "zzz", false, "root"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fixture()
			out := Relocate(in, tt.src, tt.dst)
			if !tt.wantMoved {
				if !SameForest(in, out) || len(in) != len(out) {
					t.Fatal("forest should be unchanged")
				}
				return
			}
			if got := parentID(t, out, tt.src); got != tt.parent {
				t.Errorf("parent of %s = %q, want %q", tt.src, got, tt.parent)
			}
			if model.Count(out) != model.Count(in) {
				t.Errorf("block count changed: %d -> %d", model.Count(in), model.Count(out))
			}
		})
	}
}

func TestRelocate_MissingTargetKeepsSource(t *testing.T) {
	out := Relocate(fixture(), "b", "nowhere")
	if _, ok := model.FindByID(out, "b"); !ok {
		t.Fatal("source was lost")
	}
}

func TestRemove(t *testing.T) {
	out := Remove(fixture(), "root")
	for _, id := range []string{"root", "a", "inner", "b"} {
		if _, ok := model.FindByID(out, id); ok {
			t.Errorf("%s still present", id)
		}
	}
	if got := topIDs(out); !slices.Equal(got, []string{"c"}) {
		t.Errorf("remaining = %v", got)
	}

	nested := Remove(fixture(), "b")
	inner, _ := model.FindByID(nested, "inner")
	if inner.ChildCount() != 0 || inner.Children() == nil {
		t.Error("inner should be an empty container")
	}

	in := fixture()
	if out := Remove(in, "missing"); !SameForest(in, out) {
		t.Error("removing a missing id should be a no-op")
	}
}

func TestDuplicate_DeepCopyWithFreshIDs(t *testing.T) {
	in := fixture()
	out, newID := DuplicateBlock(in, "root")
	if newID == "" || newID == "root" {
		t.Fatalf("new id = %q", newID)
	}
	if got := topIDs(out); len(got) != 3 || got[0] != "root" || got[1] != newID || got[2] != "c" {
		t.Fatalf("top level = %v", got)
	}

	orig := model.SubtreeIDs(in[0])
	dup, _ := model.FindByID(out, newID)
	copied := model.SubtreeIDs(dup)
	if len(copied) != len(orig) {
		t.Fatalf("copy has %d nodes, original %d", len(copied), len(orig))
	}
	for _, id := range copied {
		if slices.Contains(orig, id) {
			t.Errorf("copy reuses id %s", id)
		}
	}
	if err := out.Validate(); err != nil {
		t.Errorf("result invalid: %v", err)
	}
	if dup.Child(0).Content() != "a" {
		t.Errorf("content not copied: %q", dup.Child(0).Content())
	}
}

func TestDuplicate_NestedLeafGoesAfterOriginal(t *testing.T) {
	out := Duplicate(fixture(), "a")
	root, _ := model.FindByID(out, "root")
	if root.ChildCount() != 3 {
		t.Fatalf("root has %d children", root.ChildCount())
	}
	if root.Child(0).ID() != "a" || root.Child(2).ID() != "inner" {
		t.Errorf("children = %v", childIDs(root))
	}
	if root.Child(1).Content() != "a" {
		t.Errorf("copy content = %q", root.Child(1).Content())
	}
}

func TestDuplicate_Missing(t *testing.T) {
	in := fixture()
	out, id := DuplicateBlock(in, "missing")
	if id != "" || !SameForest(in, out) {
		t.Error("duplicating a missing id should be a no-op")
	}
}

func TestUpdateContentAndStyle(t *testing.T) {
	in := fixture()
	out := UpdateContent(in, "b", "changed")
	b, _ := model.FindByID(out, "b")
	if b.Content() != "changed" {
		t.Errorf("content = %q", b.Content())
	}
	old, _ := model.FindByID(in, "b")
	if old.Content() != "b" {
		t.Error("input mutated")
	}
	if out[1] != in[1] {
		t.Error("c should be shared")
	}

	out = UpdateStyle(in, "a", model.StyleColor, "#ff0000")
	a, _ := model.FindByID(out, "a")
	if v, _ := a.StyleValue(model.StyleColor); v != "#ff0000" {
		t.Errorf("color = %q", v)
	}
	if v, _ := a.StyleValue(model.StyleWidth); v != "100%" {
		t.Error("other keys should be preserved")
	}

	if got := UpdateStyle(in, "a", "fontFamily", "x"); !SameForest(in, got) {
		t.Error("unknown key should be ignored")
	}
	if got := UpdateContent(in, "missing", "x"); !SameForest(in, got) {
		t.Error("missing id should be a no-op")
	}
}

func TestUpdateStylesAndClear(t *testing.T) {
	out := UpdateStyles(fixture(), "b", model.Style{
		model.StyleColor:       "#111111",
		model.StyleBorderColor: "#222222",
	})
	b, _ := model.FindByID(out, "b")
	if v, _ := b.StyleValue(model.StyleBorderColor); v != "#222222" {
		t.Errorf("borderColor = %q", v)
	}

	cleared := ClearStyle(out, "b", model.StyleColor)
	b, _ = model.FindByID(cleared, "b")
	if _, ok := b.Style()[model.StyleColor]; ok {
		t.Error("color should be removed")
	}

	// Clearing an absent key returns the same forest.
	if again := ClearStyle(cleared, "b", model.StyleColor); !SameForest(again, cleared) {
		t.Error("clearing an absent key should not copy")
	}
}

func TestAddAsChildOfSelection(t *testing.T) {
	t.Run("no selection appends at top level", func(t *testing.T) {
		in := fixture()
		out, id := AddAsChildOfSelection(in, "", model.KindTitle)
		if len(out) != len(in)+1 || out[len(out)-1].ID() != id {
			t.Errorf("new block not appended: %v", topIDs(out))
		}
	})
	t.Run("container selection appends child", func(t *testing.T) {
		out, id := AddAsChildOfSelection(fixture(), "inner", model.KindButton)
		if got := parentID(t, out, id); got != "inner" {
			t.Errorf("parent = %q", got)
		}
		inner, _ := model.FindByID(out, "inner")
		if inner.Child(inner.ChildCount()-1).ID() != id {
			t.Error("new block should be last child")
		}
	})
	t.Run("leaf selection appends at top level", func(t *testing.T) {
		out, id := AddAsChildOfSelection(fixture(), "a", model.KindText)
		if got := parentID(t, out, id); got != "" {
			t.Errorf("parent = %q, want top level", got)
		}
	})
	t.Run("stale selection appends at top level", func(t *testing.T) {
		out, id := AddAsChildOfSelection(fixture(), "gone", model.KindImage)
		if got := parentID(t, out, id); got != "" {
			t.Errorf("parent = %q, want top level", got)
		}
	})
}

func TestOps_EmptyForest(t *testing.T) {
	var empty model.Document
	if out := Insert(empty, leaf("x"), "y"); len(out) != 0 {
		t.Error("Insert on empty forest")
	}
	if out := Relocate(empty, "x", "y"); len(out) != 0 {
		t.Error("Relocate on empty forest")
	}
	if out := Remove(empty, "x"); len(out) != 0 {
		t.Error("Remove on empty forest")
	}
	out, id := AddAsChildOfSelection(empty, "", model.KindContainer)
	if len(out) != 1 || out[0].ID() != id {
		t.Error("AddAsChildOfSelection on empty forest")
	}
}
