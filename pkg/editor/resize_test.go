package editor

import (
	"math"
	"testing"

	"github.com/vanderheijden86/lumina/pkg/model"
)

func widthOf(t *testing.T, doc model.Document, id string) string {
	t.Helper()
	b, ok := model.FindByID(doc, id)
	if !ok {
		t.Fatalf("%s not found", id)
	}
	v, _ := b.StyleValue(model.StyleWidth)
	return v
}

func rowOf(direction string, children ...*model.Block) model.Document {
	style := model.Style{}
	if direction != "" {
		style[model.StyleFlexDirection] = direction
	}
	return model.Document{model.NewBlock("row", model.KindContainer, "", style, children...)}
}

func sized(id, width string) *model.Block {
	style := model.Style{}
	if width != "" {
		style[model.StyleWidth] = width
	}
	return model.NewBlock(id, model.KindText, "", style)
}

func TestResize_RowCompensation(t *testing.T) {
	tests := []struct {
		name      string
		percent   float64
		wantA     string
		wantB     string
		direction string
		bWidth    string
	}{
		{"grow", 70, "70.0%", "30.0%", "row", "40%"},
		{"shrink", 50, "50.0%", "50.0%", "row", "40%"},
		{"clamp high", 150, "100.0%", "5.0%", "row", "40%"},
		{"clamp low", 1, "5.0%", "95.0%", "row", "40%"},
		{"fractional", 62.25, "62.2%", "37.8%", "row", "40%"},
		{"column leaves sibling", 70, "70.0%", "40%", "column", "40%"},
		{"default direction is column", 70, "70.0%", "40%", "", "40%"},
		{"non-percent sibling untouched", 70, "70.0%", "200px", "row", "200px"},
		{"sibling without width untouched", 70, "70.0%", "", "row", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := rowOf(tt.direction, sized("a", "60%"), sized("b", tt.bWidth))
			out := Resize(doc, "a", tt.percent)
			if got := widthOf(t, out, "a"); got != tt.wantA {
				t.Errorf("a width = %q, want %q", got, tt.wantA)
			}
			if got := widthOf(t, out, "b"); got != tt.wantB {
				t.Errorf("b width = %q, want %q", got, tt.wantB)
			}
		})
	}
}

func TestResize_OnlyNextSibling(t *testing.T) {
	doc := rowOf("row", sized("a", "30%"), sized("b", "30%"), sized("c", "40%"))
	out := Resize(doc, "b", 20)
	if got := widthOf(t, out, "a"); got != "30%" {
		t.Errorf("previous sibling changed to %q", got)
	}
	if got := widthOf(t, out, "c"); got != "50.0%" {
		t.Errorf("next sibling = %q, want 50.0%%", got)
	}

	last := Resize(doc, "c", 10)
	if got := widthOf(t, last, "c"); got != "10.0%" {
		t.Errorf("last child = %q", got)
	}
	if got := widthOf(t, last, "b"); got != "30%" {
		t.Errorf("last child resize touched a sibling: %q", got)
	}
}

func TestResize_AbsentWidthCountsAsFull(t *testing.T) {
	doc := rowOf("row", sized("a", ""), sized("b", "50%"))
	out := Resize(doc, "a", 80)
	if got := widthOf(t, out, "b"); got != "70.0%" {
		t.Errorf("b = %q, want 70.0%% (100 -> 80 frees 20 points)", got)
	}
}

func TestResize_TopLevelHasNoCompensation(t *testing.T) {
	doc := model.Document{sized("a", "60%"), sized("b", "40%")}
	out := Resize(doc, "a", 70)
	if got := widthOf(t, out, "b"); got != "40%" {
		t.Errorf("top-level sibling changed to %q", got)
	}
}

func TestResize_NestedUsesOwnParentDirection(t *testing.T) {
	inner := model.NewBlock("inner", model.KindContainer, "",
		model.Style{model.StyleFlexDirection: "row"}, sized("x", "50%"), sized("y", "50%"))
	outer := model.NewBlock("outer", model.KindContainer, "",
		model.Style{model.StyleFlexDirection: "column"}, inner, sized("z", "50%"))
	doc := model.Document{outer}

	out := Resize(doc, "x", 60)
	if got := widthOf(t, out, "y"); got != "40.0%" {
		t.Errorf("y = %q", got)
	}

	out = Resize(doc, "inner", 60)
	if got := widthOf(t, out, "z"); got != "50%" {
		t.Errorf("column parent should not compensate, z = %q", got)
	}
}

func TestResize_NoOps(t *testing.T) {
	doc := rowOf("row", sized("a", "60%"), sized("b", "40%"))
	if out := Resize(doc, "missing", 50); !SameForest(doc, out) {
		t.Error("missing id should be a no-op")
	}
	if out := Resize(doc, "a", math.NaN()); !SameForest(doc, out) {
		t.Error("NaN should be a no-op")
	}
}

func TestResizeBy(t *testing.T) {
	doc := rowOf("row", sized("a", "60%"), sized("b", "40%"))
	out := ResizeBy(doc, "a", 10)
	if got := widthOf(t, out, "a"); got != "70.0%" {
		t.Errorf("a = %q", got)
	}
	if got := widthOf(t, out, "b"); got != "30.0%" {
		t.Errorf("b = %q", got)
	}
	if out := ResizeBy(doc, "missing", 10); !SameForest(doc, out) {
		t.Error("missing id should be a no-op")
	}
}

func TestWidthPercent(t *testing.T) {
	tests := []struct {
		width string
		want  float64
	}{
		{"", 100},
		{"50%", 50},
		{"62.5%", 62.5},
		{"300px", 300},
		{" 12.5 %", 12.5},
		{"auto", 100},
		{"calc(50% - 1px)", 100},
	}
	for _, tt := range tests {
		t.Run(tt.width, func(t *testing.T) {
			if got := WidthPercent(sized("a", tt.width)); got != tt.want {
				t.Errorf("WidthPercent(%q) = %v, want %v", tt.width, got, tt.want)
			}
		})
	}
}
