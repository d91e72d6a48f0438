package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/lumina/pkg/model"
)

func findBox(t *testing.T, wf Wireframe, id string) WireBox {
	t.Helper()
	for _, b := range wf.Boxes {
		if b.ID == id {
			return b
		}
	}
	t.Fatalf("no box for %s", id)
	return WireBox{}
}

func TestBuildWireframe_RowAndColumn(t *testing.T) {
	a := model.NewBlock("a", model.KindText, "left", model.Style{model.StyleWidth: "60%"})
	b := model.NewBlock("b", model.KindText, "right", model.Style{model.StyleWidth: "40%"})
	row := model.NewBlock("row", model.KindContainer, "", model.Style{model.StyleFlexDirection: "row"}, a, b)
	below := model.NewBlock("below", model.KindButton, "Go", nil)

	wf := BuildWireframe(model.Document{row, below}, 1000)
	if wf.Width != 1000 || wf.Blocks != 4 {
		t.Fatalf("width=%d blocks=%d", wf.Width, wf.Blocks)
	}

	ra, rb := findBox(t, wf, "a"), findBox(t, wf, "b")
	if ra.Y != rb.Y {
		t.Errorf("row children should share a top edge: %v vs %v", ra.Y, rb.Y)
	}
	if rb.X <= ra.X+ra.W-1 {
		t.Errorf("b should sit right of a: a=[%v,%v] b.X=%v", ra.X, ra.X+ra.W, rb.X)
	}
	if ra.W <= rb.W {
		t.Errorf("60%% box should be wider than 40%% box: %v vs %v", ra.W, rb.W)
	}

	r := findBox(t, wf, "row")
	bl := findBox(t, wf, "below")
	if bl.Y < r.Y+r.H {
		t.Errorf("column sibling should be below the row: %v < %v", bl.Y, r.Y+r.H)
	}
	if r.Layout != "row" || ra.Depth != 1 {
		t.Errorf("layout=%q depth=%d", r.Layout, ra.Depth)
	}
	if wf.Height < int(bl.Y+bl.H) {
		t.Errorf("canvas height %d cuts off content at %v", wf.Height, bl.Y+bl.H)
	}
}

func TestRenderWireframeSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderWireframeSVG(&buf, BuildWireframe(model.DefaultDocument(), 0)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("not an svg document")
	}
	if !strings.Contains(out, "Title: Welcome to Lumina Builder") {
		t.Errorf("title label missing")
	}
	if got := strings.Count(out, "<rect"); got < 4 {
		t.Errorf("expected page, backdrop and block boxes, got %d rects", got)
	}
}

func TestRenderWireframePNG(t *testing.T) {
	var buf bytes.Buffer
	wf := BuildWireframe(model.DefaultDocument(), 600)
	if err := RenderWireframePNG(&buf, wf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 600 || img.Bounds().Dy() != wf.Height {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestSaveWireframe(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		opts    WireframeOptions
		want    string
		wantErr bool
	}{
		{"svg by extension", WireframeOptions{Path: filepath.Join(dir, "a.svg")}, filepath.Join(dir, "a.svg"), false},
		{"png by extension", WireframeOptions{Path: filepath.Join(dir, "b.png")}, filepath.Join(dir, "b.png"), false},
		{"no extension", WireframeOptions{Path: filepath.Join(dir, "c")}, filepath.Join(dir, "c.svg"), false},
		{"nested dir", WireframeOptions{Path: filepath.Join(dir, "x", "y", "d.svg")}, filepath.Join(dir, "x", "y", "d.svg"), false},
		{"bad format", WireframeOptions{Path: filepath.Join(dir, "e.gif"), Format: "gif"}, "", true},
		{"no path", WireframeOptions{}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SaveWireframe(model.DefaultDocument(), tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if _, err := os.Stat(tt.want); err != nil {
				t.Errorf("expected %s: %v", tt.want, err)
			}
		})
	}
}
