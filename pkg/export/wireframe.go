package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/lumina/pkg/editor"
	"github.com/vanderheijden86/lumina/pkg/model"
)

// DefaultWireframeWidth matches the exported page's max-width.
const DefaultWireframeWidth = 1200

// Wireframe geometry, in pixels.
const (
	wfMargin  = 20.0
	wfHeader  = 56.0
	wfPadding = 12.0
	wfGap     = 10.0
)

var (
	colorBackdrop  = color.RGBA{0xf8, 0xfa, 0xfc, 0xff}
	colorPage      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorStroke    = color.RGBA{0x94, 0xa3, 0xb8, 0xff}
	colorText      = color.RGBA{0x1e, 0x29, 0x3b, 0xff}
	colorSubtle    = color.RGBA{0x64, 0x74, 0x8b, 0xff}
	colorContainer = color.RGBA{0xf1, 0xf5, 0xf9, 0xff}
	colorTitle     = color.RGBA{0xe0, 0xe7, 0xff, 0xff}
	colorTextBlock = color.RGBA{0xf8, 0xfa, 0xfc, 0xff}
	colorImage     = color.RGBA{0xdc, 0xfc, 0xe7, 0xff}
	colorButton    = color.RGBA{0xfe, 0xf3, 0xc7, 0xff}
)

// WireframeOptions controls wireframe snapshot export.
type WireframeOptions struct {
	Path   string // Output path; format inferred from extension when Format empty
	Format string // "svg" or "png" (case-insensitive)
	Width  int    // Page width in pixels; DefaultWireframeWidth when zero
}

// SaveWireframe renders a box diagram of the page layout to an SVG or PNG
// file. Column containers stack their children; row containers place them
// side by side using their percentage widths.
func SaveWireframe(doc model.Document, opts WireframeOptions) error {
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".png":
			format = "png"
		default:
			format = "svg"
			if filepath.Ext(opts.Path) == "" {
				opts.Path += ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	f, err := os.Create(opts.Path)
	if err != nil {
		return fmt.Errorf("create wireframe: %w", err)
	}
	defer f.Close()

	layout := BuildWireframe(doc, opts.Width)
	if format == "png" {
		return RenderWireframePNG(f, layout)
	}
	return RenderWireframeSVG(f, layout)
}

// WireBox is one block's rectangle in the wireframe.
type WireBox struct {
	ID     string
	Kind   model.Kind
	Label  string
	X, Y   float64
	W, H   float64
	Depth  int
	Layout string // flex direction, containers only
}

// Wireframe is a computed page layout.
type Wireframe struct {
	Boxes  []WireBox
	Width  int
	Height int
	Blocks int
}

// BuildWireframe lays the document out on a page of the given width.
func BuildWireframe(doc model.Document, width int) Wireframe {
	if width <= 0 {
		width = DefaultWireframeWidth
	}
	inner := float64(width) - 2*wfMargin
	boxes, h := layoutColumn(doc, wfMargin, wfHeader+wfMargin, inner, 0)
	return Wireframe{
		Boxes:  boxes,
		Width:  width,
		Height: int(wfHeader + 2*wfMargin + max(h, 40)),
		Blocks: model.Count(doc),
	}
}

func leafHeight(k model.Kind) float64 {
	switch k {
	case model.KindTitle:
		return 56
	case model.KindImage:
		return 140
	case model.KindButton:
		return 40
	}
	return 44
}

// blockWidth resolves the block's width against the space available.
func blockWidth(b *model.Block, avail float64) float64 {
	v, ok := b.StyleValue(model.StyleWidth)
	if !ok {
		return avail
	}
	n := editor.WidthPercent(b)
	if strings.Contains(v, "%") {
		return avail * min(max(n, 0), 100) / 100
	}
	if strings.HasSuffix(strings.TrimSpace(v), "px") {
		return min(n, avail)
	}
	return avail
}

func layoutBlock(b *model.Block, x, y, w float64, depth int) ([]WireBox, float64) {
	box := WireBox{
		ID:    b.ID(),
		Kind:  b.Kind(),
		Label: wireLabel(b),
		X:     x,
		Y:     y,
		W:     w,
		Depth: depth,
	}
	if !b.IsContainer() {
		box.H = leafHeight(b.Kind())
		return []WireBox{box}, box.H
	}

	box.Layout = "column"
	if v, ok := b.StyleValue(model.StyleFlexDirection); ok {
		box.Layout = v
	}
	innerX, innerY, innerW := x+wfPadding, y+wfPadding+14, w-2*wfPadding
	var (
		children []WireBox
		h        float64
	)
	if box.Layout == "row" {
		children, h = layoutRow(b.Children(), innerX, innerY, innerW, depth+1)
	} else {
		children, h = layoutColumn(b.Children(), innerX, innerY, innerW, depth+1)
	}
	box.H = max(60, h+2*wfPadding+14)
	return append([]WireBox{box}, children...), box.H
}

func layoutColumn(list []*model.Block, x, y, w float64, depth int) ([]WireBox, float64) {
	var out []WireBox
	cursor := y
	for i, b := range list {
		if i > 0 {
			cursor += wfGap
		}
		boxes, h := layoutBlock(b, x, cursor, blockWidth(b, w), depth)
		out = append(out, boxes...)
		cursor += h
	}
	return out, cursor - y
}

func layoutRow(list []*model.Block, x, y, w float64, depth int) ([]WireBox, float64) {
	var out []WireBox
	var tallest float64
	cursor := x
	for i, b := range list {
		if i > 0 {
			cursor += wfGap
		}
		bw := blockWidth(b, w)
		boxes, h := layoutBlock(b, cursor, y, bw, depth)
		out = append(out, boxes...)
		cursor += bw
		tallest = max(tallest, h)
	}
	return out, tallest
}

func wireLabel(b *model.Block) string {
	if b.IsContainer() {
		return fmt.Sprintf("%s (%d)", b.Kind().Label(), b.ChildCount())
	}
	content := strings.Join(strings.Fields(b.Content()), " ")
	if content == "" {
		return b.Kind().Label()
	}
	return b.Kind().Label() + ": " + content
}

func kindColor(k model.Kind) color.RGBA {
	switch k {
	case model.KindContainer:
		return colorContainer
	case model.KindTitle:
		return colorTitle
	case model.KindImage:
		return colorImage
	case model.KindButton:
		return colorButton
	}
	return colorTextBlock
}

// labelFor fits a label into a box of width w, assuming 7px glyphs.
func labelFor(label string, w float64) string {
	cols := int((w - 16) / 7)
	if cols <= 3 {
		return ""
	}
	return runewidth.Truncate(label, cols, "...")
}

// RenderWireframePNG draws the layout as a PNG image.
func RenderWireframePNG(w io.Writer, layout Wireframe) error {
	dc := gg.NewContext(layout.Width, layout.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colorText)
	dc.DrawStringAnchored(PageTitle, wfMargin, 24, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(fmt.Sprintf("blocks: %d", layout.Blocks), wfMargin, 42, 0, 0.5)

	dc.SetColor(colorPage)
	dc.DrawRectangle(wfMargin/2, wfHeader+wfMargin/2, float64(layout.Width)-wfMargin, float64(layout.Height)-wfHeader-wfMargin)
	dc.Fill()

	for _, b := range layout.Boxes {
		dc.SetColor(kindColor(b.Kind))
		dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, 6)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1)
		dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, 6)
		dc.Stroke()

		dc.SetColor(colorText)
		dc.DrawStringAnchored(labelFor(b.Label, b.W), b.X+8, b.Y+14, 0, 0.5)
	}
	return dc.EncodePNG(w)
}

// RenderWireframeSVG draws the layout as an SVG document.
func RenderWireframeSVG(w io.Writer, layout Wireframe) error {
	canvas := svg.New(w)
	canvas.Start(layout.Width, layout.Height)
	canvas.Rect(0, 0, layout.Width, layout.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Text(int(wfMargin), 28, PageTitle, fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(int(wfMargin), 46, fmt.Sprintf("blocks: %d", layout.Blocks), fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
	canvas.Rect(int(wfMargin/2), int(wfHeader+wfMargin/2), layout.Width-int(wfMargin), layout.Height-int(wfHeader+wfMargin),
		fmt.Sprintf("fill:%s", css(colorPage)))

	for _, b := range layout.Boxes {
		canvas.Roundrect(int(b.X), int(b.Y), int(b.W), int(b.H), 6, 6,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(kindColor(b.Kind)), css(colorStroke)))
		if label := labelFor(b.Label, b.W); label != "" {
			canvas.Text(int(b.X)+8, int(b.Y)+18, label, fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorText)))
		}
	}
	canvas.End()
	return nil
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
