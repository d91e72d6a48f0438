package export

import (
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"github.com/vanderheijden86/lumina/pkg/model"
)

// PageTitle is the <title> of every exported page.
const PageTitle = "Exported Template - Lumina"

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>` + PageTitle + `</title>
    <link rel="preconnect" href="https://fonts.googleapis.com">
    <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
    <link href="https://fonts.googleapis.com/css2?family=Inter:wght@300;400;500;600;700&display=swap" rel="stylesheet">
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: 'Inter', -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
            background-color: #f8fafc;
            line-height: 1.5;
            -webkit-font-smoothing: antialiased;
        }
        .page-container {
            width: 100%;
            max-width: 1200px;
            margin: 0 auto;
            background-color: #ffffff;
            min-height: 100vh;
            overflow-x: hidden;
        }
        .block-wrapper {
            display: flex;
            flex-direction: column;
        }
        img { max-width: 100%; height: auto; }
        button { font-family: inherit; }
    </style>
</head>
<body>
    <div class="page-container">
        `

const htmlFoot = `
    </div>
</body>
</html>`

// ExportToMarkup renders the document as a standalone HTML page. The
// output depends only on the document: properties are emitted in a fixed
// order and empty values are skipped.
func ExportToMarkup(doc model.Document) string {
	var sb strings.Builder
	sb.WriteString(htmlHead)
	for _, b := range doc {
		writeBlock(&sb, b)
	}
	sb.WriteString(htmlFoot)
	return sb.String()
}

// WriteHTMLFile exports doc to path.
func WriteHTMLFile(doc model.Document, path string) error {
	if err := os.WriteFile(path, []byte(ExportToMarkup(doc)), 0o644); err != nil {
		return fmt.Errorf("write html export: %w", err)
	}
	return nil
}

// DefaultExportName returns the download name used for an export made at t.
func DefaultExportName(t time.Time) string {
	return fmt.Sprintf("lumina-template-%d.html", t.UnixMilli())
}

type cssDecl struct {
	name, value string
}

type cssList []cssDecl

func (l *cssList) add(name, value string) {
	if value == "" {
		return
	}
	*l = append(*l, cssDecl{name, value})
}

func (l cssList) String() string {
	parts := make([]string, 0, len(l))
	for _, d := range l {
		parts = append(parts, d.name+": "+d.value)
	}
	return strings.Join(parts, "; ")
}

// layoutKeys size and place the wrapper; everything else styles the inner
// element.
var layoutKeys = map[model.StyleKey]bool{
	model.StyleWidth:      true,
	model.StyleHeight:     true,
	model.StyleMinHeight:  true,
	model.StyleFlexGrow:   true,
	model.StyleFlexShrink: true,
	model.StyleMargin:     true,
	model.StyleDisplay:    true,
}

// Emitted separately: the border shorthand replaces the two border keys and
// containers place their flex keys last.
var (
	borderKeys    = map[model.StyleKey]bool{model.StyleBorderWidth: true, model.StyleBorderColor: true}
	containerKeys = map[model.StyleKey]bool{
		model.StyleFlexDirection:  true,
		model.StyleGap:            true,
		model.StyleAlignItems:     true,
		model.StyleJustifyContent: true,
	}
)

func valueOr(b *model.Block, key model.StyleKey, fallback string) string {
	if v, ok := b.StyleValue(key); ok {
		return v
	}
	return fallback
}

func layoutStyle(b *model.Block) cssList {
	var l cssList
	l.add("width", valueOr(b, model.StyleWidth, "100%"))
	l.add("height", valueOr(b, model.StyleHeight, "auto"))
	l.add("min-height", valueOr(b, model.StyleMinHeight, ""))
	l.add("flex-grow", valueOr(b, model.StyleFlexGrow, "0"))
	l.add("flex-shrink", "0")
	l.add("margin", valueOr(b, model.StyleMargin, ""))
	l.add("max-width", "100%")
	l.add("box-sizing", "border-box")
	return l
}

func contentStyle(b *model.Block) cssList {
	var l cssList
	container := b.IsContainer()
	for _, key := range model.StyleKeys {
		if layoutKeys[key] || borderKeys[key] || (container && containerKeys[key]) {
			continue
		}
		v, ok := b.StyleValue(key)
		if !ok {
			continue
		}
		if key == model.StyleBackgroundImage {
			v = "url(" + v + ")"
		}
		l.add(key.CSSName(), v)
	}
	l.add("width", "100%")
	if _, ok := b.StyleValue(model.StyleHeight); ok {
		l.add("height", "100%")
	} else {
		l.add("height", "auto")
	}
	l.add("border", valueOr(b, model.StyleBorderWidth, "0px")+" solid "+valueOr(b, model.StyleBorderColor, "transparent"))
	l.add("box-sizing", "border-box")
	l.add("font-family", "inherit")
	if container {
		l.add("display", valueOr(b, model.StyleDisplay, "flex"))
		l.add("flex-direction", valueOr(b, model.StyleFlexDirection, "column"))
		l.add("gap", valueOr(b, model.StyleGap, ""))
		l.add("align-items", valueOr(b, model.StyleAlignItems, ""))
		l.add("justify-content", valueOr(b, model.StyleJustifyContent, ""))
	} else {
		l.add("display", "block")
	}
	return l
}

func attr(s string) string {
	return html.EscapeString(s)
}

func writeBlock(sb *strings.Builder, b *model.Block) {
	if b == nil {
		return
	}
	content := contentStyle(b).String()
	fmt.Fprintf(sb, `<div class="block-wrapper" style="%s">`, attr(layoutStyle(b).String()))
	switch b.Kind() {
	case model.KindTitle:
		fmt.Fprintf(sb, `<h1 style="%s">%s</h1>`, attr(content), html.EscapeString(b.Content()))
	case model.KindText:
		fmt.Fprintf(sb, `<p style="%s">%s</p>`, attr(content), html.EscapeString(b.Content()))
	case model.KindImage:
		style := content + "; object-fit: " + valueOr(b, model.StyleObjectFit, "cover") + "; display: block;"
		fmt.Fprintf(sb, `<img src="%s" style="%s" alt="Image" />`, attr(b.Content()), attr(style))
	case model.KindButton:
		fmt.Fprintf(sb, `<button style="%s">%s</button>`, attr(content+"; cursor: pointer; border: none;"), html.EscapeString(b.Content()))
	case model.KindContainer:
		fmt.Fprintf(sb, `<div style="%s">`, attr(content))
		for _, c := range b.Children() {
			writeBlock(sb, c)
		}
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
}
