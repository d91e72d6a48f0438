package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/vanderheijden86/lumina/pkg/model"
)

// GenerateMarkdown creates an outline of the page. Titles become headings
// and each container opens a nested section.
func GenerateMarkdown(doc model.Document, title string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	counts := make(map[model.Kind]int)
	model.Walk(doc, func(b *model.Block, _ int, _ *model.Block) bool {
		counts[b.Kind()]++
		return true
	})
	sb.WriteString(fmt.Sprintf("- **Blocks**: %d\n", model.Count(doc)))
	for _, k := range model.Kinds {
		if counts[k] > 0 {
			sb.WriteString(fmt.Sprintf("- **%s**: %d\n", k.Label(), counts[k]))
		}
	}
	sb.WriteString("\n---\n\n")

	if len(doc) == 0 {
		sb.WriteString("_Empty page._\n")
		return sb.String()
	}
	for _, b := range doc {
		writeMarkdownBlock(&sb, b, 2)
	}
	return sb.String()
}

func writeMarkdownBlock(sb *strings.Builder, b *model.Block, level int) {
	switch b.Kind() {
	case model.KindTitle:
		sb.WriteString(strings.Repeat("#", min(level, 6)) + " " + singleLine(b.Content()) + "\n\n")
	case model.KindText:
		sb.WriteString(b.Content() + "\n\n")
	case model.KindImage:
		sb.WriteString(fmt.Sprintf("![Image](%s)\n\n", b.Content()))
	case model.KindButton:
		sb.WriteString(fmt.Sprintf("[**%s**](#)\n\n", singleLine(b.Content())))
	case model.KindContainer:
		layout := "column"
		if v, ok := b.StyleValue(model.StyleFlexDirection); ok {
			layout = v
		}
		sb.WriteString(fmt.Sprintf("> _container (%s, %d blocks)_\n\n", layout, b.ChildCount()))
		for _, c := range b.Children() {
			writeMarkdownBlock(sb, c, level+1)
		}
		sb.WriteString("---\n\n")
	}
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SaveMarkdownToFile writes the generated markdown to a file
func SaveMarkdownToFile(doc model.Document, filename string) error {
	content := GenerateMarkdown(doc, "Lumina Page")
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write markdown export: %w", err)
	}
	return nil
}
