package suggest

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/lumina/pkg/editor"
	"github.com/vanderheijden86/lumina/pkg/model"
)

// Request identifies what a suggestion was asked for.
type Request int

const (
	RequestContent Request = iota
	RequestColors
)

func (r Request) String() string {
	if r == RequestColors {
		return "colors"
	}
	return "content"
}

// SuggestionMsg is delivered to the UI when a suggestion completes.
type SuggestionMsg struct {
	Request Request
	BlockID string
	Content string
	Pairing Pairing
	Err     error
}

// ContentCmd asks s for new content for block b. The block's current
// content is the prompt subject.
func ContentCmd(ctx context.Context, s Suggester, b *model.Block) tea.Cmd {
	id, current, kind := b.ID(), b.Content(), b.Kind()
	return func() tea.Msg {
		text, err := s.SuggestContent(ctx, current, kind)
		return SuggestionMsg{Request: RequestContent, BlockID: id, Content: text, Err: err}
	}
}

// ColorsCmd asks s for a colour pairing for block b's background colour.
func ColorsCmd(ctx context.Context, s Suggester, b *model.Block) tea.Cmd {
	id := b.ID()
	bg, _ := b.StyleValue(model.StyleBackgroundColor)
	return func() tea.Msg {
		p, err := s.SuggestColors(ctx, bg)
		return SuggestionMsg{Request: RequestColors, BlockID: id, Pairing: p, Err: err}
	}
}

// Apply writes a successful suggestion into doc. Failed suggestions and
// blocks removed while the request was in flight leave doc unchanged.
func Apply(doc model.Document, msg SuggestionMsg) model.Document {
	if msg.Err != nil {
		return doc
	}
	switch msg.Request {
	case RequestContent:
		return editor.UpdateContent(doc, msg.BlockID, msg.Content)
	case RequestColors:
		return editor.UpdateStyles(doc, msg.BlockID, msg.Pairing.Styles())
	}
	return doc
}
