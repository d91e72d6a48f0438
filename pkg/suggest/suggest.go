// Package suggest asks a remote text-generation service for block content
// and colour pairings.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vanderheijden86/lumina/pkg/model"
)

var (
	// ErrNoSuggestion means the service answered but gave nothing usable.
	ErrNoSuggestion = errors.New("no suggestion returned")
	// ErrUnavailable means no service is configured.
	ErrUnavailable = errors.New("suggestion service not configured")
	// ErrUnsupported means the block cannot be the subject of the request.
	ErrUnsupported = errors.New("suggestion not supported for this block")
)

// Suggester produces suggestions. Implementations make a single attempt
// and never retry.
type Suggester interface {
	// SuggestContent rewrites the content of a title or text block.
	SuggestContent(ctx context.Context, current string, kind model.Kind) (string, error)
	// SuggestColors proposes a text and an accent colour for a background.
	SuggestColors(ctx context.Context, background string) (Pairing, error)
}

// Pairing is a suggested text colour and accent colour.
type Pairing struct {
	Text   string
	Accent string
}

// Styles returns the style updates a pairing applies: the text colour
// becomes color and the accent becomes border-color.
func (p Pairing) Styles() model.Style {
	return model.Style{
		model.StyleColor:       p.Text,
		model.StyleBorderColor: p.Accent,
	}
}

// ContentPrompt builds the request for a new title or text.
func ContentPrompt(current string, kind model.Kind) string {
	return fmt.Sprintf("Generate a catchy and professional %s for a website section about: %s. "+
		"Return ONLY the generated text, no quotes or additional formatting.", kind, current)
}

// ColorsPrompt builds the request for a colour pairing.
func ColorsPrompt(background string) string {
	return fmt.Sprintf("Given a background color of %s, suggest a contrasting text color (hex) and a "+
		"secondary accent color (hex). Format: text_color, accent_color. Return nothing else.", background)
}

// ParsePairing reads a "text_color, accent_color" reply.
func ParsePairing(reply string) (Pairing, error) {
	parts := strings.Split(strings.TrimSpace(reply), ",")
	if len(parts) < 2 {
		return Pairing{}, fmt.Errorf("%w: expected \"text, accent\", got %q", ErrNoSuggestion, reply)
	}
	p := Pairing{
		Text:   strings.TrimSpace(parts[0]),
		Accent: strings.TrimSpace(parts[1]),
	}
	if p.Text == "" || p.Accent == "" {
		return Pairing{}, fmt.Errorf("%w: expected \"text, accent\", got %q", ErrNoSuggestion, reply)
	}
	return p, nil
}

// Disabled is the Suggester used when no API key is configured.
type Disabled struct{}

func (Disabled) SuggestContent(context.Context, string, model.Kind) (string, error) {
	return "", ErrUnavailable
}

func (Disabled) SuggestColors(context.Context, string) (Pairing, error) {
	return Pairing{}, ErrUnavailable
}
