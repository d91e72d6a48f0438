package model

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// blockJSON is the persisted shape: {id, type, content, styles, children?}.
type blockJSON struct {
	ID       string    `json:"id"`
	Type     Kind      `json:"type"`
	Content  string    `json:"content"`
	Styles   Style     `json:"styles"`
	Children *[]*Block `json:"children,omitempty"`
}

// blockWire mirrors blockJSON with every field optional so missing fields
// and wrongly typed values can be told apart from zero values.
type blockWire struct {
	ID       *string        `json:"id"`
	Type     *string        `json:"type"`
	Content  *string        `json:"content"`
	Styles   map[string]any `json:"styles"`
	Children *[]*Block      `json:"children"`
}

// MarshalJSON encodes the block in its persisted shape. Containers always
// carry a children array; leaves never do.
func (b *Block) MarshalJSON() ([]byte, error) {
	out := blockJSON{
		ID:      b.id,
		Type:    b.kind,
		Content: b.content,
		Styles:  b.style,
	}
	if out.Styles == nil {
		out.Styles = Style{}
	}
	if b.kind.IsContainer() {
		children := b.children
		if children == nil {
			children = []*Block{}
		}
		out.Children = &children
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes and validates one block and, recursively, its
// children. Any violation is reported as ErrInvalidBlock.
func (b *Block) UnmarshalJSON(data []byte) error {
	var w blockWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBlock, err)
	}
	// A null children value is still a children key.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBlock, err)
	}
	_, hasChildren := fields["children"]
	if w.ID == nil || *w.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidBlock)
	}
	if w.Type == nil {
		return fmt.Errorf("%w: block %s: missing type", ErrInvalidBlock, *w.ID)
	}
	kind := Kind(*w.Type)
	if !kind.IsValid() {
		return fmt.Errorf("%w: block %s: unknown type %q", ErrInvalidBlock, *w.ID, *w.Type)
	}
	if w.Content == nil {
		return fmt.Errorf("%w: block %s: missing content", ErrInvalidBlock, *w.ID)
	}
	if w.Styles == nil {
		return fmt.Errorf("%w: block %s: missing styles", ErrInvalidBlock, *w.ID)
	}
	style := make(Style, len(w.Styles))
	for name, raw := range w.Styles {
		key := StyleKey(name)
		if !key.IsValid() {
			return fmt.Errorf("%w: block %s: unknown style %q", ErrInvalidBlock, *w.ID, name)
		}
		value, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: block %s: style %s is not a string", ErrInvalidBlock, *w.ID, name)
		}
		style[key] = value
	}
	if hasChildren && !kind.IsContainer() {
		return fmt.Errorf("%w: %s block %s cannot have children", ErrInvalidBlock, kind, *w.ID)
	}

	var children []*Block
	if w.Children != nil {
		children = *w.Children
		for i, c := range children {
			if c == nil {
				return fmt.Errorf("%w: container %s: null child at index %d", ErrInvalidBlock, *w.ID, i)
			}
		}
	}
	*b = *NewBlock(*w.ID, kind, *w.Content, style, children...)
	return nil
}
