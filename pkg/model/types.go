// Package model defines the page block tree and the read helpers over it.
package model

import (
	"maps"
	"slices"
)

// Kind identifies what a block renders as. It is fixed at creation.
type Kind string

const (
	KindTitle     Kind = "title"
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindButton    Kind = "button"
	KindContainer Kind = "container"
)

// Kinds lists every block kind in palette order.
var Kinds = []Kind{KindTitle, KindText, KindImage, KindButton, KindContainer}

// IsValid returns true if the kind is a recognized value
func (k Kind) IsValid() bool {
	switch k {
	case KindTitle, KindText, KindImage, KindButton, KindContainer:
		return true
	}
	return false
}

// IsContainer returns true for the only kind that may own children.
func (k Kind) IsContainer() bool {
	return k == KindContainer
}

// IsTextual returns true for kinds whose content is prose a suggestion
// service can rewrite.
func (k Kind) IsTextual() bool {
	return k == KindTitle || k == KindText
}

// Label returns the display name used in pickers and the tree view.
func (k Kind) Label() string {
	switch k {
	case KindTitle:
		return "Title"
	case KindText:
		return "Text"
	case KindImage:
		return "Image"
	case KindButton:
		return "Button"
	case KindContainer:
		return "Container"
	}
	return string(k)
}

// StyleKey is one of the closed set of style properties a block may carry.
// The value is the persisted (camelCase) name; CSSName gives the property
// name used in markup.
type StyleKey string

const (
	StyleWidth              StyleKey = "width"
	StyleHeight             StyleKey = "height"
	StyleMinHeight          StyleKey = "minHeight"
	StyleColor              StyleKey = "color"
	StyleFontSize           StyleKey = "fontSize"
	StyleTextAlign          StyleKey = "textAlign"
	StyleFontWeight         StyleKey = "fontWeight"
	StyleBackgroundColor    StyleKey = "backgroundColor"
	StyleBackgroundImage    StyleKey = "backgroundImage"
	StyleBackgroundSize     StyleKey = "backgroundSize"
	StyleBackgroundPosition StyleKey = "backgroundPosition"
	StyleObjectFit          StyleKey = "objectFit"
	StylePadding            StyleKey = "padding"
	StyleMargin             StyleKey = "margin"
	StyleBorderRadius       StyleKey = "borderRadius"
	StyleDisplay            StyleKey = "display"
	StyleFlexDirection      StyleKey = "flexDirection"
	StyleFlexWrap           StyleKey = "flexWrap"
	StyleFlexGrow           StyleKey = "flexGrow"
	StyleFlexShrink         StyleKey = "flexShrink"
	StyleAlignItems         StyleKey = "alignItems"
	StyleJustifyContent     StyleKey = "justifyContent"
	StyleGap                StyleKey = "gap"
	StyleBorderWidth        StyleKey = "borderWidth"
	StyleBorderColor        StyleKey = "borderColor"
)

// StyleKeys lists every style property in the order the properties panel
// and the exporter walk them.
var StyleKeys = []StyleKey{
	StyleWidth, StyleHeight, StyleMinHeight,
	StyleColor, StyleFontSize, StyleTextAlign, StyleFontWeight,
	StyleBackgroundColor, StyleBackgroundImage, StyleBackgroundSize, StyleBackgroundPosition,
	StyleObjectFit, StylePadding, StyleMargin, StyleBorderRadius,
	StyleDisplay, StyleFlexDirection, StyleFlexWrap, StyleFlexGrow, StyleFlexShrink,
	StyleAlignItems, StyleJustifyContent, StyleGap,
	StyleBorderWidth, StyleBorderColor,
}

var cssNames = map[StyleKey]string{
	StyleWidth:              "width",
	StyleHeight:             "height",
	StyleMinHeight:          "min-height",
	StyleColor:              "color",
	StyleFontSize:           "font-size",
	StyleTextAlign:          "text-align",
	StyleFontWeight:         "font-weight",
	StyleBackgroundColor:    "background-color",
	StyleBackgroundImage:    "background-image",
	StyleBackgroundSize:     "background-size",
	StyleBackgroundPosition: "background-position",
	StyleObjectFit:          "object-fit",
	StylePadding:            "padding",
	StyleMargin:             "margin",
	StyleBorderRadius:       "border-radius",
	StyleDisplay:            "display",
	StyleFlexDirection:      "flex-direction",
	StyleFlexWrap:           "flex-wrap",
	StyleFlexGrow:           "flex-grow",
	StyleFlexShrink:         "flex-shrink",
	StyleAlignItems:         "align-items",
	StyleJustifyContent:     "justify-content",
	StyleGap:                "gap",
	StyleBorderWidth:        "border-width",
	StyleBorderColor:        "border-color",
}

// IsValid returns true if the key belongs to the closed style set
func (k StyleKey) IsValid() bool {
	_, ok := cssNames[k]
	return ok
}

// CSSName returns the kebab-case CSS property name, e.g. "min-height".
func (k StyleKey) CSSName() string {
	if name, ok := cssNames[k]; ok {
		return name
	}
	return string(k)
}

// ParseStyleKey accepts either the persisted name ("minHeight") or the CSS
// name ("min-height").
func ParseStyleKey(s string) (StyleKey, bool) {
	if k := StyleKey(s); k.IsValid() {
		return k, true
	}
	for k, css := range cssNames {
		if css == s {
			return k, true
		}
	}
	return "", false
}

// Style maps style properties to free-form CSS values. Absent keys fall back
// to per-kind defaults at render time and are never stored.
type Style map[StyleKey]string

// Clone returns an independent copy of the style map.
func (s Style) Clone() Style {
	if s == nil {
		return Style{}
	}
	return maps.Clone(s)
}

// Get returns the value for key and whether it is set to a non-empty value.
func (s Style) Get(key StyleKey) (string, bool) {
	v, ok := s[key]
	return v, ok && v != ""
}

// Block is a node of the document tree. Blocks are immutable: every edit
// produces a new Block through one of the With methods, so a Block that is
// reachable from a published Document never changes.
type Block struct {
	id       string
	kind     Kind
	content  string
	style    Style
	children []*Block // non-nil iff kind is KindContainer
}

// NewBlock builds a block. Children are kept only for containers; a
// container always gets a non-nil (possibly empty) child list.
func NewBlock(id string, kind Kind, content string, style Style, children ...*Block) *Block {
	b := &Block{
		id:      id,
		kind:    kind,
		content: content,
		style:   style.Clone(),
	}
	if kind.IsContainer() {
		b.children = make([]*Block, 0, len(children))
		for _, c := range children {
			if c != nil {
				b.children = append(b.children, c)
			}
		}
	}
	return b
}

func (b *Block) ID() string      { return b.id }
func (b *Block) Kind() Kind      { return b.kind }
func (b *Block) Content() string { return b.content }

// IsContainer reports whether the block may own children.
func (b *Block) IsContainer() bool { return b.kind.IsContainer() }

// Style returns a copy of the block's style map.
func (b *Block) Style() Style { return b.style.Clone() }

// StyleValue returns a single style value.
func (b *Block) StyleValue(key StyleKey) (string, bool) {
	return b.style.Get(key)
}

// Children returns a copy of the child list: nil for leaves, non-nil for
// containers.
func (b *Block) Children() []*Block {
	if b.children == nil {
		return nil
	}
	return slices.Clone(b.children)
}

// ChildCount returns the number of direct children.
func (b *Block) ChildCount() int { return len(b.children) }

// Child returns the i-th child, or nil when out of range.
func (b *Block) Child(i int) *Block {
	if i < 0 || i >= len(b.children) {
		return nil
	}
	return b.children[i]
}

func (b *Block) shallow() *Block {
	c := *b
	return &c
}

// WithID returns a copy carrying a different id.
func (b *Block) WithID(id string) *Block {
	c := b.shallow()
	c.id = id
	return c
}

// WithContent returns a copy with the content replaced.
func (b *Block) WithContent(content string) *Block {
	c := b.shallow()
	c.content = content
	return c
}

// WithStyle returns a copy with one style entry replaced; other keys are kept.
func (b *Block) WithStyle(key StyleKey, value string) *Block {
	c := b.shallow()
	c.style = b.style.Clone()
	c.style[key] = value
	return c
}

// WithStyles returns a copy with every entry of updates applied.
func (b *Block) WithStyles(updates Style) *Block {
	c := b.shallow()
	c.style = b.style.Clone()
	for k, v := range updates {
		c.style[k] = v
	}
	return c
}

// WithoutStyle returns a copy with key removed.
func (b *Block) WithoutStyle(key StyleKey) *Block {
	c := b.shallow()
	c.style = b.style.Clone()
	delete(c.style, key)
	return c
}

// WithChildren returns a copy with the child list replaced. Leaves never
// gain children; for them the receiver is returned unchanged.
func (b *Block) WithChildren(children []*Block) *Block {
	if !b.IsContainer() {
		return b
	}
	c := b.shallow()
	c.children = make([]*Block, 0, len(children))
	for _, child := range children {
		if child != nil {
			c.children = append(c.children, child)
		}
	}
	return c
}

// Document is the ordered forest of top-level blocks.
type Document []*Block
