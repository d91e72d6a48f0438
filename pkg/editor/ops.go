// Package editor implements the structural operations on a block forest.
//
// Every function here is pure: it takes a model.Document and returns a new
// one, copying only the path from the root to the changed node. Subtrees off
// that path are shared by pointer with the input. Operations that name a
// block which does not exist, or that would break the tree (moving a
// container into itself), return the input unchanged rather than an error.
package editor

import (
	"slices"

	"github.com/vanderheijden86/lumina/pkg/model"
)

// Default content for freshly created blocks.
const (
	DefaultTitle      = "New Title"
	DefaultText       = "New Text Content"
	DefaultImageURL   = "https://picsum.photos/800/400"
	DefaultButtonText = "Click Me"
)

// DefaultContent returns the content a new block of kind starts with.
func DefaultContent(kind model.Kind) string {
	switch kind {
	case model.KindTitle:
		return DefaultTitle
	case model.KindText:
		return DefaultText
	case model.KindImage:
		return DefaultImageURL
	case model.KindButton:
		return DefaultButtonText
	}
	return ""
}

// DefaultStyle returns the style a new block of kind starts with.
func DefaultStyle(kind model.Kind) model.Style {
	if kind.IsContainer() {
		return model.Style{
			model.StylePadding:         "20px",
			model.StyleBackgroundColor: "#f8fafc",
			model.StyleDisplay:         "flex",
			model.StyleFlexDirection:   "column",
			model.StyleWidth:           "100%",
			model.StyleMinHeight:       "100px",
			model.StyleAlignItems:      "stretch",
			model.StyleJustifyContent:  "flex-start",
			model.StyleGap:             "20px",
		}
	}
	return model.Style{
		model.StylePadding: "10px 0",
		model.StyleWidth:   "100%",
	}
}

// CreateBlock returns a new block of kind with a fresh id and the default
// content and style. It returns nil for an unknown kind.
func CreateBlock(kind model.Kind) *model.Block {
	if !kind.IsValid() {
		return nil
	}
	return model.NewBlock(model.NewID(), kind, DefaultContent(kind), DefaultStyle(kind))
}

// Insert places src relative to the block named targetID. A container target
// receives src as its first child; any other target gets src as the sibling
// right after it. Nothing changes when src is nil, when src is the target
// itself, or when the target does not exist.
func Insert(forest model.Document, src *model.Block, targetID string) model.Document {
	if src == nil || src.ID() == targetID {
		return forest
	}
	out, ok := insertInto(forest, src, targetID)
	if !ok {
		return forest
	}
	return out
}

func insertInto(list []*model.Block, src *model.Block, targetID string) ([]*model.Block, bool) {
	for i, b := range list {
		if b.ID() == targetID {
			if b.IsContainer() {
				children := append([]*model.Block{src}, b.Children()...)
				return replaceAt(list, i, b.WithChildren(children)), true
			}
			return slices.Insert(slices.Clone(list), i+1, src), true
		}
		if !b.IsContainer() {
			continue
		}
		if children, ok := insertInto(b.Children(), src, targetID); ok {
			return replaceAt(list, i, b.WithChildren(children)), true
		}
	}
	return list, false
}

// insertAfter places src as the sibling immediately after targetID, even
// when the target is a container.
func insertAfter(list []*model.Block, src *model.Block, targetID string) ([]*model.Block, bool) {
	for i, b := range list {
		if b.ID() == targetID {
			return slices.Insert(slices.Clone(list), i+1, src), true
		}
		if !b.IsContainer() {
			continue
		}
		if children, ok := insertAfter(b.Children(), src, targetID); ok {
			return replaceAt(list, i, b.WithChildren(children)), true
		}
	}
	return list, false
}

// Remove deletes the block named id together with its whole subtree.
func Remove(forest model.Document, id string) model.Document {
	out, ok := removeFrom(forest, id)
	if !ok {
		return forest
	}
	return out
}

func removeFrom(list []*model.Block, id string) ([]*model.Block, bool) {
	for i, b := range list {
		if b.ID() == id {
			return slices.Delete(slices.Clone(list), i, i+1), true
		}
		if !b.IsContainer() {
			continue
		}
		if children, ok := removeFrom(b.Children(), id); ok {
			return replaceAt(list, i, b.WithChildren(children)), true
		}
	}
	return list, false
}

// Relocate moves the block named srcID onto the block named targetID, using
// the same placement rules as Insert. The move is refused, and the forest
// returned unchanged, when either block is missing, when they are the same
// block, or when the target sits inside the source's subtree.
func Relocate(forest model.Document, srcID, targetID string) model.Document {
	if srcID == targetID {
		return forest
	}
	src, ok := model.FindByID(forest, srcID)
	if !ok {
		return forest
	}
	if model.IsDescendant(src, targetID) {
		return forest
	}
	// Checked before removal so a missing target never drops the source.
	if _, ok := model.FindByID(forest, targetID); !ok {
		return forest
	}
	return Insert(Remove(forest, srcID), src, targetID)
}

// Duplicate inserts a deep copy of the block named id right after it. Every
// node in the copy receives a fresh id; content and style are copied as is.
func Duplicate(forest model.Document, id string) model.Document {
	out, _ := DuplicateBlock(forest, id)
	return out
}

// DuplicateBlock is Duplicate that also returns the id of the copy's root.
// The id is empty when nothing was duplicated.
func DuplicateBlock(forest model.Document, id string) (model.Document, string) {
	orig, ok := model.FindByID(forest, id)
	if !ok {
		return forest, ""
	}
	dup := cloneFresh(orig)
	out, ok := insertAfter(forest, dup, id)
	if !ok {
		return forest, ""
	}
	return out, dup.ID()
}

func cloneFresh(b *model.Block) *model.Block {
	var children []*model.Block
	if b.IsContainer() {
		children = make([]*model.Block, 0, b.ChildCount())
		for _, c := range b.Children() {
			children = append(children, cloneFresh(c))
		}
	}
	return model.NewBlock(model.NewID(), b.Kind(), b.Content(), b.Style(), children...)
}

// UpdateContent replaces the content of the block named id.
func UpdateContent(forest model.Document, id, content string) model.Document {
	return update(forest, id, func(b *model.Block) *model.Block {
		return b.WithContent(content)
	})
}

// UpdateStyle sets one style entry of the block named id, keeping the others.
// Unknown keys are ignored.
func UpdateStyle(forest model.Document, id string, key model.StyleKey, value string) model.Document {
	if !key.IsValid() {
		return forest
	}
	return update(forest, id, func(b *model.Block) *model.Block {
		return b.WithStyle(key, value)
	})
}

// UpdateStyles applies several style entries in a single update.
func UpdateStyles(forest model.Document, id string, updates model.Style) model.Document {
	valid := make(model.Style, len(updates))
	for k, v := range updates {
		if k.IsValid() {
			valid[k] = v
		}
	}
	if len(valid) == 0 {
		return forest
	}
	return update(forest, id, func(b *model.Block) *model.Block {
		return b.WithStyles(valid)
	})
}

// ClearStyle removes a style entry so the block falls back to its
// render-time default.
func ClearStyle(forest model.Document, id string, key model.StyleKey) model.Document {
	return update(forest, id, func(b *model.Block) *model.Block {
		if _, ok := b.Style()[key]; !ok {
			return b
		}
		return b.WithoutStyle(key)
	})
}

// AddAsChildOfSelection creates a block of kind and appends it to the
// selected container, or to the top level when the selection is empty,
// missing, or not a container. It returns the new forest and the new
// block's id, which callers select.
func AddAsChildOfSelection(forest model.Document, selectedID string, kind model.Kind) (model.Document, string) {
	blk := CreateBlock(kind)
	if blk == nil {
		return forest, ""
	}
	if selectedID != "" {
		if sel, ok := model.FindByID(forest, selectedID); ok && sel.IsContainer() {
			out := update(forest, selectedID, func(b *model.Block) *model.Block {
				return b.WithChildren(append(b.Children(), blk))
			})
			return out, blk.ID()
		}
	}
	return AppendTopLevel(forest, blk), blk.ID()
}

// AppendTopLevel adds b after the last top-level block.
func AppendTopLevel(forest model.Document, b *model.Block) model.Document {
	if b == nil {
		return forest
	}
	out := make(model.Document, 0, len(forest)+1)
	out = append(out, forest...)
	return append(out, b)
}

// update rebuilds the path to id, replacing that block with fn(block).
func update(forest model.Document, id string, fn func(*model.Block) *model.Block) model.Document {
	out, ok := updateIn(forest, id, fn)
	if !ok {
		return forest
	}
	return out
}

func updateIn(list []*model.Block, id string, fn func(*model.Block) *model.Block) ([]*model.Block, bool) {
	for i, b := range list {
		if b.ID() == id {
			nb := fn(b)
			if nb == b {
				return list, true
			}
			return replaceAt(list, i, nb), true
		}
		if !b.IsContainer() {
			continue
		}
		children, ok := updateIn(b.Children(), id, fn)
		if !ok {
			continue
		}
		if slices.Equal(children, b.Children()) {
			return list, true
		}
		return replaceAt(list, i, b.WithChildren(children)), true
	}
	return list, false
}

func replaceAt(list []*model.Block, i int, b *model.Block) []*model.Block {
	out := slices.Clone(list)
	out[i] = b
	return out
}
