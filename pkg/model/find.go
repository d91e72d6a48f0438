package model

// FindByID searches the forest depth-first in pre-order and returns the first
// block with the given id.
func FindByID(forest []*Block, id string) (*Block, bool) {
	for _, b := range forest {
		if b == nil {
			continue
		}
		if b.id == id {
			return b, true
		}
		if found, ok := FindByID(b.children, id); ok {
			return found, true
		}
	}
	return nil, false
}

// IsDescendant reports whether id names a node strictly below ancestor.
// A node is not its own descendant.
func IsDescendant(ancestor *Block, id string) bool {
	if ancestor == nil {
		return false
	}
	for _, child := range ancestor.children {
		if child.id == id || IsDescendant(child, id) {
			return true
		}
	}
	return false
}

// ParentOf returns the container directly holding id. The second result is
// false when id is not in the forest; a top-level block reports a nil parent
// with true.
func ParentOf(forest []*Block, id string) (*Block, bool) {
	return parentOf(forest, nil, id)
}

func parentOf(list []*Block, parent *Block, id string) (*Block, bool) {
	for _, b := range list {
		if b.id == id {
			return parent, true
		}
		if p, ok := parentOf(b.children, b, id); ok {
			return p, true
		}
	}
	return nil, false
}

// Walk visits every block in pre-order. Returning false from fn stops the
// walk.
func Walk(forest []*Block, fn func(b *Block, depth int, parent *Block) bool) {
	walk(forest, 0, nil, fn)
}

func walk(list []*Block, depth int, parent *Block, fn func(*Block, int, *Block) bool) bool {
	for _, b := range list {
		if b == nil {
			continue
		}
		if !fn(b, depth, parent) {
			return false
		}
		if !walk(b.children, depth+1, b, fn) {
			return false
		}
	}
	return true
}

// IDs returns every id in the forest in pre-order.
func IDs(forest []*Block) []string {
	var ids []string
	Walk(forest, func(b *Block, _ int, _ *Block) bool {
		ids = append(ids, b.id)
		return true
	})
	return ids
}

// SubtreeIDs returns the ids of b and all its descendants.
func SubtreeIDs(b *Block) []string {
	if b == nil {
		return nil
	}
	return IDs([]*Block{b})
}

// Count returns the total number of blocks in the forest.
func Count(forest []*Block) int {
	n := 0
	Walk(forest, func(*Block, int, *Block) bool {
		n++
		return true
	})
	return n
}

// MaxDepth returns the deepest nesting level (1 for a flat forest, 0 when
// empty).
func MaxDepth(forest []*Block) int {
	deepest := 0
	Walk(forest, func(_ *Block, depth int, _ *Block) bool {
		if depth+1 > deepest {
			deepest = depth + 1
		}
		return true
	})
	return deepest
}
