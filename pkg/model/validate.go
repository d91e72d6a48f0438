package model

import (
	"errors"
	"fmt"
)

// ErrInvalidBlock marks structural violations of the block model.
var ErrInvalidBlock = errors.New("invalid block")

// Validate checks a single block (not its subtree) for logical validity
func (b *Block) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil block", ErrInvalidBlock)
	}
	if b.id == "" {
		return fmt.Errorf("%w: block ID cannot be empty", ErrInvalidBlock)
	}
	if !b.kind.IsValid() {
		return fmt.Errorf("%w: block %s has invalid type: %q", ErrInvalidBlock, b.id, b.kind)
	}
	for k := range b.style {
		if !k.IsValid() {
			return fmt.Errorf("%w: block %s has unknown style %q", ErrInvalidBlock, b.id, k)
		}
	}
	if b.kind.IsContainer() && b.children == nil {
		return fmt.Errorf("%w: container %s has no child list", ErrInvalidBlock, b.id)
	}
	if !b.kind.IsContainer() && b.children != nil {
		return fmt.Errorf("%w: %s block %s cannot have children", ErrInvalidBlock, b.kind, b.id)
	}
	return nil
}

// Validate checks every block of the forest and that ids are unique across
// it.
func (d Document) Validate() error {
	seen := make(map[string]bool)
	var err error
	Walk(d, func(b *Block, _ int, _ *Block) bool {
		if err = b.Validate(); err != nil {
			return false
		}
		if seen[b.id] {
			err = fmt.Errorf("%w: duplicate block ID %s", ErrInvalidBlock, b.id)
			return false
		}
		seen[b.id] = true
		return true
	})
	if err != nil {
		return err
	}
	for i, b := range d {
		if b == nil {
			return fmt.Errorf("%w: nil block at index %d", ErrInvalidBlock, i)
		}
	}
	return nil
}
