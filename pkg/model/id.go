package model

import "github.com/google/uuid"

// IDPrefix starts every generated block id.
const IDPrefix = "block-"

// NewID returns a fresh block id. Ids are random UUIDs so they are never
// reused, including across sessions that load the same saved document.
func NewID() string {
	return IDPrefix + uuid.NewString()
}
