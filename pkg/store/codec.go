// Package store persists the page document under a single key in a
// key-value backend.
package store

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/lumina/pkg/model"
)

// DefaultKey is the key the current page is stored under.
const DefaultKey = "lumina_current_page"

var (
	// ErrMalformed reports a stored value that is not a valid document.
	ErrMalformed = errors.New("malformed page data")
	// ErrNotFound reports a key with no stored value.
	ErrNotFound = errors.New("key not found")
)

// Encode serializes a document as a JSON array of blocks.
func Encode(doc model.Document) ([]byte, error) {
	if doc == nil {
		doc = model.Document{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode page: %w", err)
	}
	return data, nil
}

// EncodeIndent is Encode with two-space indentation, for --dump-json and
// exported bundles.
func EncodeIndent(doc model.Document) ([]byte, error) {
	if doc == nil {
		doc = model.Document{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode page: %w", err)
	}
	return data, nil
}

// Decode parses and validates a stored document. Every block is checked
// recursively and ids must be unique; any problem is reported as
// ErrMalformed.
func Decode(data []byte) (model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc == nil {
		// "null" is not a page.
		return nil, fmt.Errorf("%w: not an array", ErrMalformed)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc, nil
}
