package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanderheijden86/lumina/pkg/debug"
	"github.com/vanderheijden86/lumina/pkg/model"
)

// Load reads and decodes the document stored under key. It returns
// ErrNotFound when nothing is stored and ErrMalformed when the value is
// not a valid document.
func Load(ctx context.Context, kv KV, key string) (model.Document, error) {
	data, err := kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// LoadOrDefault returns the stored document, falling back to
// model.DefaultDocument when it is absent or unusable. Failures other than
// a missing key are logged as warnings; the editor never sees an error.
func LoadOrDefault(ctx context.Context, kv KV, key string) model.Document {
	defer debug.LogEnterExit("store.LoadOrDefault")()
	doc, err := Load(ctx, kv, key)
	switch {
	case err == nil:
		debug.Log("loaded %d blocks from %s", model.Count(doc), key)
		debug.Dump("page", doc)
		return doc
	case errors.Is(err, ErrNotFound):
		debug.Log("no saved page under %s, using default", key)
	case errors.Is(err, ErrMalformed):
		debug.Warn(err, "saved page %s is corrupt, starting from the default page", key)
	default:
		debug.Warn(err, "could not read saved page %s, starting from the default page", key)
	}
	return model.DefaultDocument()
}

// Save encodes doc and stores it under key.
func Save(ctx context.Context, kv KV, key string, doc model.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := kv.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save page %s: %w", key, err)
	}
	debug.Log("saved %d bytes under %s", len(data), key)
	return nil
}

// Reset stores the default document under key and returns it.
func Reset(ctx context.Context, kv KV, key string) (model.Document, error) {
	doc := model.DefaultDocument()
	if err := Save(ctx, kv, key, doc); err != nil {
		return nil, err
	}
	return doc, nil
}
