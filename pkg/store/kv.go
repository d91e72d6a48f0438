package store

import (
	"context"
	"slices"
	"sync"
	"time"
)

// KV is the minimal key-value persistence the editor needs.
type KV interface {
	// Get returns the stored value or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Meta describes a stored value.
type Meta struct {
	Key       string
	UpdatedAt time.Time
	Size      int
}

// Statter is implemented by backends that track when a key was written.
type Statter interface {
	Stat(ctx context.Context, key string) (Meta, error)
}

// MemoryKV keeps values in memory. It is safe for concurrent use.
type MemoryKV struct {
	mu      sync.RWMutex
	values  map[string][]byte
	updated map[string]time.Time
	now     func() time.Time
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		values:  make(map[string][]byte),
		updated: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *MemoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = slices.Clone(value)
	m.updated[key] = m.now()
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	delete(m.updated, key)
	return nil
}

func (m *MemoryKV) Stat(_ context.Context, key string) (Meta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return Meta{}, ErrNotFound
	}
	return Meta{Key: key, UpdatedAt: m.updated[key], Size: len(v)}, nil
}

func (m *MemoryKV) Close() error { return nil }
