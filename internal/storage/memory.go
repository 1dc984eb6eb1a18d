package storage

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// NewMemory returns a process-local store. Values live until the process exits.
func NewMemory() Store {
	return &memoryStore{c: cache.New(cache.NoExpiration, 0)}
}

type memoryStore struct {
	c *cache.Cache
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	v, found := m.c.Get(key)
	if !found {
		return nil, ErrNotFound
	}

	stored := v.([]byte)
	out := make([]byte, len(stored))
	copy(out, stored)
	return out, nil
}

func (m *memoryStore) Put(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	m.c.Set(key, stored, cache.NoExpiration)
	return nil
}

func (m *memoryStore) Close(context.Context) error {
	m.c.Flush()
	return nil
}
