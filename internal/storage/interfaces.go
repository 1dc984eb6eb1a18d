package storage

import (
	"context"

	"github.com/nikmy/fleetsync/pkg/errors"
)

var ErrNotFound = errors.Error("key not found")

// Store is a durable key-value store. Put replaces the previous value of a key
// atomically: readers see either the old or the new value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close(ctx context.Context) error
}
