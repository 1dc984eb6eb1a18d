package storage

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/nikmy/fleetsync/pkg/errors"
	"github.com/nikmy/fleetsync/pkg/logger"
)

// Collection reads and writes a whole array of T under a single key.
type Collection[T any] struct {
	store  Store
	key    string
	logger logger.Logger
}

func NewCollection[T any](store Store, key string, log logger.Logger) *Collection[T] {
	return &Collection[T]{
		store:  store,
		key:    key,
		logger: log.With("collection").With(key),
	}
}

func (c *Collection[T]) Key() string {
	return c.key
}

// Load never fails: a missing key or malformed content yields an empty slice.
func (c *Collection[T]) Load(ctx context.Context) []T {
	data, err := c.store.Get(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		return []T{}
	}
	if err != nil {
		c.logger.Warn(errors.WrapFail(err, "read stored collection"))
		return []T{}
	}

	var items []T
	err = json.Unmarshal(data, &items)
	if err != nil {
		c.logger.Warn(errors.WrapFail(err, "decode stored collection"))
		return []T{}
	}

	if items == nil {
		return []T{}
	}
	return items
}

// Save overwrites the key with the full collection.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return errors.WrapFail(err, "encode collection")
	}

	err = c.store.Put(ctx, c.key, data)
	return errors.WrapFail(err, "write collection")
}
