package fleet

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/nikmy/fleetsync/internal/entity"
	"github.com/nikmy/fleetsync/internal/syncer"
	"github.com/nikmy/fleetsync/pkg/errors"
)

// Collection is an engine seen through JSON, for callers that pick the kind
// at runtime.
type Collection interface {
	Kind() Kind
	Mode() syncer.Mode

	List() any
	Get(id string) (any, bool)

	// Add decodes payload as a full entity. A payload that cannot be decoded
	// fails with ErrUndecodable and never reaches the engine. Every other
	// failure of these calls is a *syncer.Error.
	Add(ctx context.Context, payload []byte) error
	Update(ctx context.Context, id string, patch entity.Fields) error
	Remove(ctx context.Context, id string) error
	Refresh(ctx context.Context) error

	Loading() bool
	Err() error
}

var ErrUndecodable = errors.Error("undecodable payload")

type collection[T entity.Indexed] struct {
	kind   Kind
	engine *syncer.Engine[T]

	// enrich fills derived fields on the way out
	enrich func(T) T
}

func (c *collection[T]) Kind() Kind {
	return c.kind
}

func (c *collection[T]) Mode() syncer.Mode {
	return c.engine.Mode()
}

func (c *collection[T]) List() any {
	items := c.engine.Items()
	if c.enrich != nil {
		for i := range items {
			items[i] = c.enrich(items[i])
		}
	}
	return items
}

func (c *collection[T]) Get(id string) (any, bool) {
	item, found := c.engine.Get(id)
	if !found {
		return nil, false
	}
	if c.enrich != nil {
		item = c.enrich(item)
	}
	return item, true
}

func (c *collection[T]) Add(ctx context.Context, payload []byte) error {
	var data T
	err := json.Unmarshal(payload, &data)
	if err != nil {
		return errors.Errorf("decode %s: %w: %w", c.kind, ErrUndecodable, err)
	}
	return c.engine.TryAdd(ctx, data)
}

func (c *collection[T]) Update(ctx context.Context, id string, patch entity.Fields) error {
	return c.engine.TryUpdate(ctx, id, patch)
}

func (c *collection[T]) Remove(ctx context.Context, id string) error {
	return c.engine.TryRemove(ctx, id)
}

func (c *collection[T]) Refresh(ctx context.Context) error {
	return c.engine.Refresh(ctx)
}

func (c *collection[T]) Loading() bool {
	return c.engine.Loading()
}

func (c *collection[T]) Err() error {
	return c.engine.Err()
}
