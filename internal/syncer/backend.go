package syncer

import (
	"context"

	"github.com/nikmy/fleetsync/internal/entity"
	"github.com/nikmy/fleetsync/internal/remote"
	"github.com/nikmy/fleetsync/internal/shape"
	"github.com/nikmy/fleetsync/internal/storage"
	"github.com/nikmy/fleetsync/pkg/errors"
)

// backend is resolved once per engine: either localBacked or remoteBacked.
type backend[T entity.Indexed] interface {
	mode() Mode

	load(ctx context.Context) ([]T, error)
	add(ctx context.Context, data entity.Fields) (T, error)
	update(ctx context.Context, id string, patch entity.Fields) error
	remove(ctx context.Context, id string) error
}

type localBacked[T entity.Indexed] struct {
	stored *storage.Collection[T]
}

func (l *localBacked[T]) mode() Mode {
	return ModeLocal
}

func (l *localBacked[T]) load(ctx context.Context) ([]T, error) {
	return l.stored.Load(ctx), nil
}

func (l *localBacked[T]) add(_ context.Context, data entity.Fields) (T, error) {
	f := data.Clone()
	f[entity.FieldID] = entity.NewID()
	return entity.FromFields[T](f)
}

func (l *localBacked[T]) update(context.Context, string, entity.Fields) error {
	return nil
}

func (l *localBacked[T]) remove(context.Context, string) error {
	return nil
}

// persist mirrors every change of the collection to the local store.
func (l *localBacked[T]) persist(ctx context.Context, onErr func(error)) func(Changed[T]) {
	return func(c Changed[T]) {
		err := l.stored.Save(ctx, c.Items)
		if err != nil {
			onErr(errors.WrapFailf(err, "persist %s", l.stored.Key()))
		}
	}
}

type remoteBacked[T entity.Indexed] struct {
	client      remote.Client
	table       string
	transformer shape.Transformer
}

func (r *remoteBacked[T]) mode() Mode {
	return ModeRemote
}

func (r *remoteBacked[T]) load(ctx context.Context) ([]T, error) {
	rows, err := r.client.List(ctx, r.table)
	if err != nil {
		return nil, &Error{Kind: RemoteReadFailed, Err: err}
	}

	items := make([]T, 0, len(rows))
	for _, row := range rows {
		item, err := entity.FromFields[T](r.transformer.FromRemote(row))
		if err != nil {
			return nil, &Error{Kind: RemoteReadFailed, Err: errors.WrapFail(err, "decode row")}
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *remoteBacked[T]) add(ctx context.Context, data entity.Fields) (T, error) {
	var created T

	row, err := r.client.Insert(ctx, r.table, r.transformer.ToRemote(data))
	if err != nil {
		return created, &Error{Kind: RemoteWriteFailed, Err: err}
	}

	created, err = entity.FromFields[T](r.transformer.FromRemote(row))
	if err != nil {
		return created, &Error{Kind: RemoteWriteFailed, Err: errors.WrapFail(err, "decode inserted row")}
	}
	return created, nil
}

func (r *remoteBacked[T]) update(ctx context.Context, id string, patch entity.Fields) error {
	_, err := r.client.Update(ctx, r.table, id, r.transformer.ToRemote(patch))
	if err != nil {
		return &Error{Kind: RemoteWriteFailed, Err: err}
	}
	return nil
}

func (r *remoteBacked[T]) remove(ctx context.Context, id string) error {
	err := r.client.Delete(ctx, r.table, id)
	if err != nil {
		return &Error{Kind: RemoteDeleteFailed, Err: err}
	}
	return nil
}
