// Package syncer keeps an in-memory collection of entities consistent with
// either a local key-value store or a remote table.
//
// Every mutation goes through Add, Update or Remove. In remote mode the remote
// store is written first and memory only changes once it confirms; in local
// mode memory changes right away and the whole collection is written back to
// the local store. Each completed call emits exactly one notification.
package syncer

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/nikmy/fleetsync/internal/entity"
	"github.com/nikmy/fleetsync/internal/notify"
	"github.com/nikmy/fleetsync/internal/shape"
	"github.com/nikmy/fleetsync/internal/storage"
	"github.com/nikmy/fleetsync/pkg/errors"
	"github.com/nikmy/fleetsync/pkg/logger"
)

// Changed carries a snapshot of the collection after a mutation.
type Changed[T any] struct {
	Items []T
}

type Engine[T entity.Indexed] struct {
	cfg      Config[T]
	backend  backend[T]
	notifier notify.Notifier
	log      logger.Logger

	mu          sync.Mutex
	items       []T
	err         error
	subscribers []func(Changed[T])

	loading atomic.Int32
}

// New resolves the mode of the collection and loads it from the active store.
func New[T entity.Indexed](ctx context.Context, log logger.Logger, cfg Config[T], deps Deps) *Engine[T] {
	name := cfg.Name
	if name == "" {
		name = cfg.StorageKey
	}

	e := &Engine[T]{
		cfg:      cfg,
		notifier: deps.Notifier,
		log:      log.With("syncer").With(name),
		items:    []T{},
	}
	if e.notifier == nil {
		e.notifier = notify.Discard
	}

	switch {
	case cfg.Remote && cfg.Table != "" && deps.Remote != nil:
		e.backend = &remoteBacked[T]{
			client:      deps.Remote,
			table:       cfg.Table,
			transformer: shape.Or(cfg.Transformer),
		}
	default:
		if cfg.Remote {
			e.log.Warnf("remote mode requested but table or client is missing, running local-only")
		}

		store := deps.Store
		if store == nil {
			store = storage.NewMemory()
		}

		local := &localBacked[T]{stored: storage.NewCollection[T](store, cfg.StorageKey, e.log)}
		e.backend = local
		e.subscribers = append(e.subscribers, local.persist(context.WithoutCancel(ctx), e.log.Error))
	}

	if e.backend.mode() == ModeRemote {
		e.Refresh(ctx)
		return e
	}

	items, _ := e.backend.load(ctx)
	e.items = items
	return e
}

func (e *Engine[T]) Mode() Mode {
	return e.backend.mode()
}

// Items returns a snapshot of the collection in insertion order.
func (e *Engine[T]) Items() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.items)
}

func (e *Engine[T]) Get(id string) (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, item := range e.items {
		if item.GetID() == id {
			return item, true
		}
	}

	var zero T
	return zero, false
}

// Loading reports whether a remote call is in flight.
func (e *Engine[T]) Loading() bool {
	return e.loading.Load() > 0
}

// Err returns the failure of the latest operation, nil if it succeeded.
func (e *Engine[T]) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Subscribe registers fn to receive every change of the collection. fn runs
// while the collection is locked and must not call back into the engine.
func (e *Engine[T]) Subscribe(fn func(Changed[T])) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subscribers = append(e.subscribers, fn)
}

func (e *Engine[T]) Add(ctx context.Context, data T) bool {
	return e.TryAdd(ctx, data) == nil
}

// TryAdd is Add returning the failure of this very call.
func (e *Engine[T]) TryAdd(ctx context.Context, data T) error {
	e.setErr(nil)

	fields, err := entity.ToFields(data)
	if err != nil {
		return e.fail(ctx, validationFailed(errors.WrapFail(err, "read entity").Error()))
	}
	fields = fields.WithoutID()

	err = e.validate(ctx, fields)
	if err != nil {
		return err
	}

	var created T
	err = e.call(ctx, func(ctx context.Context) (err error) {
		created, err = e.backend.add(ctx, fields)
		return err
	})
	if err != nil {
		return e.fail(ctx, err)
	}

	// a refresh finishing during the remote insert may have loaded the row
	e.mutate(func(items []T) []T {
		if slices.ContainsFunc(items, sameID[T](created.GetID())) {
			return items
		}
		return append(items, created)
	})

	if e.cfg.OnAdd != nil {
		e.cfg.OnAdd(created)
	}

	e.succeed(ctx, "added")
	return nil
}

// Update merges patch into the entity with the given id. The id itself is
// never changed. Local mode does not check that the entity exists.
func (e *Engine[T]) Update(ctx context.Context, id string, patch entity.Fields) bool {
	return e.TryUpdate(ctx, id, patch) == nil
}

func (e *Engine[T]) TryUpdate(ctx context.Context, id string, patch entity.Fields) error {
	e.setErr(nil)

	patch = patch.WithoutID()

	err := e.validate(ctx, patch)
	if err != nil {
		return err
	}

	err = e.call(ctx, func(ctx context.Context) error {
		return e.backend.update(ctx, id, patch)
	})
	if err != nil {
		return e.fail(ctx, err)
	}

	e.mutate(func(items []T) []T {
		for i := range items {
			if items[i].GetID() != id {
				continue
			}

			merged, err := entity.Merge(items[i], patch)
			if err != nil {
				e.log.Error(errors.WrapFailf(err, "merge patch into %s", id))
				continue
			}
			items[i] = merged
		}
		return items
	})

	if e.cfg.OnUpdate != nil {
		e.cfg.OnUpdate(id, patch)
	}

	e.succeed(ctx, "updated")
	return nil
}

func (e *Engine[T]) Remove(ctx context.Context, id string) bool {
	return e.TryRemove(ctx, id) == nil
}

func (e *Engine[T]) TryRemove(ctx context.Context, id string) error {
	e.setErr(nil)

	err := e.call(ctx, func(ctx context.Context) error {
		return e.backend.remove(ctx, id)
	})
	if err != nil {
		return e.fail(ctx, err)
	}

	e.mutate(func(items []T) []T {
		return slices.DeleteFunc(items, sameID[T](id))
	})

	if e.cfg.OnDelete != nil {
		e.cfg.OnDelete(id)
	}

	e.succeed(ctx, "deleted")
	return nil
}

// Refresh replaces the collection with the full remote table. In local mode it
// only clears the last error. Concurrent refreshes are not merged: the last to
// finish wins.
func (e *Engine[T]) Refresh(ctx context.Context) error {
	e.setErr(nil)

	if e.backend.mode() != ModeRemote {
		return nil
	}

	var items []T
	err := e.call(ctx, func(ctx context.Context) (err error) {
		items, err = e.backend.load(ctx)
		return err
	})
	if err != nil {
		return e.fail(ctx, err)
	}

	e.mutate(func([]T) []T {
		return items
	})
	return nil
}

func (e *Engine[T]) validate(ctx context.Context, fields entity.Fields) error {
	if e.cfg.Validator != nil {
		res := e.cfg.Validator.Validate(fields)
		if !res.Valid {
			reasons := res.Errors
			if len(reasons) == 0 {
				reasons = []string{"invalid data"}
			}
			return e.fail(ctx, validationFailed(reasons...))
		}
	}

	// values that cannot be decoded into T would break the merge after a
	// successful write
	_, err := entity.FromFields[T](fields)
	if err != nil {
		return e.fail(ctx, validationFailed(fmt.Sprintf("invalid field value: %s", err)))
	}

	return nil
}

// call runs a backend operation. Remote calls count towards Loading and are
// detached from the caller's cancellation: once started they run to the end.
func (e *Engine[T]) call(ctx context.Context, op func(ctx context.Context) error) error {
	if e.backend.mode() != ModeRemote {
		return op(ctx)
	}

	e.loading.Add(1)
	defer e.loading.Add(-1)

	return op(context.WithoutCancel(ctx))
}

func (e *Engine[T]) mutate(fn func(items []T) []T) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = fn(e.items)

	if len(e.subscribers) == 0 {
		return
	}

	c := Changed[T]{Items: slices.Clone(e.items)}
	for _, s := range e.subscribers {
		s(c)
	}
}

func (e *Engine[T]) setErr(err error) {
	e.mu.Lock()
	e.err = err
	e.mu.Unlock()
}

// fail records err as the last error, reports it and returns it as *Error.
func (e *Engine[T]) fail(ctx context.Context, err error) error {
	var opErr *Error
	if !errors.As(err, &opErr) {
		opErr = validationFailed(err.Error())
	}

	e.setErr(opErr)
	e.log.Warn(errors.Wrapf(opErr, "%s", opErr.Kind))

	title := "Error"
	if opErr.Kind == ValidationFailed {
		title = "Validation error"
	}
	e.notifier.Notify(ctx, notify.Notification{
		Title:       title,
		Description: opErr.Error(),
		Variant:     notify.VariantDestructive,
	})
	return opErr
}

func (e *Engine[T]) succeed(ctx context.Context, what string) {
	e.notifier.Notify(ctx, notify.Success(fmt.Sprintf("%s %s successfully", e.name(), what)))
}

func sameID[T entity.Indexed](id string) func(T) bool {
	return func(item T) bool {
		return item.GetID() == id
	}
}

func (e *Engine[T]) name() string {
	if e.cfg.Name != "" {
		return e.cfg.Name
	}
	return e.cfg.StorageKey
}
