package await

import "context"

// Chan waits for the next value of a channel. Await reports false once the
// channel is closed.
type Chan[T any] struct {
	ch  <-chan T
	val T
}

func FromChan[T any](ch <-chan T) *Chan[T] {
	return &Chan[T]{ch: ch}
}

func (a *Chan[T]) Await(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case v, ok := <-a.ch:
		a.val = v
		return ok
	}
}

// Value returns the last received value.
func (a *Chan[T]) Value() T {
	return a.val
}
