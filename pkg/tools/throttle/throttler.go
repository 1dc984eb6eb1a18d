package throttle

import (
	"context"
	"time"

	"github.com/nikmy/fleetsync/pkg/tools/await"
)

// Throttler runs queued actions one by one, at most one per interval.
type Throttler struct {
	todo     chan func()
	interval time.Duration
}

func New(interval time.Duration, capacity int) *Throttler {
	return &Throttler{
		todo:     make(chan func(), capacity),
		interval: interval,
	}
}

// Run starts the worker. It stops when ctx is done; queued actions are dropped.
func (t *Throttler) Run(ctx context.Context) {
	go func() {
		tick := await.Tick(t.interval)
		defer tick.Stop()

		next := await.FromChan(t.todo)
		for next.Await(ctx) {
			next.Value()()
			if !tick.Await(ctx) {
				return
			}
		}
	}()
}

// Do queues action and reports false when the queue is full.
func (t *Throttler) Do(action func()) bool {
	select {
	case t.todo <- action:
		return true
	default:
		return false
	}
}
