// Package gate provides the mutual-exclusion domain that serializes every
// account/store operation within one process. The store layer relies on
// check-then-act sequences (find existing email, then insert), so all of
// them are funneled through one FIFO queue and execute one at a time.
package gate

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Gate is a FIFO async mutex. A task admitted by Do runs to completion,
// including any store round trips inside it, before the next queued task
// starts. Waiters are admitted in Acquire order.
type Gate struct {
	sem *semaphore.Weighted
}

func New() *Gate {
	return &Gate{sem: semaphore.NewWeighted(1)}
}

// Do runs fn while holding the gate and returns fn's error unchanged.
// The gate is released even if fn fails or panics. Acquisition honors
// ctx cancellation while waiting in the queue.
func (g *Gate) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer g.sem.Release(1)

	return fn(ctx)
}
