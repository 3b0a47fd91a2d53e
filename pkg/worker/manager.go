// Package worker implements the scoped worker manager: a generic
// lifecycle helper that ties a set of background goroutines to the
// lifetime of an owned value, with cooperative shutdown and a join on
// close. Grounded on common/src/manager.rs, generalized from the
// teacher's own goroutine-per-chunk-load idiom in pkg/game.
package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Worker is a background task bound to a Manager's lifetime. It must
// observe ctx and return promptly once ctx is done. Mirrors the
// reference's convention of workers periodically checking a shared
// "running" flag, expressed here as the idiomatic Go cancellation
// signal instead.
type Worker[T any] func(ctx context.Context, value *T) error

// Manager owns a value of type T alongside the worker goroutines spawned
// for it at construction time. Grounded on the generic manager in
// common/src/manager.rs: init(value) plus a type-specific init_workers
// hook, and on_drop run after every worker has joined.
type Manager[T any] struct {
	Value T

	cancel context.CancelFunc
	group  *errgroup.Group
	onDrop func(*T)
}

// New builds a Manager around value, invoking initWorkers to obtain the
// set of background workers to spawn. Each worker runs in its own
// goroutine under a shared cancellable context; onDrop (optional) runs
// once every worker has returned from Close.
func New[T any](value T, initWorkers func(ctx context.Context, value *T) []Worker[T], onDrop func(*T)) *Manager[T] {
	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	m := &Manager[T]{Value: value, cancel: cancel, group: group, onDrop: onDrop}

	if initWorkers != nil {
		for _, w := range initWorkers(ctx, &m.Value) {
			w := w
			group.Go(func() error { return w(ctx, &m.Value) })
		}
	}

	return m
}

// Close signals every worker to stop (by cancelling their shared
// context), waits for them all to return, then runs the on-drop hook.
// Close is not safe to call concurrently with itself, matching the
// reference's single-owner drop semantics.
func (m *Manager[T]) Close() error {
	m.cancel()
	err := m.group.Wait()
	if m.onDrop != nil {
		m.onDrop(&m.Value)
	}
	return err
}
