package scheduler

import (
	"context"
)

// Work is a cancellable unit of background work.
type Work[T any] func(ctx context.Context) (T, error)

// Result carries the outcome of one Work execution.
type Result[T any] struct {
	Data T
	Err  error
}

// Future is a pending result from submitted work.
type Future[T any] struct {
	input  chan T
	cancel context.CancelFunc
}

func NewFuture[T any](input chan T, cancel context.CancelFunc) *Future[T] {
	return &Future[T]{
		input:  input,
		cancel: cancel,
	}
}

// C receives exactly one result when the work completes.
func (f *Future[T]) C() chan T {
	return f.input
}

// Stop cancels the work's context.
func (f *Future[T]) Stop() {
	f.cancel()
}
