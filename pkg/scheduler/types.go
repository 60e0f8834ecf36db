package scheduler

import (
	"context"
)

type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Future is the pending result of one submitted work item.
type Future[T any] struct {
	c      chan Result[T]
	cancel context.CancelFunc
}

func newFuture[T any](c chan Result[T], cancel context.CancelFunc) *Future[T] {
	return &Future[T]{c: c, cancel: cancel}
}

// C receives exactly one result.
func (f *Future[T]) C() <-chan Result[T] {
	return f.c
}

// Stop cancels the context handed to the work function.
func (f *Future[T]) Stop() {
	f.cancel()
}

// Wait blocks until the result arrives or ctx is done. The work is stopped
// in the latter case.
func (f *Future[T]) Wait(ctx context.Context) Result[T] {
	select {
	case r := <-f.c:
		return r
	case <-ctx.Done():
		f.Stop()
		var zero T
		return Result[T]{Data: zero, Err: ctx.Err()}
	}
}
