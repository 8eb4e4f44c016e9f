package restcache

import (
	"context"
	"sync"
)

// Result is the handle of an operation started by one of the Async methods.
// It resolves exactly once, to a value or to an error. After Cancel the
// handle never yields a value: Wait returns context.Canceled unless the
// operation had already finished.
type Result[T any] struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	cancelled bool
	val       T
	err       error
}

func runAsync[T any](ctx context.Context, fn func(context.Context) (T, error)) *Result[T] {
	ctx, cancel := context.WithCancel(ctx)
	r := &Result[T]{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer cancel()
		v, err := fn(ctx)

		r.mu.Lock()
		if r.cancelled {
			var zero T
			v, err = zero, context.Canceled
		}
		r.val, r.err = v, err
		close(r.done)
		r.mu.Unlock()
	}()
	return r
}

// Done is closed once the result is available.
func (r *Result[T]) Done() <-chan struct{} { return r.done }

// Wait blocks until the operation finishes.
func (r *Result[T]) Wait() (T, error) {
	<-r.done
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.val, r.err
}

// Cancel abandons the operation. No further bridge calls are issued.
// Calling Cancel after completion has no effect.
func (r *Result[T]) Cancel() {
	r.mu.Lock()
	select {
	case <-r.done:
	default:
		r.cancelled = true
	}
	r.mu.Unlock()
	r.cancel()
}
