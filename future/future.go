// Package future provides a small Future/Promise pair so that synchronous and
// asynchronous work can be awaited the same way.
//
// A handler that computes its value inline returns Resolved (or Failed); a
// handler that performs I/O returns Go. Callers always Get.
package future

import (
	"context"
	"sync"

	"github.com/casualjim/docbot/pkg/stdx"
)

// Future is the read side of an asynchronous result.
type Future[T any] interface {
	// Get blocks until the result is available or ctx is done.
	Get(ctx context.Context) (T, error)
}

// Promise is the write side of an asynchronous result.
// Only the first call to Complete or Error has an effect.
type Promise[T any] interface {
	Complete(T)
	Error(error)
}

// CompletableFuture combines both sides.
type CompletableFuture[T any] interface {
	Future[T]
	Promise[T]
}

type future[T any] struct {
	done   chan struct{}
	once   sync.Once
	result T
	err    error
}

// New returns an unresolved future.
func New[T any]() CompletableFuture[T] {
	return &future[T]{done: make(chan struct{})}
}

// Resolved returns a future that already holds value.
func Resolved[T any](value T) Future[T] {
	f := New[T]()
	f.Complete(value)
	return f
}

// Failed returns a future that already holds err.
func Failed[T any](err error) Future[T] {
	f := New[T]()
	f.Error(err)
	return f
}

// Go runs fn on a new goroutine and returns a future for its result.
// The context is handed to fn; cancelling it is how the work gets aborted.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) Future[T] {
	f := New[T]()
	go func() {
		v, err := fn(ctx)
		if err != nil {
			f.Error(err)
			return
		}
		f.Complete(v)
	}()
	return f
}

func (f *future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	default:
	}

	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return stdx.Zero[T](), ctx.Err()
	}
}

func (f *future[T]) Complete(value T) {
	f.once.Do(func() {
		f.result = value
		close(f.done)
	})
}

func (f *future[T]) Error(err error) {
	f.once.Do(func() {
		f.result = stdx.Zero[T]()
		f.err = err
		close(f.done)
	})
}
