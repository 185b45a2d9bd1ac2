package service

import (
	"sync"

	scigoErrors "github.com/ezoic/combustion/pkg/errors"
)

// Future is the eventual result of an orchestrator task. It resolves exactly
// once. Abandoning a Future does not stop the task.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// runAsync runs fn on a new goroutine and resolves the future with its
// outcome. A panic in fn resolves the future with an error.
func runAsync[T any](op string, fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		var v T
		var err error
		func() {
			defer scigoErrors.Recover(&err, op)
			v, err = fn()
		}()
		f.resolve(v, err)
	}()
	return f
}

func (f *Future[T]) resolve(v T, err error) {
	f.once.Do(func() {
		f.value, f.err = v, err
		close(f.done)
	})
}

// Done is closed when the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the task finishes and returns its outcome.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.value, f.err
}
