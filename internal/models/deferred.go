package models

import "context"

// Deferred is a lazily started producer of exactly one value.
// Nothing runs until Await or Subscribe is called, and every call runs the
// producer again.
type Deferred[T any] struct {
	produce func(ctx context.Context) T
}

// Defer wraps fn into a Deferred.
func Defer[T any](fn func(ctx context.Context) T) *Deferred[T] {
	return &Deferred[T]{produce: fn}
}

// Resolved returns a Deferred that yields v without doing any work.
func Resolved[T any](v T) *Deferred[T] {
	return Defer(func(context.Context) T { return v })
}

// Await runs the producer and blocks until it yields its value.
func (d *Deferred[T]) Await(ctx context.Context) T {
	return d.produce(ctx)
}

// Subscribe runs the producer in its own goroutine.
// The returned channel receives exactly one value and is then closed.
func (d *Deferred[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)
	go func() {
		defer close(ch)
		ch <- d.produce(ctx)
	}()
	return ch
}
