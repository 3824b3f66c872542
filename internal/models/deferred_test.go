// Tests for deferred.go and optional.go.
package models

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestDeferred_IsLazy(t *testing.T) {
	var calls atomic.Int32
	d := Defer(func(context.Context) int {
		calls.Add(1)
		return 5
	})

	if calls.Load() != 0 {
		t.Fatal("Producer must not run before Await or Subscribe")
	}
	if got := d.Await(context.Background()); got != 5 {
		t.Errorf("Await = %d, want 5", got)
	}
	if calls.Load() != 1 {
		t.Errorf("Expected 1 call, got %d", calls.Load())
	}
}

func TestDeferred_RunsAgainOnEveryAwait(t *testing.T) {
	var calls atomic.Int32
	d := Defer(func(context.Context) int32 {
		return calls.Add(1)
	})

	ctx := context.Background()
	first := d.Await(ctx)
	second := d.Await(ctx)
	if first != 1 || second != 2 {
		t.Errorf("Expected producer to run twice, got %d then %d", first, second)
	}
}

func TestDeferred_Subscribe(t *testing.T) {
	d := Defer(func(context.Context) string { return "done" })

	ch := d.Subscribe(context.Background())
	select {
	case v, ok := <-ch:
		if !ok || v != "done" {
			t.Fatalf("Expected value 'done', got %q (ok=%v)", v, ok)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for value")
	}

	if _, ok := <-ch; ok {
		t.Error("Expected channel to be closed after the value")
	}
}

func TestDeferred_PassesContext(t *testing.T) {
	type key struct{}
	d := Defer(func(ctx context.Context) any { return ctx.Value(key{}) })

	ctx := context.WithValue(context.Background(), key{}, "v")
	if got := d.Await(ctx); got != "v" {
		t.Errorf("Expected context value to reach the producer, got %v", got)
	}
}

func TestResolved(t *testing.T) {
	d := Resolved([]int{})
	got := d.Await(context.Background())
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", got)
	}
}

func TestOptional(t *testing.T) {
	some := Some(Student{ID: 1})
	if v, ok := some.Get(); !ok || v.ID != 1 {
		t.Errorf("Some.Get() = %+v, %v", v, ok)
	}

	none := None[Student]()
	if _, ok := none.Get(); ok {
		t.Error("None should not be present")
	}
	if none.OrElse(Student{ID: 9}).ID != 9 {
		t.Error("OrElse should return the default for None")
	}
	if some.OrElse(Student{ID: 9}).ID != 1 {
		t.Error("OrElse should return the value for Some")
	}
}
