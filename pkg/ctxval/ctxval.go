// Package ctxval keeps a mutable value bag inside a context so that values
// set deep in a call chain are visible to everything sharing the request
// context, such as the access log written after the handler returns.
package ctxval

import (
	"context"
	"sync"
)

type bagKey struct{}

type bag struct {
	mu     sync.RWMutex
	values map[any]any
}

// Wrap attaches an empty bag to ctx. Wrapping twice keeps the first bag.
func Wrap(ctx context.Context) context.Context {
	if _, ok := from(ctx); ok {
		return ctx
	}
	return context.WithValue(ctx, bagKey{}, &bag{values: map[any]any{}})
}

// Set is a no-op when ctx was never wrapped.
func Set[K comparable, V any](ctx context.Context, k K, v V) {
	b, ok := from(ctx)
	if !ok {
		return
	}
	b.mu.Lock()
	b.values[k] = v
	b.mu.Unlock()
}

func Get[K comparable, V any](ctx context.Context, k K) (V, bool) {
	b, ok := from(ctx)
	if !ok {
		return *new(V), false
	}
	b.mu.RLock()
	raw, found := b.values[k]
	b.mu.RUnlock()
	if !found {
		return *new(V), false
	}
	v, ok := raw.(V)
	return v, ok
}

func from(ctx context.Context) (*bag, bool) {
	b, ok := ctx.Value(bagKey{}).(*bag)
	return b, ok
}
