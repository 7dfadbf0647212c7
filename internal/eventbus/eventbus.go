package eventbus

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
)

// Handler processes events of type T.
type Handler[T any] func(context.Context, T)

type entry struct {
	id int
	fn func(context.Context, any)
}

// Bus is an in-process dispatcher keyed by event type. Publishing with no
// subscribers is free apart from one map lookup.
type Bus struct {
	mu      sync.RWMutex
	nextID  int
	entries map[reflect.Type][]entry
}

// New creates an empty Bus.
func New() *Bus { return &Bus{entries: make(map[reflect.Type][]entry)} }

func (b *Bus) subscribe(t reflect.Type, fn func(context.Context, any)) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.entries[t] = append(b.entries[t], entry{id: id, fn: fn})
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		es := b.entries[t]
		for i, e := range es {
			if e.id == id {
				es = append(es[:i], es[i+1:]...)
				break
			}
		}
		if len(es) == 0 {
			delete(b.entries, t)
		} else {
			b.entries[t] = es
		}
	}
}

func (b *Bus) publish(ctx context.Context, e any) {
	if b == nil {
		return
	}
	t := reflect.TypeOf(e)
	b.mu.RLock()
	es := b.entries[t]
	if len(es) == 0 {
		b.mu.RUnlock()
		return
	}
	copied := append([]entry(nil), es...)
	b.mu.RUnlock()
	for _, en := range copied {
		en.fn(ctx, e)
	}
}

var global atomic.Pointer[Bus]

// Use sets the global bus. Passing nil disables event publishing.
func Use(b *Bus) { global.Store(b) }

// Subscribe registers h with the global bus. The returned function removes
// the subscription; calling it twice is harmless.
func Subscribe[T any](h Handler[T]) (unsubscribe func()) {
	b := global.Load()
	if b == nil {
		return func() {}
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	return b.subscribe(t, func(ctx context.Context, v any) { h(ctx, v.(T)) })
}

// Publish sends e through the global bus.
func Publish[T any](ctx context.Context, e T) {
	global.Load().publish(ctx, e)
}
