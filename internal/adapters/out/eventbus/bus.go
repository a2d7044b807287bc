// Package eventbus delivers dispatch events inside the process and fans them out to
// external publishers.
package eventbus

import (
	"context"
	"sync"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/ports"

	"go.uber.org/zap"
)

// Handler receives events synchronously on the publisher's goroutine and must not block.
type Handler func(ctx context.Context, e event.Event)

// Bus is an in-process publish/subscribe hub with one dispatch table keyed by Kind.
type Bus struct {
	mu       sync.RWMutex
	handlers map[event.Kind]map[uint64]Handler
	nextID   uint64
	log      *zap.Logger
}

func NewBus(log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{
		handlers: make(map[event.Kind]map[uint64]Handler),
		log:      log,
	}
}

// Subscribe registers h for the given kinds and returns the function that removes it.
// Unsubscribing twice is harmless.
func (b *Bus) Subscribe(h Handler, kinds ...event.Kind) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	for _, kind := range kinds {
		if b.handlers[kind] == nil {
			b.handlers[kind] = make(map[uint64]Handler)
		}
		b.handlers[kind][id] = h
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for _, kind := range kinds {
				delete(b.handlers[kind], id)
			}
		})
	}
}

// Publish calls every handler subscribed to e's kind. A panicking handler is logged
// and does not stop the others.
func (b *Bus) Publish(ctx context.Context, e event.Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[e.Kind()]))
	for _, h := range b.handlers[e.Kind()] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(ctx, h, e)
	}
}

func (b *Bus) deliver(ctx context.Context, h Handler, e event.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panicked", zap.String("kind", string(e.Kind())), zap.Any("panic", r))
		}
	}()
	h(ctx, e)
}

// Subscribers reports how many handlers listen to kind.
func (b *Bus) Subscribers(kind event.Kind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[kind])
}

// Fanout publishes every event to each of its publishers in order.
type Fanout []ports.EventPublisher

func (f Fanout) Publish(ctx context.Context, e event.Event) {
	for _, p := range f {
		if p != nil {
			p.Publish(ctx, e)
		}
	}
}
