package events

import (
	"context"
	"sync"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/observability"
)

type subscription struct {
	id      uint64
	handler domain.EventHandler
}

// MemoryBus delivers events synchronously to in-process subscribers
type MemoryBus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[domain.EventType][]subscription
	closed bool
}

// NewMemoryBus creates an in-process event bus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[domain.EventType][]subscription)}
}

func (b *MemoryBus) Publish(ctx context.Context, event domain.Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	handlers := make([]domain.EventHandler, 0, len(b.subs[event.Type]))
	for _, sub := range b.subs[event.Type] {
		handlers = append(handlers, sub.handler)
	}
	b.mu.RUnlock()

	observability.EventsPublishedTotal.WithLabelValues(string(event.Type)).Inc()
	for _, handler := range handlers {
		handler(ctx, event)
	}
	return nil
}

func (b *MemoryBus) Subscribe(_ context.Context, eventType domain.EventType, handler domain.EventHandler) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBusClosed
	}

	b.nextID++
	id := b.nextID
	b.subs[eventType] = append(b.subs[eventType], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(eventType, id) })
	}, nil
}

func (b *MemoryBus) remove(eventType domain.EventType, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[eventType]
	for i, sub := range subs {
		if sub.id == id {
			b.subs[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = make(map[domain.EventType][]subscription)
	return nil
}

var _ domain.EventBus = (*MemoryBus)(nil)
