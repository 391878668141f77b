package mocks

import (
	"context"
	"sync"

	"github.com/you/storeadmin/domain"
)

// MockEventBus implements domain.EventBus interface for testing.
// Without Func overrides it records published events and delivers them synchronously.
type MockEventBus struct {
	PublishFunc   func(ctx context.Context, event domain.Event) error
	SubscribeFunc func(ctx context.Context, eventType domain.EventType, handler domain.EventHandler) (func(), error)
	CloseFunc     func() error

	mu        sync.Mutex
	published []domain.Event
	handlers  map[domain.EventType][]domain.EventHandler
}

// NewMockEventBus creates a new MockEventBus with default behaviors
func NewMockEventBus() *MockEventBus {
	return &MockEventBus{handlers: make(map[domain.EventType][]domain.EventHandler)}
}

// Publish records the event and delivers it to subscribers
func (m *MockEventBus) Publish(ctx context.Context, event domain.Event) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event)
	}
	m.mu.Lock()
	m.published = append(m.published, event)
	handlers := append([]domain.EventHandler(nil), m.handlers[event.Type]...)
	m.mu.Unlock()

	for _, handler := range handlers {
		handler(ctx, event)
	}
	return nil
}

// Subscribe registers handler for eventType
func (m *MockEventBus) Subscribe(ctx context.Context, eventType domain.EventType, handler domain.EventHandler) (func(), error) {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(ctx, eventType, handler)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handlers == nil {
		m.handlers = make(map[domain.EventType][]domain.EventHandler)
	}
	m.handlers[eventType] = append(m.handlers[eventType], handler)
	return func() {}, nil
}

// Close closes the bus
func (m *MockEventBus) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Published returns every recorded event
func (m *MockEventBus) Published() []domain.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Event(nil), m.published...)
}

// Compile-time interface compliance verification
var _ domain.EventBus = (*MockEventBus)(nil)
