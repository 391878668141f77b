package mocks

import (
	"context"
	"sync"

	"github.com/you/storeadmin/domain"
)

// MockNavigator implements domain.Navigator and records every target
type MockNavigator struct {
	NavigateFunc func(ctx context.Context, path string)

	mu    sync.Mutex
	paths []string
}

// NewMockNavigator creates a new MockNavigator
func NewMockNavigator() *MockNavigator {
	return &MockNavigator{}
}

// Navigate records path
func (m *MockNavigator) Navigate(ctx context.Context, path string) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	m.mu.Unlock()
	if m.NavigateFunc != nil {
		m.NavigateFunc(ctx, path)
	}
}

// Paths returns every recorded target in order
func (m *MockNavigator) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

// Last returns the most recent target, or ""
func (m *MockNavigator) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.paths) == 0 {
		return ""
	}
	return m.paths[len(m.paths)-1]
}

// Compile-time interface compliance verification
var _ domain.Navigator = (*MockNavigator)(nil)
