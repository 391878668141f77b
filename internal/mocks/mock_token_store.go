package mocks

import (
	"context"
	"sync"

	"github.com/you/storeadmin/domain"
)

// MockTokenStore implements domain.TokenStore interface for testing.
// Without Func overrides it behaves like an in-memory store.
type MockTokenStore struct {
	LoadFunc  func(ctx context.Context, tabID string) (domain.Tokens, error)
	SaveFunc  func(ctx context.Context, tabID string, tokens domain.Tokens) error
	ClearFunc func(ctx context.Context, tabID string) error

	mu     sync.Mutex
	tokens map[string]domain.Tokens
}

// NewMockTokenStore creates a new MockTokenStore with default behaviors
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{tokens: make(map[string]domain.Tokens)}
}

// Load returns the persisted tokens of a tab
func (m *MockTokenStore) Load(ctx context.Context, tabID string) (domain.Tokens, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, tabID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[tabID], nil
}

// Save persists the tokens of a tab
func (m *MockTokenStore) Save(ctx context.Context, tabID string, tokens domain.Tokens) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tabID, tokens)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		m.tokens = make(map[string]domain.Tokens)
	}
	m.tokens[tabID] = tokens
	return nil
}

// Clear removes the tokens of a tab
func (m *MockTokenStore) Clear(ctx context.Context, tabID string) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, tabID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, tabID)
	return nil
}

// Compile-time interface compliance verification
var _ domain.TokenStore = (*MockTokenStore)(nil)
