package repositories

import (
	"context"
	"sync"

	"github.com/you/storeadmin/domain"
)

// MemoryTokenRepository keeps tab tokens in process memory
type MemoryTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]domain.Tokens
}

// NewMemoryTokenRepository creates an empty in-memory token store
func NewMemoryTokenRepository() *MemoryTokenRepository {
	return &MemoryTokenRepository{tokens: make(map[string]domain.Tokens)}
}

func (r *MemoryTokenRepository) Load(_ context.Context, tabID string) (domain.Tokens, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tokens[tabID], nil
}

func (r *MemoryTokenRepository) Save(_ context.Context, tabID string, tokens domain.Tokens) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[tabID] = tokens
	return nil
}

func (r *MemoryTokenRepository) Clear(_ context.Context, tabID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, tabID)
	return nil
}

var _ domain.TokenStore = (*MemoryTokenRepository)(nil)
