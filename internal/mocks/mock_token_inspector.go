package mocks

import (
	"time"

	"github.com/you/storeadmin/domain"
)

// MockTokenInspector implements domain.TokenInspector interface for testing
type MockTokenInspector struct {
	InspectFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenInspector creates a new MockTokenInspector with default behaviors
func NewMockTokenInspector() *MockTokenInspector {
	return &MockTokenInspector{}
}

// Inspect decodes a token
func (m *MockTokenInspector) Inspect(token string) (*domain.TokenClaims, error) {
	if m.InspectFunc != nil {
		return m.InspectFunc(token)
	}
	// Default behavior: subject 1, valid for an hour
	now := time.Now()
	return &domain.TokenClaims{Subject: "1", IssuedAt: now, ExpiresAt: now.Add(time.Hour)}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenInspector = (*MockTokenInspector)(nil)
