package mocks

import (
	"context"

	"github.com/you/storeadmin/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	HydrateFunc        func(ctx context.Context, tabID, redirectURL string) (bool, error)
	SignInFunc         func(ctx context.Context, tabID string, cred domain.SignInCredential, redirectURL string) domain.AuthResult
	SignUpFunc         func(ctx context.Context, tabID string, cred domain.SignUpCredential, redirectURL string) domain.AuthResult
	SignOutFunc        func(ctx context.Context, tabID string)
	OAuthSignInFunc    func(ctx context.Context, tabID, redirectURL string, callback func(domain.OAuthHandles))
	RefreshSessionFunc func(ctx context.Context, tabID string) error
	RedirectFunc       func(ctx context.Context, redirectURL string)
	AuthenticatedFunc  func(tabID string) bool
	CurrentUserFunc    func(tabID string) *domain.User
	ClaimsFunc         func(tabID string) (*domain.TokenClaims, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Hydrate calls the mock function or returns default
func (m *MockAuthService) Hydrate(ctx context.Context, tabID, redirectURL string) (bool, error) {
	if m.HydrateFunc != nil {
		return m.HydrateFunc(ctx, tabID, redirectURL)
	}
	return false, nil
}

// SignIn calls the mock function or returns default
func (m *MockAuthService) SignIn(ctx context.Context, tabID string, cred domain.SignInCredential, redirectURL string) domain.AuthResult {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, tabID, cred, redirectURL)
	}
	return domain.AuthResult{Status: domain.AuthSuccess}
}

// SignUp calls the mock function or returns default
func (m *MockAuthService) SignUp(ctx context.Context, tabID string, cred domain.SignUpCredential, redirectURL string) domain.AuthResult {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, tabID, cred, redirectURL)
	}
	return domain.AuthResult{Status: domain.AuthSuccess}
}

// SignOut calls the mock function
func (m *MockAuthService) SignOut(ctx context.Context, tabID string) {
	if m.SignOutFunc != nil {
		m.SignOutFunc(ctx, tabID)
	}
}

// OAuthSignIn calls the mock function
func (m *MockAuthService) OAuthSignIn(ctx context.Context, tabID, redirectURL string, callback func(domain.OAuthHandles)) {
	if m.OAuthSignInFunc != nil {
		m.OAuthSignInFunc(ctx, tabID, redirectURL, callback)
	}
}

// RefreshSession calls the mock function or returns default
func (m *MockAuthService) RefreshSession(ctx context.Context, tabID string) error {
	if m.RefreshSessionFunc != nil {
		return m.RefreshSessionFunc(ctx, tabID)
	}
	return nil
}

// Redirect calls the mock function
func (m *MockAuthService) Redirect(ctx context.Context, redirectURL string) {
	if m.RedirectFunc != nil {
		m.RedirectFunc(ctx, redirectURL)
	}
}

// Authenticated calls the mock function or returns default
func (m *MockAuthService) Authenticated(tabID string) bool {
	if m.AuthenticatedFunc != nil {
		return m.AuthenticatedFunc(tabID)
	}
	return false
}

// CurrentUser calls the mock function or returns default
func (m *MockAuthService) CurrentUser(tabID string) *domain.User {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(tabID)
	}
	return nil
}

// Claims calls the mock function or returns default
func (m *MockAuthService) Claims(tabID string) (*domain.TokenClaims, error) {
	if m.ClaimsFunc != nil {
		return m.ClaimsFunc(tabID)
	}
	return nil, domain.ErrNotAuthenticated
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
