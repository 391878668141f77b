package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/you/storeadmin/domain"
)

// Remote auth endpoints
const (
	loginPath        = "/auth/login"
	logoutPath       = "/auth/logout"
	profilePath      = "/auth/profile"
	refreshTokenPath = "/auth/refresh-token"
	usersPath        = "/users"
)

// Fallback messages when the remote API answers without tokens
const (
	signInFallbackMessage = "Unable to sign in"
	signUpFallbackMessage = "Unable to sign up"
)

// AuthConfig holds the navigation targets of the auth controller
type AuthConfig struct {
	AuthenticatedEntryPath   string
	UnauthenticatedEntryPath string
}

// loginResponse is the remote sign-in body; user is only sent by some deployments
type loginResponse struct {
	domain.Tokens
	User *domain.User `json:"user,omitempty"`
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	api       domain.APIClient
	tokens    domain.TokenStore
	navigator domain.Navigator
	inspector domain.TokenInspector
	sessions  *SessionRegistry
	cfg       AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(
	api domain.APIClient,
	tokens domain.TokenStore,
	navigator domain.Navigator,
	inspector domain.TokenInspector,
	sessions *SessionRegistry,
	cfg AuthConfig,
) *AuthServiceImpl {
	if cfg.AuthenticatedEntryPath == "" {
		cfg.AuthenticatedEntryPath = "/home"
	}
	if cfg.UnauthenticatedEntryPath == "" {
		cfg.UnauthenticatedEntryPath = "/"
	}
	return &AuthServiceImpl{
		api:       api,
		tokens:    tokens,
		navigator: navigator,
		inspector: inspector,
		sessions:  sessions,
		cfg:       cfg,
	}
}

// Hydrate implements domain.AuthService.
// Runs once per tab; restores the session from persisted tokens without checking expiry.
func (s *AuthServiceImpl) Hydrate(ctx context.Context, tabID, redirectURL string) (bool, error) {
	tab := s.sessions.Get(tabID)
	if !tab.MarkHydrated() {
		return s.Authenticated(tabID), nil
	}

	tokens, err := s.tokens.Load(ctx, tabID)
	if err != nil {
		// a failed read leaves the tab hydratable on the next call
		tab.UnmarkHydrated()
		return false, fmt.Errorf("failed to load persisted tokens: %w", err)
	}
	if !tokens.Complete() {
		return false, nil
	}

	tab.Init(tokens, nil)
	zerolog.Ctx(ctx).Debug().Str("tab_id", tabID).Msg("Session restored from persisted tokens")
	s.Redirect(ctx, redirectURL)
	return true, nil
}

// SignIn implements domain.AuthService
func (s *AuthServiceImpl) SignIn(ctx context.Context, tabID string, cred domain.SignInCredential, redirectURL string) domain.AuthResult {
	ctx = domain.ContextWithTab(ctx, tabID)

	resp, err := s.login(ctx, cred)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("tab_id", tabID).Msg("Sign in failed")
		return failed(err)
	}
	if resp.AccessToken == "" {
		return domain.AuthResult{Status: domain.AuthFailed, Message: signInFallbackMessage}
	}

	if err := s.establish(ctx, tabID, resp.Tokens, resp.User); err != nil {
		return failed(err)
	}
	s.Redirect(ctx, redirectURL)
	return domain.AuthResult{Status: domain.AuthSuccess}
}

// SignUp implements domain.AuthService.
// Creates the remote user and signs in with the same credentials.
func (s *AuthServiceImpl) SignUp(ctx context.Context, tabID string, cred domain.SignUpCredential, redirectURL string) domain.AuthResult {
	ctx = domain.ContextWithTab(ctx, tabID)
	logger := zerolog.Ctx(ctx)

	payload := domain.CustomerPayload{
		Name:     cred.Name,
		Email:    cred.Email,
		Password: cred.Password,
		Avatar:   cred.Avatar,
	}
	var created domain.User
	if err := s.api.Do(ctx, http.MethodPost, usersPath, nil, payload, &created); err != nil {
		logger.Warn().Err(err).Str("tab_id", tabID).Msg("Sign up failed")
		return failed(err)
	}

	resp, err := s.login(ctx, domain.SignInCredential{Email: cred.Email, Password: cred.Password})
	if err != nil {
		logger.Warn().Err(err).Str("tab_id", tabID).Msg("Sign in after sign up failed")
		return failed(err)
	}
	if resp.AccessToken == "" {
		return domain.AuthResult{Status: domain.AuthFailed, Message: signUpFallbackMessage}
	}

	user := resp.User
	if user == nil && created.ID != 0 {
		user = &created
	}
	if err := s.establish(ctx, tabID, resp.Tokens, user); err != nil {
		return failed(err)
	}
	s.Redirect(ctx, redirectURL)
	return domain.AuthResult{Status: domain.AuthSuccess}
}

// SignOut implements domain.AuthService.
// The local session is always cleared, whatever the remote API answers.
func (s *AuthServiceImpl) SignOut(ctx context.Context, tabID string) {
	ctx = domain.ContextWithTab(ctx, tabID)
	logger := zerolog.Ctx(ctx)

	if err := s.api.Do(ctx, http.MethodPost, logoutPath, nil, nil, nil); err != nil {
		logger.Warn().Err(err).Str("tab_id", tabID).Msg("Remote sign out failed, clearing local session anyway")
	}

	if err := s.tokens.Clear(ctx, tabID); err != nil {
		logger.Error().Err(err).Str("tab_id", tabID).Msg("Failed to clear persisted tokens")
	}
	s.sessions.Get(tabID).Reset()
	s.navigator.Navigate(ctx, s.cfg.UnauthenticatedEntryPath)
}

// OAuthSignIn implements domain.AuthService
func (s *AuthServiceImpl) OAuthSignIn(ctx context.Context, tabID, redirectURL string, callback func(domain.OAuthHandles)) {
	ctx = domain.ContextWithTab(ctx, tabID)
	callback(domain.OAuthHandles{
		OnSignIn: func(tokens domain.Tokens, user *domain.User) error {
			return s.establish(ctx, tabID, tokens, user)
		},
		Redirect: func() {
			s.Redirect(ctx, redirectURL)
		},
	})
}

// RefreshSession implements domain.AuthService
func (s *AuthServiceImpl) RefreshSession(ctx context.Context, tabID string) error {
	ctx = domain.ContextWithTab(ctx, tabID)

	current, err := s.tokens.Load(ctx, tabID)
	if err != nil {
		return fmt.Errorf("failed to load persisted tokens: %w", err)
	}
	if current.RefreshToken == "" {
		return domain.ErrTokensMissing
	}

	var refreshed domain.Tokens
	body := map[string]string{"refreshToken": current.RefreshToken}
	if err := s.api.Do(ctx, http.MethodPost, refreshTokenPath, nil, body, &refreshed); err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}
	if refreshed.AccessToken == "" {
		return domain.ErrEmptyAuthResult
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = current.RefreshToken
	}

	return s.establish(ctx, tabID, refreshed, nil)
}

// Redirect implements domain.AuthService
func (s *AuthServiceImpl) Redirect(ctx context.Context, redirectURL string) {
	target := redirectURL
	if target == "" {
		target = s.cfg.AuthenticatedEntryPath
	}
	zerolog.Ctx(ctx).Debug().Str("target", target).Msg("Redirecting")
	s.navigator.Navigate(ctx, target)
}

// Authenticated implements domain.AuthService
func (s *AuthServiceImpl) Authenticated(tabID string) bool {
	tab, ok := s.sessions.Peek(tabID)
	return ok && tab.Session().Authenticated()
}

// CurrentUser implements domain.AuthService
func (s *AuthServiceImpl) CurrentUser(tabID string) *domain.User {
	tab, ok := s.sessions.Peek(tabID)
	if !ok {
		return nil
	}
	return tab.User()
}

// Claims decodes the tab's current access token, or returns ErrNotAuthenticated
func (s *AuthServiceImpl) Claims(tabID string) (*domain.TokenClaims, error) {
	tab, ok := s.sessions.Peek(tabID)
	if !ok || !tab.Session().Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	return s.inspector.Inspect(tab.Session().Token)
}

func (s *AuthServiceImpl) login(ctx context.Context, cred domain.SignInCredential) (*loginResponse, error) {
	var resp loginResponse
	if err := s.api.Do(ctx, http.MethodPost, loginPath, nil, cred, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// establish persists tokens, marks the tab signed in and loads the principal if missing
func (s *AuthServiceImpl) establish(ctx context.Context, tabID string, tokens domain.Tokens, user *domain.User) error {
	logger := zerolog.Ctx(ctx)

	if err := s.tokens.Save(ctx, tabID, tokens); err != nil {
		return fmt.Errorf("failed to persist tokens: %w", err)
	}

	tab := s.sessions.Get(tabID)
	tab.Init(tokens, user)

	if claims, err := s.inspector.Inspect(tokens.AccessToken); err == nil && claims != nil {
		logger.Info().
			Str("tab_id", tabID).
			Str("subject", claims.Subject).
			Time("expires_at", claims.ExpiresAt).
			Msg("Session established")
	}

	if user == nil {
		var profile domain.User
		if err := s.api.Do(ctx, http.MethodGet, profilePath, nil, nil, &profile); err != nil {
			logger.Warn().Err(err).Str("tab_id", tabID).Msg("Could not load profile")
			return nil
		}
		tab.SetUser(&profile)
	}
	return nil
}

func failed(err error) domain.AuthResult {
	return domain.AuthResult{Status: domain.AuthFailed, Message: domain.Message(err)}
}

var _ domain.AuthService = (*AuthServiceImpl)(nil)
