package services

import (
	"sync"
	"time"

	"github.com/you/storeadmin/domain"
)

// TabSession is the session state of one browser tab
type TabSession struct {
	mu       sync.RWMutex
	session  domain.Session
	user     *domain.User
	hydrated bool
}

// Init marks the tab signed in with the given access token
func (s *TabSession) Init(tokens domain.Tokens, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = domain.Session{SignedIn: true, Token: tokens.AccessToken}
	if user != nil {
		s.user = user
	}
}

// SetUser replaces the authenticated principal
func (s *TabSession) SetUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Reset signs the tab out
func (s *TabSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = domain.Session{}
	s.user = nil
}

// Session returns a copy of the session state
func (s *TabSession) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// User returns the authenticated principal or nil
func (s *TabSession) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// MarkHydrated reports whether this call is the first hydration of the tab
func (s *TabSession) MarkHydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return false
	}
	s.hydrated = true
	return true
}

// UnmarkHydrated lets the next Hydrate run again
func (s *TabSession) UnmarkHydrated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrated = false
}

// SessionRegistry holds the session of every tab
type SessionRegistry struct {
	*TabRegistry[TabSession]
}

// NewSessionRegistry creates an empty registry
func NewSessionRegistry(idleTTL time.Duration) *SessionRegistry {
	return &SessionRegistry{
		TabRegistry: NewTabRegistry(idleTTL, func() *TabSession { return &TabSession{} }),
	}
}
