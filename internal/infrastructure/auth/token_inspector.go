package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/you/storeadmin/domain"
)

// TokenInspectorImpl implements domain.TokenInspector.
// The remote API owns the signing key, so tokens are decoded without verification
// and the claims are informational only.
type TokenInspectorImpl struct {
	parser *jwt.Parser
}

// NewTokenInspector creates a new token inspector
func NewTokenInspector() domain.TokenInspector {
	return &TokenInspectorImpl{parser: jwt.NewParser()}
}

// Inspect implements domain.TokenInspector
func (i *TokenInspectorImpl) Inspect(tokenString string) (*domain.TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, domain.ErrTokenMalformed
	}

	tokenClaims := &domain.TokenClaims{}

	switch sub := claims["sub"].(type) {
	case string:
		tokenClaims.Subject = sub
	case float64:
		tokenClaims.Subject = formatSubject(sub)
	}

	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		tokenClaims.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		tokenClaims.ExpiresAt = exp.Time
	}

	return tokenClaims, nil
}

// Expired reports whether the claims carry an expiry in the past
func Expired(claims *domain.TokenClaims, now time.Time) bool {
	return claims != nil && !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(now)
}

// numeric subjects are user ids on the remote API
func formatSubject(sub float64) string {
	return strconv.FormatInt(int64(sub), 10)
}
