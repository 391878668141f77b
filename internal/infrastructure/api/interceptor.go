package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/you/storeadmin/domain"
)

// DefaultPublicEndpoints never carry the access token
var DefaultPublicEndpoints = []string{
	"/auth/login",
	"/sign-up",
	"/forgot-password",
	"/reset-password",
}

// Interceptor attaches the tab's persisted access token to protected requests
type Interceptor struct {
	tokens          domain.TokenStore
	header          string
	publicEndpoints []string
}

// NewInterceptor creates a request interceptor. An empty header defaults to Authorization.
func NewInterceptor(tokens domain.TokenStore, header string, publicEndpoints []string) *Interceptor {
	if header == "" {
		header = "Authorization"
	}
	if publicEndpoints == nil {
		publicEndpoints = DefaultPublicEndpoints
	}
	return &Interceptor{
		tokens:          tokens,
		header:          header,
		publicEndpoints: publicEndpoints,
	}
}

// IsPublic reports whether url matches the public allow-list
func (i *Interceptor) IsPublic(url string) bool {
	for _, endpoint := range i.publicEndpoints {
		if strings.Contains(url, endpoint) {
			return true
		}
	}
	return false
}

// Apply sets the auth header on req unless the endpoint is public.
// A protected request without a token is still sent; the remote API rejects it.
func (i *Interceptor) Apply(req *http.Request) {
	if i.IsPublic(req.URL.Path) {
		return
	}

	ctx := req.Context()
	logger := zerolog.Ctx(ctx)
	tabID := domain.TabFromContext(ctx)

	var accessToken string
	if tabID != "" {
		tokens, err := i.tokens.Load(ctx, tabID)
		if err != nil {
			logger.Warn().Err(err).Str("tab_id", tabID).Msg("Could not read persisted tokens")
		}
		accessToken = tokens.AccessToken
	}

	if accessToken == "" {
		logger.Warn().Str("url", req.URL.Path).Msg("No access token found for protected endpoint")
		return
	}

	req.Header.Set(i.header, accessToken)
	logger.Debug().Str("url", req.URL.Path).Str("tab_id", tabID).Msg("Adding token to request")
}
