package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/http/middleware"
)

// DefaultRedirectParam is the query parameter carrying the post-auth redirect target
const DefaultRedirectParam = "redirectUrl"

// AuthHandlers exposes the auth session controller of the requesting tab
type AuthHandlers struct {
	authSvc       domain.AuthService
	redirectParam string
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, redirectParam string) *AuthHandlers {
	if redirectParam == "" {
		redirectParam = DefaultRedirectParam
	}
	return &AuthHandlers{
		authSvc:       authSvc,
		redirectParam: redirectParam,
	}
}

// OAuthRequest carries the tokens obtained by an external OAuth flow
type OAuthRequest struct {
	AccessToken  string       `json:"access_token" binding:"required"`
	RefreshToken string       `json:"refresh_token" binding:"required"`
	User         *domain.User `json:"user,omitempty"`
}

// Hydrate restores the tab's session from persisted tokens, once per tab
func (h *AuthHandlers) Hydrate(c *gin.Context) {
	tabID := middleware.GetTabID(c)

	authenticated, err := h.authSvc.Hydrate(c.Request.Context(), tabID, c.Query(h.redirectParam))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"authenticated": authenticated,
		"user":          h.authSvc.CurrentUser(tabID),
	})
}

// SignIn always answers 200 with {status, message}; failures are not HTTP errors
func (h *AuthHandlers) SignIn(c *gin.Context) {
	var req domain.SignInCredential
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.authSvc.SignIn(c.Request.Context(), middleware.GetTabID(c), req, c.Query(h.redirectParam))
	respond(c, http.StatusOK, result)
}

// SignUp creates the remote user and signs the tab in
func (h *AuthHandlers) SignUp(c *gin.Context) {
	var req domain.SignUpCredential
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.authSvc.SignUp(c.Request.Context(), middleware.GetTabID(c), req, c.Query(h.redirectParam))
	respond(c, http.StatusOK, result)
}

// SignOut clears the tab's session
func (h *AuthHandlers) SignOut(c *gin.Context) {
	h.authSvc.SignOut(c.Request.Context(), middleware.GetTabID(c))
	respond(c, http.StatusOK, gin.H{"authenticated": false})
}

// Refresh exchanges the persisted refresh token for a new pair
func (h *AuthHandlers) Refresh(c *gin.Context) {
	if err := h.authSvc.RefreshSession(c.Request.Context(), middleware.GetTabID(c)); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"authenticated": true})
}

// OAuth establishes the session from tokens handed over by an external OAuth flow
func (h *AuthHandlers) OAuth(c *gin.Context) {
	var req OAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var signInErr error
	tokens := domain.Tokens{AccessToken: req.AccessToken, RefreshToken: req.RefreshToken}
	h.authSvc.OAuthSignIn(c.Request.Context(), middleware.GetTabID(c), c.Query(h.redirectParam), func(handles domain.OAuthHandles) {
		if signInErr = handles.OnSignIn(tokens, req.User); signInErr != nil {
			return
		}
		handles.Redirect()
	})
	if signInErr != nil {
		respondError(c, signInErr)
		return
	}

	respond(c, http.StatusOK, domain.AuthResult{Status: domain.AuthSuccess})
}

// Session reports whether the tab is signed in, with the principal and token claims
func (h *AuthHandlers) Session(c *gin.Context) {
	tabID := middleware.GetTabID(c)
	if !h.authSvc.Authenticated(tabID) {
		respond(c, http.StatusOK, gin.H{"authenticated": false})
		return
	}

	body := gin.H{
		"authenticated": true,
		"user":          h.authSvc.CurrentUser(tabID),
	}
	if claims, err := h.authSvc.Claims(tabID); err == nil {
		body["claims"] = claims
	} else {
		middleware.GetLoggerFromGinContext(c).Debug().Err(err).Msg("Access token claims unavailable")
	}
	respond(c, http.StatusOK, body)
}
