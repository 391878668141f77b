package middleware

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/you/storeadmin/domain"
)

// TabIDHeader carries the browser tab identity in both directions
const TabIDHeader = "X-Tab-ID"

const (
	tabIDKey     = "tab_id"
	maxTabIDSize = 128
)

// TabMiddleware resolves the browser tab of the request. A missing or oversized
// X-Tab-ID is replaced by a new uuid, which is echoed back so the tab can keep it.
// The tab id and a navigation recorder are bound to the request context.
func TabMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tabID := c.GetHeader(TabIDHeader)
		if tabID == "" || len(tabID) > maxTabIDSize {
			tabID = uuid.NewString()
		}

		c.Set(tabIDKey, tabID)
		c.Header(TabIDHeader, tabID)

		ctx := domain.ContextWithTab(c.Request.Context(), tabID)
		ctx = WithNavigation(ctx)
		logger := zerolog.Ctx(ctx).With().Str("tab_id", tabID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(ctx))

		c.Next()
	}
}

// GetTabID returns the tab resolved by TabMiddleware, or ""
func GetTabID(c *gin.Context) string {
	return c.GetString(tabIDKey)
}

type navigationKey struct{}

type navigation struct {
	mu     sync.Mutex
	target string
}

// WithNavigation attaches an empty navigation recorder to ctx
func WithNavigation(ctx context.Context) context.Context {
	return context.WithValue(ctx, navigationKey{}, &navigation{})
}

// NavigationTarget returns the last route recorded for the request, or ""
func NavigationTarget(ctx context.Context) string {
	nav, ok := ctx.Value(navigationKey{}).(*navigation)
	if !ok {
		return ""
	}
	nav.mu.Lock()
	defer nav.mu.Unlock()
	return nav.target
}

// RequestNavigator implements domain.Navigator by recording the route on the
// request; handlers hand it to the browser as "redirect"
type RequestNavigator struct{}

// NewRequestNavigator creates a navigator bound to request contexts
func NewRequestNavigator() *RequestNavigator {
	return &RequestNavigator{}
}

// Navigate implements domain.Navigator
func (RequestNavigator) Navigate(ctx context.Context, path string) {
	nav, ok := ctx.Value(navigationKey{}).(*navigation)
	if !ok {
		zerolog.Ctx(ctx).Debug().Str("target", path).Msg("Navigation outside a request ignored")
		return
	}
	nav.mu.Lock()
	nav.target = path
	nav.mu.Unlock()
}

var _ domain.Navigator = RequestNavigator{}
