package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/storeadmin/domain"
)

func newTestEngine(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoggingMiddleware(), TabMiddleware(), PrometheusMiddleware())
	r.GET("/probe", handler)
	return r
}

func TestTabMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		generate bool
	}{
		{name: "keeps the tab id sent by the browser", header: "tab-123"},
		{name: "generates a tab id when missing", generate: true},
		{name: "replaces an oversized tab id", header: string(bytes.Repeat([]byte("x"), 200)), generate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenInContext, seenInGin string
			r := newTestEngine(func(c *gin.Context) {
				seenInContext = domain.TabFromContext(c.Request.Context())
				seenInGin = GetTabID(c)
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tt.header != "" {
				req.Header.Set(TabIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			echoed := w.Header().Get(TabIDHeader)
			require.NotEmpty(t, echoed)
			assert.Equal(t, echoed, seenInContext)
			assert.Equal(t, echoed, seenInGin)
			if tt.generate {
				_, err := uuid.Parse(echoed)
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.header, echoed)
			}
		})
	}
}

func TestRequestNavigator(t *testing.T) {
	navigator := NewRequestNavigator()
	var target string
	r := newTestEngine(func(c *gin.Context) {
		navigator.Navigate(c.Request.Context(), "/home")
		navigator.Navigate(c.Request.Context(), "/pageView/customers/customer-list")
		target = NavigationTarget(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, "/pageView/customers/customer-list", target)
}

func TestRequestNavigator_OutsideRequest(t *testing.T) {
	ctx := log.Logger.WithContext(t.Context())
	NewRequestNavigator().Navigate(ctx, "/home")
	assert.Empty(t, NavigationTarget(ctx))
}

func TestLoggingMiddleware_TraceID(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{
			name:     "traceparent wins",
			headers:  map[string]string{TraceParentHeader: "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", TraceIDHeader: "other"},
			expected: "4bf92f3577b34da6a3ce929d0e0e4736",
		},
		{
			name:     "falls back to X-Trace-ID",
			headers:  map[string]string{TraceIDHeader: "abc123"},
			expected: "abc123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestEngine(func(c *gin.Context) { c.Status(http.StatusOK) })
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Header().Get(TraceIDHeader))
		})
	}
}

func TestLoggingMiddleware_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = previous }()

	r := newTestEngine(func(c *gin.Context) {
		GetLoggerFromGinContext(c).Info().Msg("inside handler")
		c.Status(http.StatusBadRequest)
	})
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(TabIDHeader, "tab-9")
	req.Header.Set(TraceIDHeader, "trace-9")
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, `"message":"inside handler"`)
	assert.Contains(t, out, `"tab_id":"tab-9"`)
	assert.Contains(t, out, `"trace_id":"trace-9"`)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"status":400`)
}
