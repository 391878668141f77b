package httpx

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/http/handlers"
	"github.com/you/storeadmin/internal/http/middleware"
	"github.com/you/storeadmin/internal/mocks"
)

func buildTestRouter(shuttingDown *atomic.Bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return BuildRouter(RouterConfig{
		ServiceName:    "storeadmin-test",
		AllowedOrigins: []string{"http://localhost:5173"},
		ShuttingDown:   shuttingDown.Load,
	}, Handlers{
		Auth:       handlers.NewAuthHandlers(mocks.NewMockAuthService(), ""),
		Customers:  handlers.NewCustomerHandlers(mocks.NewMockListService[domain.Customer](), mocks.NewMockCustomerActions(), mocks.NewMockCustomerForm()),
		Products:   handlers.NewProductHandlers(mocks.NewMockListService[domain.Product](), mocks.NewMockProductActions(), mocks.NewMockProductForm()),
		Categories: handlers.NewCategoryHandlers(mocks.NewMockCategoryService(), 10),
	})
}

func TestRouter_Probes(t *testing.T) {
	var shuttingDown atomic.Bool
	r := buildTestRouter(&shuttingDown)

	tests := []struct {
		name           string
		path           string
		shutdown       bool
		expectedStatus int
	}{
		{"health", "/health", false, http.StatusOK},
		{"ready", "/ready", false, http.StatusOK},
		{"not ready while shutting down", "/ready", true, http.StatusServiceUnavailable},
		{"health while shutting down", "/health", true, http.StatusOK},
		{"metrics", "/metrics", false, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shuttingDown.Store(tt.shutdown)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_APIEchoesTabID(t *testing.T) {
	var shuttingDown atomic.Bool
	r := buildTestRouter(&shuttingDown)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set(middleware.TabIDHeader, "tab-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tab-42", w.Header().Get(middleware.TabIDHeader))
	assert.NotEmpty(t, w.Header().Get(middleware.TraceIDHeader))
}

func TestRouter_CORSPreflight(t *testing.T) {
	var shuttingDown atomic.Bool
	r := buildTestRouter(&shuttingDown)

	req := httptest.NewRequest(http.MethodOptions, "/api/customers", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", middleware.TabIDHeader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
