package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/you/storeadmin/internal/http/middleware"
)

const testTabID = "tab-test"

// newTestRouter creates a gin engine with the tab middleware in front of the routes
func newTestRouter(register func(r *gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.LoggingMiddleware(), middleware.TabMiddleware())
	register(r)
	return r
}

// performRequest sends body as JSON on behalf of testTabID and decodes the JSON response
func performRequest(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TabIDHeader, testTabID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var responseBody map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &responseBody); err != nil {
			t.Fatalf("failed to unmarshal response body: %v", err)
		}
	}
	return w, responseBody
}

// dataOf returns the "data" object of a response body
func dataOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()

	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object in response, got %v", body)
	}
	return data
}

// navigate simulates a service moving the tab to path during the request
var navigate = middleware.NewRequestNavigator().Navigate
