package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/infrastructure/repositories"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *repositories.MemoryTokenRepository) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := repositories.NewMemoryTokenRepository()
	return NewClient(server.URL, 0, NewInterceptor(tokens, "", nil)), tokens
}

func TestClient_Do(t *testing.T) {
	var gotQuery url.Values
	var gotBody map[string]any
	var gotContentType string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotContentType = r.Header.Get("Content-Type")
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				_ = json.Unmarshal(raw, &gotBody)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"title":"Tenis"}`))
	})

	var out domain.Product
	err := client.Do(context.Background(), http.MethodPost, "/products",
		url.Values{"limit": {"10"}}, map[string]any{"title": "Tenis"}, &out)

	require.NoError(t, err)
	assert.Equal(t, 7, out.ID)
	assert.Equal(t, "Tenis", out.Title)
	assert.Equal(t, "10", gotQuery.Get("limit"))
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Tenis", gotBody["title"])
}

func TestClient_DoEmptyBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	var out domain.Product
	err := client.Do(context.Background(), http.MethodDelete, "/products/1", nil, nil, &out)
	assert.NoError(t, err)
}

func TestClient_RemoteErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantBody    string
		is          []error
		isNot       []error
	}{
		{
			name:        "string message",
			status:      http.StatusUnauthorized,
			body:        `{"message":"Unauthorized","statusCode":401}`,
			wantMessage: "Unauthorized",
			is:          []error{domain.ErrRemote},
			isNot:       []error{domain.ErrNotFound, domain.ErrDuplicateEmail},
		},
		{
			name:        "list of messages",
			status:      http.StatusBadRequest,
			body:        `{"message":["email must be an email","password too short"],"error":"Bad Request","statusCode":400}`,
			wantMessage: "email must be an email; password too short",
			is:          []error{domain.ErrRemote},
		},
		{
			name:        "unique violation",
			status:      http.StatusBadRequest,
			body:        `{"message":"SQLITE_CONSTRAINT: UNIQUE constraint failed: user.email","name":"QueryFailedError","code":"SQLITE_CONSTRAINT_UNIQUE"}`,
			wantMessage: "SQLITE_CONSTRAINT: UNIQUE constraint failed: user.email",
			is:          []error{domain.ErrRemote, domain.ErrDuplicateEmail},
		},
		{
			name:        "not found",
			status:      http.StatusNotFound,
			body:        `{"message":"Could not find any entity","statusCode":404}`,
			wantMessage: "Could not find any entity",
			is:          []error{domain.ErrRemote, domain.ErrNotFound},
		},
		{
			name:     "unparsable body",
			status:   http.StatusBadGateway,
			body:     "<html>bad gateway</html>",
			wantBody: "<html>bad gateway</html>",
			is:       []error{domain.ErrRemote},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := client.Do(context.Background(), http.MethodGet, "/users", nil, nil, nil)
			require.Error(t, err)

			var apiErr *domain.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantBody, apiErr.Body)
			for _, target := range tt.is {
				assert.ErrorIs(t, err, target)
			}
			for _, target := range tt.isNot {
				assert.NotErrorIs(t, err, target)
			}
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewClient(baseURL, 0, NewInterceptor(repositories.NewMemoryTokenRepository(), "", nil))
	_, err := client.Raw(context.Background(), http.MethodGet, "/users", nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.NotErrorIs(t, err, domain.ErrRemote)
}

func TestClient_AttachesTabToken(t *testing.T) {
	var header string
	client, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})
	require.NoError(t, tokens.Save(context.Background(), "tab-1", domain.Tokens{AccessToken: "tok", RefreshToken: "ref"}))

	ctx := domain.ContextWithTab(context.Background(), "tab-1")
	_, err := client.Raw(ctx, http.MethodGet, "/users", url.Values{"limit": {"10"}}, nil)

	require.NoError(t, err)
	assert.Equal(t, "tok", header)
}

func TestResourceOf(t *testing.T) {
	tests := map[string]string{
		"/products/42":        "products",
		"/users":              "users",
		"/auth/login":         "auth/login",
		"/auth/refresh-token": "auth/refresh-token",
		"/categories/":        "categories",
	}
	for path, want := range tests {
		assert.Equal(t, want, resourceOf(path), path)
	}
}
