package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/infrastructure/cache"
	"github.com/you/storeadmin/internal/mocks"
)

// authDeps bundles the collaborators of an AuthService under test
type authDeps struct {
	api       *mocks.MockAPIClient
	tokens    *mocks.MockTokenStore
	navigator *mocks.MockNavigator
	sessions  *SessionRegistry
}

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T) (*AuthServiceImpl, *authDeps) {
	t.Helper()

	deps := &authDeps{
		api:       mocks.NewMockAPIClient(),
		tokens:    mocks.NewMockTokenStore(),
		navigator: mocks.NewMockNavigator(),
		sessions:  NewSessionRegistry(time.Hour),
	}
	svc := NewAuthService(deps.api, deps.tokens, deps.navigator, mocks.NewMockTokenInspector(), deps.sessions, AuthConfig{
		AuthenticatedEntryPath:   "/home",
		UnauthenticatedEntryPath: "/",
	})
	return svc, deps
}

// createQueryCacheForTest creates an in-memory query cache with a long dedupe window
func createQueryCacheForTest(t *testing.T) *cache.QueryCacheImpl {
	t.Helper()
	return cache.NewQueryCache(cache.NewMemoryStore(), time.Hour, time.Minute)
}

// jsonBody marshals v or fails the test
func jsonBody(t *testing.T, v any) []byte {
	t.Helper()

	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal test body: %v", err)
	}
	return raw
}

// createCustomers creates n customers with ids 1..n
func createCustomers(t *testing.T, n int) []domain.Customer {
	t.Helper()

	customers := make([]domain.Customer, n)
	for i := range customers {
		customers[i] = domain.Customer{
			ID:         i + 1,
			Email:      "customer" + string(rune('a'+i)) + "@example.com",
			Name:       "Customer " + string(rune('A'+i)),
			Role:       "customer",
			Avatar:     "https://i.imgur.com/avatar.png",
			CreationAt: time.Date(2025, 1, i+1, 0, 0, 0, 0, time.UTC),
		}
	}
	return customers
}

// createProducts creates n products with ids 1..n and increasing prices
func createProducts(t *testing.T, n int) []domain.Product {
	t.Helper()

	products := make([]domain.Product, n)
	for i := range products {
		products[i] = domain.Product{
			ID:       i + 1,
			Title:    "Product " + string(rune('A'+i)),
			Slug:     "product-" + string(rune('a'+i)),
			Price:    float64(10 * (i + 1)),
			Category: domain.Category{ID: 1, Name: "Clothes"},
			Images:   []string{"https://i.imgur.com/product.png"},
		}
	}
	return products
}

// rawResponder returns body for every GET on path, counting calls
func rawResponder(t *testing.T, path string, body []byte, calls *int) func(ctx context.Context, method, p string, query url.Values, b any) ([]byte, error) {
	t.Helper()
	return func(ctx context.Context, method, p string, query url.Values, b any) ([]byte, error) {
		if method == http.MethodGet && p == path {
			*calls++
		}
		return body, nil
	}
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
