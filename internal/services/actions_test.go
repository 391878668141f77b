package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/mocks"
)

func uniqueViolation() *domain.APIError {
	return &domain.APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "SQLITE_CONSTRAINT: UNIQUE constraint failed: user.email",
		Name:       domain.QueryFailedErrorName,
		Code:       domain.UniqueConstraintErrCode,
	}
}

func TestCustomerActions_Errors(t *testing.T) {
	payload := domain.CustomerPayload{Name: "Ana", Email: "ana@example.com", Password: "secret"}

	tests := []struct {
		name            string
		remoteErr       error
		call            func(a *CustomerActionsImpl) error
		expectedMessage string
	}{
		{
			name:            "create duplicate email",
			remoteErr:       uniqueViolation(),
			call:            func(a *CustomerActionsImpl) error { return a.Create(context.Background(), payload) },
			expectedMessage: "Já existe um usuário com este email",
		},
		{
			name:            "update duplicate email",
			remoteErr:       uniqueViolation(),
			call:            func(a *CustomerActionsImpl) error { return a.Update(context.Background(), 3, payload) },
			expectedMessage: "Já existe um usuário com este email",
		},
		{
			name:            "create uses remote message",
			remoteErr:       &domain.APIError{StatusCode: http.StatusBadRequest, Message: "email must be an email"},
			call:            func(a *CustomerActionsImpl) error { return a.Create(context.Background(), payload) },
			expectedMessage: "email must be an email",
		},
		{
			name:            "create falls back without a remote message",
			remoteErr:       domain.ErrTransport,
			call:            func(a *CustomerActionsImpl) error { return a.Create(context.Background(), payload) },
			expectedMessage: "Erro ao criar usuário",
		},
		{
			name:            "update falls back without a remote message",
			remoteErr:       &domain.APIError{StatusCode: http.StatusInternalServerError},
			call:            func(a *CustomerActionsImpl) error { return a.Update(context.Background(), 3, payload) },
			expectedMessage: "Erro ao editar usuário",
		},
		{
			name:            "delete falls back without a remote message",
			remoteErr:       domain.ErrTransport,
			call:            func(a *CustomerActionsImpl) error { return a.Delete(context.Background(), 3) },
			expectedMessage: "Erro ao deletar usuário",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := mocks.NewMockAPIClient()
			api.DoFunc = func(ctx context.Context, method, path string, query url.Values, body, out any) error {
				return tt.remoteErr
			}
			navigator := mocks.NewMockNavigator()
			actions := NewCustomerActions(api, createQueryCacheForTest(t), navigator)

			err := tt.call(actions)

			var actionErr *domain.ActionError
			if !errors.As(err, &actionErr) {
				t.Fatalf("expected *domain.ActionError, got %v", err)
			}
			if actionErr.Message != tt.expectedMessage {
				t.Errorf("expected message %q, got %q", tt.expectedMessage, actionErr.Message)
			}
			if !errors.Is(err, tt.remoteErr) {
				t.Error("expected the remote error to stay in the chain")
			}
			if len(navigator.Paths()) != 0 {
				t.Errorf("failed writes must not navigate, got %v", navigator.Paths())
			}
		})
	}
}

func TestCustomerActions_DeleteMissingCustomer(t *testing.T) {
	api := mocks.NewMockAPIClient()
	api.DoFunc = func(ctx context.Context, method, path string, query url.Values, body, out any) error {
		return &domain.APIError{StatusCode: http.StatusNotFound, Message: "Could not find any entity of type \"User\""}
	}
	navigator := mocks.NewMockNavigator()
	actions := NewCustomerActions(api, createQueryCacheForTest(t), navigator)

	err := actions.Delete(context.Background(), 404)

	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound in the chain, got %v", err)
	}
	if calls := api.CallsTo(http.MethodDelete, "/users/404"); len(calls) != 1 {
		t.Errorf("expected one DELETE /users/404, got %d", len(calls))
	}
	if navigator.Last() != "" {
		t.Errorf("expected no navigation, got %q", navigator.Last())
	}
}

func TestCustomerActions_SuccessInvalidatesAndNavigates(t *testing.T) {
	api := mocks.NewMockAPIClient()
	listCalls := 0
	api.RawFunc = rawResponder(t, "/users", jsonBody(t, createCustomers(t, 2)), &listCalls)
	queryCache := createQueryCacheForTest(t)
	navigator := mocks.NewMockNavigator()
	list := NewCustomerListService(api, queryCache, 0)
	actions := NewCustomerActions(api, queryCache, navigator)
	ctx := domain.ContextWithTab(context.Background(), "tab-1")

	_, _ = list.Load(ctx, "tab-1")
	if err := actions.Create(ctx, domain.CustomerPayload{Name: "Ana", Email: "ana@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _ = list.Load(ctx, "tab-1")

	if listCalls != 2 {
		t.Errorf("expected the write to invalidate /users pages, got %d list calls", listCalls)
	}
	if navigator.Last() != CustomerListRoute {
		t.Errorf("expected navigation to %s, got %q", CustomerListRoute, navigator.Last())
	}
	calls := api.CallsTo(http.MethodPost, "/users")
	if len(calls) != 1 || calls[0].TabID != "tab-1" {
		t.Errorf("expected one POST /users on behalf of tab-1, got %+v", calls)
	}
}

func TestProductActions_CreatePublishesProductUpdated(t *testing.T) {
	api := mocks.NewMockAPIClient()
	api.DoFunc = func(ctx context.Context, method, path string, query url.Values, body, out any) error {
		return mocks.Respond(out, domain.Product{ID: 42, Title: "Tenis"})
	}
	bus := mocks.NewMockEventBus()
	navigator := mocks.NewMockNavigator()
	actions := NewProductActions(api, createQueryCacheForTest(t), bus, navigator)
	ctx := domain.ContextWithTab(context.Background(), "tab-1")

	product, err := actions.Create(ctx, domain.ProductPayload{Title: "Tenis", Price: 10, CategoryID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.ID != 42 {
		t.Errorf("expected created product 42, got %d", product.ID)
	}

	events := bus.Published()
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if events[0].Type != domain.ProductUpdatedEvent || events[0].ProductID != 42 || events[0].TabID != "tab-1" {
		t.Errorf("unexpected event %+v", events[0])
	}
	if navigator.Last() != ProductListRoute {
		t.Errorf("expected navigation to %s, got %q", ProductListRoute, navigator.Last())
	}
}

func TestProductActions_UpdateFallsBackToDirectInvalidation(t *testing.T) {
	api := mocks.NewMockAPIClient()
	listCalls := 0
	api.RawFunc = rawResponder(t, "/products", jsonBody(t, createProducts(t, 1)), &listCalls)
	api.DoFunc = func(ctx context.Context, method, path string, query url.Values, body, out any) error {
		return nil
	}
	bus := mocks.NewMockEventBus()
	bus.PublishFunc = func(ctx context.Context, event domain.Event) error {
		return errors.New("redis down")
	}
	queryCache := createQueryCacheForTest(t)
	list := NewProductListService(api, queryCache, 0)
	actions := NewProductActions(api, queryCache, bus, mocks.NewMockNavigator())
	ctx := context.Background()

	_, _ = list.Load(ctx, "tab-1")
	product, err := actions.Update(ctx, 7, domain.ProductPayload{Title: "Tenis"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _ = list.Load(ctx, "tab-1")

	if product.ID != 7 {
		t.Errorf("expected id to default to the updated id, got %d", product.ID)
	}
	if listCalls != 2 {
		t.Errorf("expected product pages invalidated without the bus, got %d calls", listCalls)
	}
}

func TestProductActions_Errors(t *testing.T) {
	api := mocks.NewMockAPIClient()
	api.DoFunc = func(ctx context.Context, method, path string, query url.Values, body, out any) error {
		return &domain.APIError{StatusCode: http.StatusNotFound}
	}
	bus := mocks.NewMockEventBus()
	navigator := mocks.NewMockNavigator()
	actions := NewProductActions(api, createQueryCacheForTest(t), bus, navigator)
	ctx := context.Background()

	if _, err := actions.Get(ctx, 9); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound from Get, got %v", err)
	}
	if _, err := actions.Create(ctx, domain.ProductPayload{}); domain.Message(err) != "Erro ao salvar produto" {
		t.Errorf("expected save fallback, got %q", domain.Message(err))
	}
	if err := actions.Delete(ctx, 9); domain.Message(err) != "Erro ao deletar produto" {
		t.Errorf("expected delete fallback, got %q", domain.Message(err))
	}
	if len(bus.Published()) != 0 || len(navigator.Paths()) != 0 {
		t.Error("failed writes must not publish or navigate")
	}
}

func TestProductActions_DuplicateIsNotAnEmailConflict(t *testing.T) {
	api := mocks.NewMockAPIClient()
	api.DoFunc = func(ctx context.Context, method, path string, query url.Values, body, out any) error {
		return uniqueViolation()
	}
	actions := NewProductActions(api, createQueryCacheForTest(t), mocks.NewMockEventBus(), mocks.NewMockNavigator())

	_, err := actions.Create(context.Background(), domain.ProductPayload{Title: "Tenis"})

	if got := domain.Message(err); got == duplicateEmailMessage {
		t.Errorf("product writes must not report the email conflict message")
	}
}
