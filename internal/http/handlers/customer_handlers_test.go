package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/mocks"
)

type customerMocks struct {
	list    *mocks.MockListService[domain.Customer]
	actions *mocks.MockCustomerActions
	form    *mocks.MockCustomerForm
}

func customerRouter(m *customerMocks) *gin.Engine {
	h := NewCustomerHandlers(m.list, m.actions, m.form)
	return newTestRouter(func(r *gin.Engine) {
		customers := r.Group("/api/customers")
		customers.GET("", h.List)
		customers.POST("/refresh", h.Refresh)
		customers.PUT("/query", h.SetQuery)
		customers.POST("/selection", h.Select)
		customers.POST("/selection/all", h.SelectAll)
		customers.POST("", h.Create)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
	})
}

func newCustomerMocks() *customerMocks {
	return &customerMocks{
		list:    mocks.NewMockListService[domain.Customer](),
		actions: mocks.NewMockCustomerActions(),
		form:    mocks.NewMockCustomerForm(),
	}
}

func TestCustomerHandlers_List(t *testing.T) {
	m := newCustomerMocks()
	m.list.LoadFunc = func(ctx context.Context, tabID string) (*domain.ListPage[domain.Customer], error) {
		if tabID != testTabID {
			t.Errorf("expected tab %s, got %s", testTabID, tabID)
		}
		return &domain.ListPage[domain.Customer]{
			Items:       []domain.Customer{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bruno"}},
			Total:       2,
			HasNextPage: false,
			Query:       domain.TableQuery{PageSize: 10},
		}, nil
	}

	w, body := performRequest(t, customerRouter(m), http.MethodGet, "/api/customers", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	data := dataOf(t, body)
	if items, _ := data["items"].([]interface{}); len(items) != 2 {
		t.Errorf("expected 2 items, got %v", data["items"])
	}
	if data["total"] != float64(2) {
		t.Errorf("expected total 2, got %v", data["total"])
	}
}

func TestCustomerHandlers_SetQuery(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		setQueryErr    error
		expectedStatus int
		expectLoad     bool
	}{
		{
			name:           "page size change reloads",
			requestBody:    domain.TableQuery{PageIndex: 0, PageSize: 20},
			expectedStatus: http.StatusOK,
			expectLoad:     true,
		},
		{
			name:           "invalid query",
			requestBody:    domain.TableQuery{PageIndex: -1, PageSize: 10},
			setQueryErr:    domain.ErrInvalidTableQuery,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			requestBody:    "{",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newCustomerMocks()
			var received domain.TableQuery
			m.list.SetQueryFunc = func(tabID string, query domain.TableQuery) error {
				received = query
				return tt.setQueryErr
			}
			loaded := false
			m.list.LoadFunc = func(ctx context.Context, tabID string) (*domain.ListPage[domain.Customer], error) {
				loaded = true
				return &domain.ListPage[domain.Customer]{Items: []domain.Customer{}}, nil
			}

			w, _ := performRequest(t, customerRouter(m), http.MethodPut, "/api/customers/query", tt.requestBody)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if loaded != tt.expectLoad {
				t.Errorf("expected load %v, got %v", tt.expectLoad, loaded)
			}
			if tt.expectLoad && received.PageSize != 20 {
				t.Errorf("expected page size 20, got %d", received.PageSize)
			}
		})
	}
}

func TestCustomerHandlers_Select(t *testing.T) {
	m := newCustomerMocks()
	m.list.SelectFunc = func(tabID string, id int, checked bool) error {
		if id == 99 {
			return domain.ErrRowNotInPage
		}
		return nil
	}

	w, _ := performRequest(t, customerRouter(m), http.MethodPost, "/api/customers/selection", SelectRequest{ID: 1, Checked: true})
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	w, _ = performRequest(t, customerRouter(m), http.MethodPost, "/api/customers/selection", SelectRequest{ID: 99, Checked: true})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for a row outside the page, got %d", w.Code)
	}

	selectedAll := false
	m.list.SelectAllFunc = func(tabID string, checked bool) { selectedAll = checked }
	w, _ = performRequest(t, customerRouter(m), http.MethodPost, "/api/customers/selection/all", SelectAllRequest{Checked: true})
	if w.Code != http.StatusOK || !selectedAll {
		t.Errorf("expected select all, got status %d selected %v", w.Code, selectedAll)
	}
}

func TestCustomerHandlers_Create(t *testing.T) {
	tests := []struct {
		name           string
		submitErr      error
		expectedStatus int
		expectedError  string
		expectedFields map[string]interface{}
	}{
		{
			name:           "created",
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "validation failure",
			submitErr:      &domain.ValidationError{Fields: map[string]string{"email": "Email inválido"}},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Validation failed",
			expectedFields: map[string]interface{}{"email": "Email inválido"},
		},
		{
			name: "duplicate email",
			submitErr: &domain.ActionError{
				Message: "Já existe um usuário com este email",
				Err:     &domain.APIError{StatusCode: http.StatusBadRequest, Name: domain.QueryFailedErrorName, Code: domain.UniqueConstraintErrCode},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Já existe um usuário com este email",
		},
		{
			name:           "remote unreachable",
			submitErr:      &domain.ActionError{Message: "Erro ao criar usuário", Err: domain.ErrTransport},
			expectedStatus: http.StatusBadGateway,
			expectedError:  "Erro ao criar usuário",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newCustomerMocks()
			m.form.SubmitFunc = func(ctx context.Context, values domain.CustomerFormValues, handler domain.CustomerSubmitHandler) error {
				if handler != nil {
					t.Error("create must use the default submit")
				}
				if tt.submitErr == nil {
					navigate(ctx, "/pageView/customers/customer-list")
				}
				return tt.submitErr
			}

			w, body := performRequest(t, customerRouter(m), http.MethodPost, "/api/customers", domain.CustomerFormValues{
				Name: "Ana", Email: "ana@mail.com", Password: "secret", Img: "https://i.imgur.com/a.png",
			})

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedError != "" && body["error"] != tt.expectedError {
				t.Errorf("expected error %q, got %v", tt.expectedError, body["error"])
			}
			if tt.expectedFields != nil {
				fields, _ := body["fields"].(map[string]interface{})
				for key, expected := range tt.expectedFields {
					if fields[key] != expected {
						t.Errorf("field %s: expected %v, got %v", key, expected, fields[key])
					}
				}
			}
			if tt.submitErr == nil && body["redirect"] != "/pageView/customers/customer-list" {
				t.Errorf("expected redirect to the customer list, got %v", body["redirect"])
			}
		})
	}
}

func TestCustomerHandlers_Update(t *testing.T) {
	m := newCustomerMocks()
	var updatedID int
	var updated domain.CustomerPayload
	m.actions.UpdateFunc = func(ctx context.Context, id int, payload domain.CustomerPayload) error {
		updatedID = id
		updated = payload
		return nil
	}

	w, _ := performRequest(t, customerRouter(m), http.MethodPut, "/api/customers/7", domain.CustomerFormValues{
		Name: "Ana", Email: "ana@mail.com", Password: "secret", Img: "https://i.imgur.com/a.png",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if updatedID != 7 {
		t.Errorf("expected customer 7 updated, got %d", updatedID)
	}
	if updated.Avatar != "https://i.imgur.com/a.png" {
		t.Errorf("expected avatar mapped from img, got %q", updated.Avatar)
	}
}

func TestCustomerHandlers_Delete(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		deleteErr      error
		expectedStatus int
	}{
		{"deleted", "/api/customers/3", nil, http.StatusOK},
		{"missing customer", "/api/customers/404", &domain.ActionError{
			Message: "Erro ao deletar usuário",
			Err:     &domain.APIError{StatusCode: http.StatusNotFound},
		}, http.StatusNotFound},
		{"invalid id", "/api/customers/abc", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newCustomerMocks()
			m.actions.DeleteFunc = func(ctx context.Context, id int) error {
				return tt.deleteErr
			}

			w, _ := performRequest(t, customerRouter(m), http.MethodDelete, tt.path, nil)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
