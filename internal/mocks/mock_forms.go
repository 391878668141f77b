package mocks

import (
	"context"

	"github.com/you/storeadmin/domain"
)

// MockCustomerForm implements domain.CustomerForm interface for testing.
// Without SubmitFunc it runs handler when given.
type MockCustomerForm struct {
	SubmitFunc func(ctx context.Context, values domain.CustomerFormValues, handler domain.CustomerSubmitHandler) error
}

// NewMockCustomerForm creates a new MockCustomerForm with default behaviors
func NewMockCustomerForm() *MockCustomerForm {
	return &MockCustomerForm{}
}

// Submit calls the mock function or the handler
func (m *MockCustomerForm) Submit(ctx context.Context, values domain.CustomerFormValues, handler domain.CustomerSubmitHandler) error {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, values, handler)
	}
	if handler != nil {
		return handler(ctx, values)
	}
	return nil
}

// MockProductForm implements domain.ProductForm interface for testing
type MockProductForm struct {
	SubmitFunc func(ctx context.Context, values domain.ProductFormValues, newProduct bool, existing *domain.Product) (*domain.Product, error)
}

// NewMockProductForm creates a new MockProductForm with default behaviors
func NewMockProductForm() *MockProductForm {
	return &MockProductForm{}
}

// Submit calls the mock function or returns default
func (m *MockProductForm) Submit(ctx context.Context, values domain.ProductFormValues, newProduct bool, existing *domain.Product) (*domain.Product, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, values, newProduct, existing)
	}
	if existing != nil {
		return existing, nil
	}
	return &domain.Product{ID: 1, Title: values.Title}, nil
}

// MockCategoryService implements domain.CategoryService interface for testing
type MockCategoryService struct {
	ListFunc func(ctx context.Context, limit int) ([]domain.Category, error)
}

// NewMockCategoryService creates a new MockCategoryService with default behaviors
func NewMockCategoryService() *MockCategoryService {
	return &MockCategoryService{}
}

// List calls the mock function or returns default
func (m *MockCategoryService) List(ctx context.Context, limit int) ([]domain.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit)
	}
	return []domain.Category{}, nil
}

// Compile-time interface compliance verification
var (
	_ domain.CustomerForm    = (*MockCustomerForm)(nil)
	_ domain.ProductForm     = (*MockProductForm)(nil)
	_ domain.CategoryService = (*MockCategoryService)(nil)
)
