package mocks

import (
	"context"

	"github.com/you/storeadmin/domain"
)

// MockCustomerActions implements domain.CustomerActions interface for testing
type MockCustomerActions struct {
	CreateFunc func(ctx context.Context, payload domain.CustomerPayload) error
	UpdateFunc func(ctx context.Context, id int, payload domain.CustomerPayload) error
	DeleteFunc func(ctx context.Context, id int) error
}

// NewMockCustomerActions creates a new MockCustomerActions with default behaviors
func NewMockCustomerActions() *MockCustomerActions {
	return &MockCustomerActions{}
}

// Create calls the mock function or returns default
func (m *MockCustomerActions) Create(ctx context.Context, payload domain.CustomerPayload) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, payload)
	}
	return nil
}

// Update calls the mock function or returns default
func (m *MockCustomerActions) Update(ctx context.Context, id int, payload domain.CustomerPayload) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, payload)
	}
	return nil
}

// Delete calls the mock function or returns default
func (m *MockCustomerActions) Delete(ctx context.Context, id int) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockProductActions implements domain.ProductActions interface for testing
type MockProductActions struct {
	GetFunc    func(ctx context.Context, id int) (*domain.Product, error)
	CreateFunc func(ctx context.Context, payload domain.ProductPayload) (*domain.Product, error)
	UpdateFunc func(ctx context.Context, id int, payload domain.ProductPayload) (*domain.Product, error)
	DeleteFunc func(ctx context.Context, id int) error
}

// NewMockProductActions creates a new MockProductActions with default behaviors
func NewMockProductActions() *MockProductActions {
	return &MockProductActions{}
}

// Get calls the mock function or returns default
func (m *MockProductActions) Get(ctx context.Context, id int) (*domain.Product, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &domain.Product{ID: id}, nil
}

// Create calls the mock function or returns default
func (m *MockProductActions) Create(ctx context.Context, payload domain.ProductPayload) (*domain.Product, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, payload)
	}
	return &domain.Product{ID: 1, Title: payload.Title, Slug: payload.Slug, Price: payload.Price}, nil
}

// Update calls the mock function or returns default
func (m *MockProductActions) Update(ctx context.Context, id int, payload domain.ProductPayload) (*domain.Product, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, payload)
	}
	return &domain.Product{ID: id, Title: payload.Title, Slug: payload.Slug, Price: payload.Price}, nil
}

// Delete calls the mock function or returns default
func (m *MockProductActions) Delete(ctx context.Context, id int) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// Compile-time interface compliance verification
var (
	_ domain.CustomerActions = (*MockCustomerActions)(nil)
	_ domain.ProductActions  = (*MockProductActions)(nil)
)
