package mocks

import (
	"context"

	"github.com/you/storeadmin/domain"
)

// MockListService implements domain.CustomerListService (T = Customer) and
// domain.ProductListService (T = Product) for testing
type MockListService[T any] struct {
	LoadFunc      func(ctx context.Context, tabID string) (*domain.ListPage[T], error)
	MutateFunc    func(ctx context.Context, tabID string) (*domain.ListPage[T], error)
	SetQueryFunc  func(tabID string, query domain.TableQuery) error
	SetFilterFunc func(tabID string, filter domain.Filter) error
	SelectFunc    func(tabID string, id int, checked bool) error
	SelectAllFunc func(tabID string, checked bool)
	SnapshotFunc  func(tabID string) *domain.ListPage[T]
}

// NewMockListService creates a new MockListService with default behaviors
func NewMockListService[T any]() *MockListService[T] {
	return &MockListService[T]{}
}

// Load calls the mock function or returns an empty page
func (m *MockListService[T]) Load(ctx context.Context, tabID string) (*domain.ListPage[T], error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, tabID)
	}
	return emptyPage[T](), nil
}

// Mutate calls the mock function or returns an empty page
func (m *MockListService[T]) Mutate(ctx context.Context, tabID string) (*domain.ListPage[T], error) {
	if m.MutateFunc != nil {
		return m.MutateFunc(ctx, tabID)
	}
	return emptyPage[T](), nil
}

// SetQuery calls the mock function or returns default
func (m *MockListService[T]) SetQuery(tabID string, query domain.TableQuery) error {
	if m.SetQueryFunc != nil {
		return m.SetQueryFunc(tabID, query)
	}
	return nil
}

// SetFilter calls the mock function or returns default
func (m *MockListService[T]) SetFilter(tabID string, filter domain.Filter) error {
	if m.SetFilterFunc != nil {
		return m.SetFilterFunc(tabID, filter)
	}
	return nil
}

// Select calls the mock function or returns default
func (m *MockListService[T]) Select(tabID string, id int, checked bool) error {
	if m.SelectFunc != nil {
		return m.SelectFunc(tabID, id, checked)
	}
	return nil
}

// SelectAll calls the mock function
func (m *MockListService[T]) SelectAll(tabID string, checked bool) {
	if m.SelectAllFunc != nil {
		m.SelectAllFunc(tabID, checked)
	}
}

// Snapshot calls the mock function or returns an empty page
func (m *MockListService[T]) Snapshot(tabID string) *domain.ListPage[T] {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(tabID)
	}
	return emptyPage[T]()
}

func emptyPage[T any]() *domain.ListPage[T] {
	return &domain.ListPage[T]{
		Items:     []T{},
		Query:     domain.TableQuery{PageSize: domain.DefaultPageSize},
		Filter:    domain.Filter{},
		Selection: []T{},
	}
}

// Compile-time interface compliance verification
var (
	_ domain.CustomerListService = (*MockListService[domain.Customer])(nil)
	_ domain.ProductListService  = (*MockListService[domain.Product])(nil)
)
