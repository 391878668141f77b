package mocks

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"github.com/you/storeadmin/domain"
)

// APICall records one request issued through MockAPIClient
type APICall struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	TabID  string
}

// MockAPIClient implements domain.APIClient interface for testing
type MockAPIClient struct {
	DoFunc  func(ctx context.Context, method, path string, query url.Values, body, out any) error
	RawFunc func(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error)

	mu    sync.Mutex
	calls []APICall
}

// NewMockAPIClient creates a new MockAPIClient with default behaviors
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// Do records the call and delegates to DoFunc, or decodes RawFunc's body into out
func (m *MockAPIClient) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	m.record(ctx, method, path, query, body)
	if m.DoFunc != nil {
		return m.DoFunc(ctx, method, path, query, body, out)
	}
	if m.RawFunc != nil {
		raw, err := m.RawFunc(ctx, method, path, query, body)
		if err != nil {
			return err
		}
		if out != nil && len(raw) > 0 {
			return json.Unmarshal(raw, out)
		}
	}
	// Default behavior: empty success
	return nil
}

// Raw records the call and delegates to RawFunc
func (m *MockAPIClient) Raw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	m.record(ctx, method, path, query, body)
	if m.RawFunc != nil {
		return m.RawFunc(ctx, method, path, query, body)
	}
	// Default behavior: empty list
	return []byte("[]"), nil
}

// Calls returns a copy of every recorded call
func (m *MockAPIClient) Calls() []APICall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]APICall(nil), m.calls...)
}

// CallsTo returns the recorded calls for method and path
func (m *MockAPIClient) CallsTo(method, path string) []APICall {
	var out []APICall
	for _, call := range m.Calls() {
		if call.Method == method && call.Path == path {
			out = append(out, call)
		}
	}
	return out
}

func (m *MockAPIClient) record(ctx context.Context, method, path string, query url.Values, body any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, APICall{
		Method: method,
		Path:   path,
		Query:  query,
		Body:   body,
		TabID:  domain.TabFromContext(ctx),
	})
}

// Respond copies v into out through JSON, the way a real response would be decoded
func Respond(out, v any) error {
	if out == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// Compile-time interface compliance verification
var _ domain.APIClient = (*MockAPIClient)(nil)
