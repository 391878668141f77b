package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Matching(t *testing.T) {
	tests := []struct {
		name        string
		err         *APIError
		isNotFound  bool
		isDuplicate bool
		expectedMsg string
	}{
		{
			name:        "structured not found",
			err:         &APIError{StatusCode: 404, Message: "Could not find any entity"},
			isNotFound:  true,
			expectedMsg: "Could not find any entity",
		},
		{
			name: "unique violation",
			err: &APIError{
				StatusCode: 500,
				Message:    "SQLITE_CONSTRAINT: UNIQUE constraint failed: user.email",
				Name:       QueryFailedErrorName,
				Code:       UniqueConstraintErrCode,
			},
			isDuplicate: true,
			expectedMsg: "SQLITE_CONSTRAINT: UNIQUE constraint failed: user.email",
		},
		{
			name:        "unparsable body",
			err:         &APIError{StatusCode: 502, Body: "<html>bad gateway</html>"},
			expectedMsg: "remote api returned 502: <html>bad gateway</html>",
		},
		{
			name:        "empty body",
			err:         &APIError{StatusCode: 500},
			expectedMsg: "remote api returned 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("delete customer: %w", tt.err)

			if !errors.Is(wrapped, ErrRemote) {
				t.Error("every APIError should match ErrRemote")
			}
			if errors.Is(wrapped, ErrNotFound) != tt.isNotFound {
				t.Errorf("ErrNotFound match: expected %v", tt.isNotFound)
			}
			if errors.Is(wrapped, ErrDuplicateEmail) != tt.isDuplicate {
				t.Errorf("ErrDuplicateEmail match: expected %v", tt.isDuplicate)
			}
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected message %q, got %q", tt.expectedMsg, tt.err.Error())
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("submit: %w", &ValidationError{Fields: map[string]string{
		"name":  "Nome obrigatório",
		"email": "Email inválido",
	}})

	if !errors.Is(err, ErrValidation) {
		t.Error("validation error should unwrap to ErrValidation")
	}

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatal("expected errors.As to find ValidationError")
	}
	expected := "validation failed: email: Email inválido; name: Nome obrigatório"
	if vErr.Error() != expected {
		t.Errorf("expected %q, got %q", expected, vErr.Error())
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "plain", err: errors.New("boom"), expected: "boom"},
		{
			name:     "action error wins",
			err:      &ActionError{Message: "Erro ao deletar usuário", Err: &APIError{StatusCode: 500}},
			expected: "Erro ao deletar usuário",
		},
		{
			name:     "wrapped api error",
			err:      fmt.Errorf("login: %w", &APIError{StatusCode: 401, Message: "Unauthorized"}),
			expected: "Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
