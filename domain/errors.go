package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Session errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrTokensMissing    = errors.New("persisted tokens missing")
	ErrEmptyAuthResult  = errors.New("empty authentication response")
	ErrTokenMalformed   = errors.New("token malformed")
)

// Remote API errors
var (
	ErrTransport      = errors.New("remote api unreachable")
	ErrRemote         = errors.New("remote api error")
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrNotFound       = errors.New("resource not found")
)

// Table state errors
var (
	ErrInvalidTableQuery = errors.New("invalid table query")
	ErrRowNotInPage      = errors.New("row is not part of the current page")
)

// Validation errors
var ErrValidation = errors.New("validation failed")

// Constraint violation markers sent by the remote API
const (
	QueryFailedErrorName    = "QueryFailedError"
	UniqueConstraintErrCode = "SQLITE_CONSTRAINT_UNIQUE"
)

// APIError is a non-2xx response from the remote API
type APIError struct {
	StatusCode int
	Message    string
	Name       string
	Code       string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Body != "" {
		return fmt.Sprintf("remote api returned %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("remote api returned %d", e.StatusCode)
}

// Is lets callers match on ErrRemote, ErrNotFound and ErrDuplicateEmail
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrRemote:
		return true
	case ErrNotFound:
		return e.StatusCode == 404
	case ErrDuplicateEmail:
		return e.UniqueViolation()
	}
	return false
}

// UniqueViolation reports whether the remote API rejected a unique constraint
func (e *APIError) UniqueViolation() bool {
	return e.Name == QueryFailedErrorName && e.Code == UniqueConstraintErrCode
}

// ValidationError carries per-field messages of a rejected form
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ActionError is returned by CRUD actions; Message is safe to show in a toast
type ActionError struct {
	Message string
	Err     error
}

func (e *ActionError) Error() string { return e.Message }

func (e *ActionError) Unwrap() error { return e.Err }

// Message extracts the best human readable text from err
func Message(err error) string {
	if err == nil {
		return ""
	}
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr.Message
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
