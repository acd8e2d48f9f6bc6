// Package apperror defines the application's error taxonomy.
//
// Services and repositories return these domain errors; the HTTP layer maps
// them to status codes in handler/response.go. Neither side imports the
// other's vocabulary — errors.Is against the sentinels below is the contract.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("authentication required")
	ErrUnknownProvider = errors.New("unknown provider")
	ErrUpstream        = errors.New("upstream provider unavailable")
)

// AppError carries a sentinel (for errors.Is dispatch) together with a
// human-readable message safe to show to the client.
type AppError struct {
	Err     error  // one of the sentinels above
	Message string // human-readable error message
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Unauthenticated is returned by operations that need an active session
// when none is present. Handlers map it to 401 (or a redirect, depending
// on the surface).
func Unauthenticated() *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: "authentication required",
	}
}

// UnknownProvider is a client error: the request named an OAuth provider
// this site is not configured for. Not retried, not a system fault.
func UnknownProvider(name string) *AppError {
	return &AppError{
		Err:     ErrUnknownProvider,
		Message: fmt.Sprintf("unknown provider %q", name),
	}
}

// BadProfile marks a provider profile payload that could not be understood:
// malformed JSON or a payload with no id. Validation-class, so the OAuth
// callback answers 400; the cause stays in the chain for the logs.
func BadProfile(provider string, err error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrValidation, err),
		Message: fmt.Sprintf("unsupported %s profile payload", provider),
	}
}

// Upstream wraps a transient failure talking to a provider's token or
// userinfo endpoint. Handlers map it to a 502-class response; retrying is
// left to the client.
func Upstream(provider string, err error) *AppError {
	return &AppError{
		// Both the sentinel and the cause stay in the chain (Go 1.20 allows
		// multiple %w), so errors.Is works against either.
		Err:     fmt.Errorf("%w: %w", ErrUpstream, err),
		Message: fmt.Sprintf("%s is unavailable, try again later", provider),
	}
}
