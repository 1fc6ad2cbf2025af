package errors

import (
	"errors"
	"fmt"
)

var (
	// Tokens
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")

	// Authorization
	ErrEmptyAuthHeader    = errors.New("authorization header is missing")
	ErrInvalidAuthHeader  = errors.New("malformed authorization header")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("access denied")

	// Generic
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("resource already exists")
	ErrBadRequest = errors.New("bad request")
)

// HttpError carries an explicit status code and a message safe to show
// to the client. The wrapped error stays internal.
type HttpError struct {
	Code    int
	Message string
	Err     error
}

func NewHttpError(code int, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

// InvariantViolation marks a rejected mutation that would break a
// domain invariant (last administrator, forbidden promotion). The
// reason is surfaced verbatim to the caller and the mutation is never
// applied.
type InvariantViolation struct {
	Reason string
}

func NewInvariantViolation(format string, args ...interface{}) *InvariantViolation {
	return &InvariantViolation{Reason: fmt.Sprintf(format, args...)}
}

func (e *InvariantViolation) Error() string { return e.Reason }
