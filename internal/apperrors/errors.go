package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// Authentication errors. The first three are security sensitive and are always
// rendered with a generic message at the HTTP boundary.
var (
	// ErrInvalidCredentials covers unknown email, OAuth-only accounts and wrong passwords.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrTokenInvalid covers expired, malformed and badly signed access tokens.
	ErrTokenInvalid = errors.New("could not validate credentials")

	// ErrSessionNotFound covers refresh tokens that were never issued, expired or were revoked.
	ErrSessionNotFound = errors.New("session not found")

	// ErrDuplicateAccount is returned when registering an email that is already taken.
	ErrDuplicateAccount = fmt.Errorf("the user with this email already exists in the system: %w", ErrDuplicate)

	// ErrTokenGeneration indicates the opaque token generator produced a colliding value.
	ErrTokenGeneration = errors.New("failed to generate a unique token")
)

// AppError carries an HTTP status code together with a client-safe message.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewServiceUnavailableError returns a 503 AppError.
func NewServiceUnavailableError(message string) *AppError {
	return NewAppError(http.StatusServiceUnavailable, message, nil)
}

// NewGatewayTimeoutError returns a 504 AppError wrapping the upstream failure.
func NewGatewayTimeoutError(message string, err error) *AppError {
	return NewAppError(http.StatusGatewayTimeout, message, err)
}
