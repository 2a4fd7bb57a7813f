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

// ErrUnauthorized indicates a request without acceptable proof of identity.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates an authenticated caller acting on a resource it does not own.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidCredentials indicates a password mismatch on login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidOTP indicates a registration OTP that does not match the issued one.
var ErrInvalidOTP = errors.New("invalid otp")

// ErrInvalidOrExpiredOTP indicates a password-reset OTP that does not match or is past its validity window.
var ErrInvalidOrExpiredOTP = errors.New("invalid or expired otp")

// AppError carries an HTTP status code alongside the underlying cause, for
// layers that already know how a failure should surface.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
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

// NewAppError creates an AppError with an explicit status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message}
}

func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message}
}
