package errors

import (
	"errors"
	"fmt"
)

// Common engine errors.
var (
	ErrInsufficientData = errors.New("insufficient historical data")
	ErrInvalidInterval  = errors.New("invalid batch interval")
	ErrInvalidParameter = errors.New("invalid trend parameter")
	ErrInvalidInput     = errors.New("invalid input data")
	ErrInvalidThreshold = errors.New("invalid threshold: min must not exceed max")
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeForecast   ErrorType = "forecast"
	ErrorTypeConfig     ErrorType = "configuration"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError is an application error with a machine-readable type and code.
type AppError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// WithDetails adds details to the error.
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error.
func NewAppError(errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errType,
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with application context.
func WrapError(err error, errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *AppError {
	return NewAppError(ErrorTypeValidation, code, message)
}

// NewForecastError creates a forecast error.
func NewForecastError(code, message string) *AppError {
	return NewAppError(ErrorTypeForecast, code, message)
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *AppError {
	return NewAppError(ErrorTypeConfig, code, message)
}

// NewInternalError creates an internal error.
func NewInternalError(message string) *AppError {
	return NewAppError(ErrorTypeInternal, "INTERNAL_ERROR", message)
}
