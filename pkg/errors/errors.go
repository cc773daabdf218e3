package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the analytics core.
var (
	ErrInsufficientHistory = errors.New("insufficient historical data")
	ErrDegenerateInput     = errors.New("degenerate statistical input")
	ErrInvalidInput        = errors.New("invalid input data")
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeStatistical ErrorType = "statistical"
	ErrorTypeInternal    ErrorType = "internal"
)

// Error codes used across the analytics core.
const (
	CodeInsufficientHistory = "INSUFFICIENT_HISTORY"
	CodeDegenerateInput     = "DEGENERATE_INPUT"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeInternalError       = "INTERNAL_ERROR"
)

// AppError is an application error with a typed code and optional context.
type AppError struct {
	Type    ErrorType              `json:"type"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
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
		return errors.Is(e.Cause, target)
	}
	return e.Type == t.Type && e.Code == t.Code
}

// WithContext adds context to the error.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
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

// NewInsufficientHistoryError reports fewer data points than the statistical
// minimum for an operation.
func NewInsufficientHistoryError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeStatistical,
		Code:    CodeInsufficientHistory,
		Message: message,
		Cause:   ErrInsufficientHistory,
	}
}

// NewDegenerateInputError reports input on which a statistical result is
// undefined (zero variance, zero denominator, division by zero).
func NewDegenerateInputError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeStatistical,
		Code:    CodeDegenerateInput,
		Message: message,
		Cause:   ErrDegenerateInput,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *AppError {
	return NewAppError(ErrorTypeValidation, code, message)
}

// NewInternalError creates an internal error.
func NewInternalError(message string) *AppError {
	return NewAppError(ErrorTypeInternal, CodeInternalError, message)
}

// IsInsufficientHistory reports whether err is an insufficient-history error.
func IsInsufficientHistory(err error) bool {
	return errors.Is(err, ErrInsufficientHistory)
}

// IsDegenerateInput reports whether err is a degenerate-input error.
func IsDegenerateInput(err error) bool {
	return errors.Is(err, ErrDegenerateInput)
}
