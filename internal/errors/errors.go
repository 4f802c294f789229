package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// Pipeline error kinds. InvalidImageFormat and InvalidIntensity abort a
	// run; InsufficientImageData is recoverable (the run still produces a
	// report flagged insufficient for identification).
	ErrorTypeInvalidImageFormat    ErrorType = "invalid_image_format"
	ErrorTypeInvalidIntensity      ErrorType = "invalid_intensity"
	ErrorTypeInsufficientImageData ErrorType = "insufficient_image_data"

	// Service-boundary error kinds.
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents a structured application error. Stage names the
// pipeline stage that failed and Value carries the offending input, so the
// caller can report a precise diagnostic.
type AppError struct {
	Type       ErrorType `json:"type"`
	Stage      string    `json:"stage,omitempty"`
	Message    string    `json:"message"`
	Value      string    `json:"value,omitempty"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := string(e.Type)
	if e.Stage != "" {
		msg += " [" + e.Stage + "]"
	}
	msg += ": " + e.Message
	if e.Value != "" {
		msg += fmt.Sprintf(" (value: %s)", e.Value)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewInvalidImageFormatError reports input bytes that do not parse as a
// supported image, or an image with zero dimensions.
func NewInvalidImageFormatError(stage, message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidImageFormat,
		Stage:      stage,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewInvalidIntensityError reports a degradation intensity outside [0,1].
func NewInvalidIntensityError(stage string, intensity float64) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidIntensity,
		Stage:      stage,
		Message:    "degradation intensity must lie in [0,1]",
		Value:      fmt.Sprintf("%g", intensity),
		StatusCode: http.StatusBadRequest,
	}
}

// NewInsufficientImageDataError reports an image too small for tooth
// detection.
func NewInsufficientImageDataError(stage string, width, height int) *AppError {
	return &AppError{
		Type:       ErrorTypeInsufficientImageData,
		Stage:      stage,
		Message:    "image is below the minimum size for tooth detection",
		Value:      fmt.Sprintf("%dx%d", width, height),
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
