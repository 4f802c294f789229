package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestErrorMessageComposition(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := NewInvalidImageFormatError("codec", "image does not parse", cause)

	msg := err.Error()
	for _, part := range []string{"invalid_image_format", "[codec]", "image does not parse", "unexpected EOF"} {
		if !strings.Contains(msg, part) {
			t.Errorf("Error message %q missing %q", msg, part)
		}
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap chain lost the cause")
	}
}

func TestConstructorsSetStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		errType  ErrorType
		expected int
	}{
		{"invalid format", NewInvalidImageFormatError("codec", "bad", nil), ErrorTypeInvalidImageFormat, http.StatusBadRequest},
		{"invalid intensity", NewInvalidIntensityError("degradation", 1.5), ErrorTypeInvalidIntensity, http.StatusBadRequest},
		{"insufficient data", NewInsufficientImageDataError("detection", 32, 32), ErrorTypeInsufficientImageData, http.StatusUnprocessableEntity},
		{"validation", NewValidationError("bad request", nil), ErrorTypeValidation, http.StatusBadRequest},
		{"network", NewNetworkError("unreachable", nil), ErrorTypeNetwork, http.StatusBadGateway},
		{"not found", NewNotFoundError("missing", nil), ErrorTypeNotFound, http.StatusNotFound},
		{"internal", NewInternalError("boom", nil), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Type != tt.errType {
				t.Errorf("Expected type %s, got %s", tt.errType, tt.err.Type)
			}
			if tt.err.StatusCode != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, tt.err.StatusCode)
			}
			if !IsType(tt.err, tt.errType) {
				t.Error("IsType failed to match")
			}
		})
	}
}

func TestIsTypeOnForeignError(t *testing.T) {
	if IsType(errors.New("plain"), ErrorTypeInternal) {
		t.Error("IsType matched a non-AppError")
	}
}

func TestGetStatusCode(t *testing.T) {
	if got := GetStatusCode(NewNotFoundError("missing", nil)); got != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", got)
	}
	if got := GetStatusCode(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("Expected 500 for unknown error, got %d", got)
	}
}

func TestInvalidIntensityCarriesValue(t *testing.T) {
	err := NewInvalidIntensityError("degradation", 1.5)
	if err.Value != "1.5" {
		t.Errorf("Expected value 1.5, got %q", err.Value)
	}
	if err.Stage != "degradation" {
		t.Errorf("Expected stage degradation, got %q", err.Stage)
	}
}
