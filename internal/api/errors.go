package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error represents an API error response.
type Error struct {
	// StatusCode is the HTTP status code.
	StatusCode int `json:"-"`
	// Code is the error code (e.g., "unauthorized", "not_found").
	Code string `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional error details.
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// IsUnauthorized returns true if the error is an authentication error.
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.Code == "unauthorized"
}

// IsForbidden returns true if the error is a permission error.
func (e *Error) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden || e.Code == "forbidden"
}

// IsNotFound returns true if the error is a not found error.
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.Code == "not_found"
}

// IsValidationError returns true if the error is a validation error.
func (e *Error) IsValidationError() bool {
	return e.StatusCode == http.StatusBadRequest || e.Code == "validation_error"
}

// parseError parses an error response from the API. The backend's auth
// endpoints answer with a bare {"message": "..."} object; other services
// wrap the same fields under an "error" key.
func parseError(statusCode int, body []byte) error {
	var wrapped struct {
		Error struct {
			Code    string                 `json:"code"`
			Message string                 `json:"message"`
			Details map[string]interface{} `json:"details,omitempty"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Error.Message != "" {
		return &Error{
			StatusCode: statusCode,
			Code:       wrapped.Error.Code,
			Message:    wrapped.Error.Message,
			Details:    wrapped.Error.Details,
		}
	}

	var simple struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &simple); err == nil && simple.Message != "" {
		return &Error{
			StatusCode: statusCode,
			Code:       simple.Code,
			Message:    simple.Message,
		}
	}

	return &Error{
		StatusCode: statusCode,
		Code:       http.StatusText(statusCode),
		Message:    string(body),
	}
}

// AsAPIError checks if an error is an API error and returns it.
func AsAPIError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// ErrorMessage extracts the backend-provided message from err, falling
// back to the given default for transport and decode failures.
func ErrorMessage(err error, fallback string) string {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
