package errors

import (
	"fmt"
	"net/http"
)

// StandardError is the error envelope returned to HTTP clients.
type StandardError struct {
	Code    string `json:"error"`   // Error code/type (e.g., "InvalidRequest", "ItemNotFound")
	Message string `json:"message"` // Human-readable error message
	Details string `json:"details"` // Additional details (field name, resource id, etc.)
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case "InvalidRequest", "ValidationError":
		return http.StatusUnprocessableEntity
	case "InvalidArgument":
		return http.StatusBadRequest
	case "ItemNotFound", "CartNotFound", "ResourceNotFound":
		return http.StatusNotFound
	case "NotModified":
		return http.StatusNotModified
	case "Unauthorized":
		return http.StatusUnauthorized
	case "BrokerConnectionError", "ServiceUnavailable":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewStandardError creates a new StandardError
func NewStandardError(errorCode, message, details string) *StandardError {
	return &StandardError{
		Code:    errorCode,
		Message: message,
		Details: details,
	}
}

// Common error constructors

// NewValidationError reports a request that failed boundary validation
// (malformed or missing input); it maps to 422.
func NewValidationError(message, field string) *StandardError {
	return NewStandardError("ValidationError", message, fmt.Sprintf("Field: %s", field))
}

// NewInvalidArgument reports a well-formed but unusable value (maps to 400).
func NewInvalidArgument(message, details string) *StandardError {
	return NewStandardError("InvalidArgument", message, details)
}

func NewItemNotFound(itemID int64) *StandardError {
	return NewStandardError("ItemNotFound", "item not found", fmt.Sprintf("Item ID: %d", itemID))
}

func NewCartNotFound(cartID int64) *StandardError {
	return NewStandardError("CartNotFound", "cart not found", fmt.Sprintf("Cart ID: %d", cartID))
}

func NewInternalError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError("InternalError", message, details)
}
