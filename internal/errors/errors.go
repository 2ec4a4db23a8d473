package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidIdentifier is returned when an id is not a well-formed identifier.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrNotFound is returned when no record matches a lookup or update.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write collides with existing state, e.g. a duplicate booking.
	ErrConflict = errors.New("conflict with existing record")
	// ErrUpstream is returned when the store or a gateway cannot be reached.
	ErrUpstream = errors.New("upstream service unavailable")
	// ErrInvalidAmount is returned when amount is invalid.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidVote is returned for a vote type other than up or down.
	ErrInvalidVote = errors.New("invalid vote type")
	// ErrInvalidRole is returned for an unknown user role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidTransition is returned when a trainer application cannot move to the requested status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidStatus is returned when an operation requires a different application status.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidInput is returned when required fields are missing.
	ErrInvalidInput = errors.New("invalid input")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors, including wrapped ones, to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidIdentifier):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_IDENTIFIER")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONFLICT")
	case errors.Is(err, ErrUpstream):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "UPSTREAM_FAILURE")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case errors.Is(err, ErrInvalidVote):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_VOTE")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusConflict, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
