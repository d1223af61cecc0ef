package errors

import (
	"errors"
	"net/http"
)

// Error messages double as the wire-level detail strings, so they keep the
// exact phrasing the API always exposed.
var (
	// ErrInvalidPayload is returned when a request body is malformed or
	// missing required fields.
	ErrInvalidPayload = errors.New("Invalid request data")
	// ErrUserAlreadyExists is returned when a user email is already taken.
	ErrUserAlreadyExists = errors.New("User already exists")
	// ErrUserNotFound is returned when a task references a user id that
	// does not resolve.
	ErrUserNotFound = errors.New("User not exists")
	// ErrTaskNotFound is returned when a task id does not resolve.
	ErrTaskNotFound = errors.New("Task not found")
	// ErrInvalidStatusCode is returned when a status code is outside {0,1,2}.
	ErrInvalidStatusCode = errors.New("Invalid status code")
	// ErrTaskOwnerMissing signals a persisted task whose owner row is gone.
	// Internal inconsistency, never surfaced to callers verbatim.
	ErrTaskOwnerMissing = errors.New("task owner missing")
)

// ErrorResponse is the standardized error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Detail     string
}

func (e *HTTPError) Error() string {
	return e.Detail
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, detail string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Detail:     detail,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Detail: e.Detail}
}

// MapErrorToHTTP maps domain errors to HTTP errors. All caller-input errors
// surface as 400 with a readable detail; anything else is an opaque 500.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidPayload),
		errors.Is(err, ErrUserAlreadyExists),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrTaskNotFound),
		errors.Is(err, ErrInvalidStatusCode):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
