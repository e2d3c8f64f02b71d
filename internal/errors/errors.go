// Package errors defines the application error type returned by the HTTP
// surface. The campaign engine itself never returns errors across its public
// API (unknown ids degrade to false/nil results), so the codes here cover the
// request path only.
package errors

import (
	"fmt"
	"net/http"
)

// Code is a machine-readable error code included in API responses.
type Code string

const (
	CodeValidation     Code = "VALIDATION_ERROR"
	CodeNotFound       Code = "NOT_FOUND"
	CodeWebhookInvalid Code = "WEBHOOK_INVALID"
	CodeChannelError   Code = "CHANNEL_ERROR"
	CodeInternal       Code = "INTERNAL_ERROR"
)

// statusByCode maps codes to HTTP statuses. Codes not listed fall back to 500.
var statusByCode = map[Code]int{
	CodeValidation:     http.StatusBadRequest,
	CodeNotFound:       http.StatusNotFound,
	CodeWebhookInvalid: http.StatusUnauthorized,
	CodeChannelError:   http.StatusBadGateway,
}

// Error carries a code, a caller-facing message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two application errors by code, so callers can test for a
// category without holding the exact instance.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// HTTPStatus returns the response status for the error's code.
func (e *Error) HTTPStatus() int {
	if s, ok := statusByCode[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the JSON envelope for API errors.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is the code and message exposed to API callers. The cause is
// deliberately omitted from the response.
type ErrorDetail struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// ToResponse converts the error to its API representation.
func (e *Error) ToResponse() ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: e.Code, Message: e.Message}}
}

// ValidationFailed reports a request the caller must fix.
func ValidationFailed(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// NotFound reports a missing resource by name.
func NotFound(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: resource + " not found"}
}
