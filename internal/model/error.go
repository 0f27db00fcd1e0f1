package model

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorKind identifies one of the closed set of failure kinds the API reports.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindConflict   ErrorKind = "CONFLICT"
	KindValidation ErrorKind = "VALIDATION_FAILED"
	KindUnexpected ErrorKind = "UNEXPECTED"
)

// UnexpectedMessage is the only message callers ever see for unclassified
// failures; the underlying cause is logged server-side and never serialized.
const UnexpectedMessage = "Unexpected error"

// Error is a typed domain failure. Business logic raises it at the point of
// detection; it is rendered into the wire envelope exactly once, in the
// handler layer.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Status maps the failure kind to its HTTP status code. Conflict maps to 400
// rather than 409 to keep the existing wire contract.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// NewNotFound reports that no <resource> with the given id exists.
func NewNotFound(resource string, id int64) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with id=%d not found", resource, id),
	}
}

// NewConflict reports a business-rule conflict such as a duplicate name or a
// guarded deletion.
func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// FieldError is a single request-validation violation.
type FieldError struct {
	Field   string
	Message string
}

// NewValidation joins the violations as field:message pairs separated by ";",
// preserving field-encounter order.
func NewValidation(fields []FieldError) *Error {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Field + ":" + f.Message
	}
	return &Error{Kind: KindValidation, Message: strings.Join(parts, ";")}
}

// NewUnexpected wraps an unclassified failure behind the generic message.
func NewUnexpected(cause error) *Error {
	return &Error{Kind: KindUnexpected, Message: UnexpectedMessage, cause: cause}
}

// ErrorResponse is the canonical error envelope returned to API callers.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// NewErrorResponse renders a typed failure for the given request path.
func NewErrorResponse(err *Error, path string) ErrorResponse {
	status := err.Status()
	return ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   err.Message,
		Path:      path,
	}
}
