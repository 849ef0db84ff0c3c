package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an error so callers can branch on the kind of failure
// without knowing the domain it came from.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// defaultStatus maps a Type to the HTTP status used when none was registered
var defaultStatus = map[Type]int{
	TypeValidation:    http.StatusBadRequest,
	TypeNotFound:      http.StatusNotFound,
	TypeConflict:      http.StatusConflict,
	TypeAuthorization: http.StatusForbidden,
	TypeBusiness:      http.StatusUnprocessableEntity,
	TypeInternal:      http.StatusInternalServerError,
	TypeExternal:      http.StatusBadGateway,
}

// Error is the typed error returned across layer boundaries
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	HTTPStatus int            `json:"-"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

// New creates an untyped-code error of the given type
func New(message string, t Type) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		HTTPStatus: statusFor(t),
		Message:    message,
	}
}

// Wrap attaches context to err. When err already carries an *Error its
// code, type and status are kept and only the message is prefixed, so a
// NotFound raised by a repository stays a NotFound after the service wraps it.
func Wrap(err error, message string, t Type) *Error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return &Error{
			Code:       typed.Code,
			Type:       typed.Type,
			HTTPStatus: typed.HTTPStatus,
			Message:    message + ": " + typed.Message,
			Details:    copyDetails(typed.Details),
			Cause:      err,
		}
	}

	return &Error{
		Code:       string(t),
		Type:       t,
		HTTPStatus: statusFor(t),
		Message:    message,
		Cause:      err,
	}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error with the same code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail adds a key/value pair to the error details
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause records the underlying error
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// ToHTTPResponse renders the error body sent to API clients
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   e.Message,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// IsType reports whether any error in err's chain is an *Error of type t
func IsType(err error, t Type) bool {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Type == t
	}
	return false
}

// IsCode reports whether any error in err's chain carries the given code
func IsCode(err error, code Code) bool {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Code == string(code)
	}
	return false
}

// TypeOf returns the type of the first *Error in err's chain, or TypeInternal
func TypeOf(err error) Type {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Type
	}
	return TypeInternal
}

func statusFor(t Type) int {
	if s, ok := defaultStatus[t]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func copyDetails(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
