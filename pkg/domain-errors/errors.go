// Package domainerrors defines the error taxonomy shared by services and the
// HTTP layer. Each Code maps to exactly one HTTP status and one errorMap entry.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code is the stable, client-facing error code.
type Code string

const (
	CodeUnauthenticated      Code = "unauthenticated"
	CodeNotAuthorized        Code = "notAuthorized"
	CodeInsufficientListRole Code = "insufficientListRole"
	CodeInvalidID            Code = "invalidId"
	CodeValidation           Code = "validationFailed"
	CodeBadRequest           Code = "badRequest"
	CodeListNotFound         Code = "listNotFound"
	CodeItemNotFound         Code = "itemNotFound"
	CodeMembershipExists     Code = "membershipAlreadyExists"
	CodeMembershipMissing    Code = "memberNotFoundOnList"
	CodeRateLimited          Code = "rateLimited"
	CodeInternal             Code = "internalError"
)

// Error is a coded domain error. Details is optional structured context
// (for example per-field validation violations).
type Error struct {
	Code    Code
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// From extracts the outermost *Error from err's chain.
func From(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	de, ok := From(err)
	return ok && de.Code == code
}

// Is is an alias of HasCode kept for call-site readability.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNotAuthorized, CodeInsufficientListRole:
		return http.StatusForbidden
	case CodeInvalidID, CodeValidation, CodeBadRequest, CodeMembershipExists, CodeMembershipMissing:
		return http.StatusBadRequest
	case CodeListNotFound, CodeItemNotFound:
		return http.StatusNotFound
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
