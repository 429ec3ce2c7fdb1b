// Package apperrors defines the closed set of domain error kinds and the
// single place where they are mapped onto HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Kind int

const (
	KindValidation Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

// statusByKind is the only place error kinds become HTTP statuses.
var statusByKind = map[Kind]int{
	KindValidation:   http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
	KindForbidden:    http.StatusForbidden,
	KindNotFound:     http.StatusNotFound,
	KindConflict:     http.StatusConflict,
	KindInternal:     http.StatusInternalServerError,
}

// Error is a domain error with a machine-readable code and a message safe
// to return to the client.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	// Err holds the underlying cause for logging; never sent to clients.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int {
	if status, ok := statusByKind[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Newf(kind Kind, code, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validation error codes used across the entity validators.
const (
	CodeMissingFields    = "missing_fields"
	CodeInvalidFieldType = "invalid_field_type"
	CodeInvalidValue     = "invalid_value"
	CodeEmptyField       = "empty_field"
	CodeNoFieldsProvided = "no_fields_provided"
	CodeInvalidReference = "invalid_reference"
	CodeWeakPassword     = "weak_password"
	CodeInvalidEmail     = "invalid_email"
)

const (
	CodeInvalidCredentials = "invalid_credentials"
	CodeTokenInvalid       = "token_invalid"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeEmailTaken         = "email_taken"
	CodeHasDependents      = "has_dependents"
	CodeInternal           = "internal_error"
)

// Internal wraps an unexpected failure (usually a store error) behind a
// generic client message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: "Internal server error", Err: err}
}

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: entity + " not found"}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Code: CodeForbidden, Message: message}
}

// Respond writes err to the client, logging internal causes. Non-domain
// errors are treated as internal.
func Respond(ctx *gin.Context, err error) {
	var appErr *Error

	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}

	if appErr.Kind == KindInternal {
		log.Printf("internal error: %v", appErr)
	}

	ctx.JSON(appErr.Status(), gin.H{"error": appErr.Message, "code": appErr.Code})
}
