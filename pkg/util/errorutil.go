package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes rendered in the "code" field of error responses.
const (
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeNotFound             = "NOT_FOUND"
	CodeReferentialConflict  = "REFERENTIAL_CONFLICT"
	CodeConflict             = "CONFLICT"
	CodeBadRequest           = "BAD_REQUEST"
	CodeInternal             = "INTERNAL_ERROR"
)

// CredentialsIncorrect is the only message ever returned for a failed login.
const CredentialsIncorrect = "The credentials provided are incorrect."

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// FieldErrors maps a request field to its human readable messages. Order of
// Fields is the order in which the fields failed.
type FieldErrors struct {
	Fields   []string
	Messages map[string][]string
}

// Add appends a message for field.
func (f *FieldErrors) Add(field, message string) {
	if f.Messages == nil {
		f.Messages = make(map[string][]string)
	}
	if _, seen := f.Messages[field]; !seen {
		f.Fields = append(f.Fields, field)
	}
	f.Messages[field] = append(f.Messages[field], message)
}

// Has reports whether field already failed.
func (f *FieldErrors) Has(field string) bool {
	_, ok := f.Messages[field]
	return ok
}

// Empty reports whether no field failed.
func (f *FieldErrors) Empty() bool {
	return len(f.Fields) == 0
}

// First returns the first message of the first failing field.
func (f *FieldErrors) First() string {
	if f.Empty() {
		return ""
	}
	return f.Messages[f.Fields[0]][0]
}

// Err converts the collected messages into a validation DomainError, or nil.
func (f *FieldErrors) Err() error {
	if f.Empty() {
		return nil
	}
	details := make(map[string]any, len(f.Fields))
	for _, field := range f.Fields {
		details[field] = f.Messages[field]
	}
	return NewValidationError(f.First(), details)
}

// NewValidationError reports field level failures; details maps field name to []string.
func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusUnprocessableEntity, details)
}

// NewFieldError is a shortcut for a validation failure on a single field.
func NewFieldError(field, message string) error {
	var f FieldErrors
	f.Add(field, message)
	return f.Err()
}

// NewAuthenticationFailed never says which of the credentials was wrong.
func NewAuthenticationFailed() error {
	return NewDomainError(CodeAuthenticationFailed, CredentialsIncorrect, http.StatusUnauthorized,
		map[string]any{"email": []string{CredentialsIncorrect}})
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewBadRequest(message string) error {
	return NewDomainError(CodeBadRequest, message, http.StatusBadRequest, nil)
}

// NewReferentialConflict is returned when a parent record still has dependents.
func NewReferentialConflict(message string, details map[string]any) error {
	return NewDomainError(CodeReferentialConflict, message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// FromStatus builds a DomainError for transport level failures such as an
// unknown route.
func FromStatus(status int, message string) *DomainError {
	code := CodeInternal
	switch status {
	case http.StatusBadRequest:
		code = CodeBadRequest
	case http.StatusUnauthorized:
		code = CodeUnauthorized
	case http.StatusForbidden:
		code = CodeForbidden
	case http.StatusNotFound:
		code = CodeNotFound
	case http.StatusConflict:
		code = CodeConflict
	case http.StatusUnprocessableEntity:
		code = CodeValidationFailed
	default:
		if status < http.StatusInternalServerError {
			code = CodeBadRequest
		}
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return NewDomainError(code, message, status, nil)
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
