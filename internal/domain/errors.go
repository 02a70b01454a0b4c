package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode classifies domain errors so transport layers can map them to
// protocol responses without inspecting message text.
type ErrorCode string

const (
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeInvalidInput        ErrorCode = "INVALID_INPUT"
	CodeValidation          ErrorCode = "VALIDATION_ERROR"
	CodeConstraintViolation ErrorCode = "CONSTRAINT_VIOLATION"
	CodeDatabaseError       ErrorCode = "DATABASE_ERROR"
	CodeInternal            ErrorCode = "INTERNAL_ERROR"
)

// DomainError is the error type services produce. Cause keeps the underlying
// failure for logging; Context carries structured detail that is safe to
// expose to clients.
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause to errors.Is / errors.As chains.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair and returns the error for chaining.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface. The cause is omitted:
// it is logged server-side, never serialized to clients.
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code    ErrorCode              `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    e.Code,
		Message: e.Message,
		Context: e.Context,
	})
}

// NewError creates a DomainError with the given code, message and cause.
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

// NewCategoryNotFoundError reports an unknown category slug.
func NewCategoryNotFoundError(slug string) *DomainError {
	return NewError(CodeNotFound, fmt.Sprintf("category %q not found", slug), nil).WithContext("slug", slug)
}

// NewQuestionNotFoundError reports an unknown question id.
func NewQuestionNotFoundError(id int64) *DomainError {
	return NewError(CodeNotFound, fmt.Sprintf("question %d not found", id), nil).WithContext("id", id)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewConstraintViolationError(message string, cause error) *DomainError {
	return NewError(CodeConstraintViolation, message, cause)
}

func NewDatabaseError(message string, cause error) *DomainError {
	return NewError(CodeDatabaseError, message, cause)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// ValidationError describes a single field-level validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ValidationErrors aggregates the field-level failures of one request.
// It implements error so handlers can return it directly.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, ve := range e {
		parts[i] = ve.Error()
	}
	return strings.Join(parts, "; ")
}

// HasErrors reports whether any field failed validation.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// NewMissingFieldError flags a required field that was absent or empty.
func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

// NewInvalidFormatError flags a field whose value cannot be interpreted.
func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %q", value)}
}

// NewOutOfRangeError flags a field whose size is outside its allowed bounds.
func NewOutOfRangeError(field string, actual, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("must be between %d and %d characters, got %d", min, max, actual)}
}
