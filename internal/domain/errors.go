package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	ErrValidation      ErrorCode = "VALIDATION_ERROR"
	ErrNotFound        ErrorCode = "NOT_FOUND"
	ErrUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrConflict        ErrorCode = "CONFLICT"
	ErrLLMService      ErrorCode = "LLM_SERVICE_ERROR"
	ErrExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrInternal        ErrorCode = "INTERNAL_ERROR"
)

// DomainError represents a domain-specific error. Field is set for
// validation failures so clients can see which input was rejected.
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Err     error     `json:"-"`
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

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Field:   e.Field,
	})
}

func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewValidationError(field, message string) *DomainError {
	return &DomainError{Code: ErrValidation, Message: message, Field: field}
}

// NewMissingFieldError reports the first absent required field of a request.
func NewMissingFieldError(field string) *DomainError {
	return NewValidationError(field, fmt.Sprintf("Missing required field: %s", field))
}

func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(ErrUnauthorized, message, nil)
}

func NewConflictError(message string) *DomainError {
	return NewError(ErrConflict, message, nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMService, "Failed to process with LLM service", err)
}

func NewExternalServiceError(message string, err error) *DomainError {
	return NewError(ErrExternalService, message, err)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

// SkippableReferenceError marks a reference inside a batch that no longer
// resolves. Callers drop the single record and keep going.
type SkippableReferenceError struct {
	Entity string
	ID     string
}

func (e *SkippableReferenceError) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Entity, e.ID)
}

// IsErrorCode reports whether err is a DomainError carrying code.
func IsErrorCode(err error, code ErrorCode) bool {
	de, ok := AsDomainError(err)
	return ok && de.Code == code
}

// AsDomainError unwraps err looking for a *DomainError.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
