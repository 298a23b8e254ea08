package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors and their HTTP rendering.
type DomainError struct {
	StatusCode int
	ErrorType  string
	Message    string
	Details    []string
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
func NewDomainError(status int, errorType, message string) *DomainError {
	return &DomainError{StatusCode: status, ErrorType: errorType, Message: message}
}

// NewValidationError reports rejected input with per-field messages.
func NewValidationError(details []string) error {
	return &DomainError{
		StatusCode: http.StatusBadRequest,
		ErrorType:  "Bad Request",
		Message:    "Validation failed",
		Details:    details,
	}
}

func NewBadRequest(message string) error {
	return NewDomainError(http.StatusBadRequest, "Bad Request", message)
}

func NewUnauthorized(message string) error {
	return NewDomainError(http.StatusUnauthorized, "Unauthorized", message)
}

func NewConflict(message string) error {
	return NewDomainError(http.StatusConflict, "Conflict", message)
}

func NewInternalError(err error) error {
	return &DomainError{
		StatusCode: http.StatusInternalServerError,
		ErrorType:  "Internal Server Error",
		Message:    "Internal server error",
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
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		StatusCode: http.StatusInternalServerError,
		ErrorType:  "Internal Server Error",
		Message:    "Internal server error",
		Err:        err,
	}
}
