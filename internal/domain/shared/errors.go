package shared

import (
	"errors"
	"fmt"
)

// DomainError is a business rule violation with a stable machine readable
// code. Handlers map codes to HTTP statuses; the message is safe to show.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError builds a DomainError with the given code and message
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Errors shared across domains. Domain packages define their own codes for
// rules that belong to a single aggregate.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
)

// RetryableError wraps an error that the caller is expected to retry,
// typically a lock-acquisition timeout or serialization failure on the
// requisition closure lock. The enclosing transaction must be retried
// as a whole, never resumed.
type RetryableError struct {
	Cause error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.Cause)
}

func (e *RetryableError) Unwrap() error {
	return e.Cause
}

// NewRetryableError wraps err as a retryable failure
func NewRetryableError(err error) *RetryableError {
	return &RetryableError{Cause: err}
}

// IsRetryable reports whether err is (or wraps) a RetryableError
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}
