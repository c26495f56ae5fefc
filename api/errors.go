// Package api
// License: Apache-2.0
//
// Common error types and error handling utilities for the anellus library.

package api

import "fmt"

// Transient precondition failures returned by Ring operations. Both mean
// "not now", never "not ever": capacity is fixed for the life of a ring,
// so neither condition escalates.
var (
	ErrEmpty = fmt.Errorf("ring is empty")
	ErrFull  = fmt.Errorf("ring is full")
)

// ErrorCode classifies verification failures reported by collaborators
// such as the harness package.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeCountMismatch
	ErrCodeOrderViolation
	ErrCodeDuplicateValue
	ErrCodeStalled
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
