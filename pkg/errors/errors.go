// Package errors provides structured error types for the biograph core.
//
// This package defines the error taxonomy shared by the cache, index, and
// query layers:
//   - NOT_FOUND*: an identifier lookup missed (unknown network, node, edge)
//   - LOAD_FAILED: the network store could not produce a graph; isolated
//     per network and never fatal to a batch operation
//   - INVALID_*: configuration errors (unrecognized seed method, malformed
//     seed data) that are surfaced immediately
//   - INTERNAL_ERROR: unexpected internal failures
//
// A query that legitimately matches nothing is NOT an error in this
// taxonomy; the subgraph package signals that with its own no-result
// sentinel so callers can tell "empty graph" from "nothing matched".
//
// # Usage
//
//	err := errors.New(errors.CodeNotFound, "network %d is not cached", id)
//	if errors.Is(err, errors.CodeNotFound) {
//	    // handle unknown id
//	}
//
//	// Wrap collaborator failures
//	err := errors.Wrap(errors.CodeLoadFailed, storeErr, "load network %d", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the cache and query layers.
const (
	// Lookup failures
	CodeNotFound        Code = "NOT_FOUND"
	CodeNetworkNotFound Code = "NOT_FOUND_NETWORK"

	// Store failures
	CodeLoadFailed Code = "LOAD_FAILED"

	// Configuration errors
	CodeInvalidSeed       Code = "INVALID_SEED"
	CodeInvalidSeedData   Code = "INVALID_SEED_DATA"
	CodeInvalidAnnotation Code = "INVALID_ANNOTATION"
	CodeInvalidConfig     Code = "INVALID_CONFIG"

	// Internal errors
	CodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether any error in the chain carries the given code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns the empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
