// Package errors provides structured errors for serverconfig.
// Every error carries a code for categorization, a message describing what
// failed, and an optional suggestion telling the operator how to recover.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors.
const (
	ErrCatalog   = "CATALOG"   // catalog source unreadable or unparsable
	ErrSelection = "SELECTION" // category index out of range or empty catalog
	ErrInstall   = "INSTALL"   // package manager returned non-zero
	ErrExec      = "EXEC"      // external command could not be run
	ErrConfig    = "CONFIG"    // configuration loading or validation
	ErrSetup     = "SETUP"     // setup task failure
)

// Error is a structured error with code, message, suggestion, and optional cause.
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Newf creates a structured error with a formatted message and no suggestion.
func Newf(code, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with a code and message.
func Wrap(err error, code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// WrapWithSuggestion wraps an existing error with a code, message, and suggestion.
func WrapWithSuggestion(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	if e.Suggestion != "" {
		b.WriteString(" (")
		b.WriteString(e.Suggestion)
		b.WriteString(")")
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var scErr *Error
	if errors.As(err, &scErr) {
		return scErr.Code == code
	}
	return false
}

// CodeOf returns the code of a structured error, or "" for other errors.
func CodeOf(err error) string {
	var scErr *Error
	if errors.As(err, &scErr) {
		return scErr.Code
	}
	return ""
}
