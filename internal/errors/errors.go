// Package errors defines stable error codes for every failure mode the
// resolution engine and its surfaces can report.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode is a stable machine-readable failure identifier.
type ErrorCode string

const (
	// NoCandidates indicates no panes were available, or none remained
	// after session scoping or scoring. Fatal to the call, never retried.
	NoCandidates ErrorCode = "NO_CANDIDATES"
	// InvalidFeedback indicates a malformed feedback record at a request
	// boundary.
	InvalidFeedback ErrorCode = "INVALID_FEEDBACK"
	// MultiplexerUnavailable indicates the terminal multiplexer could not
	// be reached for pane enumeration.
	MultiplexerUnavailable ErrorCode = "MULTIPLEXER_UNAVAILABLE"
	// InvalidParameter indicates a malformed request parameter.
	InvalidParameter ErrorCode = "INVALID_PARAMETER"
	// Internal indicates an unexpected error.
	Internal ErrorCode = "INTERNAL_ERROR"
)

// Error carries a code, a human-readable message and an optional cause.
type Error struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error
}

// New creates an Error with the given code and message.
func New(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails attaches structured details to the error.
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// NewNoCandidatesError reports an empty candidate set. stage names where
// the set emptied out: "source", "scoping" or "scoring".
func NewNoCandidatesError(stage string) *Error {
	return New(NoCandidates, fmt.Sprintf("no candidate panes after %s", stage), nil)
}

// NewInvalidFeedbackError reports a malformed feedback record.
func NewInvalidFeedbackError(reason string) *Error {
	return New(InvalidFeedback, "invalid feedback record: "+reason, nil)
}

// NewMultiplexerError wraps a pane enumeration failure.
func NewMultiplexerError(cause error) *Error {
	return New(MultiplexerUnavailable, "terminal multiplexer unreachable", cause)
}

// NewInvalidParameterError reports a bad request parameter.
func NewInvalidParameterError(name, reason string) *Error {
	msg := "invalid parameter '" + name + "'"
	if reason != "" {
		msg += ": " + reason
	}
	return New(InvalidParameter, msg, nil)
}

// HasCode reports whether err (or anything it wraps) carries the code.
func HasCode(err error, code ErrorCode) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code == code
	}
	return false
}
