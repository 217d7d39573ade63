package model

import (
	"errors"
	"fmt"
)

// Stable machine-readable error codes. HTTP errors decoded from the processor
// keep the processor's own code (e.g. "ebt_error_55") instead of these.
const (
	CodeTransportFailure = "transport_failure"
	CodeHTTPError        = "http_error"
	CodeDecodeFailure    = "decode_failure"
	CodeIncompletePin    = "incomplete_pin"
	CodePollTimeout      = "poll_timeout"
	CodeIllegalState     = "illegal_state"
)

// ForageError is the only error type returned through the SDK's public
// surface. Status is the originating HTTP status code, or 0 for failures that
// never produced a response.
type ForageError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ForageError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

var (
	ErrIncompletePin = &ForageError{
		Status:  400,
		Code:    CodeIncompletePin,
		Message: "PIN entry is incomplete; 4 digits are required before submitting",
	}
	ErrPollTimeout = &ForageError{
		Status:  504,
		Code:    CodePollTimeout,
		Message: "timed out waiting for the operation to finish; it may still complete server-side",
	}
)

// NewTransportError wraps a network/connection-level failure that never
// produced an HTTP response.
func NewTransportError(err error) *ForageError {
	return &ForageError{Code: CodeTransportFailure, Message: err.Error()}
}

// NewHTTPError builds the error for a non-2xx processor or vault response.
func NewHTTPError(status int, code, message string) *ForageError {
	if code == "" {
		code = CodeHTTPError
	}
	return &ForageError{Status: status, Code: code, Message: message}
}

// NewDecodeError builds the error for a missing or undecodable response body.
func NewDecodeError(status int) *ForageError {
	return &ForageError{Status: status, Code: CodeDecodeFailure, Message: "could not decode payload"}
}

// ErrorCode extracts the ForageError code from err, or "" if err is not a
// ForageError.
func ErrorCode(err error) string {
	var fe *ForageError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// ErrorResponse is the processor's structured error body.
type ErrorResponse struct {
	Path   string           `json:"path"`
	Errors []ErrorResponseObj `json:"errors"`
}

type ErrorResponseObj struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Source  *ErrorSource `json:"source,omitempty"`
}

type ErrorSource struct {
	Resource string `json:"resource"`
	Ref      string `json:"ref"`
}

// First returns the leading error object, if any.
func (r *ErrorResponse) First() *ErrorResponseObj {
	if len(r.Errors) == 0 {
		return nil
	}
	return &r.Errors[0]
}
