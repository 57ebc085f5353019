// Package errors provides coded errors for cmdmail. Codes are stable and
// meant for tests and for mapping failures to exit behaviour in the CLI.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Rendering errors
	ErrInvalidThresholds ErrorCode = "INVALID_THRESHOLDS"

	// Execution errors
	ErrCommandStart ErrorCode = "COMMAND_START"
	ErrInputRead    ErrorCode = "INPUT_READ"

	// Delivery errors
	ErrMailSend ErrorCode = "MAIL_SEND"

	// FileSystem errors
	ErrFileWrite ErrorCode = "FILE_WRITE"
)

// CmdmailError is a structured error with a code and optional details
type CmdmailError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *CmdmailError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *CmdmailError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a CmdmailError carrying the same code.
func (e *CmdmailError) Is(target error) bool {
	var targetErr *CmdmailError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CmdmailError with the given code and message
func New(code ErrorCode, message string) *CmdmailError {
	return &CmdmailError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CmdmailError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CmdmailError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code and message. It returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *CmdmailError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CmdmailError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *CmdmailError) WithDetail(key string, value interface{}) *CmdmailError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var cmErr *CmdmailError
	if errors.As(err, &cmErr) {
		return cmErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CmdmailError
func GetErrorCode(err error) ErrorCode {
	var cmErr *CmdmailError
	if errors.As(err, &cmErr) {
		return cmErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a CmdmailError
func GetErrorDetails(err error) map[string]interface{} {
	var cmErr *CmdmailError
	if errors.As(err, &cmErr) {
		return cmErr.Details
	}
	return nil
}
