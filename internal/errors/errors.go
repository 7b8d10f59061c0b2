package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is or wraps an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the code of the outermost AppError in the chain, or "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeNotFound         = "NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeTransport        = "TRANSPORT_ERROR"
	CodeEmptyResult      = "EMPTY_RESULT"
	CodeMalformedPayload = "MALFORMED_PAYLOAD"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// Transport reports a failure reaching or reading the pharmacy API.
func Transport(message string, cause error) *AppError {
	return &AppError{
		Code:    CodeTransport,
		Message: message,
		Cause:   cause,
	}
}

// EmptyResult reports an API answer whose estado is not "exito". message is the
// API-supplied mensaje and may be empty.
func EmptyResult(message string) *AppError {
	return New(CodeEmptyResult, message)
}

func MalformedPayload(message string) *AppError {
	return New(CodeMalformedPayload, message)
}

// IsTransport reports whether err carries CodeTransport.
func IsTransport(err error) bool {
	return GetCode(err) == CodeTransport
}

// IsEmptyResult reports whether err carries CodeEmptyResult.
func IsEmptyResult(err error) bool {
	return GetCode(err) == CodeEmptyResult
}

// IsNotFound reports whether err carries CodeNotFound.
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// Message returns the message of the innermost AppError, which is the one a
// user should see, or err.Error() for foreign errors.
func Message(err error) string {
	var last *AppError
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		if appErr, ok := e.(*AppError); ok {
			last = appErr
		}
	}
	if last == nil {
		if err == nil {
			return ""
		}
		return err.Error()
	}
	return last.Message
}
