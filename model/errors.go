package model

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrCodeInvalidEncoding    ErrorCode = "INVALID_ENCODING"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeUnsupportedBackend ErrorCode = "UNSUPPORTED_BACKEND"
	ErrCodeInternal           ErrorCode = "INTERNAL"
)

// CodedError is a stable error with a machine-readable code and a human message.
//
// Two CodedErrors match under errors.Is when their codes are equal, so callers
// can test against the Err* values below regardless of the message.
type CodedError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`

	cause error
}

var (
	ErrInvalidRequest     = &CodedError{Code: ErrCodeInvalidRequest, Message: "invalid request"}
	ErrInvalidEncoding    = &CodedError{Code: ErrCodeInvalidEncoding, Message: "invalid encoding"}
	ErrNotFound           = &CodedError{Code: ErrCodeNotFound, Message: "not found"}
	ErrUnsupportedBackend = &CodedError{Code: ErrCodeUnsupportedBackend, Message: "unsupported backend"}
	ErrInternal           = &CodedError{Code: ErrCodeInternal, Message: "internal error"}
)

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Is(target error) bool {
	var t *CodedError
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

func (e *CodedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func NewError(code ErrorCode, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

// Errorf builds a CodedError with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *CodedError {
	return &CodedError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches cause to a new CodedError. The cause stays reachable
// through errors.Unwrap but does not change which code the error matches.
func WrapError(code ErrorCode, message string, cause error) *CodedError {
	if cause != nil {
		message = message + ": " + cause.Error()
	}
	return &CodedError{Code: code, Message: message, cause: cause}
}

// CodeOf returns the code carried by err, or ErrCodeInternal when err is not
// a CodedError.
func CodeOf(err error) ErrorCode {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsInvalidEncoding(err error) bool { return errors.Is(err, ErrInvalidEncoding) }
