package api

import (
	"errors"
	"fmt"
)

const (
	CodeInvalidReply = -1
	CodeInvalidValue = -2
	CodeFailedAuth   = -32602
)

// Error is raised for a bad reply from the server, an error object in the reply,
// or a value that fails local validation.
type Error struct {
	Code    int
	Message string
	Data    any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s: %v", e.Code, e.Message, e.Data)
}

// Is matches on code and message, so the well-known errors below work with errors.Is
// regardless of the detail payload.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

var (
	ErrEmptyReply   = &Error{Code: CodeInvalidReply, Message: "empty reply"}
	ErrInvalidJSON  = &Error{Code: CodeInvalidReply, Message: "invalid json"}
	ErrReadOnly     = &Error{Code: CodeInvalidValue, Message: "read-only property"}
	ErrInvalidType  = &Error{Code: CodeInvalidValue, Message: "invalid type"}
	ErrInvalidValue = &Error{Code: CodeInvalidValue, Message: "invalid value"}

	EmptyReply = func() *Error {
		return &Error{Code: CodeInvalidReply, Message: ErrEmptyReply.Message, Data: ""}
	}
	InvalidJSON = func(body string) *Error {
		return &Error{Code: CodeInvalidReply, Message: ErrInvalidJSON.Message, Data: body}
	}
	ReadOnly = func(current any) *Error {
		return &Error{Code: CodeInvalidValue, Message: ErrReadOnly.Message, Data: fmt.Sprintf("already defined as: %v", current)}
	}
	InvalidType = func(name string, val any, kind fmt.Stringer) *Error {
		return &Error{Code: CodeInvalidValue, Message: ErrInvalidType.Message, Data: fmt.Sprintf("%s: %v is not a %s", name, val, kind)}
	}
	InvalidValue = func(format string, args ...any) *Error {
		return &Error{Code: CodeInvalidValue, Message: ErrInvalidValue.Message, Data: fmt.Sprintf(format, args...)}
	}
)

// Code returns the code carried by err, or 0 when err is not an *Error.
func Code(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	return Code(err) == CodeInvalidValue
}

// IsProtocol reports whether err came from the server or the reply, as opposed to
// local validation.
func IsProtocol(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code != CodeInvalidValue
}
