// Package errors provides the coded errors returned across phpgraph.
//
// Every failure the CLI reports carries a [Code] so callers and tests can
// branch on the category without matching message text:
//
//	_, err := g.Lookup(target)
//	if err != nil {
//	    return errors.Wrap(errors.ErrCodeClassNotFound, err, "class %s not found", target)
//	}
//
//	if errors.Is(err, errors.ErrCodeClassNotFound) {
//	    // offer the class picker
//	}
//
// Codes group by prefix: INVALID_* for rejected input, *_NOT_FOUND for
// missing classes and files, FILE_* for I/O failures, and INTERNAL_ERROR for
// failures in a third-party renderer or the file watcher.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidIdentity Code = "INVALID_IDENTITY"

	ErrCodeClassNotFound Code = "CLASS_NOT_FOUND"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	ErrCodeFileRead  Code = "FILE_READ"
	ErrCodeFileWrite Code = "FILE_WRITE"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error pairs a Code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message and cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain has the given code.
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

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e := (*Error)(nil); errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err's text without code prefixes. Causes are kept so
// the underlying OS or parser error stays visible.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}
