package core

import (
	"errors"
	"fmt"
	"io"
)

// Error codes used throughout ftlib. Font engine status codes are reported
// by package ft; the codes here classify application level failures.
const (
	NOERROR   int = 0
	EMISSING  int = 122 // font, file or configuration entry does not exist
	EINVALID  int = 123 // validation failed, e.g. for a malformed font file
	ECLOSED   int = 124 // library or registry has already been closed
	EINTERNAL int = 125 // internal error
)

var errorTexts = map[int]string{
	NOERROR:   "OK",
	EMISSING:  "not found",
	EINVALID:  "invalid",
	ECLOSED:   "closed",
	EINTERNAL: "internal error",
}

func errorText(ecode int) string {
	if t, ok := errorTexts[ecode]; ok {
		return t
	}
	return "undefined error"
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error {
	return e.error
}

func (e coreError) Error() string {
	if e.msg == "" {
		return fmt.Sprintf("[%d] %v", e.code, e.error)
	}
	return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.error)
}

func (e coreError) ErrorCode() int {
	return e.code
}

func (e coreError) UserMessage() string {
	return e.msg
}

var _ AppError = coreError{}

// WrapError wraps an error in a core error, featuring an error code and
// a user message.
// If err is nil, the wrapped error just names the error code.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return coreError{err, code, fmt.Sprintf(format, v...)}
}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return coreError{
		errors.New(errorText(code)),
		code,
		fmt.Sprintf(format, v...),
	}
}

// Code returns the status code associated with an error.
// If no status code is found, it returns EINTERNAL.
// If err is nil, NOERROR is returned.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message associated with an error.
// If no message is found, the text for the error's code is returned.
// If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// UserError writes a one-line report of err to w, suitable for the
// terminal of a command line tool. It returns the error's code.
func UserError(w io.Writer, err error) int {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		fmt.Fprintf(w, "[%d] %s\n", e.ErrorCode(), e.UserMessage())
		return e.ErrorCode()
	}
	fmt.Fprintf(w, "Error: %s\n", err.Error())
	return EINTERNAL
}
