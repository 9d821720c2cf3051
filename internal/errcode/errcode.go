// Package errcode defines the closed set of failure kinds reported by kernelcore.
package errcode

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
)

// Code identifies a failure kind. The zero value is Success.
type Code int

// Failure kinds, in a fixed order.
const (
	Success Code = iota
	Unsupported
	AcceleratorRuntime
	AcceleratorDNN
	AcceleratorBLAS
	OutOfMemory
	OutOfAcceleratorMemory
	IllegalArgument
	Unknown
	Timeout
	NoData
	IllegalMessage
	Interrupted
)

// String returns the identifier of the code.
func (c Code) String() string {
	switch c {
	case Success:
		return "Success"
	case Unsupported:
		return "Unsupported"
	case AcceleratorRuntime:
		return "AcceleratorRuntime"
	case AcceleratorDNN:
		return "AcceleratorDNN"
	case AcceleratorBLAS:
		return "AcceleratorBLAS"
	case OutOfMemory:
		return "OutOfMemory"
	case OutOfAcceleratorMemory:
		return "OutOfAcceleratorMemory"
	case IllegalArgument:
		return "IllegalArgument"
	case Timeout:
		return "Timeout"
	case NoData:
		return "NoData"
	case IllegalMessage:
		return "IllegalMessage"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown"
	}
}

// Message returns a human-readable description of the code.
func (c Code) Message() string {
	switch c {
	case Success:
		return "success"
	case Unsupported:
		return "unsupported feature error"
	case AcceleratorRuntime:
		return "accelerator runtime error"
	case AcceleratorDNN:
		return "accelerator DNN library error"
	case AcceleratorBLAS:
		return "accelerator BLAS library error"
	case OutOfMemory:
		return "out of memory error"
	case OutOfAcceleratorMemory:
		return "out of accelerator memory error"
	case IllegalArgument:
		return "illegal argument error"
	case Timeout:
		return "timeout error"
	case NoData:
		return "no data error"
	case IllegalMessage:
		return "illegal message error"
	case Interrupted:
		return "interrupted error"
	default:
		return "unknown error"
	}
}

// Error is a failure carrying a Code.
type Error struct {
	Code    Code
	Message string // Context added by the reporter, may be empty
	Err     error  // Underlying cause, may be nil
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around err. Returns nil if err is nil.
func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += e.Err.Error()
	}
	if msg == "" {
		return e.Code.Message()
	}
	return msg + " [" + e.Code.Message() + "]"
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
// This makes errors.Is(err, &Error{Code: OutOfMemory}) match by kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// CodeOf extracts the Code from err.
// A nil error is Success; an error without a code is Unknown.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Unknown
}

// Location returns "file.go:line" of the caller skip frames above Location.
// Location(0) names the line that calls it.
func Location(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}
