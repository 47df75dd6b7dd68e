// Package errors augments the standard errors
// provided by fmt (https://golang.org/src/fmt/errors.go)
// with a Wrap() method to wrap errors without resorting
// to fmt.Errorf("%w", err).
//
// Errors built with New are meant to be used as sentinels: Wrap and WithContext
// return a fresh error of the same kind and never alter the sentinel itself,
// so sentinels may be shared safely across goroutines.
package errors

import (
	stderr "errors"
	"fmt"
)

var _ error = New("")

// New Error
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error augments the standard error interface with a Wrap method.
//
// The main difference with github.com/pkg/errors is that we are wrapping
// errors from errors, not from text.
type Error struct {
	msg     string
	context string
	err     error
	kind    *Error
}

// Error message, formatted as "context: message: cause"
func (e *Error) Error() string {
	msg := e.msg
	if e.context != "" {
		msg = e.context + ": " + msg
	}
	if e.err != nil {
		msg += ": " + e.err.Error()
	}
	return msg
}

// Unwrap nested error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap a nested error, returning a new error of the same kind
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:     e.msg,
		context: e.context,
		err:     err,
		kind:    e.sentinel(),
	}
}

// WithContext returns a new error of the same kind, annotated with what was being attempted
func (e *Error) WithContext(format string, args ...interface{}) *Error {
	ctx := fmt.Sprintf(format, args...)
	if e.context != "" {
		ctx = ctx + ": " + e.context
	}
	return &Error{
		msg:     e.msg,
		context: ctx,
		err:     e.err,
		kind:    e.sentinel(),
	}
}

// Is of some error type?
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e == t || e.sentinel() == t.sentinel()
}

func (e *Error) sentinel() *Error {
	if e.kind != nil {
		return e.kind
	}
	return e
}

// As finds the first error in err's chain that matches target, and if so, sets target to that error value and returns true.
// (a shortcut to standard lib errors.As)
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to standard lib errors.As)
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
