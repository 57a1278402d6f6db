// Package errors is the single import for error handling across the module.
// Matching helpers come from the standard library; wrapping helpers record a
// stack trace through pkg/errors.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns a sentinel error with the given text and no stack.
func New(text string) error {
	return stderrors.New(text)
}

// Is reports whether err or anything it wraps matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain assignable to target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Join combines errs so that Is and As match any of them.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// Wrap adds message and a stack trace to err. It returns nil for a nil err.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records a stack trace on err without changing its message.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// Errorf builds a new error with a stack trace.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}
