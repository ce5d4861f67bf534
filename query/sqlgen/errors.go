package sqlgen

import (
	"errors"
	"fmt"
)

// Error kinds returned by the compilers.
var (
	// ErrConfiguration is returned when the statement or its target is not set up to compile.
	ErrConfiguration = errors.New("configuration error")

	// ErrGrammar is returned when the statement cannot be expressed in the dialect.
	ErrGrammar = errors.New("grammar error")

	// ErrValueFormatting is returned when a value has no SQL literal form.
	ErrValueFormatting = errors.New("value formatting error")
)

// Error describes a compilation failure.
type Error struct {
	Kind   error
	Op     string
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg += ": " + e.Op
	}
	msg += ": " + e.Reason
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// NewError creates an error of the given kind.
func NewError(kind error, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Reason: fmt.Sprintf(format, args...)}
}

// WrapError creates an error of the given kind caused by err.
func WrapError(kind, err error, op, format string, args ...any) *Error {
	e := NewError(kind, op, format, args...)
	e.Cause = err
	return e
}

func configurationError(op, format string, args ...any) *Error {
	return NewError(ErrConfiguration, op, format, args...)
}

func grammarError(op, format string, args ...any) *Error {
	return NewError(ErrGrammar, op, format, args...)
}

func valueError(op, format string, args ...any) *Error {
	return NewError(ErrValueFormatting, op, format, args...)
}

// IsConfigurationError checks if an error is a configuration error.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsGrammarError checks if an error is a grammar error.
func IsGrammarError(err error) bool {
	return errors.Is(err, ErrGrammar)
}

// IsValueFormattingError checks if an error is a value formatting error.
func IsValueFormattingError(err error) bool {
	return errors.Is(err, ErrValueFormatting)
}
