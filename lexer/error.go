package lexer

import (
	"errors"
	"log/slog"
	"strings"
)

// Registration errors.
var (
	ErrInvalidDefinition   = NewError("invalid argument definition")
	ErrDuplicateDefinition = NewError("duplicate argument definition")
)

// Tokenization errors.
var (
	ErrEmptyInput         = NewError("empty input")
	ErrUnknownShortFlag   = NewError("unknown short flag")
	ErrMalformedArgList   = NewError("malformed argument list")
	ErrInvalidLongFlag    = NewError("invalid long flag")
	ErrUnknownLongFlag    = NewError("unknown long flag")
	ErrUnexpectedValue    = NewError("unexpected value")
	ErrEmptyAssignedValue = NewError("empty assigned value")
	ErrMissingValue       = NewError("missing value")
)

// Classifier stages used to annotate tokenization errors.
var (
	errValueStage   = NewError("value handling failed")
	errArgListStage = NewError("arg-list handling failed")
	errLongArgStage = NewError("long-arg handling failed")
	errFreeArgStage = NewError("free-arg handling failed")
)

// Error represents a lexer error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Errors derived from a sentinel via [Error.Wrap] or [Error.With] match that
// sentinel with [errors.Is].
type Error struct {
	base  *Error
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.root() == e.root()
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Attrs returns the structured logging attributes attached to e and to every
// lexer error it wraps, outermost first.
func (e *Error) Attrs() []slog.Attr {
	attrs := append([]slog.Attr(nil), e.attrs...)

	var inner *Error
	if errors.As(e.err, &inner) {
		attrs = append(attrs, inner.Attrs()...)
	}

	return attrs
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		base:  e.root(),
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		base:  e.root(),
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}
