package lexer

import (
	"fmt"
	"log/slog"
	"unicode"
)

// Argument defines one option recognized by a [Registry].
type Argument struct {
	// ID is the canonical identifier emitted as [Token.ID].
	ID string
	// Long is the name used with the --name syntax.
	Long string
	// Short is the character used with the -x syntax, or 0 if the argument
	// has no short form.
	Short rune
	// Arity selects whether the argument takes no value, one value, or a
	// delimited list of values.
	Arity Arity
	// Delimiter separates the values of an [ArityMulti] argument.
	Delimiter rune
}

// TakesValue reports whether a flag referencing a must be given a value.
func (a Argument) TakesValue() bool { return a.Arity != ArityNone }

// String returns the flag syntax of a, e.g. "--list|-l".
func (a Argument) String() string {
	if a.Short == 0 {
		return "--" + a.Long
	}

	return "--" + a.Long + "|-" + string(a.Short)
}

// LogValue implements slog.LogValuer.
func (a Argument) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("id", a.ID),
		slog.String("long", a.Long),
		slog.String("arity", a.Arity.String()),
	}

	if a.Short != 0 {
		attrs = append(attrs, slog.String("short", string(a.Short)))
	}

	if a.Arity == ArityMulti {
		attrs = append(attrs, slog.String("delimiter", string(a.Delimiter)))
	}

	return slog.GroupValue(attrs...)
}

// validate checks the definition in isolation. A short character must be
// an ASCII letter, the only characters a cluster can hold.
func (a Argument) validate() error {
	switch {
	case a.ID == "":
		return ErrInvalidDefinition.
			Wrap(fmt.Errorf("identifier is empty")).
			With(slog.String("long", a.Long))

	case a.Long == "":
		return ErrInvalidDefinition.
			Wrap(fmt.Errorf("long name of %q is empty", a.ID)).
			With(slog.String("id", a.ID))

	case a.Short != 0 && (a.Short > unicode.MaxASCII || !isLetter(byte(a.Short))):
		return ErrInvalidDefinition.
			Wrap(fmt.Errorf("short flag %q of %q is not an ASCII letter", a.Short, a.ID)).
			With(slog.String("id", a.ID))

	case a.Arity < ArityNone || a.Arity > ArityMulti:
		return ErrInvalidDefinition.
			Wrap(fmt.Errorf("%q has unknown arity %d", a.ID, int(a.Arity))).
			With(slog.String("id", a.ID))

	case a.Arity == ArityMulti && !validDelimiter(a.Delimiter):
		return ErrInvalidDefinition.
			Wrap(fmt.Errorf("%q has invalid delimiter %q", a.ID, a.Delimiter)).
			With(slog.String("id", a.ID))
	}

	return nil
}

// validDelimiter reports whether r may separate the values of a multi-value
// argument. Letters, digits, space, hyphen and non-printable characters
// (including the 0 sentinel) are rejected.
func validDelimiter(r rune) bool {
	switch {
	case r == 0, r == '-', r == ' ':
		return false
	case unicode.IsLetter(r), unicode.IsDigit(r):
		return false
	}

	return unicode.IsPrint(r)
}
