package lexer

//go:generate go tool stringer --linecomment --type Arity --output arity_string.go

import (
	"fmt"
	"iter"
	"strings"
)

// Arity describes how many values an argument takes.
type Arity int

const (
	ArityNone   Arity = iota // none
	AritySingle              // single
	ArityMulti               // multi
)

// Arities returns an iterator over the names of all defined arities.
func Arities() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, a := range []Arity{ArityNone, AritySingle, ArityMulti} {
			if !yield(a.String()) {
				return
			}
		}
	}
}

// ParseArity parses the name of an arity, case-insensitively.
// The empty string is [ArityNone].
func ParseArity(s string) (Arity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ArityNone, nil
	case "single":
		return AritySingle, nil
	case "multi":
		return ArityMulti, nil
	default:
		return ArityNone, ErrInvalidDefinition.Wrap(
			fmt.Errorf("unknown arity %q", s),
		)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Arity) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Arity) UnmarshalText(text []byte) error {
	v, err := ParseArity(string(text))
	if err != nil {
		return err
	}

	*a = v

	return nil
}
