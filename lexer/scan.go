package lexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/glex/log"
)

// EscapeMarker is the chunk after which every chunk is a free value.
const EscapeMarker = "--"

// state is the transient scanner state of a single tokenization.
type state struct {
	// pendingValue is set when the previous chunk ended with a flag that
	// still needs its value.
	pendingValue bool
	// escaped is set once the escape marker has been seen.
	escaped bool
	// consumedAhead is set when the next chunk must reuse the last token
	// instead of starting a new one.
	consumedAhead bool
}

// classifier claims a chunk or reports that it does not apply.
type classifier struct {
	stage *Error
	class string
	claim func(s *scan, chunk string) (bool, error)
}

// classifiers are tried in order after value continuation; the first to claim
// a chunk handles it.
var classifiers = []classifier{
	{errArgListStage, "arglist", (*scan).argList},
	{errLongArgStage, "longarg", (*scan).longArg},
	{errFreeArgStage, "freearg", (*scan).freeArg},
}

// scan holds everything one call to [Lexer.Tokenize] reads and writes.
// The registry read lock is held by the caller.
type scan struct {
	ctx    context.Context
	reg    *Registry
	logger log.Logger
	state  state
	tokens Tokens
}

// step classifies and processes a single chunk.
func (s *scan) step(index int, chunk string) error {
	s.logger.TraceContext(
		s.ctx,
		"analyzing chunk",
		slog.Int("index", index),
		slog.String("chunk", chunk),
	)

	claimed, err := s.value(chunk)
	if err != nil {
		return stageError(errValueStage, err, index, chunk)
	}

	if claimed {
		return nil
	}

	if s.state.consumedAhead {
		s.state.consumedAhead = false
	} else {
		s.tokens = append(s.tokens, Token{})
	}

	for _, c := range classifiers {
		claimed, err := c.claim(s, chunk)
		if err != nil {
			return stageError(c.stage, err, index, chunk)
		}

		if claimed {
			s.logger.TraceContext(
				s.ctx,
				"chunk identified",
				slog.String("class", c.class),
				slog.String("chunk", chunk),
			)

			return nil
		}
	}

	return nil
}

func stageError(stage *Error, err error, index int, chunk string) error {
	return stage.Wrap(err).With(
		slog.Int("index", index),
		slog.String("chunk", chunk),
	)
}

// finish drops the placeholder token of a trailing escape marker and checks
// that every value-taking flag received a value.
func (s *scan) finish() (Tokens, error) {
	if s.state.consumedAhead {
		s.tokens = s.tokens[:len(s.tokens)-1]
	}

	for _, t := range s.tokens {
		if t.IsFree() {
			continue
		}

		arg, ok := s.reg.id(t.ID)
		if ok && arg.TakesValue() && len(t.Values) == 0 {
			return nil, ErrMissingValue.
				Wrap(fmt.Errorf("the token %q requires a value", t.ID)).
				With(slog.String("id", t.ID))
		}
	}

	return s.tokens, nil
}

// last returns the token currently receiving values.
func (s *scan) last() *Token {
	return &s.tokens[len(s.tokens)-1]
}

// value consumes chunk as the value of the previous flag.
func (s *scan) value(chunk string) (bool, error) {
	if !s.state.pendingValue {
		return false, nil
	}

	s.state.pendingValue = false

	s.logger.TraceContext(
		s.ctx,
		"chunk identified",
		slog.String("class", "value"),
		slog.String("chunk", chunk),
	)

	return true, s.assign(chunk)
}

// argList handles a cluster of short flags such as -abc, -xVALUE or -x=VALUE.
func (s *scan) argList(chunk string) (bool, error) {
	if s.state.escaped {
		return false, nil
	}

	if len(chunk) < 2 {
		return false, ErrMalformedArgList.
			Wrap(fmt.Errorf(
				"%q is neither a flag nor a value; "+
					"a chunk must be at least 2 characters long or a value",
				chunk,
			)).
			With(slog.String("chunk", chunk))
	}

	if chunk[0] != '-' || chunk[1] == '-' {
		return false, nil
	}

	for i := 1; i < len(chunk); i++ {
		if !isLetter(chunk[i]) {
			c, _ := utf8.DecodeRuneInString(chunk[i:])

			return true, ErrUnknownShortFlag.
				Wrap(fmt.Errorf(
					"an argument list must only contain letters apart from "+
						"the starting dash, found %q", c,
				)).
				With(slog.String("flag", string(c)))
		}

		arg, ok := s.reg.short(rune(chunk[i]))
		if !ok {
			return true, ErrUnknownShortFlag.
				Wrap(fmt.Errorf(
					"the character %q is not a valid short flag", chunk[i],
				)).
				With(slog.String("flag", string(chunk[i])))
		}

		if i == 1 {
			s.last().ID = arg.ID
		} else {
			s.tokens = append(s.tokens, Token{ID: arg.ID})
		}

		if !arg.TakesValue() {
			continue
		}

		// A value-taking flag ends the cluster: the rest of the chunk is its
		// value, or the value is the next chunk.
		if rest := chunk[i+1:]; rest != "" {
			return true, s.assign(rest)
		}

		s.state.pendingValue = true

		break
	}

	return true, nil
}

// longArg handles --name, --name=VALUE and --name VALUE.
func (s *scan) longArg(chunk string) (bool, error) {
	if s.state.escaped || len(chunk) < 3 || !strings.HasPrefix(chunk, "--") {
		return false, nil
	}

	if !isLetter(chunk[2]) {
		return true, ErrInvalidLongFlag.
			Wrap(fmt.Errorf(
				"the first character of a long flag must be a letter: %q", chunk,
			)).
			With(slog.String("flag", chunk))
	}

	name, value, assigned := strings.Cut(chunk[2:], "=")

	arg, ok := s.reg.long(name)
	if !ok {
		msg := fmt.Sprintf("the long flag %q is not registered", name)

		if alt := suggest(name, s.reg.longNames()); len(alt) > 0 {
			msg += fmt.Sprintf(" (did you mean --%s?)", alt[0])
		}

		return true, ErrUnknownLongFlag.
			Wrap(errors.New(msg)).
			With(slog.String("flag", name))
	}

	s.last().ID = arg.ID

	switch {
	case !arg.TakesValue() && assigned:
		return true, ErrUnexpectedValue.
			Wrap(fmt.Errorf("the flag %q does not take any values", name)).
			With(slog.String("flag", name), slog.String("value", value))

	case !arg.TakesValue():
		return true, nil

	case assigned:
		return true, s.assign(value)

	default:
		s.state.pendingValue = true

		return true, nil
	}
}

// freeArg handles the escape marker and free values. It claims every chunk.
func (s *scan) freeArg(chunk string) (bool, error) {
	if !s.state.escaped && chunk == EscapeMarker {
		s.state.escaped = true
		s.state.consumedAhead = true

		return true, nil
	}

	t := s.last()
	t.Values = append(t.Values, chunk)

	return true, nil
}

// assign stores raw as the value(s) of the last token, according to the
// arity of the argument that token refers to. A single leading '=' is
// stripped first.
//
// Multiple values are split on the argument's delimiter. Exactly one trailing
// empty field is dropped, so "1,2," yields [1 2] while ",1" yields ["" 1] and
// "1,," yields [1 ""].
func (s *scan) assign(raw string) error {
	t := s.last()

	val := strings.TrimPrefix(raw, "=")
	if val == "" {
		return ErrEmptyAssignedValue.
			Wrap(fmt.Errorf("the value assigned to %q cannot be empty", t.ID)).
			With(slog.String("id", t.ID))
	}

	arg, ok := s.reg.id(t.ID)
	if !ok {
		return ErrMissingValue.
			Wrap(fmt.Errorf("no argument is registered as %q", t.ID)).
			With(slog.String("id", t.ID))
	}

	if arg.Arity != ArityMulti {
		t.Values = append(t.Values, val)

		return nil
	}

	values := strings.Split(val, string(arg.Delimiter))
	if values[len(values)-1] == "" {
		values = values[:len(values)-1]
	}

	t.Values = values

	return nil
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
