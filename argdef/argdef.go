package argdef

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/ardnew/glex/grammar"
	"github.com/ardnew/glex/lexer"
)

// Predefined errors (sentinel values).
var (
	ErrFormat   = lexer.NewError("unsupported definition format")
	ErrRead     = lexer.NewError("failed to read definitions")
	ErrDecode   = lexer.NewError("failed to decode definitions")
	ErrArgument = lexer.NewError("invalid argument definition")
	ErrRules    = lexer.NewError("invalid rules")
)

// Argument is the file representation of a [lexer.Argument]. Short and
// Delimiter hold at most one character; an empty Arity means none.
type Argument struct {
	ID        string `json:"id"                  yaml:"id"`
	Long      string `json:"long"                yaml:"long"`
	Short     string `json:"short,omitempty"     yaml:"short,omitempty"`
	Arity     string `json:"arity,omitempty"     yaml:"arity,omitempty"`
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
}

// FromLexer returns the file representation of a.
func FromLexer(a lexer.Argument) Argument {
	arg := Argument{ID: a.ID, Long: a.Long}

	if a.Short != 0 {
		arg.Short = string(a.Short)
	}

	if a.Arity != lexer.ArityNone {
		arg.Arity = a.Arity.String()
	}

	if a.Delimiter != 0 {
		arg.Delimiter = string(a.Delimiter)
	}

	return arg
}

// Lexer converts a to a [lexer.Argument]. Only the file-level fields are
// checked; the registry validates the rest when a is added.
func (a Argument) Lexer() (lexer.Argument, error) {
	short, err := char("short", a.Short)
	if err != nil {
		return lexer.Argument{}, err
	}

	delim, err := char("delimiter", a.Delimiter)
	if err != nil {
		return lexer.Argument{}, err
	}

	arity, err := lexer.ParseArity(a.Arity)
	if err != nil {
		return lexer.Argument{}, err
	}

	return lexer.Argument{
		ID:        a.ID,
		Long:      a.Long,
		Short:     short,
		Arity:     arity,
		Delimiter: delim,
	}, nil
}

// char returns the only character of s, or 0 if s is empty.
func char(field, s string) (rune, error) {
	if s == "" {
		return 0, nil
	}

	r, n := utf8.DecodeRuneInString(s)
	if n != len(s) || r == utf8.RuneError {
		return 0, ErrArgument.
			Wrap(fmt.Errorf("%s must be a single character: %q", field, s)).
			With(slog.String(field, s))
	}

	return r, nil
}

// File is the content of one definitions file.
type File struct {
	// Path is the file the definitions were loaded from, if any.
	Path string `json:"-" yaml:"-"`

	Arguments []Argument     `json:"arguments"       yaml:"arguments"`
	Rules     []grammar.Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Load reads the definitions file at path. Its format is chosen by
// extension: .yaml, .yml and .json use YAML, .hcl uses HCL.
func Load(ctx context.Context, path string) (*File, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, ErrFormat.
			Wrap(fmt.Errorf("cannot infer the format of %q", path)).
			With(slog.String("path", path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrRead.Wrap(err).With(slog.String("path", path))
	}

	f, err := Parse(ctx, data, format, path)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Parse decodes definitions from data. The name is used in error messages
// and recorded as the file's Path.
func Parse(ctx context.Context, data []byte, format Format, name string) (*File, error) {
	var (
		f   *File
		err error
	)

	switch format {
	case FormatYAML:
		f, err = parseYAML(ctx, data)
	case FormatHCL:
		f, err = parseHCL(data, name)
	default:
		return nil, ErrFormat.With(slog.String("format", format.String()))
	}

	if err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("path", name))
	}

	f.Path = name

	return f, nil
}

// Encode writes f to w in the given format.
func (f *File) Encode(ctx context.Context, w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		return encodeYAML(ctx, w, f)
	case FormatHCL:
		return encodeHCL(w, f)
	default:
		return ErrFormat.With(slog.String("format", format.String()))
	}
}

// Merge concatenates the arguments and rules of files in order.
func Merge(files ...*File) *File {
	merged := &File{}

	for _, f := range files {
		if f == nil {
			continue
		}

		merged.Arguments = append(merged.Arguments, f.Arguments...)
		merged.Rules = append(merged.Rules, f.Rules...)
	}

	return merged
}

// IDs returns the identifiers of the file's arguments in order.
func (f *File) IDs() []string {
	ids := make([]string, len(f.Arguments))
	for i, a := range f.Arguments {
		ids[i] = a.ID
	}

	return ids
}

// Register adds every argument of f to reg, stopping at the first one that is
// rejected. The error carries the argument's index and the file path.
func (f *File) Register(reg *lexer.Registry) error {
	for i, a := range f.Arguments {
		arg, err := a.Lexer()
		if err == nil {
			err = reg.Add(arg)
		}

		if err != nil {
			return lexer.WrapError(err).With(
				slog.String("path", f.Path),
				slog.Int("index", i),
				slog.String("id", a.ID),
			)
		}
	}

	return nil
}

// Lexer returns a lexer with every argument of f registered.
func (f *File) Lexer(opts ...lexer.Option) (*lexer.Lexer, error) {
	l := lexer.New(opts...)

	if err := f.Register(l.Registry); err != nil {
		return nil, err
	}

	return l, nil
}

// Grammar compiles the rules of f. Rules may only name the file's arguments.
func (f *File) Grammar(opts ...grammar.Option) (*grammar.Grammar, error) {
	opts = append([]grammar.Option{grammar.WithKnownIDs(f.IDs()...)}, opts...)

	g, err := grammar.Compile(f.Rules, opts...)
	if err != nil {
		return nil, ErrRules.Wrap(err).With(slog.String("path", f.Path))
	}

	return g, nil
}
