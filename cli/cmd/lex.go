package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/kballard/go-shellquote"

	"github.com/ardnew/glex/log"
)

// Lex tokenizes its positional arguments with the loaded definitions.
type Lex struct {
	Format     string   `help:"Output format (${enum})"                       short:"f" default:"text" enum:"text,json,yaml"`
	Indent     int      `help:"Indentation width for JSON and YAML output"    short:"i" default:"2"`
	Offset     int      `help:"Number of leading arguments to skip"           short:"o" default:"0"`
	NoValidate bool     `help:"Do not validate tokens with the loaded rules"  short:"n"`
	Args       []string `help:"Arguments to tokenize (place after \"--\")"   arg:"" optional:"" passthrough:""`
}

// Run executes the lex command.
func (l *Lex) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	defs, err := loadDefinitions(ctx)
	if err != nil {
		return err
	}

	args := l.Args
	// The separator ending glex's own flags is kept by passthrough.
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	log.DebugContext(ctx, "tokenize",
		slog.String("argv", shellquote.Join(args...)),
		slog.Int("offset", l.Offset),
	)

	tokens, err := defs.lexer.Tokenize(ctx, args, l.Offset)
	if err != nil {
		return ErrTokenize.Wrap(err)
	}

	if !l.NoValidate {
		if err := defs.grammar.Validate(ctx, tokens); err != nil {
			return err
		}
	}

	w := stdout(ctx)

	switch l.Format {
	case "json":
		err = tokens.FormatJSON(w, l.Indent)
	case "yaml":
		err = tokens.FormatYAML(ctx, w, l.Indent)
	default:
		err = tokens.Format(w)
	}

	if err != nil {
		return ErrOutput.Wrap(err).With(slog.String("format", l.Format))
	}

	return nil
}

// stdout returns the writer kong was configured with, or os.Stdout.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}
