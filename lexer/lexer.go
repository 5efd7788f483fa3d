package lexer

import (
	"context"
	"log/slog"

	"github.com/ardnew/glex/log"
)

// Lexer converts raw command-line arguments into [Tokens] using the arguments
// of its embedded [Registry].
type Lexer struct {
	*Registry

	logger log.Logger
}

// Option configures a [Lexer].
type Option func(*Lexer)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(l *Lexer) {
		l.logger = logger
	}
}

// WithRegistry makes the lexer read arguments from r instead of a new, empty
// registry.
func WithRegistry(r *Registry) Option {
	return func(l *Lexer) {
		if r != nil {
			l.Registry = r
		}
	}
}

// New returns a lexer configured with the given options.
func New(opts ...Option) *Lexer {
	l := &Lexer{Registry: &Registry{}}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// TokenizeArgs tokenizes the arguments of a program entry point, skipping the
// program name in args[0].
func (l *Lexer) TokenizeArgs(ctx context.Context, args []string) (Tokens, error) {
	return l.Tokenize(ctx, args, 1)
}

// Tokenize scans chunks[offset:] left to right and returns the tokens they
// form. A negative offset is treated as zero.
//
// Tokenize never modifies the registry, and no state is retained between
// calls: tokenizing the same input twice yields equal results. On failure no
// tokens are returned, and the error matches one of the tokenization
// sentinels (e.g. [ErrUnknownShortFlag]) with [errors.Is].
func (l *Lexer) Tokenize(
	ctx context.Context,
	chunks []string,
	offset int,
) (Tokens, error) {
	offset = max(offset, 0)

	if offset >= len(chunks) {
		return nil, ErrEmptyInput.With(
			slog.Int("offset", offset),
			slog.Int("count", len(chunks)),
		)
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	s := scan{
		ctx:    ctx,
		reg:    l.Registry,
		logger: l.logger,
		tokens: make(Tokens, 0, len(chunks)-offset),
	}

	l.logger.TraceContext(
		ctx,
		"tokenize start",
		slog.Int("offset", offset),
		slog.Int("count", len(chunks)-offset),
	)

	for i, chunk := range chunks[offset:] {
		if err := s.step(offset+i, chunk); err != nil {
			l.logger.TraceContext(ctx, "tokenize failed", slog.Any("error", err))

			return nil, err
		}
	}

	tokens, err := s.finish()
	if err != nil {
		l.logger.TraceContext(ctx, "tokenize failed", slog.Any("error", err))

		return nil, err
	}

	l.logger.TraceContext(
		ctx,
		"tokenize complete",
		slog.Int("token_count", len(tokens)),
	)

	return tokens, nil
}
