// Package lexer turns raw command-line arguments into a sequence of typed
// tokens.
//
// A [Lexer] owns a [Registry] of [Argument] definitions. Each argument has an
// identifier, a long name, an optional short character and an [Arity]:
//
//	l := lexer.New()
//	_ = l.Add(lexer.Argument{
//		ID: "nodes", Long: "list", Short: 'l',
//		Arity: lexer.ArityMulti, Delimiter: ',',
//	})
//	_ = l.Add(lexer.Argument{ID: "start", Long: "start", Short: 's'})
//
//	tokens, err := l.TokenizeArgs(ctx, os.Args)
//
// # Syntax
//
// The following forms are recognized:
//
//	-x            short flag
//	-xyz          cluster of short flags
//	-xVALUE       short flag with an inline value
//	-x=VALUE      short flag with an inline value
//	-x VALUE      short flag followed by its value
//	--name        long flag
//	--name=VALUE  long flag with an inline value
//	--name VALUE  long flag followed by its value
//	VALUE         free value of at least 2 characters
//	--            escape marker: every later chunk is a free value
//
// A chunk shorter than 2 characters is only accepted as the value of the
// preceding flag or after the escape marker; anywhere else it fails with
// [ErrMalformedArgList].
//
// In a cluster, the first flag that takes a value ends the cluster; the rest
// of the chunk (if any) is its value. The values of an [ArityMulti] argument
// are split on its delimiter, and a single trailing empty field is dropped.
//
// # Tokens
//
// Every flag produces a [Token] whose ID is the argument's identifier. Every
// free value produces its own token with an empty ID. With the arguments
// above, each of these command lines
//
//	-s --list 1,2
//	-s --list=1,2
//	-sl1,2
//	-sl=1,2
//	--start -l 1,2
//
// yields the tokens
//
//	start
//	nodes "1" "2"
//
// The lexer does not interpret tokens. Rules such as "start requires nodes"
// belong to a grammar layered on top, see package grammar.
//
// # Errors
//
// Registration fails with [ErrInvalidDefinition] or [ErrDuplicateDefinition].
// Tokenization fails with one of [ErrEmptyInput], [ErrUnknownShortFlag],
// [ErrMalformedArgList], [ErrInvalidLongFlag], [ErrUnknownLongFlag],
// [ErrUnexpectedValue], [ErrEmptyAssignedValue] or [ErrMissingValue],
// prefixed with the stage that rejected the chunk, e.g.
//
//	arg-list handling failed: unknown short flag: the character 'x' is not a valid short flag
//
// All errors are [*Error] values carrying [log/slog] attributes.
package lexer
