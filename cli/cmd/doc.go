// Package cmd implements the glex subcommands: lex, check, init and repl.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"

	// DefinitionsIdentifier is the kong variable identifier containing the
	// path to the default definitions file.
	DefinitionsIdentifier = "defs"
)
