// Package cli contains the command line interface for glex.
//
// # Usage
//
//	glex [flags] <command>
//
// The commands share the definition files named with -d (repeatable, "-"
// reads YAML from stdin). Without -d, the file defs.yaml in the
// configuration directory is used if it exists.
//
//	glex init                              # write ~/.config/glex/defs.yaml
//	glex check                             # list what it defines
//	glex lex -- -sl1,2                     # tokenize arguments
//	glex -d ./node.hcl lex -f json -- --start --list=1,2
//	glex repl                              # interactive tokenizer
//
// Arguments to tokenize must follow "--" so that glex does not parse them
// as its own flags.
//
// # Configuration
//
// Flag defaults are read from config.json (kong's JSON loader) and
// config.yaml ([resolve]) in the configuration directory. Nested YAML
// mappings are flattened with hyphens, and keys may use underscores:
//
//	log:
//	  level: debug
//	  pretty: false
//	defs: [/etc/glex/defs.hcl]
//
// "glex init --config" writes config.yaml from the current flag values.
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// The trace level logs every decision the lexer makes.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o glex .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/glex/pprof)
package cli
