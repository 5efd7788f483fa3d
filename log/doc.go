// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("tokenized", slog.Int("count", len(tokens)))
//	logger.Error("tokenize failed", slog.Any("error", err))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// An existing logger is reconfigured with [Logger.Wrap], and the package-level
// default logger with [Config].
//
// # Zero Value
//
// The zero [Logger] discards everything. Components that accept an optional
// logger store it by value and log unconditionally.
//
// # Context-Aware Logging
//
// Each level has a context-aware and a context-unaware variant. The latter
// use [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Supported Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and [LevelError].
// Messages below the configured level are discarded. Trace is used for the
// chunk-by-chunk output of the lexer.
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON]. Either may be combined with
// [WithPretty] for colored output on a terminal.
package log
