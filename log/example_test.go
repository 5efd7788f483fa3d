package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/glex/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"))
	logger.Info("tokenized", slog.Int("count", 2))

	// Output:
	// level=INFO msg=tokenized count=2
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelWarn),
		log.WithTimeLayout("none"))

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("unknown flag", slog.String("flag", "lsit"))

	// Output:
	// level=WARN msg="unknown flag" flag=lsit
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none")).
		With(slog.String("stage", "arg-list"))

	logger.Info("chunk identified")

	// Output:
	// level=INFO msg="chunk identified" stage=arg-list
}

func Example_withContext() {
	type requestIDKey struct{}

	ctx := context.WithValue(context.Background(), requestIDKey{}, "req-789")

	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"))

	logger.TraceContext(ctx, "tokenize start", slog.Int("offset", 1))

	// Output:
	// {"level":"TRACE","msg":"tokenize start","offset":1}
}
