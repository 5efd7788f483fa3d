package cmd

import (
	"context"

	"github.com/ardnew/glex/cli/cmd/repl"
	"github.com/ardnew/glex/log"
)

// Repl starts an interactive tokenizer.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	defs, err := loadDefinitions(ctx)
	if err != nil {
		return err
	}

	cacheDir := kongVar(ctx, CacheIdentifier)
	if cacheDir == "" {
		panic("internal error: cache directory undefined")
	}

	return repl.Run(ctx, defs.file, cacheDir, log.Default())
}
