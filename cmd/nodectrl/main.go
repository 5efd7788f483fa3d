// Command nodectrl starts the nodes named on its command line.
//
// It is a small client of the glex lexer:
//
//	nodectrl -s --list 1,2
//	nodectrl -sl1,2 --start --list=3
//
// Each start action must be followed by a comma-separated list of nodes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/glex/grammar"
	"github.com/ardnew/glex/lexer"
	"github.com/ardnew/glex/log"
)

const usage = "usage: nodectrl -s --list NODE[,NODE...]..."

var arguments = []lexer.Argument{
	{ID: "nodes", Long: "list", Short: 'l', Arity: lexer.ArityMulti, Delimiter: ','},
	{ID: "start", Long: "start", Short: 's'},
}

var rules = []grammar.Rule{
	{
		Name:    "start-needs-nodes",
		Expr:    `follows("start", "nodes")`,
		Message: "the start action requires a list of nodes",
	},
	{
		Name:    "no-free-values",
		Expr:    `len(free) == 0`,
		Message: "unexpected value(s) outside of any argument",
	},
}

func main() {
	if os.Getenv("NODECTRL_TRACE") != "" {
		log.Config(log.WithLevel(log.LevelTrace))
	}

	err := run(context.Background(), os.Stdout, os.Args)
	if err != nil {
		log.Error("nodectrl failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// run tokenizes args, skipping the program name, and reports each start
// action to w.
func run(ctx context.Context, w io.Writer, args []string) error {
	reg, err := lexer.NewRegistry(arguments...)
	if err != nil {
		return err
	}

	g, err := grammar.Compile(rules,
		grammar.WithKnownIDs("nodes", "start"),
		grammar.WithLogger(log.Default()),
	)
	if err != nil {
		return err
	}

	l := lexer.New(lexer.WithRegistry(reg), lexer.WithLogger(log.Default()))

	tokens, err := l.TokenizeArgs(ctx, args)
	if errors.Is(err, lexer.ErrEmptyInput) {
		_, err = fmt.Fprintln(w, usage)

		return err
	}

	if err != nil {
		return err
	}

	if err := g.Validate(ctx, tokens); err != nil {
		return err
	}

	for i, t := range tokens {
		if t.ID != "start" {
			continue
		}

		// Validated: a nodes token follows.
		nodes := tokens[i+1].Values

		if _, err := fmt.Fprintf(w, "starting nodes %s\n", strings.Join(nodes, ", ")); err != nil {
			return err
		}
	}

	return nil
}
