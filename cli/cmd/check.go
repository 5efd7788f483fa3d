package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/ardnew/glex/lexer"
	"github.com/ardnew/glex/log"
)

// Check loads and validates the definition files, then lists what they
// define.
type Check struct {
	Quiet bool `help:"Only report errors" short:"q"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	defs, err := loadDefinitions(ctx)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "definitions ok",
		slog.Int("arguments", defs.lexer.Len()),
		slog.Int("rules", defs.grammar.Len()),
	)

	if c.Quiet {
		return nil
	}

	tw := tabwriter.NewWriter(stdout(ctx), 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tFLAGS\tARITY\tDELIMITER")

	for a := range defs.lexer.All() {
		delim := "-"
		if a.Arity == lexer.ArityMulti {
			delim = fmt.Sprintf("%q", a.Delimiter)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.String(), a.Arity, delim)
	}

	if rules := defs.grammar.Rules(); len(rules) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "RULE\tEXPR")

		for _, r := range rules {
			fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Expr)
		}
	}

	if err := tw.Flush(); err != nil {
		return ErrOutput.Wrap(err)
	}

	return nil
}
