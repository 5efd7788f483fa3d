package grammar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/glex/lexer"
	"github.com/ardnew/glex/log"
)

// Predefined errors (sentinel values).
var (
	ErrRuleInvalid  = lexer.NewError("invalid rule")
	ErrRuleCompile  = lexer.NewError("rule compilation failed")
	ErrRuleEvaluate = lexer.NewError("rule evaluation failed")
	ErrRuleViolated = lexer.NewError("rule violated")
)

// Rule is a named boolean expression over a token sequence.
type Rule struct {
	Name    string `json:"name"              yaml:"name"`
	Expr    string `json:"expr"              yaml:"expr"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// LogValue implements slog.LogValuer.
func (r Rule) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", r.Name),
		slog.String("expr", r.Expr),
	)
}

// violation returns the error reported when r evaluates to false.
func (r Rule) violation() error {
	msg := r.Message
	if msg == "" {
		msg = fmt.Sprintf("%s: %s", r.Name, r.Expr)
	}

	return ErrRuleViolated.
		Wrap(errors.New(msg)).
		With(slog.String("rule", r.Name))
}

// Grammar is a compiled, immutable set of rules. It is safe for concurrent
// use.
type Grammar struct {
	rules    []program
	known    []string
	checkIDs bool
	logger   log.Logger
}

type program struct {
	Rule
	*vm.Program
}

// Option configures a [Grammar].
type Option func(*Grammar)

// WithLogger sets the structured logger for trace-level debugging.
func WithLogger(logger log.Logger) Option {
	return func(g *Grammar) {
		g.logger = logger
	}
}

// WithKnownIDs makes compilation reject rules that pass a string literal
// other than one of ids to has, count, values, follows or first.
func WithKnownIDs(ids ...string) Option {
	return func(g *Grammar) {
		g.known = append(g.known, ids...)
		g.checkIDs = true
	}
}

// Compile compiles rules in order. Every rule is compiled; the returned error
// joins the failures of all rules that did not compile.
func Compile(rules []Rule, opts ...Option) (*Grammar, error) {
	g := &Grammar{}

	for _, opt := range opts {
		opt(g)
	}

	var errs []error

	for i, r := range rules {
		p, err := g.compile(r)
		if err != nil {
			errs = append(errs, lexer.WrapError(err).With(slog.Int("index", i)))

			continue
		}

		g.rules = append(g.rules, p)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return g, nil
}

func (g *Grammar) compile(r Rule) (program, error) {
	if strings.TrimSpace(r.Name) == "" {
		return program{}, ErrRuleInvalid.
			Wrap(errors.New("a rule must have a name")).
			With(slog.String("expr", r.Expr))
	}

	if strings.TrimSpace(r.Expr) == "" {
		return program{}, ErrRuleInvalid.
			Wrap(fmt.Errorf("the rule %q has no expression", r.Name)).
			With(slog.String("rule", r.Name))
	}

	opts := []expr.Option{expr.Env(buildEnv(nil)), expr.AsBool()}

	var check *idChecker
	if g.checkIDs {
		check = &idChecker{known: g.known}
		opts = append(opts, expr.Patch(check))
	}

	prog, err := expr.Compile(r.Expr, opts...)
	if err != nil {
		return program{}, ErrRuleCompile.
			Wrap(err).
			With(slog.String("rule", r.Name))
	}

	if check != nil && len(check.unknown) > 0 {
		return program{}, ErrRuleCompile.
			Wrap(fmt.Errorf(
				"the rule %q refers to unknown argument(s) %s",
				r.Name, strings.Join(check.unknown, ", "),
			)).
			With(slog.String("rule", r.Name))
	}

	g.logger.Trace("rule compiled", slog.Any("rule", r))

	return program{Rule: r, Program: prog}, nil
}

// Len returns the number of compiled rules.
func (g *Grammar) Len() int {
	if g == nil {
		return 0
	}

	return len(g.rules)
}

// Rules returns the compiled rules in order.
func (g *Grammar) Rules() []Rule {
	if g == nil {
		return nil
	}

	rules := make([]Rule, len(g.rules))
	for i, p := range g.rules {
		rules[i] = p.Rule
	}

	return rules
}

// Validate evaluates every rule against tokens in order and returns an error
// matching [ErrRuleViolated] for the first rule that does not hold.
// A nil Grammar accepts every token sequence.
func (g *Grammar) Validate(ctx context.Context, tokens lexer.Tokens) error {
	if g == nil {
		return nil
	}

	env := buildEnv(tokens)

	for _, p := range g.rules {
		if err := ctx.Err(); err != nil {
			return err
		}

		out, err := vm.Run(p.Program, env)
		if err != nil {
			return ErrRuleEvaluate.
				Wrap(err).
				With(slog.String("rule", p.Name))
		}

		ok, _ := out.(bool)

		g.logger.TraceContext(ctx, "rule evaluated",
			slog.String("rule", p.Name),
			slog.Bool("result", ok),
		)

		if !ok {
			return p.violation()
		}
	}

	return nil
}
