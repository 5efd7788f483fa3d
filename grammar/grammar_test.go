package grammar

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/glex/lexer"
)

var nodectrl = []Rule{
	{
		Name:    "start-needs-nodes",
		Expr:    `follows("start", "nodes")`,
		Message: "the start action requires a list of nodes",
	},
	{
		Name: "no-free-values",
		Expr: `len(free) == 0`,
	},
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		rules   []Rule
		opts    []Option
		wantErr error
		wantMsg string
	}{
		{name: "no rules", rules: nil},
		{name: "nodectrl", rules: nodectrl},
		{
			name:    "missing name",
			rules:   []Rule{{Expr: "true"}},
			wantErr: ErrRuleInvalid,
		},
		{
			name:    "missing expression",
			rules:   []Rule{{Name: "empty", Expr: "  "}},
			wantErr: ErrRuleInvalid,
		},
		{
			name:    "syntax error",
			rules:   []Rule{{Name: "broken", Expr: `has("start" &&`}},
			wantErr: ErrRuleCompile,
		},
		{
			name:    "not boolean",
			rules:   []Rule{{Name: "number", Expr: `count("start")`}},
			wantErr: ErrRuleCompile,
		},
		{
			name:    "unknown function",
			rules:   []Rule{{Name: "undefined", Expr: `missing("start")`}},
			wantErr: ErrRuleCompile,
		},
		{
			name:    "unknown id",
			rules:   []Rule{{Name: "typo", Expr: `has("strat")`}},
			opts:    []Option{WithKnownIDs("start", "nodes")},
			wantErr: ErrRuleCompile,
			wantMsg: "unknown argument(s) strat",
		},
		{
			name:  "known ids",
			rules: nodectrl,
			opts:  []Option{WithKnownIDs("start", "nodes")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Compile(tt.rules, tt.opts...)

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Compile() error = %v", err)
				}

				if g.Len() != len(tt.rules) {
					t.Fatalf("Len() = %d, want %d", g.Len(), len(tt.rules))
				}

				if len(tt.rules) == 0 {
					return
				}

				if diff := cmp.Diff(tt.rules, g.Rules()); diff != "" {
					t.Errorf("Rules() mismatch (-want +got):\n%s", diff)
				}

				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Compile() error = %v, want %v", err, tt.wantErr)
			}

			if g != nil {
				t.Errorf("Compile() returned a grammar with an error")
			}

			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestCompile_ReportsEveryFailingRule(t *testing.T) {
	_, err := Compile([]Rule{
		{Name: "one", Expr: "("},
		{Name: "ok", Expr: "true"},
		{Name: "two", Expr: ")"},
	})
	if err == nil {
		t.Fatal("Compile() succeeded, want error")
	}

	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		t.Fatalf("Compile() error %T does not join its causes", err)
	}

	if got := len(joined.Unwrap()); got != 2 {
		t.Errorf("Compile() joined %d errors, want 2", got)
	}
}

func TestGrammar_Validate(t *testing.T) {
	g, err := Compile(nodectrl)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	tests := []struct {
		name    string
		tokens  lexer.Tokens
		wantErr error
		wantMsg string
	}{
		{
			name: "start then nodes",
			tokens: lexer.Tokens{
				{ID: "start"},
				{ID: "nodes", Values: []string{"1", "2"}},
			},
		},
		{
			name:   "empty",
			tokens: lexer.Tokens{},
		},
		{
			name: "nodes then start",
			tokens: lexer.Tokens{
				{ID: "nodes", Values: []string{"1"}},
				{ID: "start"},
			},
			wantErr: ErrRuleViolated,
			wantMsg: "rule violated: the start action requires a list of nodes",
		},
		{
			name: "free value",
			tokens: lexer.Tokens{
				{ID: "start"},
				{ID: "nodes", Values: []string{"1"}},
				{Values: []string{"extra"}},
			},
			wantErr: ErrRuleViolated,
			wantMsg: "rule violated: no-free-values: len(free) == 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Validate(context.Background(), tt.tokens)

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}

				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}

			if err.Error() != tt.wantMsg {
				t.Errorf("Validate() error = %q, want %q", err, tt.wantMsg)
			}
		})
	}
}

func TestGrammar_Functions(t *testing.T) {
	tokens := lexer.Tokens{
		{ID: "start"},
		{ID: "nodes", Values: []string{"1", "2"}},
		{ID: "start"},
		{ID: "nodes", Values: []string{"3"}},
		{Values: []string{"free"}},
	}

	exprs := []string{
		`has("start") && !has("stop")`,
		`count("start") == 2 && count("stop") == 0`,
		`join(values("nodes"), ",") == "1,2,3"`,
		`follows("start", "nodes")`,
		`!follows("nodes", "start")`,
		`first("nodes") == 1 && first("stop") == -1`,
		`join(ids, " ") == "start nodes start nodes"`,
		`len(free) == 1 && free[0] == "free"`,
		`len(tokens) == 5 && tokens[1].id == "nodes"`,
		`all(tokens[1].values, {# in ["1", "2"]})`,
	}

	for _, e := range exprs {
		t.Run(e, func(t *testing.T) {
			g, err := Compile([]Rule{{Name: "check", Expr: e}})
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", e, err)
			}

			if err := g.Validate(context.Background(), tokens); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestGrammar_Validate_Nil(t *testing.T) {
	var g *Grammar

	if err := g.Validate(context.Background(), lexer.Tokens{{ID: "x"}}); err != nil {
		t.Errorf("nil Grammar Validate() error = %v", err)
	}

	if g.Len() != 0 || g.Rules() != nil {
		t.Error("nil Grammar reports rules")
	}
}

func TestGrammar_Validate_Canceled(t *testing.T) {
	g, err := Compile(nodectrl)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := g.Validate(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Validate() error = %v, want %v", err, context.Canceled)
	}
}
