package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/glex/grammar"
	"github.com/ardnew/glex/lexer"
)

// parseCommand parses args into cli and returns a context carrying the kong
// context and the sample definitions. Output is written to out.
func parseCommand(
	t *testing.T,
	cli any,
	out *bytes.Buffer,
	vars kong.Vars,
	args ...string,
) context.Context {
	t.Helper()

	parser, err := kong.New(cli, vars, kong.Writers(out, out))
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", args, err)
	}

	path := writeFile(t, t.TempDir(), "defs.yaml", sampleYAML)

	ctx := WithContext(context.Background(), ktx)

	return withDefinitions(ctx, []string{path}, pipe(t, ""))
}

func TestLexRun(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "text",
			args: []string{"--", "-sl1,2"},
			want: "start\nnodes \"1\" \"2\"\n",
		},
		{
			name: "equivalent forms",
			args: []string{"--", "--start", "--list=1,2"},
			want: "start\nnodes \"1\" \"2\"\n",
		},
		{
			name: "json",
			args: []string{"--format", "json", "--indent", "0", "--", "-s", "--list", "1,2"},
			want: `[{"id":"start"},{"id":"nodes","values":["1","2"]}]` + "\n",
		},
		{
			name: "offset",
			args: []string{"--offset", "1", "--", "nodectrl", "-sl=1,2"},
			want: "start\nnodes \"1\" \"2\"\n",
		},
		{
			name: "no validate",
			args: []string{"--no-validate", "--", "-s", "stray"},
			want: "start\n- \"stray\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				cli struct {
					Lex Lex `cmd:""`
				}
				out bytes.Buffer
			)

			ctx := parseCommand(t, &cli, &out, nil, append([]string{"lex"}, tt.args...)...)

			if err := cli.Lex.Run(ctx); err != nil {
				t.Fatalf("Lex.Run() error = %v", err)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("Lex.Run() output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLexRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown short flag", []string{"--", "-x"}, lexer.ErrUnknownShortFlag},
		{"missing value", []string{"--", "-l"}, lexer.ErrMissingValue},
		{"start without nodes", []string{"--", "-s"}, grammar.ErrRuleViolated},
		{"free value", []string{"--", "-sl1,2", "stray"}, grammar.ErrRuleViolated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				cli struct {
					Lex Lex `cmd:""`
				}
				out bytes.Buffer
			)

			ctx := parseCommand(t, &cli, &out, nil, append([]string{"lex"}, tt.args...)...)

			err := cli.Lex.Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Lex.Run() error = %v, want %v", err, tt.wantErr)
			}

			if out.Len() != 0 {
				t.Errorf("Lex.Run() wrote %q on error", out.String())
			}
		})
	}
}

func TestLexRunNoDefinitions(t *testing.T) {
	var (
		cli struct {
			Lex Lex `cmd:""`
		}
		out bytes.Buffer
	)

	parser, err := kong.New(&cli, kong.Writers(&out, &out))
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse([]string{"lex", "--", "-s"})
	if err != nil {
		t.Fatal(err)
	}

	err = cli.Lex.Run(WithContext(context.Background(), ktx))
	if !errors.Is(err, ErrNoDefinitions) {
		t.Errorf("Lex.Run() error = %v, want %v", err, ErrNoDefinitions)
	}
}
