package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
)

// resolveFlag resolves the flag with the given name from a config document.
func resolveFlag(t *testing.T, scope, doc, name string) any {
	t.Helper()

	resolver, err := resolve(scope)(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	val, err := resolver.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%s) error = %v", name, err)
	}

	return val
}

func TestResolve(t *testing.T) {
	const doc = `
config:
  log:
    level: debug
    pretty: false
  log_format: text
  count: 3
  ratio: 0.5
  defs:
    - a.yaml
    - 7
other:
  foo: bar
`

	tests := []struct {
		name string
		flag string
		want any
	}{
		{"nested mapping", "log-level", "debug"},
		{"nested bool", "log-pretty", false},
		{"underscore key", "log-format", "text"},
		{"integer", "count", "3"},
		{"float", "ratio", "0.5"},
		{"list", "defs", []any{"a.yaml", "7"}},
		{"other namespace", "foo", nil},
		{"missing", "nope", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveFlag(t, baseConfig, doc, tt.flag)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve(%s) mismatch (-want +got):\n%s", tt.flag, diff)
			}
		})
	}
}

func TestResolve_Unscoped(t *testing.T) {
	const doc = "log-level: warn\ndefs: [x.hcl]\n"

	if got := resolveFlag(t, baseConfig, doc, "log-level"); got != "warn" {
		t.Errorf("Resolve(log-level) = %v, want warn", got)
	}
}

func TestResolve_Ignored(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"malformed", "log: [level"},
		{"not a mapping", "- a\n- b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveFlag(t, baseConfig, tt.doc, "log-level"); got != nil {
				t.Errorf("Resolve(log-level) = %v, want nil", got)
			}
		})
	}
}

func TestResolve_ReadError(t *testing.T) {
	resolver, err := resolve(baseConfig)(&errorReader{err: bytes.ErrTooLarge})
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	val, err := resolver.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "x"}})
	if err != nil || val != nil {
		t.Errorf("Resolve() = %v, %v, want nil, nil", val, err)
	}
}

// TestResolve_Kong tests that configured values reach kong flags and that
// command-line flags take precedence.
func TestResolve_Kong(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := os.WriteFile(path, []byte("log:\n  level: debug\ndefs: [a.yaml, b.yaml]\ncount: 3\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	type cliType struct {
		Log struct {
			Level  string `default:"info"`
			Format string `default:"text"`
		} `embed:"" prefix:"log-"`
		Defs  []string
		Count int
	}

	tests := []struct {
		name      string
		args      []string
		wantLevel string
	}{
		{"from config", nil, "debug"},
		{"flag overrides", []string{"--log-level=warn"}, "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli cliType

			parser, err := kong.New(&cli, kong.Configuration(resolve(baseConfig), path))
			if err != nil {
				t.Fatal(err)
			}

			if _, err := parser.Parse(tt.args); err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if cli.Log.Level != tt.wantLevel {
				t.Errorf("Log.Level = %q, want %q", cli.Log.Level, tt.wantLevel)
			}

			if cli.Log.Format != "text" {
				t.Errorf("Log.Format = %q, want default %q", cli.Log.Format, "text")
			}

			if diff := cmp.Diff([]string{"a.yaml", "b.yaml"}, cli.Defs); diff != "" {
				t.Errorf("Defs mismatch (-want +got):\n%s", diff)
			}

			if cli.Count != 3 {
				t.Errorf("Count = %d, want 3", cli.Count)
			}
		})
	}
}

// errorReader is a reader that always returns an error.
type errorReader struct {
	err error
}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, e.err
}
