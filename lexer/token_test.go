package lexer

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

var sampleTokens = Tokens{
	tokStart,
	tokNodes12,
	free("x y"),
}

func TestTokens_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleTokens.Format(&buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "start\nnodes \"1\" \"2\"\n- \"x y\"\n"
	if got := buf.String(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestTokens_FormatJSON(t *testing.T) {
	tests := []struct {
		name   string
		tokens Tokens
		indent int
		want   string
	}{
		{
			name:   "compact",
			tokens: sampleTokens,
			want: `[{"id":"start"},{"id":"nodes","values":["1","2"]},` +
				`{"id":"","values":["x y"]}]` + "\n",
		},
		{
			name:   "indented",
			tokens: Tokens{tokStart},
			indent: 2,
			want:   "[\n  {\n    \"id\": \"start\"\n  }\n]\n",
		},
		{
			name: "nil",
			want: "[]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.tokens.FormatJSON(&buf, tt.indent); err != nil {
				t.Fatalf("FormatJSON() error = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("FormatJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokens_FormatYAML(t *testing.T) {
	for _, indent := range []int{0, 2, 4} {
		var buf bytes.Buffer
		if err := sampleTokens.FormatYAML(context.Background(), &buf, indent); err != nil {
			t.Fatalf("FormatYAML(%d) error = %v", indent, err)
		}

		var got Tokens
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("yaml.Unmarshal() error = %v\n%s", err, buf.String())
		}

		if !got.Equal(sampleTokens) {
			t.Errorf("FormatYAML(%d) mismatch (-want +got):\n%s",
				indent, cmp.Diff(sampleTokens, got))
		}
	}
}

func TestTokens_Queries(t *testing.T) {
	tokens := append(Tokens{free("a")}, sampleTokens...)

	if diff := cmp.Diff([]string{"start", "nodes"}, tokens.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"a", "x y"}, tokens.Free()); diff != "" {
		t.Errorf("Free() mismatch (-want +got):\n%s", diff)
	}

	if got, ok := tokens.Lookup("nodes"); !ok || !got.Equal(tokNodes12) {
		t.Errorf("Lookup(nodes) = %v, %v", got, ok)
	}

	if _, ok := tokens.Lookup("verbose"); ok {
		t.Error("Lookup(verbose) found a missing token")
	}
}

func TestToken_Equal(t *testing.T) {
	if !(Token{ID: "a"}).Equal(Token{ID: "a", Values: []string{}}) {
		t.Error("nil and empty values are not equal")
	}

	if (Token{ID: "a"}).Equal(Token{ID: "b"}) {
		t.Error("tokens with different ids are equal")
	}

	if tokNodes12.Equal(Token{ID: "nodes", Values: []string{"2", "1"}}) {
		t.Error("value order is ignored")
	}
}
