package argdef

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/ardnew/glex/grammar"
)

// hclFile represents the top-level structure of an HCL definitions file.
type hclFile struct {
	Arguments []hclArgument `hcl:"argument,block"`
	Rules     []hclRule     `hcl:"rule,block"`
}

type hclArgument struct {
	ID        string  `hcl:"id,label"`
	Long      string  `hcl:"long"`
	Short     *string `hcl:"short,optional"`
	Arity     *string `hcl:"arity,optional"`
	Delimiter *string `hcl:"delimiter,optional"`
}

type hclRule struct {
	Name    string  `hcl:"name,label"`
	Expr    string  `hcl:"expr"`
	Message *string `hcl:"message,optional"`
}

// evalContext exposes the process environment to HCL expressions as
// env.NAME.
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}

	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok && name != "" {
			vars[name] = cty.StringVal(value)
		}
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

func parseHCL(data []byte, name string) (*File, error) {
	parser := hclparse.NewParser()

	src, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, diagError(parser, diags)
	}

	var parsed hclFile

	if diags := gohcl.DecodeBody(src.Body, evalContext(), &parsed); diags.HasErrors() {
		return nil, diagError(parser, diags)
	}

	f := &File{
		Arguments: make([]Argument, len(parsed.Arguments)),
		Rules:     make([]grammar.Rule, len(parsed.Rules)),
	}

	for i, a := range parsed.Arguments {
		f.Arguments[i] = Argument{
			ID:        a.ID,
			Long:      a.Long,
			Short:     deref(a.Short),
			Arity:     deref(a.Arity),
			Delimiter: deref(a.Delimiter),
		}
	}

	for i, r := range parsed.Rules {
		f.Rules[i] = grammar.Rule{
			Name:    r.Name,
			Expr:    r.Expr,
			Message: deref(r.Message),
		}
	}

	return f, nil
}

// diagError renders diags with source snippets.
func diagError(parser *hclparse.Parser, diags hcl.Diagnostics) error {
	var sb strings.Builder

	wr := hcl.NewDiagnosticTextWriter(&sb, parser.Files(), 0, false)
	if err := wr.WriteDiagnostics(diags); err != nil {
		return diags
	}

	return errors.New(strings.TrimSpace(sb.String()))
}

func encodeHCL(w io.Writer, f *File) error {
	out := hclFile{
		Arguments: make([]hclArgument, len(f.Arguments)),
		Rules:     make([]hclRule, len(f.Rules)),
	}

	for i, a := range f.Arguments {
		out.Arguments[i] = hclArgument{
			ID:        a.ID,
			Long:      a.Long,
			Short:     ref(a.Short),
			Arity:     ref(a.Arity),
			Delimiter: ref(a.Delimiter),
		}
	}

	for i, r := range f.Rules {
		out.Rules[i] = hclRule{
			Name:    r.Name,
			Expr:    r.Expr,
			Message: ref(r.Message),
		}
	}

	file := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(&out, file.Body())

	_, err := w.Write(hclwrite.Format(file.Bytes()))

	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// ref returns nil for an empty string so that the attribute is omitted.
func ref(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
