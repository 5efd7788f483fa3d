package lexer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// FreeID is the placeholder printed by [Tokens.Format] for tokens that are
// not associated with an argument.
const FreeID = "-"

// Token is one unit of lexer output: the identifier of a matched argument
// and the values assigned to it. A Token with an empty ID holds a free value.
type Token struct {
	ID     string   `json:"id"               yaml:"id"`
	Values []string `json:"values,omitempty" yaml:"values,omitempty"`
}

// IsFree reports whether t is not associated with an argument.
func (t Token) IsFree() bool { return t.ID == "" }

// Equal reports whether t and u have the same identifier and values.
// A nil value list equals an empty one.
func (t Token) Equal(u Token) bool {
	return t.ID == u.ID && slices.Equal(t.Values, u.Values)
}

// String returns the text representation used by [Tokens.Format].
func (t Token) String() string {
	id := t.ID
	if t.IsFree() {
		id = FreeID
	}

	if len(t.Values) == 0 {
		return id
	}

	quoted := make([]string, len(t.Values))
	for i, v := range t.Values {
		quoted[i] = fmt.Sprintf("%q", v)
	}

	return id + " " + strings.Join(quoted, " ")
}

// Tokens is the ordered output of a single tokenization.
type Tokens []Token

// Equal reports whether ts and us contain equal tokens in the same order.
func (ts Tokens) Equal(us Tokens) bool {
	return slices.EqualFunc(ts, us, Token.Equal)
}

// IDs returns the identifiers of all non-free tokens in order.
func (ts Tokens) IDs() []string {
	ids := make([]string, 0, len(ts))

	for _, t := range ts {
		if !t.IsFree() {
			ids = append(ids, t.ID)
		}
	}

	return ids
}

// Lookup returns the first token with the given identifier.
func (ts Tokens) Lookup(id string) (Token, bool) {
	i := slices.IndexFunc(ts, func(t Token) bool { return t.ID == id })
	if i < 0 {
		return Token{}, false
	}

	return ts[i], true
}

// Free returns the values of all free tokens in order.
func (ts Tokens) Free() []string {
	var free []string

	for _, t := range ts {
		if t.IsFree() {
			free = append(free, t.Values...)
		}
	}

	return free
}

// Format writes one line per token to w.
func (ts Tokens) Format(w io.Writer) error {
	for _, t := range ts {
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the tokens as a JSON array to w.
func (ts Tokens) FormatJSON(w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	list := ts
	if list == nil {
		list = Tokens{}
	}

	if indent > 0 {
		jsonData, err = json.MarshalIndent(list, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(list)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the tokens as a YAML sequence to w.
func (ts Tokens) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	list := ts
	if list == nil {
		list = Tokens{}
	}

	yamlData, err := yaml.MarshalContext(ctx, list, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
