package grammar

import (
	"slices"

	"github.com/ardnew/glex/lexer"
)

// Names of the functions available to rule expressions.
const (
	fnHas     = "has"
	fnCount   = "count"
	fnValues  = "values"
	fnFollows = "follows"
	fnFirst   = "first"
)

// idFunctions are the functions whose string arguments name argument IDs.
var idFunctions = []string{fnHas, fnCount, fnValues, fnFollows, fnFirst}

// buildEnv constructs the environment a rule expression is evaluated in.
// An empty token sequence yields the exemplar environment used at compile
// time.
func buildEnv(tokens lexer.Tokens) map[string]any {
	list := make([]any, len(tokens))
	for i, t := range tokens {
		values := t.Values
		if values == nil {
			values = []string{}
		}

		list[i] = map[string]any{"id": t.ID, "values": values}
	}

	ids := tokens.IDs()

	free := tokens.Free()
	if free == nil {
		free = []string{}
	}

	return map[string]any{
		"tokens": list,
		"ids":    ids,
		"free":   free,

		fnHas: func(id string) bool {
			return slices.Contains(ids, id)
		},
		fnCount: func(id string) int {
			n := 0

			for _, t := range tokens {
				if t.ID == id {
					n++
				}
			}

			return n
		},
		fnValues: func(id string) []string {
			all := []string{}

			for _, t := range tokens {
				if t.ID == id {
					all = append(all, t.Values...)
				}
			}

			return all
		},
		fnFollows: func(a, b string) bool {
			return follows(tokens, a, b)
		},
		fnFirst: func(id string) int {
			return slices.IndexFunc(tokens, func(t lexer.Token) bool {
				return t.ID == id
			})
		},
	}
}

// follows reports whether every token with ID a is immediately followed by a
// token with ID b.
func follows(tokens lexer.Tokens, a, b string) bool {
	for i, t := range tokens {
		if t.ID != a {
			continue
		}

		if i+1 >= len(tokens) || tokens[i+1].ID != b {
			return false
		}
	}

	return true
}
