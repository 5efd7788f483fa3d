package argdef

import "github.com/ardnew/glex/grammar"

// Sample returns the definitions of a small node controller: a start action
// that must be followed by a comma-separated list of nodes.
func Sample() *File {
	return &File{
		Arguments: []Argument{
			{ID: "nodes", Long: "list", Short: "l", Arity: "multi", Delimiter: ","},
			{ID: "start", Long: "start", Short: "s"},
		},
		Rules: []grammar.Rule{
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
		},
	}
}
