package grammar

import (
	"slices"

	"github.com/expr-lang/expr/ast"
)

// idChecker records string literals passed to the ID functions that do not
// name a known argument. It runs as an expr patcher and never rewrites the
// tree.
type idChecker struct {
	known   []string
	unknown []string
}

// Visit implements ast.Visitor for idChecker.
func (c *idChecker) Visit(node *ast.Node) {
	call, ok := (*node).(*ast.CallNode)
	if !ok {
		return
	}

	callee, ok := call.Callee.(*ast.IdentifierNode)
	if !ok || !slices.Contains(idFunctions, callee.Value) {
		return
	}

	for _, arg := range call.Arguments {
		lit, ok := arg.(*ast.StringNode)
		if !ok || slices.Contains(c.known, lit.Value) {
			continue
		}

		if !slices.Contains(c.unknown, lit.Value) {
			c.unknown = append(c.unknown, lit.Value)
		}
	}
}
