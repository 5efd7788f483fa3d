// Package grammar validates lexer token sequences against rules written in
// the [github.com/expr-lang/expr] expression language.
//
// The lexer only splits arguments into tokens. Constraints such as "the start
// action must be followed by a node list" are expressed as rules:
//
//	g, err := grammar.Compile([]grammar.Rule{{
//		Name:    "start-needs-nodes",
//		Expr:    `follows("start", "nodes")`,
//		Message: "the start action requires a list of nodes",
//	}})
//
//	err = g.Validate(ctx, tokens) // errors.Is(err, grammar.ErrRuleViolated)
//
// # Environment
//
// Every rule must evaluate to a boolean. It may use:
//
//	tokens          list of {id, values}, in order
//	ids             identifiers of the non-free tokens, in order
//	free            values of the free tokens, in order
//	has(id)         some token has the identifier
//	count(id)       number of tokens with the identifier
//	values(id)      values of every token with the identifier
//	follows(a, b)   every a token is immediately followed by a b token
//	first(id)       index of the first token with the identifier, or -1
//
// The functions above shadow the expr builtins of the same name.
package grammar
