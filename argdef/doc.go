// Package argdef loads argument definitions and grammar rules from files.
//
// # YAML
//
// Files ending in .yaml, .yml or .json are decoded with
// [github.com/goccy/go-yaml]:
//
//	arguments:
//	  - id: nodes
//	    long: list
//	    short: l
//	    arity: multi
//	    delimiter: ","
//	  - id: start
//	    long: start
//	    short: s
//	rules:
//	  - name: start-needs-nodes
//	    expr: follows("start", "nodes")
//	    message: the start action requires a list of nodes
//
// Unknown fields are rejected.
//
// # HCL
//
// Files ending in .hcl are decoded with [github.com/hashicorp/hcl/v2]:
//
//	argument "nodes" {
//	  long      = "list"
//	  short     = "l"
//	  arity     = "multi"
//	  delimiter = ","
//	}
//
//	rule "start-needs-nodes" {
//	  expr    = "follows(\"start\", \"nodes\")"
//	  message = "the start action requires a list of nodes"
//	}
//
// HCL expressions may read the process environment as env.NAME, e.g.
// delimiter = env.GLEX_DELIMITER.
//
// # Use
//
// [File.Lexer] registers every argument with a new lexer, and [File.Grammar]
// compiles the rules, which may only refer to the file's own arguments.
// [Merge] combines several files.
package argdef
