package codepath

import (
	"vbcore/internal/decl"
	"vbcore/internal/syntax"
)

// shapeRules are tried in order; the first match tags the node. No match means Generic.
var shapeRules = []struct {
	kind  NodeKind
	match func(syntax.Kind) bool
}{
	{Loop, syntax.Kind.IsLoop},
	{Branch, syntax.Kind.IsBranch},
	{Block, func(k syntax.Kind) bool { return k == syntax.Block }},
}

// overrideRules run after the shape rules; a later match wins.
var overrideRules = []func(c *classifier, n *syntax.Node, out *Node){
	overrideDeclaration,
	overrideReference,
}

type classifier struct {
	target *decl.Declaration
	refs   map[*syntax.Node]*decl.Reference
}

func (c *classifier) classify(n *syntax.Node) Node {
	out := Node{Kind: Generic, Syntax: n}
	for _, r := range shapeRules {
		if r.match(n.Kind) {
			out.Kind = r.kind
			break
		}
	}
	for _, o := range overrideRules {
		o(c, n, &out)
	}
	return out
}

func overrideDeclaration(c *classifier, n *syntax.Node, out *Node) {
	if c.target.Context == n {
		out.Kind = Declaration
		out.Declaration = c.target
	}
}

func overrideReference(c *classifier, n *syntax.Node, out *Node) {
	ref, ok := c.refs[n]
	if !ok {
		return
	}
	out.Kind = Reference
	if ref.IsAssignment {
		out.Kind = Assignment
	}
	out.Reference = ref
	out.Declaration = nil
}
