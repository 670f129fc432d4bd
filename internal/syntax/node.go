package syntax

import (
	"strconv"
	"strings"

	"vbcore/internal/source"
	"vbcore/internal/token"
)

// Node is a read-only parse tree node. Start and Stop are inclusive token
// indices into the module's token stream.
type Node struct {
	Kind     Kind
	Start    int
	Stop     int
	Children []*Node
	parent   *Node
}

// NewNode creates a node covering tokens start..stop.
func NewNode(kind Kind, start, stop int) *Node {
	return &Node{Kind: kind, Start: start, Stop: stop}
}

// NewTerminal wraps a single token.
func NewTerminal(index int) *Node {
	return &Node{Kind: Terminal, Start: index, Stop: index}
}

// Add appends a child and widens the node's token range to cover it.
func (n *Node) Add(child *Node) *Node {
	if child == nil {
		return n
	}
	child.parent = n
	if len(n.Children) == 0 && n.Stop < n.Start {
		n.Start, n.Stop = child.Start, child.Stop
	}
	if child.Start < n.Start {
		n.Start = child.Start
	}
	if child.Stop > n.Stop {
		n.Stop = child.Stop
	}
	n.Children = append(n.Children, child)
	return n
}

// Parent returns the enclosing node, or nil for the root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Root walks up to the top of the tree.
func (n *Node) Root() *Node {
	for n != nil && n.parent != nil {
		n = n.parent
	}
	return n
}

// Ancestor returns the nearest strict ancestor of the given kind.
func (n *Node) Ancestor(kind Kind) *Node {
	for p := n.Parent(); p != nil; p = p.parent {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}

func (n *Node) IsTerminal() bool {
	return n != nil && n.Kind == Terminal
}

// Walk visits n and its descendants in pre-order. Returning false from fn skips the subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find collects every descendant (including n) of the given kind in source order.
func (n *Node) Find(kind Kind) []*Node {
	var out []*Node
	n.Walk(func(x *Node) bool {
		if x.Kind == kind {
			out = append(out, x)
		}
		return true
	})
	return out
}

// FirstChild returns the first direct child of the given kind.
func (n *Node) FirstChild(kind Kind) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// Text returns the original source text covered by the node.
func (n *Node) Text(s *token.Stream) string {
	if n == nil {
		return ""
	}
	return s.Text(n.Start, n.Stop)
}

// Selection converts the node's token range into a line/column selection.
func (n *Node) Selection(s *token.Stream) source.Selection {
	if n == nil || !s.Valid(n.Start) {
		return source.Selection{}
	}
	return source.NewSelection(s.At(n.Start).Start(), s.At(n.Stop).End())
}

// QualifiedSelection ties the node's selection to the stream's module.
func (n *Node) QualifiedSelection(s *token.Stream) source.QualifiedSelection {
	return source.QualifiedSelection{Module: s.Module, Selection: n.Selection(s)}
}

// Dump renders the tree as indented kinds with token ranges, for tests and the CLI.
func (n *Node) Dump() string {
	var b strings.Builder
	var rec func(x *Node, depth int)
	rec = func(x *Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(x.Kind.String())
		b.WriteString(" ")
		b.WriteString(strconv.Itoa(x.Start))
		b.WriteString("..")
		b.WriteString(strconv.Itoa(x.Stop))
		b.WriteByte('\n')
		for _, c := range x.Children {
			rec(c, depth+1)
		}
	}
	if n != nil {
		rec(n, 0)
	}
	return b.String()
}
