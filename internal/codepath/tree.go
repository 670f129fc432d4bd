package codepath

import (
	"fmt"
	"strings"
)

// Tree is an immutable arena of classified nodes.
type Tree struct {
	nodes []Node
	root  NodeID
}

// Root returns the id of the node built from the syntax root.
func (t *Tree) Root() NodeID { return t.root }

// Len returns the number of kept nodes, root included.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns a copy of the node with the given id.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if id == 0 || int(id) > len(t.nodes) {
		return Node{}, false
	}
	return t.nodes[id-1], true
}

// Parent returns the parent id, or zero for the root and unknown ids.
func (t *Tree) Parent(id NodeID) NodeID {
	n, _ := t.Node(id)
	return n.parent
}

// Children returns the kept children of id in source order.
func (t *Tree) Children(id NodeID) []NodeID {
	n, _ := t.Node(id)
	return n.children
}

// Walk visits nodes in pre-order. Returning false skips the subtree.
func (t *Tree) Walk(fn func(id NodeID, depth int) bool) {
	var rec func(id NodeID, depth int)
	rec = func(id NodeID, depth int) {
		if !fn(id, depth) {
			return
		}
		for _, c := range t.Children(id) {
			rec(c, depth+1)
		}
	}
	if t.root != 0 {
		rec(t.root, 0)
	}
}

// Nodes returns the ids of every node with the given kind in pre-order.
func (t *Tree) Nodes(kind NodeKind) []NodeID {
	var out []NodeID
	t.Walk(func(id NodeID, _ int) bool {
		if n, _ := t.Node(id); n.Kind == kind {
			out = append(out, id)
		}
		return true
	})
	return out
}

// String renders the tree one node per line, indented by depth.
func (t *Tree) String() string {
	var b strings.Builder
	t.Walk(func(id NodeID, depth int) bool {
		n, _ := t.Node(id)
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Kind.String())
		switch {
		case n.Declaration != nil:
			fmt.Fprintf(&b, " %s", n.Declaration.Name)
		case n.Reference != nil:
			fmt.Fprintf(&b, " %s %s", n.Reference.IdentifierName, n.Reference.Selection)
		case n.Syntax != nil:
			fmt.Fprintf(&b, " (%s)", n.Syntax.Kind)
		}
		fmt.Fprintf(&b, " #%d\n", n.SortOrder)
		return true
	})
	return b.String()
}
