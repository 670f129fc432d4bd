package testkit

import (
	"fmt"

	"vbcore/internal/codepath"
	"vbcore/internal/syntax"
	"vbcore/internal/token"
)

// CheckSyntaxInvariants runs a minimal set of invariants on a parsed module:
// 1) the root covers every token from 0 to EOF and reproduces the module text
// 2) every child range is non-empty, lies inside its parent and follows its previous sibling
// 3) every child points back to its parent
func CheckSyntaxInvariants(s *token.Stream, root *syntax.Node) error {
	if s == nil || root == nil {
		return fmt.Errorf("nil stream or root")
	}
	if root.Start != 0 || root.Stop != s.Len()-1 {
		return fmt.Errorf("root covers %d..%d, want 0..%d", root.Start, root.Stop, s.Len()-1)
	}
	if root.Text(s) != s.String() {
		return fmt.Errorf("root text differs from the token stream")
	}
	var err error
	root.Walk(func(n *syntax.Node) bool {
		if err != nil {
			return false
		}
		prev := n.Start - 1
		for i, c := range n.Children {
			switch {
			case c.Parent() != n:
				err = fmt.Errorf("%s child %d (%s) has a foreign parent", n.Kind, i, c.Kind)
			case c.Stop < c.Start:
				err = fmt.Errorf("%s child %d (%s) is empty", n.Kind, i, c.Kind)
			case c.Start <= prev:
				err = fmt.Errorf("%s child %d (%s) starts at %d, before %d", n.Kind, i, c.Kind, c.Start, prev+1)
			case c.Stop > n.Stop:
				err = fmt.Errorf("%s child %d (%s) ends at %d, after parent end %d", n.Kind, i, c.Kind, c.Stop, n.Stop)
			}
			if err != nil {
				return false
			}
			prev = c.Stop
		}
		return true
	})
	return err
}

// CheckTreeInvariants verifies a code path tree:
// 1) SortOrder equals the index among kept siblings
// 2) SourceIndex strictly increases across siblings
// 3) no Generic leaf survives pruning
// 4) parent links match the child lists
func CheckTreeInvariants(t *codepath.Tree) error {
	if t == nil || t.Root() == 0 {
		return fmt.Errorf("empty tree")
	}
	var err error
	t.Walk(func(id codepath.NodeID, _ int) bool {
		if err != nil {
			return false
		}
		n, _ := t.Node(id)
		if id != t.Root() && n.Kind == codepath.Generic && n.IsLeaf() {
			err = fmt.Errorf("node %d is a Generic leaf", id)
			return false
		}
		prevSource := -1
		for i, cid := range n.Children() {
			c, ok := t.Node(cid)
			switch {
			case !ok:
				err = fmt.Errorf("node %d has dangling child %d", id, cid)
			case c.Parent() != id:
				err = fmt.Errorf("node %d parent = %d, want %d", cid, c.Parent(), id)
			case c.SortOrder != i:
				err = fmt.Errorf("node %d sort order = %d, want %d", cid, c.SortOrder, i)
			case c.SourceIndex <= prevSource:
				err = fmt.Errorf("node %d source index %d does not increase (prev %d)", cid, c.SourceIndex, prevSource)
			}
			if err != nil {
				return false
			}
			prevSource = c.SourceIndex
		}
		return true
	})
	return err
}
