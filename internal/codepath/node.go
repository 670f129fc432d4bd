package codepath

import (
	"vbcore/internal/decl"
	"vbcore/internal/syntax"
)

// NodeKind is the semantic tag of a node.
type NodeKind uint8

const (
	Generic NodeKind = iota
	Loop
	Branch
	Block
	Declaration
	Assignment
	Reference
)

var nodeKindNames = [...]string{
	Generic:     "Generic",
	Loop:        "Loop",
	Branch:      "Branch",
	Block:       "Block",
	Declaration: "Declaration",
	Assignment:  "Assignment",
	Reference:   "Reference",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// NodeID addresses a node inside its Tree. Zero means "no node".
type NodeID uint32

// Node is one classified syntax node.
type Node struct {
	Kind        NodeKind
	Declaration *decl.Declaration // set for Declaration nodes
	Reference   *decl.Reference   // set for Assignment and Reference nodes
	Syntax      *syntax.Node
	// SortOrder is the position among kept siblings; SourceIndex is the
	// position among all children of the parent syntax node.
	SortOrder   int
	SourceIndex int
	parent      NodeID
	children    []NodeID
}

// Parent returns the parent id (zero for the root).
func (n Node) Parent() NodeID { return n.parent }

// Children returns the kept children in source order. Do not modify.
func (n Node) Children() []NodeID { return n.children }

// IsLeaf reports whether the node kept no children.
func (n Node) IsLeaf() bool { return len(n.children) == 0 }
