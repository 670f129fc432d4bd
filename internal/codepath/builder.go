package codepath

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"vbcore/internal/decl"
	"vbcore/internal/syntax"
)

var (
	// ErrNilTarget is returned when the syntax root or the declaration is missing.
	ErrNilTarget = errors.New("code path target is nil")
	// ErrAmbiguousReference is returned when two references of the target share a syntax node.
	ErrAmbiguousReference = errors.New("several references share one syntax node")
)

// Builder builds code path trees. The zero value is usable.
type Builder struct {
	log *zap.Logger
}

// NewBuilder returns a Builder that traces tree sizes at debug level.
func NewBuilder(log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{log: log}
}

// BuildTree is Builder.Build with a silent logger.
func BuildTree(root *syntax.Node, target *decl.Declaration) (*Tree, error) {
	return (&Builder{}).Build(root, target)
}

// Build classifies root and its subtree against target.
func (b *Builder) Build(root *syntax.Node, target *decl.Declaration) (*Tree, error) {
	if root == nil || target == nil {
		return nil, ErrNilTarget
	}
	refs, err := indexReferences(target)
	if err != nil {
		return nil, err
	}
	c := &classifier{target: target, refs: refs}
	t := &Tree{nodes: make([]Node, 0, 64)}
	var visited int
	t.root = t.build(c, root, 0, 0, &visited)

	if b.log != nil {
		b.log.Debug("code path tree built",
			zap.String("target", target.QualifiedName()),
			zap.Int("syntax_nodes", visited),
			zap.Int("kept", len(t.nodes)),
			zap.Int("pruned", visited-len(t.nodes)),
		)
	}
	return t, nil
}

func indexReferences(target *decl.Declaration) (map[*syntax.Node]*decl.Reference, error) {
	refs := make(map[*syntax.Node]*decl.Reference, len(target.References))
	for _, r := range target.References {
		if r == nil || r.Context == nil {
			continue
		}
		if prev, dup := refs[r.Context]; dup {
			return nil, fmt.Errorf("%w: %s at %s and %s", ErrAmbiguousReference,
				target.QualifiedName(), prev.Selection, r.Selection)
		}
		refs[r.Context] = r
	}
	return refs, nil
}

// build allocates n, recurses into its children and drops the ones that
// carry nothing. Children are allocated after their parent, so a pruned
// child is always the arena tail and is dropped by truncation.
func (t *Tree) build(c *classifier, n *syntax.Node, parent NodeID, sourceIndex int, visited *int) NodeID {
	*visited++
	node := c.classify(n)
	node.parent = parent
	node.SourceIndex = sourceIndex
	t.nodes = append(t.nodes, node)
	id := NodeID(len(t.nodes)) // #nosec G115 -- arena size is bounded by the syntax tree

	var kept []NodeID
	for i, child := range n.Children {
		cid := t.build(c, child, id, i, visited)
		cn := &t.nodes[cid-1]
		if len(cn.children) == 0 && cn.Kind == Generic {
			t.nodes = t.nodes[:cid-1]
			continue
		}
		cn.SortOrder = len(kept)
		kept = append(kept, cid)
	}
	t.nodes[id-1].children = kept
	return id
}
