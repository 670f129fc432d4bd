package codepath_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"vbcore/internal/codepath"
	"vbcore/internal/decl"
	"vbcore/internal/syntax"
	"vbcore/internal/testkit"
)

const typeHintModule = `Public Sub DoSomething()
   Dim foo$
   foo = "some string"
End Sub
`

func TestTypeHintDeclarationNode(t *testing.T) {
	f := testkit.Parse("Module1", typeHintModule)
	require.Zero(t, f.Bag.Len())
	foo, err := f.Declaration("foo", decl.Variable)
	require.NoError(t, err)
	require.True(t, foo.HasTypeHint)

	sub := f.NodeAt(syntax.SubStmt, 1, 1)
	require.NotNil(t, sub)
	tree, err := codepath.BuildTree(sub, foo)
	require.NoError(t, err)
	require.NoError(t, testkit.CheckTreeInvariants(tree))

	decls := tree.Nodes(codepath.Declaration)
	require.Len(t, decls, 1)
	n, _ := tree.Node(decls[0])
	if n.Declaration != foo {
		t.Fatal("Declaration node must carry the target")
	}
	if sel := n.Syntax.Selection(f.Stream); sel.StartLine != 2 || sel.StartColumn != 8 {
		t.Errorf("declaration node starts at %s, want L2C8", sel)
	}
	stmt := n.Syntax.Parent()
	if stmt.Children[n.SourceIndex] != n.Syntax {
		t.Errorf("SourceIndex %d is not the statement child index", n.SourceIndex)
	}

	want := `Generic (SubStmt) #0
  Block (Block) #0
    Generic (VariableStmt) #0
      Declaration foo #0
    Generic (LetStmt) #1
      Assignment foo L3C4-7 #0
`
	if diff := cmp.Diff(want, tree.String()); diff != "" {
		t.Errorf("tree dump (-want +got):\n%s", diff)
	}
}

const flowModule = `Private total As Long

Public Function Sum(ByVal xs As Variant) As Long
    Dim x As Variant
    For Each x In xs
        If x > 0 Then
            total = total + x
        ElseIf x < 0 Then
            total = total - x
        Else
            Debug.Print "zero"
        End If
    Next x
    Select Case total
        Case 0
            Sum = 0
        Case Else
            Do While total > 100
                total = total \ 2
            Loop
    End Select
    If total Then Sum = total Else Sum = -1
    While False
    Wend
End Function
`

func TestTreeInvariantsAndReferences(t *testing.T) {
	f := testkit.Parse("Module1", flowModule)
	require.Zero(t, f.Bag.Len())
	require.NoError(t, testkit.CheckSyntaxInvariants(f.Stream, f.Root))

	total, err := f.Declaration("total", decl.Variable)
	require.NoError(t, err)
	require.Len(t, total.References, 10)

	tree, err := codepath.BuildTree(f.Root, total)
	require.NoError(t, err)
	require.NoError(t, testkit.CheckTreeInvariants(tree))

	assigns := tree.Nodes(codepath.Assignment)
	reads := tree.Nodes(codepath.Reference)
	if got := len(assigns) + len(reads); got != len(total.References) {
		t.Fatalf("reference nodes = %d, want %d", got, len(total.References))
	}
	if len(assigns) != 3 {
		t.Errorf("assignment nodes = %d, want 3", len(assigns))
	}
	seen := map[*decl.Reference]bool{}
	for _, id := range append(assigns, reads...) {
		n, _ := tree.Node(id)
		if seen[n.Reference] {
			t.Errorf("reference %s appears twice", n.Reference.Selection)
		}
		seen[n.Reference] = true
	}

	counts := map[codepath.NodeKind]int{}
	tree.Walk(func(id codepath.NodeID, _ int) bool {
		n, _ := tree.Node(id)
		counts[n.Kind]++
		return true
	})
	// For Each, Do While, and the empty While loop (non-Generic leaves are kept)
	if counts[codepath.Loop] != 3 {
		t.Errorf("loop nodes = %d, want 3", counts[codepath.Loop])
	}
	// If, ElseIf, Else, Case, Case Else, single-line If, single-line Else
	if counts[codepath.Branch] != 7 {
		t.Errorf("branch nodes = %d, want 7", counts[codepath.Branch])
	}
	if counts[codepath.Declaration] != 1 {
		t.Errorf("declaration nodes = %d, want 1", counts[codepath.Declaration])
	}
}

func TestParentLinks(t *testing.T) {
	f := testkit.Parse("Module1", typeHintModule)
	foo, err := f.Declaration("foo", decl.Variable)
	require.NoError(t, err)
	tree, err := codepath.BuildTree(f.Root, foo)
	require.NoError(t, err)

	id := tree.Nodes(codepath.Assignment)[0]
	var path []codepath.NodeKind
	for ; id != 0; id = tree.Parent(id) {
		n, _ := tree.Node(id)
		path = append(path, n.Kind)
	}
	want := []codepath.NodeKind{codepath.Assignment, codepath.Generic, codepath.Block, codepath.Generic, codepath.Generic}
	if diff := cmp.Diff(want, path); diff != "" {
		t.Errorf("path to root (-want +got):\n%s", diff)
	}
	if _, ok := tree.Node(0); ok {
		t.Error("id 0 must not resolve")
	}
}

func TestBuildTreeErrors(t *testing.T) {
	f := testkit.Parse("Module1", typeHintModule)
	foo, err := f.Declaration("foo", decl.Variable)
	require.NoError(t, err)

	if _, err := codepath.BuildTree(nil, foo); !errors.Is(err, codepath.ErrNilTarget) {
		t.Errorf("nil root: err = %v", err)
	}
	if _, err := codepath.BuildTree(f.Root, nil); !errors.Is(err, codepath.ErrNilTarget) {
		t.Errorf("nil declaration: err = %v", err)
	}

	dup := *foo
	dup.References = []*decl.Reference{foo.References[0], {Context: foo.References[0].Context}}
	if _, err := codepath.BuildTree(f.Root, &dup); !errors.Is(err, codepath.ErrAmbiguousReference) {
		t.Errorf("shared syntax node: err = %v", err)
	}
}

func TestBuilderLogsWithoutChangingResult(t *testing.T) {
	f := testkit.Parse("Module1", typeHintModule)
	foo, err := f.Declaration("foo", decl.Variable)
	require.NoError(t, err)

	quiet, err := codepath.BuildTree(f.Root, foo)
	require.NoError(t, err)
	traced, err := codepath.NewBuilder(nil).Build(f.Root, foo)
	require.NoError(t, err)
	if quiet.String() != traced.String() || quiet.Len() != traced.Len() {
		t.Error("logger must not affect the tree")
	}
}
