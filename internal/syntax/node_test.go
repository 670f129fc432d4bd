package syntax

import "testing"

// module: tokens 0..6, two logical lines.
func sampleTree() (root, eol1, stmt2 *Node) {
	root = NewNode(Module, 0, -1)
	stmt1 := NewNode(CallStmt, 0, -1).Add(NewTerminal(0)).Add(NewTerminal(1))
	eol1 = NewNode(EndOfLine, 0, -1).Add(NewTerminal(2))
	stmt2 = NewNode(LetStmt, 0, -1).Add(NewTerminal(3)).Add(NewTerminal(4))
	eol2 := NewNode(EndOfLine, 0, -1).Add(NewTerminal(5))
	root.Add(stmt1).Add(eol1).Add(stmt2).Add(eol2).Add(NewTerminal(6))
	return root, eol1, stmt2
}

func TestAddWidensRange(t *testing.T) {
	root, _, stmt2 := sampleTree()
	if root.Start != 0 || root.Stop != 6 {
		t.Errorf("root range = %d..%d, want 0..6", root.Start, root.Stop)
	}
	if stmt2.Start != 3 || stmt2.Stop != 4 {
		t.Errorf("stmt range = %d..%d, want 3..4", stmt2.Start, stmt2.Stop)
	}
	if stmt2.Children[0].Root() != root {
		t.Error("Root must reach the module node")
	}
	if stmt2.Children[0].Ancestor(Module) != root || stmt2.Ancestor(LetStmt) != nil {
		t.Error("Ancestor must search strict ancestors only")
	}
}

func TestPreviousEndOfLine(t *testing.T) {
	root, eol1, stmt2 := sampleTree()
	if got := PreviousEndOfLine(stmt2); got != eol1 {
		t.Errorf("PreviousEndOfLine(stmt2) = %v, want first EndOfLine", got)
	}
	if got := PreviousEndOfLine(root.Children[0]); got != nil {
		t.Error("first logical line has no previous terminator")
	}
	if got := len(EndsOfLine(root)); got != 2 {
		t.Errorf("EndsOfLine = %d, want 2", got)
	}
}

func TestKindClassifiers(t *testing.T) {
	for _, k := range []Kind{ForNextStmt, ForEachStmt, WhileWendStmt, DoLoopStmt} {
		if !k.IsLoop() || k.IsBranch() {
			t.Errorf("%s must be a loop", k)
		}
	}
	for _, k := range []Kind{IfStmt, ElseIfBlock, ElseBlock, SingleLineIfStmt, SingleLineElseClause, CaseClause, CaseElseClause} {
		if !k.IsBranch() || k.IsLoop() {
			t.Errorf("%s must be a branch", k)
		}
	}
	if SelectCaseStmt.IsBranch() {
		t.Error("Select Case itself is generic; its arms are branches")
	}
}
