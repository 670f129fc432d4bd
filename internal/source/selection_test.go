package source

import "testing"

func TestSelectionContains(t *testing.T) {
	sel := Selection{StartLine: 2, StartColumn: 5, EndLine: 3, EndColumn: 4}
	tests := []struct {
		pos  LineCol
		want bool
	}{
		{LineCol{Line: 2, Col: 5}, true},
		{LineCol{Line: 2, Col: 4}, false},
		{LineCol{Line: 2, Col: 80}, true},
		{LineCol{Line: 3, Col: 3}, true},
		{LineCol{Line: 3, Col: 4}, false}, // end column is exclusive
		{LineCol{Line: 1, Col: 9}, false},
	}
	for _, tt := range tests {
		if got := sel.Contains(tt.pos); got != tt.want {
			t.Errorf("Contains(%+v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestSelectionOverlaps(t *testing.T) {
	a := Selection{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 10}
	b := Selection{StartLine: 1, StartColumn: 10, EndLine: 1, EndColumn: 12}
	c := Selection{StartLine: 1, StartColumn: 9, EndLine: 2, EndColumn: 1}
	if a.Overlaps(b) {
		t.Error("adjacent selections must not overlap")
	}
	if !a.Overlaps(c) || !c.Overlaps(a) {
		t.Error("expected overlap")
	}
	if !c.ContainsSelection(Selection{StartLine: 1, StartColumn: 9, EndLine: 1, EndColumn: 12}) {
		t.Error("expected containment")
	}
}

func TestSelectionString(t *testing.T) {
	if got := (Selection{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 8}).String(); got != "L1C1-8" {
		t.Errorf("single line = %q", got)
	}
	if got := (Selection{StartLine: 1, StartColumn: 2, EndLine: 3, EndColumn: 4}).String(); got != "L1C2-L3C4" {
		t.Errorf("multi line = %q", got)
	}
	if n := (Selection{StartLine: 1, EndLine: 3}).LineCount(); n != 3 {
		t.Errorf("LineCount = %d", n)
	}
}
