package diag

import (
	"testing"

	"vbcore/internal/source"
)

func loc(line, col uint32) source.QualifiedSelection {
	return source.QualifiedSelection{
		Module:    source.ModuleName{Project: "P", Component: "M"},
		Selection: source.Selection{StartLine: line, StartColumn: col, EndLine: line, EndColumn: col + 1},
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynMissingEnd, "SYN2002"},
		{AnnPlacementViolation, "ANN3003"},
		{RewOverlappingEdits, "REW4003"},
		{CpaAmbiguousReference, "CPA5001"},
		{IOLoadFileError, "IO6001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if Code(3999).Title() != "Unknown error" {
		t.Error("undescribed codes must fall back to the unknown title")
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	b := NewBag(3)
	b.Add(New(SevInfo, AnnInfo, loc(3, 1), "c"))
	b.Add(New(SevWarning, AnnAlreadyPresent, loc(1, 1), "a"))
	b.Add(New(SevWarning, AnnAlreadyPresent, loc(1, 1), "a"))
	if b.Add(New(SevError, RewCommitFailed, loc(1, 1), "over")) {
		t.Fatal("Add must respect the limit")
	}
	b.Sort()
	if b.Items()[0].Location.Selection.StartLine != 1 {
		t.Errorf("Sort must order by line, got %+v", b.Items())
	}
	b.Dedup()
	if b.Len() != 2 {
		t.Errorf("Dedup left %d items, want 2", b.Len())
	}
	if !b.HasWarnings() || b.HasErrors() {
		t.Error("bag severity summary is wrong")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	rb := ReportWarning(BagReporter{Bag: bag}, AnnPlacementViolation, loc(2, 5), "not first line").
		WithNote(loc(1, 1), "logical line starts here")
	rb.Emit()
	rb.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Emit must report once, got %d", bag.Len())
	}
	want := "warning ANN3003 P.M L2C5-6 not first line\nnote ANN3003 P.M L1C1-2 logical line starts here"
	if got := FormatShort(bag.Items()); got != want {
		t.Errorf("FormatShort:\nwant %q\ngot  %q", want, got)
	}
}

func TestParseSeverityAndFilter(t *testing.T) {
	for in, want := range map[string]Severity{"info": SevInfo, "WARN": SevWarning, " Error ": SevError} {
		got, err := ParseSeverity(in)
		if err != nil || got != want {
			t.Errorf("ParseSeverity(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("ParseSeverity must reject unknown names")
	}

	diags := []Diagnostic{
		New(SevInfo, AnnInfo, loc(1, 1), "i"),
		New(SevError, RewCommitFailed, loc(2, 1), "e"),
		New(SevWarning, AnnUnknownType, loc(3, 1), "w"),
	}
	got := AtLeast(diags, SevWarning)
	if len(got) != 2 || got[0].Message != "e" || got[1].Message != "w" {
		t.Errorf("AtLeast(warning) = %+v", got)
	}
	if len(AtLeast(diags, SevInfo)) != 3 {
		t.Error("AtLeast(info) must keep everything")
	}
}
