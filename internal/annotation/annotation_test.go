package annotation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"vbcore/internal/annotation"
	"vbcore/internal/testkit"
)

func TestText(t *testing.T) {
	tests := []struct {
		typ  annotation.Type
		args []string
		want string
	}{
		{annotation.IgnoreModule, []string{"VariableNotUsed"}, "'@IgnoreModule VariableNotUsed"},
		{annotation.Ignore, []string{"A", "B"}, "'@Ignore A, B"},
		{annotation.TestMethod, nil, "'@TestMethod"},
		{annotation.Folder, []string{`"A.B"`}, `'@Folder "A.B"`},
	}
	for _, tt := range tests {
		if got := annotation.Text(tt.typ, tt.args...); got != tt.want {
			t.Errorf("Text(%s, %v) = %q, want %q", tt.typ, tt.args, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	typ, ok := annotation.Lookup("ignoremodule")
	if !ok || typ != annotation.IgnoreModule {
		t.Fatalf("Lookup(ignoremodule) = %v, %v", typ, ok)
	}
	typ, ok = annotation.Lookup("Whatever")
	if ok || typ.Known() || typ.Name != "Whatever" {
		t.Fatalf("Lookup(Whatever) = %+v, %v", typ, ok)
	}
	if len(annotation.Types()) != 20 {
		t.Fatalf("registry has %d types", len(annotation.Types()))
	}
}

func TestFlags(t *testing.T) {
	if !annotation.Ignore.Compatible(annotation.Ignore) {
		t.Error("Ignore must be compatible with itself")
	}
	if annotation.IgnoreModule.Compatible(annotation.Ignore) {
		t.Error("IgnoreModule and Ignore share no target")
	}
	if !annotation.Obsolete.Flags.Has(annotation.VariableAnnotation) {
		t.Error("Obsolete applies to variables")
	}
	if got := annotation.Description.Flags.String(); got != "Member|Attribute" {
		t.Errorf("Description flags = %s", got)
	}
}

func TestCollect(t *testing.T) {
	f := testkit.Parse("Module1", `'@Folder("A.B") @NoIndent
'@Ignore X, Y: because
Public Sub Foo()
    '@Custom "a, b", c
End Sub
`)
	type ann struct {
		Name  string
		Known bool
		Args  []string
		Sel   string
	}
	var got []ann
	for _, a := range annotation.Collect(f.Stream, f.Root) {
		got = append(got, ann{a.Type.Name, a.Type.Known(), a.Args, a.Selection.String()})
	}
	want := []ann{
		{"Folder", true, []string{`"A.B"`}, "L1C3-17"},
		{"NoIndent", true, nil, "L1C18-26"},
		{"Ignore", true, []string{"X", "Y"}, "L2C3-14"},
		{"Custom", false, []string{`"a, b"`, "c"}, "L4C7-23"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Collect (-want +got):\n%s", diff)
	}
}
