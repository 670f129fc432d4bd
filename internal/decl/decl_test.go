package decl

import (
	"testing"

	"vbcore/internal/source"
)

func TestTypeFlags(t *testing.T) {
	tests := []struct {
		typ  Type
		flag Type
		want bool
	}{
		{ProceduralModule, Module, true},
		{ClassModule, Module, true},
		{PropertyLet, Member, true},
		{Function, Member, true},
		{Variable, Member, false},
		{Variable, Module, false},
		{Constant, Variable, false},
	}
	for _, tt := range tests {
		if got := tt.typ.Has(tt.flag); got != tt.want {
			t.Errorf("%s.Has(%s) = %v, want %v", tt.typ, tt.flag, got, tt.want)
		}
	}
	if got := Module.String(); got != "ProceduralModule|ClassModule" {
		t.Errorf("Module.String() = %q", got)
	}
	if Type(0).String() != "None" {
		t.Error("zero type must print None")
	}
}

func TestFinder(t *testing.T) {
	m1 := source.ModuleName{Project: "P", Component: "M1"}
	m2 := source.ModuleName{Project: "P", Component: "M2"}
	mod := &Declaration{Name: "M1", Type: ProceduralModule, Module: m1, IsUserDefined: true}
	foo := &Declaration{Name: "foo", Type: Variable, Module: m1, IsUserDefined: true, HasTypeHint: true}
	bar := &Declaration{Name: "Bar", Type: Procedure, Module: m1, IsUserDefined: true}
	ext := &Declaration{Name: "Baz", Type: Function, Module: m2}
	foo.References = []*Reference{
		{Declaration: foo, Module: m1, IsAssignment: true},
		{Declaration: foo, Module: m2, HasTypeHint: true},
	}
	f := NewFinder([]*Declaration{mod, foo, nil, bar, ext})

	if got := len(f.All()); got != 4 {
		t.Errorf("All() = %d, want 4", got)
	}
	if got := f.Members(m1, Member); len(got) != 1 || got[0] != bar {
		t.Errorf("Members(m1, Member) = %v", got)
	}
	if got := f.Members(m1, 0); len(got) != 3 {
		t.Errorf("Members(m1, 0) = %d, want 3", len(got))
	}
	if got := f.UserDeclarations(Member); len(got) != 1 {
		t.Errorf("UserDeclarations(Member) = %d, want 1 (Baz is not user-defined)", len(got))
	}
	if got := f.References(m2); len(got) != 1 {
		t.Errorf("References(m2) = %d, want 1", len(got))
	}
	if d, ok := f.ModuleDeclaration(m1); !ok || d != mod {
		t.Error("ModuleDeclaration must find M1")
	}
	if d, ok := f.Lookup(m1, "FOO", Variable); !ok || d != foo {
		t.Error("Lookup must be case-insensitive")
	}
	decls, refs := f.TypeHinted(m1)
	if len(decls) != 1 || len(refs) != 0 {
		t.Errorf("TypeHinted(m1) = %d decls, %d refs", len(decls), len(refs))
	}
	if got := foo.QualifiedName(); got != "P.M1.foo" {
		t.Errorf("QualifiedName = %q", got)
	}
	if got := mod.QualifiedName(); got != "P.M1" {
		t.Errorf("module QualifiedName = %q", got)
	}
}
