package annotation

import (
	"slices"
	"strings"
)

// Flags describe which targets an annotation type can apply to.
type Flags uint16

const (
	GeneralAnnotation Flags = 1 << iota
	ModuleAnnotation
	MemberAnnotation
	VariableAnnotation
	IdentifierAnnotation
	// AttributeAnnotation types mirror a hidden VB_ attribute.
	AttributeAnnotation
)

var flagNames = []struct {
	f    Flags
	name string
}{
	{GeneralAnnotation, "General"},
	{ModuleAnnotation, "Module"},
	{MemberAnnotation, "Member"},
	{VariableAnnotation, "Variable"},
	{IdentifierAnnotation, "Identifier"},
	{AttributeAnnotation, "Attribute"},
}

// Has reports whether f contains every bit of flag.
func (f Flags) Has(flag Flags) bool {
	return flag != 0 && f&flag == flag
}

func (f Flags) String() string {
	if f == 0 {
		return "None"
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.f != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Type is an annotation kind: its display name and target capabilities.
// Unknown annotations carry no flags.
type Type struct {
	Name  string
	Flags Flags
}

// Known reports whether the type came from the registry.
func (t Type) Known() bool { return t.Flags != 0 }

// Compatible reports whether t and other can apply to a common target.
func (t Type) Compatible(other Type) bool { return t.Flags&other.Flags != 0 }

func (t Type) String() string { return t.Name }

// Built-in annotation types.
var (
	Ignore              = Type{"Ignore", GeneralAnnotation | IdentifierAnnotation}
	IgnoreModule        = Type{"IgnoreModule", ModuleAnnotation}
	Folder              = Type{"Folder", ModuleAnnotation}
	TestModule          = Type{"TestModule", ModuleAnnotation}
	TestMethod          = Type{"TestMethod", MemberAnnotation}
	ModuleInitialize    = Type{"ModuleInitialize", MemberAnnotation}
	ModuleCleanup       = Type{"ModuleCleanup", MemberAnnotation}
	TestInitialize      = Type{"TestInitialize", MemberAnnotation}
	TestCleanup         = Type{"TestCleanup", MemberAnnotation}
	IgnoreTest          = Type{"IgnoreTest", MemberAnnotation}
	Description         = Type{"Description", MemberAnnotation | AttributeAnnotation}
	ModuleDescription   = Type{"ModuleDescription", ModuleAnnotation | AttributeAnnotation}
	VariableDescription = Type{"VariableDescription", VariableAnnotation | AttributeAnnotation}
	Obsolete            = Type{"Obsolete", MemberAnnotation | VariableAnnotation}
	Exposed             = Type{"Exposed", ModuleAnnotation | AttributeAnnotation}
	PredeclaredID       = Type{"PredeclaredId", ModuleAnnotation | AttributeAnnotation}
	DefaultMember       = Type{"DefaultMember", MemberAnnotation | AttributeAnnotation}
	Enumerator          = Type{"Enumerator", MemberAnnotation | AttributeAnnotation}
	NoIndent            = Type{"NoIndent", ModuleAnnotation}
	Interface           = Type{"Interface", ModuleAnnotation}
)

var registry = func() map[string]Type {
	m := make(map[string]Type)
	for _, t := range []Type{
		Ignore, IgnoreModule, Folder, TestModule, TestMethod, ModuleInitialize, ModuleCleanup,
		TestInitialize, TestCleanup, IgnoreTest, Description, ModuleDescription, VariableDescription,
		Obsolete, Exposed, PredeclaredID, DefaultMember, Enumerator, NoIndent, Interface,
	} {
		m[strings.ToLower(t.Name)] = t
	}
	return m
}()

// Lookup finds a built-in type by name, ignoring case. Unknown names yield a
// flagless Type that keeps the spelling and false.
func Lookup(name string) (Type, bool) {
	t, ok := registry[strings.ToLower(name)]
	if !ok {
		return Type{Name: name}, false
	}
	return t, true
}

// Types lists the registry sorted by name.
func Types() []Type {
	out := make([]Type, 0, len(registry))
	for _, t := range registry {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b Type) int { return strings.Compare(a.Name, b.Name) })
	return out
}
