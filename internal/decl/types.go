package decl

import "strings"

// Type is a set of declaration-kind flags. Composite values (Module, Member,
// Property) let callers test a whole family with Has.
type Type uint32

const (
	Project Type = 1 << iota
	ProceduralModule
	ClassModule
	Procedure
	Function
	PropertyGet
	PropertyLet
	PropertySet
	Variable
	Constant
	Parameter
	Control
	UserDefinedType
	Enumeration

	Module   = ProceduralModule | ClassModule
	Property = PropertyGet | PropertyLet | PropertySet
	Member   = Procedure | Function | Property
)

var typeNames = []struct {
	t    Type
	name string
}{
	{Project, "Project"},
	{ProceduralModule, "ProceduralModule"},
	{ClassModule, "ClassModule"},
	{Procedure, "Procedure"},
	{Function, "Function"},
	{PropertyGet, "PropertyGet"},
	{PropertyLet, "PropertyLet"},
	{PropertySet, "PropertySet"},
	{Variable, "Variable"},
	{Constant, "Constant"},
	{Parameter, "Parameter"},
	{Control, "Control"},
	{UserDefinedType, "UserDefinedType"},
	{Enumeration, "Enumeration"},
}

// Has reports whether t shares at least one bit with flag.
func (t Type) Has(flag Type) bool {
	return t&flag != 0
}

func (t Type) String() string {
	if t == 0 {
		return "None"
	}
	var parts []string
	for _, tn := range typeNames {
		if t&tn.t != 0 {
			parts = append(parts, tn.name)
		}
	}
	return strings.Join(parts, "|")
}
