package decl

import (
	"vbcore/internal/source"
	"vbcore/internal/syntax"
)

// Declaration is a resolved symbol. It is produced by a resolver and read-only here.
type Declaration struct {
	Name          string
	Type          Type
	Module        source.ModuleName
	Context       *syntax.Node // introducing syntax node
	Selection     source.Selection
	References    []*Reference
	HasTypeHint   bool
	AsTypeName    string
	IsUserDefined bool
	Parent        *Declaration // enclosing member or module
}

// QualifiedName is "Project.Component.Name"; module declarations return the module name.
func (d *Declaration) QualifiedName() string {
	if d == nil {
		return ""
	}
	if d.Type.Has(Module) || d.Type.Has(Project) {
		return d.Module.String()
	}
	return d.Module.String() + "." + d.Name
}

// QualifiedSelection locates the declaration's identifier.
func (d *Declaration) QualifiedSelection() source.QualifiedSelection {
	return source.QualifiedSelection{Module: d.Module, Selection: d.Selection}
}

// Reference is one occurrence of a declaration's identifier.
type Reference struct {
	Declaration    *Declaration
	Module         source.ModuleName
	Context        *syntax.Node
	Selection      source.Selection
	IsAssignment   bool
	IdentifierName string
	HasTypeHint    bool
}

// QualifiedSelection locates the reference in its module.
func (r *Reference) QualifiedSelection() source.QualifiedSelection {
	return source.QualifiedSelection{Module: r.Module, Selection: r.Selection}
}
