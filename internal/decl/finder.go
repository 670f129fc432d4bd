package decl

import (
	"strings"

	"vbcore/internal/source"
)

// Finder indexes a declaration set the way consumers query it.
type Finder struct {
	all      []*Declaration
	byModule map[source.ModuleName][]*Declaration
}

// NewFinder indexes declarations in the given order.
func NewFinder(decls []*Declaration) *Finder {
	f := &Finder{byModule: make(map[source.ModuleName][]*Declaration)}
	for _, d := range decls {
		if d == nil {
			continue
		}
		f.all = append(f.all, d)
		f.byModule[d.Module] = append(f.byModule[d.Module], d)
	}
	return f
}

// All returns every indexed declaration.
func (f *Finder) All() []*Declaration {
	return f.all
}

// Members returns declarations of module matching any bit of t (all when t is zero).
func (f *Finder) Members(module source.ModuleName, t Type) []*Declaration {
	var out []*Declaration
	for _, d := range f.byModule[module] {
		if t == 0 || d.Type.Has(t) {
			out = append(out, d)
		}
	}
	return out
}

// UserDeclarations returns user-defined declarations matching any bit of t.
func (f *Finder) UserDeclarations(t Type) []*Declaration {
	var out []*Declaration
	for _, d := range f.all {
		if d.IsUserDefined && d.Type.Has(t) {
			out = append(out, d)
		}
	}
	return out
}

// References returns every reference located in module, in declaration order.
func (f *Finder) References(module source.ModuleName) []*Reference {
	var out []*Reference
	for _, d := range f.all {
		for _, r := range d.References {
			if r.Module == module {
				out = append(out, r)
			}
		}
	}
	return out
}

// ModuleDeclaration returns the module-kind declaration for module.
func (f *Finder) ModuleDeclaration(module source.ModuleName) (*Declaration, bool) {
	for _, d := range f.byModule[module] {
		if d.Type.Has(Module) {
			return d, true
		}
	}
	return nil, false
}

// Lookup returns the first declaration in module with the given name (case-insensitive)
// whose type matches t.
func (f *Finder) Lookup(module source.ModuleName, name string, t Type) (*Declaration, bool) {
	for _, d := range f.Members(module, t) {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return nil, false
}

// TypeHinted returns the declarations and references of module that use a type-hint suffix.
func (f *Finder) TypeHinted(module source.ModuleName) ([]*Declaration, []*Reference) {
	var decls []*Declaration
	for _, d := range f.byModule[module] {
		if d.HasTypeHint {
			decls = append(decls, d)
		}
	}
	var refs []*Reference
	for _, r := range f.References(module) {
		if r.HasTypeHint {
			refs = append(refs, r)
		}
	}
	return decls, refs
}
