// Package resolve is a small name binder standing in for the host's symbol
// resolver. It declares modules, members, parameters, variables and
// constants found by the parser, and binds every SimpleNameExpr to the
// nearest declaration with the same name (member scope first, then module).
package resolve

import (
	"strings"

	"vbcore/internal/decl"
	"vbcore/internal/source"
	"vbcore/internal/syntax"
	"vbcore/internal/token"
)

type Options struct {
	// ModuleType is ProceduralModule when zero.
	ModuleType decl.Type
}

type scope struct {
	owner *decl.Declaration
	names map[string]*decl.Declaration
}

func newScope(owner *decl.Declaration) *scope {
	return &scope{owner: owner, names: make(map[string]*decl.Declaration)}
}

func (s *scope) add(d *decl.Declaration) {
	key := strings.ToLower(d.Name)
	if _, exists := s.names[key]; !exists {
		s.names[key] = d
	}
}

type binder struct {
	module  source.ModuleName
	stream  *token.Stream
	decls   []*decl.Declaration
	modDecl *decl.Declaration
	modSc   *scope
	members map[*syntax.Node]*scope
}

// Module declares and binds one parsed module. The first declaration is the module itself.
func Module(s *token.Stream, root *syntax.Node, opts Options) []*decl.Declaration {
	typ := opts.ModuleType
	if typ == 0 {
		typ = decl.ProceduralModule
	}
	b := &binder{module: s.Module, stream: s, members: make(map[*syntax.Node]*scope)}
	b.modDecl = &decl.Declaration{
		Name:          s.Module.Component,
		Type:          typ,
		Module:        s.Module,
		Context:       root,
		Selection:     root.Selection(s),
		IsUserDefined: true,
	}
	b.decls = append(b.decls, b.modDecl)
	b.modSc = newScope(b.modDecl)

	root.Walk(func(n *syntax.Node) bool {
		b.declare(n)
		return true
	})
	root.Walk(func(n *syntax.Node) bool {
		if n.Kind == syntax.SimpleNameExpr {
			b.bind(n)
		}
		return true
	})
	return b.decls
}

func (b *binder) declare(n *syntax.Node) {
	switch n.Kind {
	case syntax.SubStmt:
		b.declareMember(n, decl.Procedure)
	case syntax.FunctionStmt:
		b.declareMember(n, decl.Function)
	case syntax.PropertyStmt:
		t := decl.PropertyGet
		for _, c := range n.Children {
			if !c.IsTerminal() {
				continue
			}
			switch tok := b.stream.At(c.Start); {
			case tok.IsWord("Let"):
				t = decl.PropertyLet
			case tok.IsWord("Set"):
				t = decl.PropertySet
			}
		}
		b.declareMember(n, t)
	case syntax.Arg:
		b.declareIn(n, decl.Parameter)
	case syntax.VariableSubStmt:
		b.declareIn(n, decl.Variable)
	case syntax.ConstSubStmt:
		b.declareIn(n, decl.Constant)
	}
}

func (b *binder) declareMember(n *syntax.Node, t decl.Type) {
	d := b.newDeclaration(n, t, b.modDecl)
	if d == nil {
		return
	}
	b.modSc.add(d)
	b.members[n] = newScope(d)
}

// declareIn adds a variable-like declaration to the enclosing member, or to the module.
func (b *binder) declareIn(n *syntax.Node, t decl.Type) {
	sc := b.enclosingScope(n)
	d := b.newDeclaration(n, t, sc.owner)
	if d != nil {
		sc.add(d)
	}
}

func (b *binder) newDeclaration(n *syntax.Node, t decl.Type, parent *decl.Declaration) *decl.Declaration {
	ident := n.FirstChild(syntax.Identifier)
	if ident == nil {
		return nil
	}
	name, hint := identifierName(b.stream, ident)
	d := &decl.Declaration{
		Name:          name,
		Type:          t,
		Module:        b.module,
		Context:       n,
		Selection:     ident.Selection(b.stream),
		HasTypeHint:   hint,
		IsUserDefined: true,
		Parent:        parent,
	}
	if as := n.FirstChild(syntax.AsTypeClause); as != nil && as.Stop > as.Start {
		d.AsTypeName = strings.TrimSpace(b.stream.Text(as.Start+1, as.Stop))
	}
	b.decls = append(b.decls, d)
	return d
}

func (b *binder) enclosingScope(n *syntax.Node) *scope {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if sc, ok := b.members[p]; ok {
			return sc
		}
	}
	return b.modSc
}

func (b *binder) bind(n *syntax.Node) {
	ident := n.FirstChild(syntax.Identifier)
	if ident == nil {
		return
	}
	name, hint := identifierName(b.stream, ident)
	key := strings.ToLower(name)
	target := b.enclosingScope(n).names[key]
	if target == nil {
		target = b.modSc.names[key]
	}
	if target == nil {
		return
	}
	target.References = append(target.References, &decl.Reference{
		Declaration:    target,
		Module:         b.module,
		Context:        n,
		Selection:      n.Selection(b.stream),
		IsAssignment:   b.isAssignmentTarget(n),
		IdentifierName: name,
		HasTypeHint:    hint,
	})
}

// isAssignmentTarget: the name directly left of "=" in Let/Set, or a For counter.
func (b *binder) isAssignmentTarget(n *syntax.Node) bool {
	p := n.Parent()
	if p == nil {
		return false
	}
	switch p.Kind {
	case syntax.LetStmt, syntax.SetStmt:
		for i, c := range p.Children {
			if c != n {
				continue
			}
			if i+1 >= len(p.Children) {
				return false
			}
			next := p.Children[i+1]
			return next.IsTerminal() && b.stream.At(next.Start).Text == "="
		}
	case syntax.ForNextStmt, syntax.ForEachStmt:
		return p.FirstChild(syntax.SimpleNameExpr) == n
	}
	return false
}

func identifierName(s *token.Stream, ident *syntax.Node) (string, bool) {
	if len(ident.Children) == 0 {
		return "", false
	}
	name := s.At(ident.Children[0].Start).Text
	return name, len(ident.Children) > 1
}
