package testkit

import (
	"fmt"

	"vbcore/internal/decl"
	"vbcore/internal/diag"
	"vbcore/internal/lexer"
	"vbcore/internal/parser"
	"vbcore/internal/resolve"
	"vbcore/internal/source"
	"vbcore/internal/syntax"
	"vbcore/internal/token"
)

// Fixture is one parsed and resolved in-memory module.
type Fixture struct {
	Set    *source.ModuleSet
	Module *source.Module
	Stream *token.Stream
	Root   *syntax.Node
	Finder *decl.Finder
	Bag    *diag.Bag
}

// Parse lexes, parses and resolves text as module "VBAProject.<component>".
func Parse(component, text string) *Fixture {
	name := source.ModuleName{Project: "VBAProject", Component: component}
	set := source.NewModuleSet()
	id := set.AddVirtual(name, []byte(text))
	m := set.Get(id)
	bag := diag.NewBag(100)
	s := lexer.Tokenize(m, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	root := parser.Parse(s, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return &Fixture{
		Set:    set,
		Module: m,
		Stream: s,
		Root:   root,
		Finder: decl.NewFinder(resolve.Module(s, root, resolve.Options{})),
		Bag:    bag,
	}
}

// Name returns the fixture's module name.
func (f *Fixture) Name() source.ModuleName {
	return f.Stream.Module
}

// Declaration finds a declaration by name (case-insensitive) and type family.
func (f *Fixture) Declaration(name string, t decl.Type) (*decl.Declaration, error) {
	d, ok := f.Finder.Lookup(f.Name(), name, t)
	if !ok {
		return nil, fmt.Errorf("no %s declaration named %q in %s", t, name, f.Name())
	}
	return d, nil
}

// ModuleDeclaration returns the fixture's module declaration.
func (f *Fixture) ModuleDeclaration() *decl.Declaration {
	d, _ := f.Finder.ModuleDeclaration(f.Name())
	return d
}

// NodeAt returns the innermost syntax node of the given kind whose first token
// starts at line:col.
func (f *Fixture) NodeAt(kind syntax.Kind, line, col uint32) *syntax.Node {
	var found *syntax.Node
	f.Root.Walk(func(n *syntax.Node) bool {
		if n.Kind == kind {
			if start := f.Stream.At(n.Start); start.Line == line && start.Col == col {
				found = n
			}
		}
		return true
	})
	return found
}

// CodeSource is an in-memory rewrite target over fixtures, keyed by module.
// SetCode records committed text and re-lexes it, so later checkouts see it.
type CodeSource struct {
	Set       *source.ModuleSet
	Streams   map[source.ModuleName]*token.Stream
	Committed map[source.ModuleName]string
	// FailOn makes SetCode fail for the named module.
	FailOn source.ModuleName
}

// NewCodeSource serves the fixtures' token streams.
func NewCodeSource(fixtures ...*Fixture) *CodeSource {
	cs := &CodeSource{
		Set:       source.NewModuleSet(),
		Streams:   make(map[source.ModuleName]*token.Stream),
		Committed: make(map[source.ModuleName]string),
	}
	for _, f := range fixtures {
		cs.Streams[f.Name()] = f.Stream
	}
	return cs
}

func (cs *CodeSource) TokenStream(name source.ModuleName) (*token.Stream, error) {
	s, ok := cs.Streams[name]
	if !ok {
		return nil, fmt.Errorf("module %s is not loaded", name)
	}
	return s, nil
}

func (cs *CodeSource) SetCode(name source.ModuleName, code string) error {
	if name == cs.FailOn {
		return fmt.Errorf("module %s is read-only", name)
	}
	cs.Committed[name] = code
	id := cs.Set.AddVirtual(name, []byte(code))
	cs.Streams[name] = lexer.Tokenize(cs.Set.Get(id), lexer.Options{})
	return nil
}
