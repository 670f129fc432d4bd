package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vbcore/internal/annotation"
	"vbcore/internal/decl"
	"vbcore/internal/diag"
	"vbcore/internal/lexer"
	"vbcore/internal/parser"
	"vbcore/internal/resolve"
	"vbcore/internal/source"
	"vbcore/internal/syntax"
	"vbcore/internal/token"
)

// ErrUnknownModule is returned for names the workspace has not loaded.
var ErrUnknownModule = errors.New("module is not loaded")

// ErrDuplicateModule is returned when two files declare the same component.
var ErrDuplicateModule = errors.New("duplicate module")

// Parsed is the current analysis of one module.
type Parsed struct {
	Meta         ModuleMeta
	Module       *source.Module
	Stream       *token.Stream
	Tree         *syntax.Node
	Declarations []*decl.Declaration
	Annotations  []*annotation.Annotation
	Bag          *diag.Bag
}

// ModuleDeclaration returns the declaration of the module itself.
func (p *Parsed) ModuleDeclaration() *decl.Declaration {
	if len(p.Declarations) == 0 {
		return nil
	}
	return p.Declarations[0]
}

// Options configures a Workspace.
type Options struct {
	Project        string // имя проекта VBA, по умолчанию VBAProject
	MaxDiagnostics uint16
	Jobs           int // 0 = GOMAXPROCS
	// Newline and Encoding override how modules are written back:
	// "" or "keep" restores what was read.
	Newline  string
	Encoding string
	Logger   *zap.Logger
}

// Workspace is an in-memory VBA project: it loads component files, keeps
// their parsed state current and serves as the host text store for rewrite
// sessions.
type Workspace struct {
	opts Options
	set  *source.ModuleSet
	log  *zap.Logger

	mu      sync.RWMutex
	modules map[source.ModuleName]*Parsed
}

func New(opts Options) *Workspace {
	if opts.Project == "" {
		opts.Project = "VBAProject"
	}
	if opts.MaxDiagnostics == 0 {
		opts.MaxDiagnostics = 100
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Workspace{
		opts:    opts,
		set:     source.NewModuleSet(),
		log:     log,
		modules: make(map[source.ModuleName]*Parsed),
	}
}

// Open creates a workspace and loads paths into it.
func Open(ctx context.Context, opts Options, paths ...string) (*Workspace, error) {
	w := New(opts)
	if err := w.Load(ctx, paths...); err != nil {
		return nil, err
	}
	return w, nil
}

// Sources exposes the module store, e.g. for printing source context.
func (w *Workspace) Sources() *source.ModuleSet { return w.set }

// Project returns the VBA project name used for module names.
func (w *Workspace) Project() string { return w.opts.Project }

// Load reads component files concurrently. Directories are scanned for
// exported components (.bas, .cls, .frm, .doccls).
func (w *Workspace) Load(ctx context.Context, paths ...string) error {
	files, err := expand(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}
	jobs := w.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*Parsed, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := w.loadFile(path)
			if err != nil {
				return err
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range results {
		if prev, ok := w.modules[p.Meta.Name]; ok {
			return fmt.Errorf("%w: %s in %s and %s", ErrDuplicateModule, p.Meta.Name, prev.Meta.Path, p.Meta.Path)
		}
		w.modules[p.Meta.Name] = p
	}
	w.log.Info("workspace loaded", zap.Int("modules", len(results)), zap.Int("jobs", jobs))
	return nil
}

// AddVirtual parses in-memory text as a component of the project.
func (w *Workspace) AddVirtual(component, text string) (*Parsed, error) {
	if !IsValidModuleIdent(component) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidModuleName, component)
	}
	meta := ModuleMeta{
		Name: source.ModuleName{Project: w.opts.Project, Component: component},
		Kind: ModuleKindStandard,
	}
	id := w.set.AddVirtual(meta.Name, []byte(text))
	p := w.analyze(meta, w.set.Get(id))

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.modules[meta.Name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateModule, meta.Name)
	}
	w.modules[meta.Name] = p
	return p, nil
}

// Module returns the current state of a module.
func (w *Workspace) Module(name source.ModuleName) (*Parsed, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.modules[name]
	return p, ok
}

// Lookup finds a module by "Project.Component" or a bare component name.
func (w *Workspace) Lookup(name string) (*Parsed, error) {
	mn := source.ParseModuleName(name)
	if mn.Project == "" {
		mn.Project = w.opts.Project
	}
	p, ok := w.Module(mn)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModule, mn)
	}
	return p, nil
}

// Names returns module names sorted by component.
func (w *Workspace) Names() []source.ModuleName {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]source.ModuleName, 0, len(w.modules))
	for name := range w.modules {
		out = append(out, name)
	}
	slices.SortFunc(out, func(a, b source.ModuleName) int { return strings.Compare(a.String(), b.String()) })
	return out
}

// Finder indexes the declarations of every module.
func (w *Workspace) Finder() *decl.Finder {
	var all []*decl.Declaration
	for _, name := range w.Names() {
		p, _ := w.Module(name)
		all = append(all, p.Declarations...)
	}
	return decl.NewFinder(all)
}

// Digest fingerprints the project content in module name order.
func (w *Workspace) Digest() Digest {
	names := w.Names()
	parts := make([]Digest, 0, len(names))
	for _, name := range names {
		p, _ := w.Module(name)
		parts = append(parts, p.Meta.ContentHash)
	}
	return Combine(parts...)
}

// TokenStream serves the current snapshot of a module.
func (w *Workspace) TokenStream(name source.ModuleName) (*token.Stream, error) {
	p, ok := w.Module(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModule, name)
	}
	return p.Stream, nil
}

// SetCode replaces a module's text, re-parses it and, for modules loaded from
// disk, writes it back with the original line endings and encoding.
func (w *Workspace) SetCode(name source.ModuleName, code string) error {
	prev, ok := w.Module(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownModule, name)
	}
	if prev.Module.Flags&source.ModuleVirtual == 0 {
		raw, err := w.encode(prev.Module, code)
		if err != nil {
			return err
		}
		mode := os.FileMode(0o644)
		if info, err := os.Stat(prev.Module.Path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(prev.Module.Path, raw, mode); err != nil {
			return fmt.Errorf("write %s: %w", prev.Module.Path, err)
		}
	}
	id, err := w.set.Replace(name, []byte(code))
	if err != nil {
		return err
	}
	p := w.analyze(prev.Meta, w.set.Get(id))

	w.mu.Lock()
	w.modules[name] = p
	w.mu.Unlock()
	w.log.Debug("module replaced", zap.Stringer("module", name), zap.Int("tokens", p.Stream.Len()))
	return nil
}

// encode applies the write-back policy on top of the flags recorded at load.
func (w *Workspace) encode(m *source.Module, code string) ([]byte, error) {
	out := *m
	switch w.opts.Newline {
	case "lf":
		out.Flags &^= source.ModuleNormalizedCRLF
	case "crlf":
		out.Flags |= source.ModuleNormalizedCRLF
	}
	switch w.opts.Encoding {
	case "utf-8":
		out.Flags &^= source.ModuleDecodedANSI
	case "windows-1252":
		out.Flags |= source.ModuleDecodedANSI
	}
	return out.Encode(code)
}

func (w *Workspace) loadFile(path string) (*Parsed, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content, flags := source.Decode(raw)
	meta, err := ReadMeta(w.opts.Project, path, content)
	if err != nil {
		return nil, err
	}
	id := w.set.Add(meta.Name, path, content, flags)
	p := w.analyze(meta, w.set.Get(id))
	w.log.Debug("module loaded",
		zap.Stringer("module", meta.Name),
		zap.Stringer("kind", meta.Kind),
		zap.Int("tokens", p.Stream.Len()),
		zap.Int("diagnostics", p.Bag.Len()))
	return p, nil
}

func (w *Workspace) analyze(meta ModuleMeta, m *source.Module) *Parsed {
	meta.ContentHash = m.Hash
	bag := diag.NewBag(w.opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	s := lexer.Tokenize(m, lexer.Options{Reporter: reporter})
	root := parser.Parse(s, parser.Options{Reporter: reporter})
	return &Parsed{
		Meta:         meta,
		Module:       m,
		Stream:       s,
		Tree:         root,
		Declarations: resolve.Module(s, root, resolve.Options{ModuleType: meta.Kind.DeclType()}),
		Annotations:  annotation.Collect(s, root),
		Bag:          bag,
	}
}

// expand replaces directories with the component files inside them.
func expand(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsModuleFile(path) {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
