package annotation

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"vbcore/internal/decl"
	"vbcore/internal/diag"
	"vbcore/internal/rewrite"
	"vbcore/internal/source"
	"vbcore/internal/syntax"
	"vbcore/internal/token"
)

// Context is a raw syntax target in a module.
type Context struct {
	Module source.ModuleName
	Node   *syntax.Node
}

// Updater queues annotation edits into rewrite sessions.
type Updater struct {
	log *zap.Logger
}

func NewUpdater(log *zap.Logger) *Updater {
	if log == nil {
		log = zap.NewNop()
	}
	return &Updater{log: log}
}

// AddToContext inserts an annotation line above the logical line of target.
// The target must start on the first physical line of its logical line.
func (u *Updater) AddToContext(s *rewrite.Session, target Context, t Type, args ...string) (Outcome, error) {
	return u.addToContext(s, target, source.QualifiedSelection{}, t, args...)
}

// addToContext reports outcomes at report, or at the target node when report is zero.
func (u *Updater) addToContext(s *rewrite.Session, target Context, report source.QualifiedSelection, t Type, args ...string) (Outcome, error) {
	text := Text(t, args...)
	if target.Node == nil {
		return u.skip(diag.AnnNullTarget, source.QualifiedSelection{Module: target.Module},
			"tried to add an annotation to a context that is nil",
			zap.String("annotation", text)), nil
	}
	rw, err := s.CheckOutModuleRewriter(target.Module)
	if err != nil {
		return Outcome{}, err
	}
	stream := rw.Stream()
	loc := target.Node.QualifiedSelection(stream)
	if report.Selection.IsZero() {
		report = loc
	}
	if loc.Selection.StartLine == 1 {
		return u.insert(rw, 0, text+stream.Newline(), report)
	}

	eol := syntax.PreviousEndOfLine(target.Node)
	if eol == nil || loc.Selection.StartLine > stream.At(eol.Stop).Line+1 {
		return u.skip(diag.AnnPlacementViolation, report,
			"tried to add an annotation to a context not on the first physical line of a logical line",
			zap.String("annotation", text),
			zap.String("context", target.Node.Text(stream))), nil
	}
	code := text + stream.Newline()
	// отступ строки сохраняется: новая строка получает тот же префикс
	if next := stream.At(eol.Stop + 1); next.Kind == token.Whitespace {
		code = next.Text + code
	}
	return u.insert(rw, eol.Stop+1, code, report)
}

// AddToDeclaration annotates a declaration according to its kind: modules at
// the top of the module, variables and members at their declaring statement.
func (u *Updater) AddToDeclaration(s *rewrite.Session, d *decl.Declaration, t Type, args ...string) (Outcome, error) {
	text := Text(t, args...)
	if d == nil {
		return u.skip(diag.AnnNullTarget, source.QualifiedSelection{},
			"tried to add an annotation to a declaration that is nil",
			zap.String("annotation", text)), nil
	}
	loc := d.QualifiedSelection()
	switch {
	case d.Type.Has(decl.Module):
		if !t.Flags.Has(ModuleAnnotation) {
			return u.mismatch(loc, "module", text, d), nil
		}
		rw, err := s.CheckOutModuleRewriter(d.Module)
		if err != nil {
			return Outcome{}, err
		}
		return u.insert(rw, headerEnd(rw.Stream()), text+rw.Stream().Newline(), loc)
	case d.Type.Has(decl.Variable):
		if !t.Flags.Has(VariableAnnotation) {
			return u.mismatch(loc, "variable", text, d), nil
		}
	default:
		if !t.Flags.Has(MemberAnnotation) {
			return u.mismatch(loc, "member", text, d), nil
		}
	}
	return u.addToContext(s, Context{Module: d.Module, Node: d.Context}, loc, t, args...)
}

// AddToReference annotates the logical line holding an identifier reference.
func (u *Updater) AddToReference(s *rewrite.Session, r *decl.Reference, t Type, args ...string) (Outcome, error) {
	text := Text(t, args...)
	if r == nil {
		return u.skip(diag.AnnNullTarget, source.QualifiedSelection{},
			"tried to add an annotation to an identifier reference that is nil",
			zap.String("annotation", text)), nil
	}
	if !t.Flags.Has(IdentifierAnnotation) {
		return u.skip(diag.AnnCapabilityMismatch, r.QualifiedSelection(),
			"tried to add an annotation without the identifier flag to an identifier reference",
			zap.String("annotation", text),
			zap.String("reference", r.IdentifierName)), nil
	}
	return u.addToContext(s, Context{Module: r.Module, Node: r.Context}, r.QualifiedSelection(), t, args...)
}

// Remove deletes one annotation. The last annotation of a list without a
// trailing comment takes its whole line with it.
func (u *Updater) Remove(s *rewrite.Session, a *Annotation) (Outcome, error) {
	if a == nil || a.List() == nil {
		return u.skip(diag.AnnNullTarget, source.QualifiedSelection{},
			"tried to remove an annotation that is nil"), nil
	}
	rw, err := s.CheckOutModuleRewriter(a.Module)
	if err != nil {
		return Outcome{}, err
	}
	if err := removeOne(rw, a); err != nil {
		return Outcome{}, err
	}
	u.log.Debug("annotation removed",
		zap.String("annotation", a.Text()),
		zap.Stringer("at", a.QualifiedSelection()))
	return applied(a.QualifiedSelection()), nil
}

// RemoveAll deletes a batch of annotations. Annotations are grouped by list;
// a list losing every annotation (and holding no comment) is removed as one
// line edit.
//
// Consecutive annotation lines at the very end of a module may leave an empty
// line behind.
func (u *Updater) RemoveAll(s *rewrite.Session, annotations []*Annotation) ([]Outcome, error) {
	type group struct {
		module source.ModuleName
		list   *syntax.Node
		items  []*Annotation
	}
	var groups []*group
	seen := make(map[*syntax.Node]bool)
	for _, a := range annotations {
		if a == nil || a.List() == nil || seen[a.Context] {
			continue
		}
		seen[a.Context] = true
		i := slices.IndexFunc(groups, func(g *group) bool { return g.list == a.List() })
		if i < 0 {
			groups = append(groups, &group{module: a.Module, list: a.List()})
			i = len(groups) - 1
		}
		groups[i].items = append(groups[i].items, a)
	}

	var out []Outcome
	for _, g := range groups {
		rw, err := s.CheckOutModuleRewriter(g.module)
		if err != nil {
			return out, err
		}
		if separator(rw.Stream(), g.list) == nil && len(annotationsOf(g.list)) == len(g.items) {
			if err := removeEntireLine(rw, g.list); err != nil {
				return out, err
			}
		} else {
			for _, a := range g.items {
				if err := removeOne(rw, a); err != nil {
					return out, err
				}
			}
		}
		for _, a := range g.items {
			out = append(out, applied(a.QualifiedSelection()))
		}
	}
	return out, nil
}

// Update replaces an annotation's type and arguments in place. Both types
// must share a target capability. Trailing whitespace is kept.
func (u *Updater) Update(s *rewrite.Session, a *Annotation, t Type, args ...string) (Outcome, error) {
	text := BaseText(t, args...)
	if a == nil || a.Context == nil {
		return u.skip(diag.AnnNullTarget, source.QualifiedSelection{},
			"tried to replace an annotation that is nil",
			zap.String("replacement", text)), nil
	}
	if !a.Type.Compatible(t) {
		return u.skip(diag.AnnIncompatibleReplacement, a.QualifiedSelection(),
			"tried to replace an annotation with an annotation without common flags",
			zap.String("annotation", a.Text()),
			zap.Stringer("flags", a.Type.Flags),
			zap.String("replacement", text),
			zap.Stringer("replacement_flags", t.Flags)), nil
	}
	rw, err := s.CheckOutModuleRewriter(a.Module)
	if err != nil {
		return Outcome{}, err
	}
	stream := rw.Stream()
	if err := rw.Replace(a.Context, text+trailingWhitespace(stream, a.Context)); err != nil {
		return Outcome{}, err
	}
	return applied(a.QualifiedSelection()), nil
}

// EnsureModuleArgument makes sure the module carries a t annotation listing
// every arg. Missing arguments are prepended to an existing annotation, or to
// one queued earlier in the same session; otherwise a new annotation is added
// at the top of the module.
func (u *Updater) EnsureModuleArgument(s *rewrite.Session, module *decl.Declaration, existing []*Annotation, t Type, args ...string) (Outcome, error) {
	if module == nil {
		return u.skip(diag.AnnNullTarget, source.QualifiedSelection{},
			"tried to annotate a module that is nil",
			zap.String("annotation", Text(t, args...))), nil
	}
	args = uniqueArgs(args)
	for _, a := range existing {
		if a.Module != module.Module || !strings.EqualFold(a.Type.Name, t.Name) {
			continue
		}
		rw, err := s.CheckOutModuleRewriter(a.Module)
		if err != nil {
			return Outcome{}, err
		}
		have := a.Args
		if pending, ok := rw.Replacement(a.Context.Start, a.Context.Stop); ok {
			have = argsOf(strings.TrimRight(pending, " \t"), t)
		}
		missing := missingArgs(args, have)
		if len(missing) == 0 {
			return u.present(a.QualifiedSelection(), a.Text()), nil
		}
		return u.Update(s, a, t, append(missing, have...)...)
	}

	rw, err := s.CheckOutModuleRewriter(module.Module)
	if err != nil {
		return Outcome{}, err
	}
	gap := headerEnd(rw.Stream())
	head := Text(t)
	for _, queued := range rw.Inserts(gap) {
		line := strings.TrimRight(queued, "\r\n")
		if line != head && !strings.HasPrefix(line, head+" ") {
			continue
		}
		have := argsOf(strings.TrimPrefix(line, "'"+Marker), t)
		missing := missingArgs(args, have)
		if len(missing) == 0 {
			return u.present(module.QualifiedSelection(), line), nil
		}
		code := Text(t, append(missing, have...)...) + queued[len(line):]
		rw.ReplaceInsert(gap, queued, code)
		u.log.Debug("queued annotation extended",
			zap.String("code", strings.TrimSpace(code)),
			zap.Stringer("target", module.QualifiedSelection()))
		return applied(module.QualifiedSelection()), nil
	}
	return u.AddToDeclaration(s, module, t, args...)
}

// argsOf splits the arguments of "Name a, b"; commas inside string literals
// are kept.
func argsOf(base string, t Type) []string {
	rest := strings.TrimSpace(base[min(len(t.Name), len(base)):])
	if rest == "" {
		return nil
	}
	var out []string
	quoted, start := false, 0
	for i, r := range rest {
		switch {
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			out = append(out, strings.TrimSpace(rest[start:i]))
			start = i + 1
		}
	}
	return append(out, strings.TrimSpace(rest[start:]))
}

func uniqueArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if !slices.Contains(out, a) {
			out = append(out, a)
		}
	}
	return out
}

func missingArgs(want, have []string) []string {
	var out []string
	for _, a := range want {
		if !slices.Contains(have, a) {
			out = append(out, a)
		}
	}
	return out
}

func (u *Updater) insert(rw *rewrite.Rewriter, gap int, code string, loc source.QualifiedSelection) (Outcome, error) {
	if rw.HasInsert(gap, code) || annotatedAt(rw.Stream(), gap, code) {
		return u.present(loc, strings.TrimRight(code, "\r\n")), nil
	}
	if err := rw.InsertBefore(gap, code); err != nil {
		return Outcome{}, err
	}
	u.log.Debug("annotation queued",
		zap.String("code", strings.TrimSpace(code)),
		zap.Stringer("target", loc))
	return applied(loc), nil
}

func (u *Updater) mismatch(loc source.QualifiedSelection, kind, text string, d *decl.Declaration) Outcome {
	return u.skip(diag.AnnCapabilityMismatch, loc,
		"tried to add an annotation without the "+kind+" annotation flag to a "+kind,
		zap.String("annotation", text),
		zap.String("declaration", d.QualifiedName()))
}

func (u *Updater) present(loc source.QualifiedSelection, text string) Outcome {
	u.log.Debug("annotation already present", zap.String("annotation", text), zap.Stringer("target", loc))
	return Outcome{Code: diag.AnnAlreadyPresent, Message: "annotation already present", Target: loc}
}

// skip логирует пару warn/debug и возвращает неприменённый результат.
func (u *Updater) skip(code diag.Code, loc source.QualifiedSelection, msg string, fields ...zap.Field) Outcome {
	u.log.Warn(msg)
	u.log.Debug(msg, append(fields, zap.Stringer("target", loc), zap.String("code", code.ID()))...)
	return Outcome{Code: code, Message: msg, Target: loc}
}

// annotatedAt reports whether the snapshot already holds code on the line
// starting at gap or on one of the comment lines right above it.
func annotatedAt(s *token.Stream, gap int, code string) bool {
	want := strings.TrimSpace(code)
	lines := strings.Split(s.String(), "\n")
	line := int(s.At(min(gap, s.Len()-1)).Line) - 1 // 0-based
	if line < 0 {
		return false
	}
	if line < len(lines) && strings.TrimSpace(lines[line]) == want {
		return true
	}
	for i := min(line, len(lines)) - 1; i >= 0; i-- {
		l := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(l, "'") {
			break
		}
		if l == want {
			return true
		}
	}
	return false
}
