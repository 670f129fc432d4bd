package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"vbcore/internal/annotation"
	"vbcore/internal/decl"
	"vbcore/internal/project"
	"vbcore/internal/source"
)

var errTargetNotFound = errors.New("target not found")

// resolveTarget finds the declaration named by "Module[.Member[.Local]]".
func resolveTarget(ws *project.Workspace, path string) (*project.Parsed, *decl.Declaration, error) {
	parts := strings.Split(path, ".")
	if len(parts) > 3 || slices.Contains(parts, "") {
		return nil, nil, fmt.Errorf("malformed target %q (want Module[.Member[.Local]])", path)
	}
	p, err := ws.Lookup(parts[0])
	if err != nil {
		return nil, nil, err
	}
	d := p.ModuleDeclaration()
	if d == nil {
		return nil, nil, fmt.Errorf("%w: %s has no module declaration", errTargetNotFound, parts[0])
	}
	for _, name := range parts[1:] {
		child := childNamed(p.Declarations, d, name)
		if child == nil {
			return nil, nil, fmt.Errorf("%w: %s in %s", errTargetNotFound, name, d.QualifiedName())
		}
		d = child
	}
	return p, d, nil
}

func childNamed(decls []*decl.Declaration, parent *decl.Declaration, name string) *decl.Declaration {
	for _, d := range decls {
		if d.Parent == parent && strings.EqualFold(d.Name, name) {
			return d
		}
	}
	return nil
}

// parsePosition reads "L4C5" (or "4:5").
func parsePosition(s string) (source.LineCol, error) {
	var line, col string
	if rest, ok := strings.CutPrefix(strings.ToUpper(s), "L"); ok {
		line, col, ok = strings.Cut(rest, "C")
		if !ok {
			return source.LineCol{}, fmt.Errorf("malformed position %q (want L<line>C<col>)", s)
		}
	} else {
		var ok bool
		line, col, ok = strings.Cut(s, ":")
		if !ok {
			return source.LineCol{}, fmt.Errorf("malformed position %q (want L<line>C<col>)", s)
		}
	}
	l, err := strconv.ParseUint(line, 10, 32)
	if err != nil || l == 0 {
		return source.LineCol{}, fmt.Errorf("malformed line in %q", s)
	}
	c, err := strconv.ParseUint(col, 10, 32)
	if err != nil || c == 0 {
		return source.LineCol{}, fmt.Errorf("malformed column in %q", s)
	}
	return source.LineCol{Line: uint32(l), Col: uint32(c)}, nil
}

// referenceAt finds the identifier reference covering pos in module p.
func referenceAt(ws *project.Workspace, p *project.Parsed, pos source.LineCol) (*decl.Reference, error) {
	for _, r := range ws.Finder().References(p.Meta.Name) {
		if r.Selection.Contains(pos) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: no reference at L%dC%d in %s", errTargetNotFound, pos.Line, pos.Col, p.Meta.Name)
}

// annotationType resolves a type name; unknown names are rejected.
func annotationType(name string) (annotation.Type, error) {
	t, ok := annotation.Lookup(strings.TrimPrefix(name, annotation.Marker))
	if !ok {
		return t, fmt.Errorf("unknown annotation type %q", name)
	}
	return t, nil
}

// selectAnnotations filters p's annotations by type (empty = any) and start line (0 = any).
func selectAnnotations(p *project.Parsed, typeName string, line uint32) []*annotation.Annotation {
	var out []*annotation.Annotation
	for _, a := range p.Annotations {
		if typeName != "" && !strings.EqualFold(a.Type.Name, strings.TrimPrefix(typeName, annotation.Marker)) {
			continue
		}
		if line != 0 && a.Selection.StartLine != line {
			continue
		}
		out = append(out, a)
	}
	return out
}
