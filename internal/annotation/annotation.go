package annotation

import (
	"strings"

	"vbcore/internal/source"
	"vbcore/internal/syntax"
	"vbcore/internal/token"
)

// Marker starts an annotation inside a comment.
const Marker = "@"

// Annotation is one parsed '@ annotation.
type Annotation struct {
	Type      Type
	Args      []string
	Context   *syntax.Node // Annotation node, trailing whitespace included
	Module    source.ModuleName
	Selection source.Selection
}

// List returns the annotation list that holds a.
func (a *Annotation) List() *syntax.Node {
	if a == nil || a.Context == nil {
		return nil
	}
	return a.Context.Parent()
}

func (a *Annotation) QualifiedSelection() source.QualifiedSelection {
	return source.QualifiedSelection{Module: a.Module, Selection: a.Selection}
}

// Text renders a as it would be written on its own line.
func (a *Annotation) Text() string {
	return Text(a.Type, a.Args...)
}

// Text renders "'@Name a, b".
func Text(t Type, args ...string) string {
	return "'" + Marker + BaseText(t, args...)
}

// BaseText renders "Name a, b" without the comment and annotation markers.
func BaseText(t Type, args ...string) string {
	if len(args) == 0 {
		return t.Name
	}
	return t.Name + " " + strings.Join(args, ", ")
}

// Collect extracts every annotation of the module in source order.
func Collect(s *token.Stream, root *syntax.Node) []*Annotation {
	var out []*Annotation
	for _, list := range root.Find(syntax.AnnotationList) {
		for _, n := range list.Children {
			if n.Kind != syntax.Annotation {
				continue
			}
			name := n.FirstChild(syntax.AnnotationName).Text(s)
			t, _ := Lookup(name)
			out = append(out, &Annotation{
				Type:      t,
				Args:      parseArgs(s, n.FirstChild(syntax.AnnotationArgList)),
				Context:   n,
				Module:    s.Module,
				Selection: n.Selection(s),
			})
		}
	}
	return out
}

// annotationsOf returns the Annotation children of an annotation list.
func annotationsOf(list *syntax.Node) []*syntax.Node {
	var out []*syntax.Node
	for _, c := range list.Children {
		if c.Kind == syntax.Annotation {
			out = append(out, c)
		}
	}
	return out
}

// separator returns the list's ":" terminal, or nil.
func separator(s *token.Stream, list *syntax.Node) *syntax.Node {
	for _, c := range list.Children {
		if c.IsTerminal() && s.At(c.Start).Kind == token.Colon {
			return c
		}
	}
	return nil
}

// parseArgs splits an argument list on commas outside string literals.
func parseArgs(s *token.Stream, list *syntax.Node) []string {
	if list == nil {
		return nil
	}
	text := strings.TrimSpace(list.Text(s))
	if strings.HasPrefix(text, "(") {
		text = strings.TrimSuffix(strings.TrimPrefix(text, "("), ")")
	}
	var (
		args     []string
		inString bool
		start    int
	)
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '"':
			inString = !inString
		case ',':
			if !inString {
				args = appendArg(args, text[start:i])
				start = i + 1
			}
		}
	}
	return appendArg(args, text[start:])
}

func appendArg(args []string, a string) []string {
	if a = strings.TrimSpace(a); a != "" {
		args = append(args, a)
	}
	return args
}
