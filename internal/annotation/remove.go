package annotation

import (
	"vbcore/internal/rewrite"
	"vbcore/internal/syntax"
	"vbcore/internal/token"
)

func removeOne(rw *rewrite.Rewriter, a *Annotation) error {
	list := a.List()
	if len(annotationsOf(list)) > 1 {
		return removeWithMarker(rw, a.Context)
	}
	colon := separator(rw.Stream(), list)
	if colon == nil {
		return removeEntireLine(rw, list)
	}
	// "'@Ignore X: note" -> "' note"
	if err := removeWithMarker(rw, a.Context); err != nil {
		return err
	}
	return rw.Remove(colon)
}

// removeWithMarker removes the annotation and the "@" right before it.
func removeWithMarker(rw *rewrite.Rewriter, ann *syntax.Node) error {
	return rw.RemoveRange(ann.Start-len(Marker), ann.Stop)
}

// removeEntireLine removes the physical line holding n's comment together
// with its newline. At the end of the module the preceding newline goes
// instead. A comment that trails code loses only itself and the whitespace
// before it.
func removeEntireLine(rw *rewrite.Rewriter, n *syntax.Node) error {
	s := rw.Stream()
	comment := n.Ancestor(syntax.CommentOrAnnotation)
	if comment == nil {
		comment = n
	}

	prev := syntax.PreviousEndOfLine(comment)
	lineStart := 0
	if prev != nil {
		lineStart = prev.Stop + 1
	}

	start := comment.Start
	for start > lineStart && s.At(start-1).Kind.IsTrivia() {
		start--
	}
	if start > lineStart {
		return rw.RemoveRange(start, comment.Stop)
	}

	if next := s.At(comment.Stop + 1); next.Kind == token.Newline {
		return rw.RemoveRange(lineStart, next.Index)
	}
	if prev != nil {
		return rw.RemoveRange(prev.Stop, comment.Stop)
	}
	return rw.RemoveRange(lineStart, comment.Stop)
}

func trailingWhitespace(s *token.Stream, n *syntax.Node) string {
	i := n.Stop
	for i > n.Start && s.At(i).Kind == token.Whitespace {
		i--
	}
	if i == n.Stop {
		return ""
	}
	return s.Text(i+1, n.Stop)
}
