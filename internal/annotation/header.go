package annotation

import "vbcore/internal/token"

// headerEnd returns the index of the first token after the export header
// (VERSION, BEGIN..END and Attribute lines). Module annotations go there;
// without a header that is 0.
func headerEnd(s *token.Stream) int {
	depth := 0
	i := 0
	for i < s.Len() {
		first := i
		for first < s.Len() && s.At(first).Kind == token.Whitespace {
			first++
		}
		tok := s.At(first)
		switch {
		case tok.Kind == token.EOF:
			return i
		case depth > 0 && tok.IsWord("End") && lineIsBare(s, first):
			depth--
		case depth > 0:
		case tok.IsWord("VERSION"), tok.IsWord("Attribute"):
		case tok.IsWord("Begin"):
			depth++
		default:
			return i
		}
		i = nextLine(s, first)
	}
	return i
}

// nextLine returns the index just past the Newline ending the line of i.
func nextLine(s *token.Stream, i int) int {
	for i < s.Len() {
		tok := s.At(i)
		i++
		if tok.Kind == token.Newline {
			return i
		}
		if tok.Kind == token.EOF {
			return i - 1
		}
	}
	return i
}

// lineIsBare reports whether token i is the only content of its line.
func lineIsBare(s *token.Stream, i int) bool {
	for j := i + 1; j < s.Len(); j++ {
		switch s.At(j).Kind {
		case token.Whitespace:
		case token.Newline, token.EOF:
			return true
		default:
			return false
		}
	}
	return true
}
