package token

import (
	"vbcore/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Index int
	Span  source.Span
	Text  string
	Line  uint32 // 1-based line of the first byte
	Col   uint32 // 1-based column of the first rune
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsWord reports whether the token is an identifier or keyword spelled word (case-insensitive).
func (t Token) IsWord(word string) bool {
	if t.Kind != Ident && t.Kind != Keyword && t.Kind != RemKeyword {
		return false
	}
	return equalFold(t.Text, word)
}

// EndsLine reports whether the token terminates a physical line.
func (t Token) EndsLine() bool {
	return t.Kind == Newline || t.Kind == EOF
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// Start returns the 1-based position of the token's first rune.
func (t Token) Start() source.LineCol {
	return source.LineCol{Line: t.Line, Col: t.Col}
}

// End returns the exclusive position right after the token's last rune.
// Newlines inside the token text advance the line.
func (t Token) End() source.LineCol {
	pos := t.Start()
	for _, r := range t.Text {
		if r == '\n' {
			pos.Line++
			pos.Col = 1
			continue
		}
		pos.Col++
	}
	return pos
}
