package token

import (
	"strings"

	"vbcore/internal/source"
)

// Stream is the read-only token sequence of one module version.
type Stream struct {
	Module source.ModuleName
	Tokens []Token
}

// NewStream wraps tokens, renumbering indices to their positions.
func NewStream(module source.ModuleName, tokens []Token) *Stream {
	for i := range tokens {
		tokens[i].Index = i
	}
	return &Stream{Module: module, Tokens: tokens}
}

// Len returns the number of tokens including EOF.
func (s *Stream) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Tokens)
}

// Valid reports whether i addresses a token of the stream.
func (s *Stream) Valid(i int) bool {
	return i >= 0 && i < s.Len()
}

// At returns the token at index i. Out-of-range indices yield an Invalid token.
func (s *Stream) At(i int) Token {
	if !s.Valid(i) {
		return Token{Kind: Invalid, Index: i}
	}
	return s.Tokens[i]
}

// Text concatenates the text of tokens from..to inclusive.
func (s *Stream) Text(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to >= s.Len() {
		to = s.Len() - 1
	}
	var b strings.Builder
	for i := from; i <= to; i++ {
		b.WriteString(s.Tokens[i].Text)
	}
	return b.String()
}

// String returns the full module text.
func (s *Stream) String() string {
	return s.Text(0, s.Len()-1)
}

// Newline returns the physical line terminator used by the module ("\n" when none is present).
func (s *Stream) Newline() string {
	for i := range s.Tokens {
		if s.Tokens[i].Kind == Newline {
			return s.Tokens[i].Text
		}
	}
	return "\n"
}

// LineOf returns the 1-based line of token i, or 0 for an invalid index.
func (s *Stream) LineOf(i int) uint32 {
	return s.At(i).Line
}
