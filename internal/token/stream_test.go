package token_test

import (
	"testing"

	"vbcore/internal/source"
	"vbcore/internal/token"
)

func TestStreamText(t *testing.T) {
	s := token.NewStream(source.ModuleName{Component: "M"}, []token.Token{
		{Kind: token.Keyword, Text: "Dim"},
		{Kind: token.Whitespace, Text: " "},
		{Kind: token.Ident, Text: "x"},
		{Kind: token.Newline, Text: "\r\n"},
		{Kind: token.EOF},
	})
	if s.Tokens[2].Index != 2 {
		t.Fatalf("indices must be renumbered, got %d", s.Tokens[2].Index)
	}
	if got := s.String(); got != "Dim x\r\n" {
		t.Errorf("String() = %q", got)
	}
	if got := s.Text(0, 2); got != "Dim x" {
		t.Errorf("Text(0,2) = %q", got)
	}
	if got := s.Newline(); got != "\r\n" {
		t.Errorf("Newline() = %q", got)
	}
	if s.At(99).Kind != token.Invalid || s.Valid(-1) {
		t.Error("out-of-range access must be invalid")
	}
}

func TestKeywordsAndWords(t *testing.T) {
	if kw, ok := token.LookupKeyword("elseif"); !ok || kw != "ElseIf" {
		t.Errorf("LookupKeyword(elseif) = %q, %v", kw, ok)
	}
	if _, ok := token.LookupKeyword("foo"); ok {
		t.Error("foo is not a keyword")
	}
	tok := token.Token{Kind: token.Keyword, Text: "WEND"}
	if !tok.IsWord("Wend") {
		t.Error("IsWord must be case-insensitive")
	}
	if (token.Token{Kind: token.StringLit, Text: "Wend"}).IsWord("Wend") {
		t.Error("string literals are not words")
	}
	for _, b := range []byte("$%&!#@") {
		if !token.IsTypeHint(b) {
			t.Errorf("%q must be a type hint", b)
		}
	}
}
