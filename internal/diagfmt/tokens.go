package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"vbcore/internal/token"
)

type TokenOutput struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Line  uint32 `json:"line"`
	Col   uint32 `json:"col"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате.
// Trivia печатается только при withTrivia.
func FormatTokensPretty(w io.Writer, s *token.Stream, withTrivia bool) error {
	for i := range s.Len() {
		tok := s.At(i)
		if tok.Kind.IsTrivia() && !withTrivia {
			continue
		}
		if _, err := fmt.Fprintf(w, "%4d: %-16s L%dC%d", tok.Index, tok.Kind, tok.Line, tok.Col); err != nil {
			return err
		}
		if tok.Text != "" && tok.Kind != token.EOF {
			if _, err := fmt.Fprintf(w, " %q", tok.Text); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, s *token.Stream, withTrivia bool) error {
	output := make([]TokenOutput, 0, s.Len())
	for i := range s.Len() {
		tok := s.At(i)
		if tok.Kind.IsTrivia() && !withTrivia {
			continue
		}
		output = append(output, TokenOutput{
			Index: tok.Index,
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Line:  tok.Line,
			Col:   tok.Col,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
