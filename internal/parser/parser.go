package parser

import (
	"vbcore/internal/diag"
	"vbcore/internal/source"
	"vbcore/internal/syntax"
	"vbcore/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser: состояние парсера на один модуль.
// Trivia (пробелы, продолжения строк) не становятся узлами: они покрываются
// диапазонами соседних узлов.
type Parser struct {
	s    *token.Stream
	pos  int
	opts Options
}

// Parse builds the Module node for the stream. The root covers every token
// from 0 to EOF; logical-line terminators are EndOfLine nodes.
func Parse(s *token.Stream, opts Options) *syntax.Node {
	p := &Parser{s: s, opts: opts}
	root := syntax.NewNode(syntax.Module, 0, -1)
	for _, item := range p.parseBody(nil) {
		root.Add(item)
	}
	p.skipTrivia()
	root.Add(syntax.NewTerminal(p.pos)) // EOF
	root.Start = 0
	return root
}

// ===== навигация по потоку =====

func (p *Parser) skipTrivia() {
	for p.s.At(p.pos).Kind.IsTrivia() {
		p.pos++
	}
}

// peek возвращает текущий значимый токен.
func (p *Parser) peek() token.Token {
	p.skipTrivia()
	return p.s.At(p.pos)
}

// peekN возвращает n-й значимый токен после текущего, не сдвигая позицию.
func (p *Parser) peekN(n int) token.Token {
	p.skipTrivia()
	return p.lookahead(n)
}

// lookahead возвращает n-й значимый токен начиная с p.pos, не трогая позицию
// (в отличие от peek, пробелы перед ним не пропускаются навсегда).
func (p *Parser) lookahead(n int) token.Token {
	i := p.pos
	for p.s.At(i).Kind.IsTrivia() {
		i++
	}
	for n > 0 && i < p.s.Len()-1 {
		i++
		if !p.s.At(i).Kind.IsTrivia() {
			n--
		}
	}
	return p.s.At(i)
}

// raw возвращает токен в текущей позиции без пропуска trivia.
func (p *Parser) raw() token.Token {
	return p.s.At(p.pos)
}

// bump съедает текущий значимый токен и возвращает терминал.
func (p *Parser) bump() *syntax.Node {
	p.skipTrivia()
	n := syntax.NewTerminal(p.pos)
	if p.s.At(p.pos).Kind != token.EOF {
		p.pos++
	}
	return n
}

func (p *Parser) atWord(word string) bool {
	return p.peek().IsWord(word)
}

// atEnd: "End <word>" в начале оператора.
func (p *Parser) atEnd(word string) bool {
	return p.atWord("End") && p.peekN(1).IsWord(word)
}

// atLineEnd: конец физической строки или начало комментария.
func (p *Parser) atLineEnd() bool {
	switch p.peek().Kind {
	case token.Newline, token.EOF, token.SingleQuote, token.RemKeyword:
		return true
	default:
		return false
	}
}

// atStmtEnd: конец логической строки или разделитель ':'.
func (p *Parser) atStmtEnd() bool {
	return p.atLineEnd() || p.peek().Kind == token.Colon
}

func (p *Parser) report(code diag.Code, sev diag.Severity, at int, msg string) {
	if p.opts.Reporter == nil || p.opts.Enough() {
		return
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	tok := p.s.At(at)
	loc := source.QualifiedSelection{Module: p.s.Module, Selection: source.NewSelection(tok.Start(), tok.End())}
	p.opts.Reporter.Report(code, sev, loc, msg, nil)
}

func newNode(kind syntax.Kind) *syntax.Node {
	return syntax.NewNode(kind, 0, -1)
}
