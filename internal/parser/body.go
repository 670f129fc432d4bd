package parser

import (
	"vbcore/internal/diag"
	"vbcore/internal/syntax"
	"vbcore/internal/token"
)

// parseBody собирает операторы и EndOfLine до EOF или пока stop не сработает
// в начале оператора.
func (p *Parser) parseBody(stop func() bool) []*syntax.Node {
	var items []*syntax.Node
	for {
		tok := p.peek()
		if tok.Kind == token.EOF || (stop != nil && stop()) {
			return items
		}
		switch tok.Kind {
		case token.Newline, token.SingleQuote, token.RemKeyword:
			items = append(items, p.parseEndOfLine())
		case token.Colon:
			items = append(items, p.bump())
		default:
			items = append(items, p.parseStatement(false))
		}
	}
}

// parseBlock возвращает Block или nil, если тело пустое.
func (p *Parser) parseBlock(stop func() bool) *syntax.Node {
	items := p.parseBody(stop)
	if len(items) == 0 {
		return nil
	}
	block := newNode(syntax.Block)
	for _, item := range items {
		block.Add(item)
	}
	return block
}

// headerEnd присоединяет EndOfLine заголовка блока, если строка на нём заканчивается.
func (p *Parser) headerEnd(n *syntax.Node) {
	if p.atLineEnd() && p.peek().Kind != token.EOF {
		n.Add(p.parseEndOfLine())
	}
}

// closeBlock съедает завершающие слова блока ("End Sub", "Next", "Wend").
func (p *Parser) closeBlock(n *syntax.Node, words ...string) {
	if !p.atWord(words[0]) {
		p.report(diag.SynMissingEnd, diag.SevError, n.Start, n.Kind.String()+" is not closed")
		return
	}
	for _, w := range words {
		if !p.atWord(w) {
			p.report(diag.SynMissingEnd, diag.SevError, p.pos, "expected "+w)
			return
		}
		n.Add(p.bump())
	}
}

func (p *Parser) parseStatement(inline bool) *syntax.Node {
	tok := p.peek()
	if tok.Kind == token.Ident {
		if p.isAssignment() {
			return p.parseAssignment(syntax.LetStmt, inline)
		}
		return p.parseGeneric(inline)
	}
	if tok.Kind != token.Keyword {
		return p.parseGeneric(inline)
	}
	kw, _ := token.LookupKeyword(tok.Text)
	switch kw {
	case "Public", "Private", "Friend", "Global", "Static":
		next, _ := token.LookupKeyword(p.peekN(1).Text)
		switch next {
		case "Sub", "Function", "Property":
			return p.parseMember()
		case "Const":
			return p.parseConst()
		case "Declare", "Enum", "Type", "Event", "Implements":
			return p.parseGeneric(inline)
		}
		return p.parseVariable()
	case "Dim":
		return p.parseVariable()
	case "Sub", "Function", "Property":
		return p.parseMember()
	case "Const":
		return p.parseConst()
	case "If":
		return p.parseIf(inline)
	case "Select":
		return p.parseSelect()
	case "For":
		return p.parseFor()
	case "While":
		return p.parseWhile()
	case "Do":
		return p.parseDo()
	case "Let":
		return p.parseAssignment(syntax.LetStmt, inline)
	case "Set":
		return p.parseAssignment(syntax.SetStmt, inline)
	}
	return p.parseGeneric(inline)
}

// parseGeneric: любой неизвестный оператор становится CallStmt из терминалов и имён.
func (p *Parser) parseGeneric(inline bool) *syntax.Node {
	n := newNode(syntax.CallStmt)
	n.Add(p.bump())
	p.parseTail(n, inline, "")
	return n
}

// parseTail добавляет токены до конца оператора (или до until).
// Идентификаторы становятся SimpleNameExpr.
func (p *Parser) parseTail(n *syntax.Node, inline bool, until string) {
	for !p.atStmtEnd() {
		if inline && p.atWord("Else") {
			return
		}
		if until != "" && p.atWord(until) {
			return
		}
		if p.peek().Kind == token.Ident {
			n.Add(p.parseNameExpr())
			continue
		}
		n.Add(p.bump())
	}
}

func (p *Parser) parseNameExpr() *syntax.Node {
	n := newNode(syntax.SimpleNameExpr)
	n.Add(p.parseIdentifier())
	return n
}

// parseIdentifier: имя с необязательным суффиксом типа (foo$).
func (p *Parser) parseIdentifier() *syntax.Node {
	tok := p.peek()
	if tok.Kind != token.Ident {
		p.report(diag.SynExpectIdentifier, diag.SevError, p.pos, "identifier expected, got "+tok.Kind.String())
		return nil
	}
	n := newNode(syntax.Identifier)
	n.Add(p.bump())
	if p.raw().Kind == token.TypeHint {
		n.Add(syntax.NewTerminal(p.pos))
		p.pos++
	}
	return n
}

// isAssignment: Ident [hint] (.Ident | (...))* "=".
func (p *Parser) isAssignment() bool {
	depth := 0
	for i := 0; ; i++ {
		tok := p.peekN(i)
		switch {
		case tok.Kind == token.EOF || tok.Kind == token.Newline || tok.Kind == token.SingleQuote:
			return false
		case tok.Kind == token.Colon && depth == 0:
			return false
		case tok.Kind == token.LParen:
			depth++
		case tok.Kind == token.RParen:
			depth--
		case depth > 0:
		case tok.Kind == token.Operator && tok.Text == "=":
			return true
		case tok.Kind == token.Ident, tok.Kind == token.TypeHint, tok.Kind == token.Dot:
		case tok.Kind == token.Keyword && (tok.IsWord("Me")):
		default:
			return false
		}
	}
}

func (p *Parser) parseAssignment(kind syntax.Kind, inline bool) *syntax.Node {
	n := newNode(kind)
	if p.atWord("Let") || p.atWord("Set") {
		n.Add(p.bump())
	}
	p.parseTail(n, inline, "")
	return n
}
