package parser

import (
	"vbcore/internal/syntax"
	"vbcore/internal/token"
)

// parseVariable: Dim|Public|Private|Static|Global a [(bounds)] [As T], b ...
func (p *Parser) parseVariable() *syntax.Node {
	n := newNode(syntax.VariableStmt)
	n.Add(p.bump())
	for !p.atStmtEnd() {
		if p.peek().Kind == token.Comma {
			n.Add(p.bump())
			continue
		}
		if p.peek().Kind != token.Ident && !p.atWord("WithEvents") {
			n.Add(p.bump())
			continue
		}
		n.Add(p.parseVariableSub())
	}
	return n
}

func (p *Parser) parseVariableSub() *syntax.Node {
	n := newNode(syntax.VariableSubStmt)
	if p.atWord("WithEvents") {
		n.Add(p.bump())
	}
	n.Add(p.parseIdentifier())
	if p.peek().Kind == token.LParen {
		depth := 0
		for !p.atStmtEnd() {
			tok := p.peek()
			if tok.Kind == token.LParen {
				depth++
			} else if tok.Kind == token.RParen {
				depth--
			}
			n.Add(p.bump())
			if depth == 0 {
				break
			}
		}
	}
	if p.atWord("As") {
		n.Add(p.parseAsType())
	}
	return n
}

// parseConst: [modifier] Const a [As T] = value, b = value
func (p *Parser) parseConst() *syntax.Node {
	n := newNode(syntax.ConstStmt)
	if !p.atWord("Const") {
		n.Add(p.bump())
	}
	n.Add(p.bump()) // Const
	for !p.atStmtEnd() {
		if p.peek().Kind == token.Comma {
			n.Add(p.bump())
			continue
		}
		if p.peek().Kind != token.Ident {
			n.Add(p.bump())
			continue
		}
		sub := newNode(syntax.ConstSubStmt)
		sub.Add(p.parseIdentifier())
		if p.atWord("As") {
			sub.Add(p.parseAsType())
		}
		p.parseUntilSeparator(sub)
		n.Add(sub)
	}
	return n
}
