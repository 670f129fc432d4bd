package parser

import (
	"vbcore/internal/syntax"
	"vbcore/internal/token"
)

var memberKinds = map[string]syntax.Kind{
	"Sub":      syntax.SubStmt,
	"Function": syntax.FunctionStmt,
	"Property": syntax.PropertyStmt,
}

// parseMember: [modifiers] Sub|Function|Property [Get|Let|Set] name [(args)] [As type] ... End <word>
func (p *Parser) parseMember() *syntax.Node {
	var mods []*syntax.Node
	for p.atWord("Public") || p.atWord("Private") || p.atWord("Friend") || p.atWord("Static") || p.atWord("Global") {
		mods = append(mods, p.bump())
	}
	word, _ := token.LookupKeyword(p.peek().Text)
	n := newNode(memberKinds[word])
	for _, m := range mods {
		n.Add(m)
	}
	n.Add(p.bump())
	if word == "Property" && (p.atWord("Get") || p.atWord("Let") || p.atWord("Set")) {
		n.Add(p.bump())
	}
	n.Add(p.parseIdentifier())
	if p.peek().Kind == token.LParen {
		n.Add(p.parseArgList())
	}
	if p.atWord("As") {
		n.Add(p.parseAsType())
	}
	p.parseTail(n, false, "")
	p.headerEnd(n)
	n.Add(p.parseBlock(func() bool { return p.atEnd(word) }))
	p.closeBlock(n, "End", word)
	return n
}

func (p *Parser) parseArgList() *syntax.Node {
	n := newNode(syntax.ArgList)
	n.Add(p.bump()) // (
	for !p.atLineEnd() && p.peek().Kind != token.RParen {
		if p.peek().Kind == token.Comma {
			n.Add(p.bump())
			continue
		}
		n.Add(p.parseArg())
	}
	if p.peek().Kind == token.RParen {
		n.Add(p.bump())
	}
	return n
}

func (p *Parser) parseArg() *syntax.Node {
	n := newNode(syntax.Arg)
	for p.atWord("Optional") || p.atWord("ByVal") || p.atWord("ByRef") || p.atWord("ParamArray") {
		n.Add(p.bump())
	}
	if p.peek().Kind != token.Ident {
		n.Add(p.bump())
		return n
	}
	n.Add(p.parseIdentifier())
	if p.peek().Kind == token.LParen && p.peekN(1).Kind == token.RParen {
		n.Add(p.bump())
		n.Add(p.bump())
	}
	if p.atWord("As") {
		n.Add(p.parseAsType())
	}
	p.parseUntilSeparator(n)
	return n
}

// parseAsType: As [New] type[.type] [* len]
func (p *Parser) parseAsType() *syntax.Node {
	n := newNode(syntax.AsTypeClause)
	n.Add(p.bump()) // As
	for !p.atStmtEnd() {
		tok := p.peek()
		if tok.Kind == token.Comma || tok.Kind == token.RParen || (tok.Kind == token.Operator && tok.Text == "=") {
			break
		}
		n.Add(p.bump())
	}
	return n
}

// parseUntilSeparator добавляет токены до ',' или ')' на нулевой глубине скобок.
func (p *Parser) parseUntilSeparator(n *syntax.Node) {
	depth := 0
	for !p.atStmtEnd() {
		tok := p.peek()
		if depth == 0 && (tok.Kind == token.Comma || tok.Kind == token.RParen) {
			return
		}
		switch tok.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		case token.Ident:
			n.Add(p.parseNameExpr())
			continue
		}
		n.Add(p.bump())
	}
}
