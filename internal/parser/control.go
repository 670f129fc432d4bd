package parser

import (
	"vbcore/internal/diag"
	"vbcore/internal/syntax"
	"vbcore/internal/token"
)

func (p *Parser) parseIf(inline bool) *syntax.Node {
	ifTok := p.bump()
	header := newNode(syntax.Invalid)
	header.Add(ifTok)
	p.parseTail(header, false, "Then")
	if p.atWord("Then") {
		header.Add(p.bump())
	}
	if inline || !p.atLineEnd() {
		return p.parseSingleLineIf(header)
	}

	n := newNode(syntax.IfStmt)
	for _, c := range header.Children {
		n.Add(c)
	}
	p.headerEnd(n)
	armEnd := func() bool { return p.atWord("ElseIf") || p.atWord("Else") || p.atEnd("If") }
	n.Add(p.parseBlock(armEnd))
	for p.atWord("ElseIf") {
		arm := newNode(syntax.ElseIfBlock)
		arm.Add(p.bump())
		p.parseTail(arm, false, "Then")
		if p.atWord("Then") {
			arm.Add(p.bump())
		}
		p.headerEnd(arm)
		arm.Add(p.parseBlock(armEnd))
		n.Add(arm)
	}
	if p.atWord("Else") {
		arm := newNode(syntax.ElseBlock)
		arm.Add(p.bump())
		p.headerEnd(arm)
		arm.Add(p.parseBlock(func() bool { return p.atEnd("If") }))
		n.Add(arm)
	}
	p.closeBlock(n, "End", "If")
	return n
}

// parseSingleLineIf: If c Then s1: s2 [Else s3]
func (p *Parser) parseSingleLineIf(header *syntax.Node) *syntax.Node {
	n := newNode(syntax.SingleLineIfStmt)
	for _, c := range header.Children {
		n.Add(c)
	}
	p.parseInlineStatements(n)
	if p.atWord("Else") {
		clause := newNode(syntax.SingleLineElseClause)
		clause.Add(p.bump())
		p.parseInlineStatements(clause)
		n.Add(clause)
	}
	return n
}

func (p *Parser) parseInlineStatements(n *syntax.Node) {
	for !p.atLineEnd() && !p.atWord("Else") {
		if p.peek().Kind == token.Colon {
			n.Add(p.bump())
			continue
		}
		n.Add(p.parseStatement(true))
	}
}

// parseSelect: Select Case expr, затем Case/Case Else до End Select.
func (p *Parser) parseSelect() *syntax.Node {
	n := newNode(syntax.SelectCaseStmt)
	n.Add(p.bump()) // Select
	if p.atWord("Case") {
		n.Add(p.bump())
	}
	p.parseTail(n, false, "")
	p.headerEnd(n)
	caseEnd := func() bool { return p.atWord("Case") || p.atEnd("Select") }
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF || p.atEnd("Select"):
			p.closeBlock(n, "End", "Select")
			return n
		case tok.Kind == token.Newline || tok.Kind == token.SingleQuote || tok.Kind == token.RemKeyword:
			n.Add(p.parseEndOfLine())
		case tok.Kind == token.Colon:
			n.Add(p.bump())
		case p.atWord("Case"):
			kind := syntax.CaseClause
			if p.peekN(1).IsWord("Else") {
				kind = syntax.CaseElseClause
			}
			clause := newNode(kind)
			clause.Add(p.bump())
			p.parseTail(clause, false, "")
			p.headerEnd(clause)
			clause.Add(p.parseBlock(caseEnd))
			n.Add(clause)
		default:
			p.report(diag.SynUnexpectedToken, diag.SevError, p.pos, "statement outside of Case")
			n.Add(p.parseStatement(false))
		}
	}
}

// parseFor: For i = a To b [Step c] ... Next [i] / For Each x In xs ... Next [x]
func (p *Parser) parseFor() *syntax.Node {
	kind := syntax.ForNextStmt
	if p.peekN(1).IsWord("Each") {
		kind = syntax.ForEachStmt
	}
	return p.parseLoop(kind, "Next")
}

func (p *Parser) parseWhile() *syntax.Node {
	return p.parseLoop(syntax.WhileWendStmt, "Wend")
}

func (p *Parser) parseDo() *syntax.Node {
	return p.parseLoop(syntax.DoLoopStmt, "Loop")
}

func (p *Parser) parseLoop(kind syntax.Kind, closer string) *syntax.Node {
	n := newNode(kind)
	n.Add(p.bump())
	p.parseTail(n, false, "")
	p.headerEnd(n)
	n.Add(p.parseBlock(func() bool { return p.atWord(closer) }))
	p.closeBlock(n, closer)
	p.parseTail(n, false, "") // Next i, Loop While x
	return n
}
