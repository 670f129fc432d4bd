package parser

import (
	"vbcore/internal/diag"
	"vbcore/internal/syntax"
	"vbcore/internal/token"
)

// parseEndOfLine: [comment | annotation list] [Newline]
func (p *Parser) parseEndOfLine() *syntax.Node {
	n := newNode(syntax.EndOfLine)
	switch p.peek().Kind {
	case token.SingleQuote, token.RemKeyword:
		n.Add(p.parseCommentOrAnnotation())
	}
	if p.peek().Kind == token.Newline {
		n.Add(p.bump())
	}
	return n
}

func (p *Parser) parseCommentOrAnnotation() *syntax.Node {
	n := newNode(syntax.CommentOrAnnotation)
	tok := p.peek()
	switch {
	case tok.Kind == token.RemKeyword:
		n.Add(p.parseCommentBody(syntax.RemComment))
	case p.s.At(p.pos+1).Kind == token.At:
		n.Add(p.parseAnnotationList())
	default:
		n.Add(p.parseCommentBody(syntax.Comment))
	}
	return n
}

func (p *Parser) parseCommentBody(kind syntax.Kind) *syntax.Node {
	n := newNode(kind)
	n.Add(p.bump())
	if p.raw().Kind == token.CommentBody {
		n.Add(syntax.NewTerminal(p.pos))
		p.pos++
	}
	return n
}

// parseAnnotationList: ' @Name args @Name args [: comment]
func (p *Parser) parseAnnotationList() *syntax.Node {
	n := newNode(syntax.AnnotationList)
	n.Add(p.bump()) // '
	for p.raw().Kind == token.At {
		n.Add(syntax.NewTerminal(p.pos))
		p.pos++
		ann := p.parseAnnotation()
		if ann == nil {
			break
		}
		n.Add(ann)
	}
	if p.peek().Kind == token.Colon {
		n.Add(p.bump())
		if p.raw().Kind == token.CommentBody {
			n.Add(syntax.NewTerminal(p.pos))
			p.pos++
		}
	}
	if !p.atLineEnd() {
		p.report(diag.SynMalformedAnnotation, diag.SevWarning, p.pos, "unexpected text in annotation list")
		for p.peek().Kind != token.Newline && p.peek().Kind != token.EOF {
			n.Add(p.bump())
		}
	}
	return n
}

// parseAnnotation разбирает имя и аргументы. Хвостовые пробелы входят в узел,
// чтобы замена аннотации их сохраняла.
func (p *Parser) parseAnnotation() *syntax.Node {
	if p.raw().Kind != token.Ident {
		p.report(diag.SynMalformedAnnotation, diag.SevWarning, p.pos, "annotation name expected")
		return nil
	}
	n := newNode(syntax.Annotation)
	name := newNode(syntax.AnnotationName)
	name.Add(syntax.NewTerminal(p.pos))
	p.pos++
	n.Add(name)

	switch {
	case p.raw().Kind == token.LParen:
		n.Add(p.parseParenAnnotationArgs())
	case isAnnotationAtom(p.lookahead(0).Kind):
		n.Add(p.parseBareAnnotationArgs())
	}
	for p.raw().Kind == token.Whitespace {
		n.Stop = p.pos
		p.pos++
	}
	return n
}

func (p *Parser) parseParenAnnotationArgs() *syntax.Node {
	n := newNode(syntax.AnnotationArgList)
	n.Add(p.bump()) // (
	for {
		tok := p.peek()
		if tok.Kind == token.RParen {
			n.Add(p.bump())
			return n
		}
		if tok.Kind == token.Newline || tok.Kind == token.EOF || tok.Kind == token.Colon {
			p.report(diag.SynMalformedAnnotation, diag.SevWarning, p.pos, "unclosed annotation argument list")
			return n
		}
		n.Add(p.bump())
	}
}

// parseBareAnnotationArgs: a, b.c, "d": атомы из смежных токенов через запятую.
func (p *Parser) parseBareAnnotationArgs() *syntax.Node {
	n := newNode(syntax.AnnotationArgList)
	for {
		n.Add(p.bump())
		for isAnnotationAtom(p.raw().Kind) {
			n.Add(syntax.NewTerminal(p.pos))
			p.pos++
		}
		if p.lookahead(0).Kind != token.Comma || !isAnnotationAtom(p.lookahead(1).Kind) {
			return n
		}
		n.Add(p.bump()) // ,
	}
}

func isAnnotationAtom(k token.Kind) bool {
	switch k {
	case token.Ident, token.StringLit, token.IntLit, token.Dot, token.Operator:
		return true
	default:
		return false
	}
}
