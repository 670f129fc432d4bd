package lexer

import (
	"vbcore/internal/diag"
	"vbcore/internal/token"
)

// scanNumber: десятичные цифры с необязательной дробной частью.
// Суффиксы типа (1&, 2#) выдаются отдельным TypeHint токеном.
func (lx *Lexer) scanNumber(start Mark) token.Token {
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	return lx.finish(token.IntLit, start)
}

// scanString: "..." с удвоенной кавычкой как escape. Строка не переносится через конец строки.
func (lx *Lexer) scanString(start Mark) token.Token {
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		if _, ok := lx.cursor.AtNewline(); ok {
			break
		}
		b := lx.cursor.Bump()
		if b != '"' {
			continue
		}
		if lx.cursor.Peek() == '"' {
			lx.cursor.Bump()
			continue
		}
		return lx.finish(token.StringLit, start)
	}
	tok := lx.finish(token.StringLit, start)
	lx.report(diag.LexUnterminatedString, tok, "unterminated string literal")
	return tok
}

// scanCommentBody consumes the rest of the logical line, continuation
// sequences included. Returns false when the line ends right away.
func (lx *Lexer) scanCommentBody(start Mark) (token.Token, bool) {
	for !lx.cursor.EOF() {
		if n, ok := lx.cursor.AtContinuation(); ok {
			lx.cursor.Off += n
			continue
		}
		if _, ok := lx.cursor.AtNewline(); ok {
			break
		}
		lx.cursor.Bump()
	}
	if lx.cursor.Mark() == start {
		return token.Token{}, false
	}
	return lx.finish(token.CommentBody, start), true
}

func (lx *Lexer) scanOperatorOrPunct(start Mark) token.Token {
	ch := lx.cursor.Bump()
	switch ch {
	case ':':
		if lx.cursor.Eat('=') {
			return lx.finish(token.Operator, start)
		}
		lx.atHead = true
		return lx.finish(token.Colon, start)
	case ',':
		return lx.finish(token.Comma, start)
	case '.':
		return lx.finish(token.Dot, start)
	case '(':
		return lx.finish(token.LParen, start)
	case ')':
		return lx.finish(token.RParen, start)
	case '<':
		if !lx.cursor.Eat('=') {
			lx.cursor.Eat('>')
		}
		return lx.finish(token.Operator, start)
	case '>':
		lx.cursor.Eat('=')
		return lx.finish(token.Operator, start)
	case '=', '+', '-', '*', '/', '\\', '^', '&', '!', '#', '?', ';', '@', '$', '%', '[', ']', '{', '}', '~':
		return lx.finish(token.Operator, start)
	}
	if ch >= utf8RuneSelf {
		lx.cursor.Off--
		lx.bumpRune()
	}
	tok := lx.finish(token.Invalid, start)
	lx.report(diag.LexUnknownChar, tok, "unknown character "+quoteText(tok.Text))
	return tok
}
