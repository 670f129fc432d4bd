package lexer

import (
	"vbcore/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистронезависимые. Token.Text равен исходному срезу.
// Rem в начале оператора открывает комментарий.
func (lx *Lexer) scanIdentOrKeyword(start Mark, head bool) token.Token {
	if r, sz := lx.peekRune(); sz == 0 || !isIdentStartRune(r) {
		return lx.scanOperatorOrPunct(start)
	}
	lx.scanIdentBody()
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.module.Content[sp.Start:sp.End])

	kw, ok := token.LookupKeyword(text)
	switch {
	case ok && kw == "Rem" && head:
		lx.pendingComment = true
		return lx.finish(token.RemKeyword, start)
	case ok:
		return lx.finish(token.Keyword, start)
	default:
		return lx.finish(token.Ident, start)
	}
}

func (lx *Lexer) scanIdentBody() {
	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		lx.bumpRune()
		return
	}
	lx.bumpRune()
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				return
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			return
		}
		lx.bumpRune()
	}
}
