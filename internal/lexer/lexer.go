package lexer

import (
	"vbcore/internal/diag"
	"vbcore/internal/source"
	"vbcore/internal/token"
)

// Lexer splits module text into a lossless token sequence.
type Lexer struct {
	module *source.Module
	name   source.ModuleName
	cursor Cursor
	opts   Options

	line, col  uint32 // позиция начала следующего токена
	index      int
	atHead     bool // начало оператора: начало строки или после ':'
	annotation bool // внутри '@... до конца логической строки
	// pendingComment: следующий нетривиальный фрагмент до конца логической строки становится CommentBody
	pendingComment bool
	afterWord      bool // предыдущий токен был идентификатором или число (для type hint)
}

func New(m *source.Module, opts Options) *Lexer {
	return &Lexer{
		module: m,
		name:   m.Name,
		cursor: NewCursor(m),
		opts:   opts,
		line:   1,
		col:    1,
		atHead: true,
	}
}

// Tokenize lexes the whole module into a stream ending with EOF.
func Tokenize(m *source.Module, opts Options) *token.Stream {
	lx := New(m, opts)
	toks := make([]token.Token, 0, len(m.Content)/3+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return token.NewStream(m.Name, toks)
}

// Next возвращает следующий токен, включая trivia.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.cursor.EOF() {
		return lx.finish(token.EOF, lx.cursor.Mark())
	}
	start := lx.cursor.Mark()

	if lx.pendingComment {
		lx.pendingComment = false
		if tok, ok := lx.scanCommentBody(start); ok {
			return tok
		}
	}
	if lx.afterWord && token.IsTypeHint(lx.cursor.Peek()) && !isIdentContinueByte(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		return lx.finish(token.TypeHint, start)
	}

	if n, ok := lx.cursor.AtContinuation(); ok {
		lx.cursor.Off += n
		return lx.finish(token.LineContinuation, start)
	}
	if n, ok := lx.cursor.AtNewline(); ok {
		lx.cursor.Off += n
		lx.atHead = true
		lx.annotation = false
		return lx.finish(token.Newline, start)
	}

	ch := lx.cursor.Peek()
	if ch == ' ' || ch == '\t' {
		lx.scanWhitespace()
		return lx.finish(token.Whitespace, start)
	}
	if lx.annotation {
		return lx.nextInAnnotation(start)
	}

	head := lx.atHead
	lx.atHead = false
	switch {
	case ch == '\'':
		lx.cursor.Bump()
		if lx.cursor.Peek() == '@' {
			lx.annotation = true
		} else {
			lx.pendingComment = true
		}
		return lx.finish(token.SingleQuote, start)
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdentOrKeyword(start, head)
	case isDec(ch):
		return lx.scanNumber(start)
	case ch == '"':
		return lx.scanString(start)
	default:
		return lx.scanOperatorOrPunct(start)
	}
}

func (lx *Lexer) nextInAnnotation(start Mark) token.Token {
	ch := lx.cursor.Peek()
	switch {
	case ch == '@':
		lx.cursor.Bump()
		return lx.finish(token.At, start)
	case ch == ':':
		lx.cursor.Bump()
		lx.annotation = false
		lx.pendingComment = true
		return lx.finish(token.Colon, start)
	case ch == ',':
		lx.cursor.Bump()
		return lx.finish(token.Comma, start)
	case ch == '(':
		lx.cursor.Bump()
		return lx.finish(token.LParen, start)
	case ch == ')':
		lx.cursor.Bump()
		return lx.finish(token.RParen, start)
	case ch == '.':
		lx.cursor.Bump()
		return lx.finish(token.Dot, start)
	case ch == '"':
		return lx.scanString(start)
	case isDec(ch):
		return lx.scanNumber(start)
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		lx.scanIdentBody()
		return lx.finish(token.Ident, start)
	default:
		lx.bumpRune()
		return lx.finish(token.Operator, start)
	}
}

func (lx *Lexer) scanWhitespace() {
	for {
		b := lx.cursor.Peek()
		if b != ' ' && b != '\t' {
			return
		}
		if _, ok := lx.cursor.AtContinuation(); ok {
			return
		}
		lx.cursor.Bump()
	}
}

// finish builds the token from start to the cursor and advances line/col bookkeeping.
func (lx *Lexer) finish(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	tok := token.Token{
		Kind:  kind,
		Index: lx.index,
		Span:  sp,
		Text:  string(lx.module.Content[sp.Start:sp.End]),
		Line:  lx.line,
		Col:   lx.col,
	}
	end := tok.End()
	lx.line, lx.col = end.Line, end.Col
	lx.afterWord = kind == token.Ident || kind == token.IntLit
	if kind != token.EOF {
		lx.index++
	}
	return tok
}

func (lx *Lexer) report(code diag.Code, tok token.Token, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	loc := source.QualifiedSelection{
		Module:    lx.name,
		Selection: source.NewSelection(tok.Start(), tok.End()),
	}
	lx.opts.Reporter.Report(code, diag.SevError, loc, msg, nil)
}
