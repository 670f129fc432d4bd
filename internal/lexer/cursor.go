package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"vbcore/internal/source"
)

// Cursor представляет собой позицию в модуле
type Cursor struct {
	Module *source.Module
	Off    uint32
	limit  uint32
}

// NewCursor creates a new cursor for the provided module.
func NewCursor(m *source.Module) Cursor {
	limit, err := safecast.Conv[uint32](len(m.Content))
	if err != nil {
		panic(fmt.Errorf("len module content overflow: %w", err))
	}
	return Cursor{Module: m, limit: limit}
}

// EOF проверяет, достигнут ли конец модуля
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Module.Content[c.Off]
}

// PeekAt читает байт со смещением n от текущей позиции, иначе 0
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.limit {
		return 0
	}
	return c.Module.Content[c.Off+n]
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Module.Content[c.Off]
	c.Off++
	return b
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		Module: c.Module.ID,
		Start:  uint32(m),
		End:    c.Off,
	}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Module.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// AtNewline reports whether the cursor sits on "\n" or "\r\n" and returns its length.
func (c *Cursor) AtNewline() (uint32, bool) {
	switch c.Peek() {
	case '\n':
		return 1, true
	case '\r':
		if c.PeekAt(1) == '\n' {
			return 2, true
		}
	}
	return 0, false
}

// AtContinuation reports whether the cursor sits on a whitespace run followed by
// '_' and a newline, and returns the length of the whole sequence.
func (c *Cursor) AtContinuation() (uint32, bool) {
	var n uint32
	for {
		b := c.PeekAt(n)
		if b != ' ' && b != '\t' {
			break
		}
		n++
	}
	if n == 0 || c.PeekAt(n) != '_' {
		return 0, false
	}
	n++
	switch c.PeekAt(n) {
	case '\n':
		return n + 1, true
	case '\r':
		if c.PeekAt(n+1) == '\n' {
			return n + 2, true
		}
	}
	return 0, false
}
