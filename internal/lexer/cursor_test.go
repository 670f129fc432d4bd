package lexer

import (
	"testing"

	"vbcore/internal/source"
)

func newModule(content string) *source.Module {
	ms := source.NewModuleSet()
	id := ms.AddVirtual(source.ModuleName{Component: "test"}, []byte(content))
	return ms.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(newModule("a\nb"))
	for _, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("cursor must report EOF and zero bytes at the end")
	}
}

func TestMarkAndReset(t *testing.T) {
	cursor := NewCursor(newModule("abc"))
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	if sp := cursor.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Errorf("SpanFrom = %v", sp)
	}
	cursor.Reset(m)
	if cursor.Peek() != 'a' {
		t.Error("Reset must return to the mark")
	}
	if cursor.Eat('x') || !cursor.Eat('a') {
		t.Error("Eat must only consume a matching byte")
	}
}

func TestContinuationDetection(t *testing.T) {
	tests := []struct {
		text string
		n    uint32
		ok   bool
	}{
		{" _\nx", 3, true},
		{"\t _\r\nx", 5, true},
		{" _x", 0, false},
		{"_\n", 0, false},
		{"  ", 0, false},
		{" _", 0, false},
	}
	for _, tt := range tests {
		cursor := NewCursor(newModule(tt.text))
		n, ok := cursor.AtContinuation()
		if n != tt.n || ok != tt.ok {
			t.Errorf("AtContinuation(%q) = %d, %v; want %d, %v", tt.text, n, ok, tt.n, tt.ok)
		}
	}
}
