package comments

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"
	"unicode/utf8"

	"vbcore/internal/source"
)

// Comment is one logical comment with the selection of its physical lines.
// Text starts with the marker (' or Rem).
type Comment struct {
	Text      string
	Selection source.QualifiedSelection
}

// State of the line state machine.
type State uint8

const (
	Idle State = iota
	ContinuingComment
)

func (s State) String() string {
	if s == ContinuingComment {
		return "ContinuingComment"
	}
	return "Idle"
}

// Scanner yields comments of one module.
type Scanner struct {
	module source.ModuleName
	next   func() (string, bool)
	stop   func()

	state     State
	line      uint32 // номер последней прочитанной строки, 1-based
	acc       strings.Builder
	startLine uint32
	startCol  uint32
	lastWidth uint32 // длина последней строки в рунах
	// codeContinued: предыдущая строка кода закончилась " _",
	// значит текущая строка не начинает оператор.
	codeContinued bool
	done          bool
	err           error
}

// New scans the given physical lines (without terminators).
func New(module source.ModuleName, lines iter.Seq[string]) *Scanner {
	next, stop := iter.Pull(lines)
	return &Scanner{module: module, next: next, stop: stop}
}

// FromText splits text into physical lines ("\n" or "\r\n").
func FromText(module source.ModuleName, text string) *Scanner {
	lines := splitLines(text)
	i := 0
	next := func() (string, bool) {
		if i >= len(lines) {
			return "", false
		}
		i++
		return lines[i-1], true
	}
	return &Scanner{module: module, next: next, stop: func() {}}
}

// FromReader reads physical lines of any length from r. A read error ends
// the sequence and is reported by Err.
func FromReader(module source.ModuleName, r io.Reader) *Scanner {
	br := bufio.NewReader(r)
	s := &Scanner{module: module, stop: func() {}}
	s.next = func() (string, bool) {
		line, err := br.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
				return "", false
			}
			if line == "" {
				return "", false
			}
		}
		return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), true
	}
	return s
}

// Err returns the read error that ended the sequence, if any.
func (s *Scanner) Err() error { return s.err }

// State reports the current machine state.
func (s *Scanner) State() State { return s.state }

// Next returns the next comment. After the last one it keeps returning false.
func (s *Scanner) Next() (Comment, bool) {
	for !s.done {
		line, ok := s.next()
		if !ok {
			s.Close()
			// комментарий, оборванный концом модуля, всё равно отдаём
			if s.state == ContinuingComment {
				s.state = Idle
				return s.emit(s.line, s.lastWidth+1), true
			}
			return Comment{}, false
		}
		s.line++
		s.lastWidth = uint32(utf8.RuneCountInString(line)) // #nosec G115 -- line length fits
		if c, ok := s.step(line); ok {
			return c, true
		}
	}
	return Comment{}, false
}

// All yields the remaining comments. Breaking out early leaves the rest for Next.
func (s *Scanner) All() iter.Seq[Comment] {
	return func(yield func(Comment) bool) {
		for {
			c, ok := s.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}

// Close releases the line source. Further calls to Next return false.
func (s *Scanner) Close() {
	if s.done {
		return
	}
	s.done = true
	s.stop()
}

// step is the transition function for one physical line.
func (s *Scanner) step(line string) (Comment, bool) {
	var piece string
	switch s.state {
	case Idle:
		col, ok := commentStart(line, !s.codeContinued)
		if !ok {
			s.codeContinued = hasContinuation(line)
			return Comment{}, false
		}
		s.codeContinued = false
		s.startLine = s.line
		s.startCol = col + 1
		piece = runeSuffix(line, col)
	case ContinuingComment:
		piece = line
	}

	if hasContinuation(line) {
		s.state = ContinuingComment
		// пробел перед "_" остаётся разделителем слов
		s.acc.WriteString(strings.TrimLeft(strings.TrimSuffix(piece, "_"), " \t"))
		return Comment{}, false
	}
	s.state = Idle
	s.acc.WriteString(strings.TrimSpace(piece))
	return s.emit(s.line, s.lastWidth+1), true
}

func (s *Scanner) emit(endLine, endCol uint32) Comment {
	c := Comment{
		Text: strings.TrimSpace(s.acc.String()),
		Selection: source.QualifiedSelection{
			Module: s.module,
			Selection: source.Selection{
				StartLine:   s.startLine,
				StartColumn: s.startCol,
				EndLine:     endLine,
				EndColumn:   endCol,
			},
		},
	}
	s.acc.Reset()
	return c
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
