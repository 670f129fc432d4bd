package source

import "fmt"

// Selection is a 1-based line/column range. EndColumn is exclusive.
type Selection struct {
	StartLine   uint32
	StartColumn uint32
	EndLine     uint32
	EndColumn   uint32
}

// NewSelection builds a selection from two positions.
func NewSelection(start, end LineCol) Selection {
	return Selection{
		StartLine:   start.Line,
		StartColumn: start.Col,
		EndLine:     end.Line,
		EndColumn:   end.Col,
	}
}

// Start returns the first position covered by the selection.
func (s Selection) Start() LineCol {
	return LineCol{Line: s.StartLine, Col: s.StartColumn}
}

// End returns the exclusive end position of the selection.
func (s Selection) End() LineCol {
	return LineCol{Line: s.EndLine, Col: s.EndColumn}
}

func (s Selection) IsZero() bool {
	return s == Selection{}
}

// IsSingleLine reports whether the selection starts and ends on the same physical line.
func (s Selection) IsSingleLine() bool {
	return s.StartLine == s.EndLine
}

// LineCount returns the number of physical lines touched by the selection.
func (s Selection) LineCount() uint32 {
	if s.EndLine < s.StartLine {
		return 0
	}
	return s.EndLine - s.StartLine + 1
}

// Contains reports whether the position lies inside the selection.
func (s Selection) Contains(pos LineCol) bool {
	if before(pos, s.Start()) {
		return false
	}
	return before(pos, s.End())
}

// ContainsSelection reports whether other lies fully inside s.
func (s Selection) ContainsSelection(other Selection) bool {
	return !before(other.Start(), s.Start()) && !before(s.End(), other.End())
}

// Overlaps reports whether two selections share at least one position.
func (s Selection) Overlaps(other Selection) bool {
	return before(s.Start(), other.End()) && before(other.Start(), s.End())
}

func (s Selection) String() string {
	if s.IsSingleLine() {
		return fmt.Sprintf("L%dC%d-%d", s.StartLine, s.StartColumn, s.EndColumn)
	}
	return fmt.Sprintf("L%dC%d-L%dC%d", s.StartLine, s.StartColumn, s.EndLine, s.EndColumn)
}

func before(a, b LineCol) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Col < b.Col
}

// QualifiedSelection ties a selection to the module it belongs to.
type QualifiedSelection struct {
	Module    ModuleName
	Selection Selection
}

func (q QualifiedSelection) String() string {
	return fmt.Sprintf("%s %s", q.Module, q.Selection)
}
