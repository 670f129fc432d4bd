package source

import (
	"fmt"
)

// Span is a half-open byte range inside one module version.
type Span struct {
	Module ModuleID
	Start  uint32 // в байтах включительно
	End    uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Module, s.Start, s.End)
}

// Cover returns the smallest span containing both spans of the same module.
func (s Span) Cover(other Span) Span {
	if s.Module != other.Module {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Overlaps reports whether two spans of the same module share at least one byte.
func (s Span) Overlaps(other Span) bool {
	if s.Module != other.Module {
		return false
	}
	return s.Start < other.End && other.Start < s.End
}
