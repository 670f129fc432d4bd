package rewrite

import (
	"errors"

	"vbcore/internal/source"
	"vbcore/internal/token"
)

var (
	// ErrSessionTerminal is returned for any use of a committed or invalidated session.
	ErrSessionTerminal = errors.New("rewrite session is terminal")
	// ErrTokenOutOfRange is returned when an edit names a token outside the snapshot.
	ErrTokenOutOfRange = errors.New("token index out of range")
	// ErrOverlappingEdits is returned when an edit partially overlaps a pending one.
	ErrOverlappingEdits = errors.New("overlapping edits")
	// ErrUnknownModule is returned when the code source cannot provide a module.
	ErrUnknownModule = errors.New("unknown module")
	// ErrCommitFailed is returned when a module could not be written back.
	ErrCommitFailed = errors.New("commit failed")
	// ErrNoRecords is returned by an empty journal.
	ErrNoRecords = errors.New("journal has no records")
	// ErrJournalMismatch means the module changed after the journaled commit.
	ErrJournalMismatch = errors.New("module text does not match journal")
)

// CodeSource is the host text store: it serves token snapshots and receives
// committed text.
type CodeSource interface {
	TokenStream(name source.ModuleName) (*token.Stream, error)
	SetCode(name source.ModuleName, code string) error
}
