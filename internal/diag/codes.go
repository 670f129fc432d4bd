package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Парсерные
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynMissingEnd          Code = 2002
	SynUnmatchedEnd        Code = 2003
	SynExpectIdentifier    Code = 2004
	SynMalformedAnnotation Code = 2005

	// Аннотации: no-op причины
	AnnInfo                    Code = 3000
	AnnNullTarget              Code = 3001
	AnnCapabilityMismatch      Code = 3002
	AnnPlacementViolation      Code = 3003
	AnnIncompatibleReplacement Code = 3004
	AnnAlreadyPresent          Code = 3005
	AnnUnknownType             Code = 3006

	// Rewrite session
	RewInfo             Code = 4000
	RewSessionTerminal  Code = 4001
	RewTokenOutOfRange  Code = 4002
	RewOverlappingEdits Code = 4003
	RewCommitFailed     Code = 4004
	RewRolledBack       Code = 4005

	// Code path (semantic tree)
	CpaInfo               Code = 5000
	CpaAmbiguousReference Code = 5001
	CpaNilTarget          Code = 5002

	// Ошибки I/O
	IOLoadFileError  Code = 6001
	IOWriteFileError Code = 6002
	IOJournalError   Code = 6003
)

var codeDescription = map[Code]string{
	UnknownCode:                "Unknown error",
	LexInfo:                    "Lexer information",
	LexUnknownChar:             "Unknown character",
	LexUnterminatedString:      "Unterminated string literal",
	LexBadNumber:               "Malformed number literal",
	SynInfo:                    "Parser information",
	SynUnexpectedToken:         "Unexpected token",
	SynMissingEnd:              "Block is not closed",
	SynUnmatchedEnd:            "Block terminator without opening statement",
	SynExpectIdentifier:        "Identifier expected",
	SynMalformedAnnotation:     "Malformed annotation",
	AnnInfo:                    "Annotation information",
	AnnNullTarget:              "Annotation target is missing",
	AnnCapabilityMismatch:      "Annotation type cannot apply to this target",
	AnnPlacementViolation:      "Target is not on the first physical line of its logical line",
	AnnIncompatibleReplacement: "Annotation types share no target capability",
	AnnAlreadyPresent:          "Annotation is already present",
	AnnUnknownType:             "Unknown annotation type",
	RewInfo:                    "Rewrite information",
	RewSessionTerminal:         "Rewrite session is terminal",
	RewTokenOutOfRange:         "Token index out of range",
	RewOverlappingEdits:        "Overlapping rewrite edits",
	RewCommitFailed:            "Commit failed",
	RewRolledBack:              "Committed modules were rolled back",
	CpaInfo:                    "Code path information",
	CpaAmbiguousReference:      "Several references share one syntax node",
	CpaNilTarget:               "Code path target is missing",
	IOLoadFileError:            "I/O load file error",
	IOWriteFileError:           "I/O write file error",
	IOJournalError:             "Commit journal error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("ANN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("REW%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CPA%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
