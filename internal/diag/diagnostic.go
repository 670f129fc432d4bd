package diag

import (
	"vbcore/internal/source"
)

type Note struct {
	Location source.QualifiedSelection
	Msg      string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Location source.QualifiedSelection
	Notes    []Note
}

func New(sev Severity, code Code, loc source.QualifiedSelection, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Location: loc,
		Message:  msg,
	}
}

func NewError(code Code, loc source.QualifiedSelection, msg string) Diagnostic {
	return New(SevError, code, loc, msg)
}

func (d Diagnostic) WithNote(loc source.QualifiedSelection, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Location: loc, Msg: msg})
	return d
}
