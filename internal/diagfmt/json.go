package diagfmt

import (
	"encoding/json"
	"io"

	"vbcore/internal/diag"
	"vbcore/internal/source"
)

// LocationJSON представляет местоположение в модуле для JSON
type LocationJSON struct {
	Module    string `json:"module"`
	StartLine uint32 `json:"start_line"`
	StartCol  uint32 `json:"start_col"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_col"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(q source.QualifiedSelection) LocationJSON {
	return LocationJSON{
		Module:    q.Module.String(),
		StartLine: q.Selection.StartLine,
		StartCol:  q.Selection.StartColumn,
		EndLine:   q.Selection.EndLine,
		EndCol:    q.Selection.EndColumn,
	}
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(diags []diag.Diagnostic, opts JSONOpts) DiagnosticsOutput {
	n := len(diags)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, n), Count: len(diags)}
	for _, d := range diags[:n] {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Location),
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: note.Msg, Location: makeLocation(note.Location)})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	return out
}

// JSON пишет диагностики в JSON.
func JSON(w io.Writer, diags []diag.Diagnostic, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(diags, opts))
}
