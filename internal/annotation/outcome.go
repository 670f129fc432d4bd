package annotation

import (
	"vbcore/internal/diag"
	"vbcore/internal/source"
)

// Outcome reports what an Updater call did. A call that was not applied
// carries the reason in Code and Message and left the source untouched.
type Outcome struct {
	Applied bool
	Code    diag.Code
	Message string
	Target  source.QualifiedSelection
}

// Diagnostic converts a skipped outcome into a diagnostic. An already present
// annotation is informational, every other reason is a warning.
func (o Outcome) Diagnostic() diag.Diagnostic {
	sev := diag.SevWarning
	if o.Applied || o.Code == diag.AnnAlreadyPresent {
		sev = diag.SevInfo
	}
	code := o.Code
	if code == 0 {
		code = diag.AnnInfo
	}
	msg := o.Message
	if msg == "" && o.Applied {
		msg = "annotation updated"
	}
	return diag.New(sev, code, o.Target, msg)
}

func applied(target source.QualifiedSelection) Outcome {
	return Outcome{Applied: true, Target: target}
}
