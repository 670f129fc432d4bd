package diag

import (
	"fmt"
	"strings"
)

// FormatShort renders diagnostics one per line:
//
//	warning ANN3003 VBAProject.Module1:L3C1-9 message
//
// Notes follow their diagnostic with the "note" label. Multi-line messages are flattened.
func FormatShort(diags []Diagnostic) string {
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s %s", strings.ToLower(d.Severity.String()), d.Code.ID(), d.Location, flatten(d.Message))
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "\nnote %s %s %s", d.Code.ID(), n.Location, flatten(n.Msg))
		}
	}
	return b.String()
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
