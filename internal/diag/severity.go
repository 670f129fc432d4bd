package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo covers notices such as unknown annotation arguments being kept.
	SevInfo Severity = iota
	SevWarning
	// SevError means the requested operation was not applied.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity accepts the names printed by String in any case, plus "warn".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return SevInfo, nil
	case "warning", "warn":
		return SevWarning, nil
	case "error":
		return SevError, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

// AtLeast keeps diagnostics whose severity is min or higher, preserving order.
func AtLeast(diags []Diagnostic, minSev Severity) []Diagnostic {
	if minSev == SevInfo {
		return diags
	}
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity >= minSev {
			out = append(out, d)
		}
	}
	return out
}
