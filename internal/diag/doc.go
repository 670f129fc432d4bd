// Package diag defines the diagnostic model shared by the lexer, the parser,
// the annotation updater and the rewrite session.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (codes.go).
//   - Message: short human text.
//   - Primary: byte span inside one module version (may be zero).
//   - Location: module-qualified line/column selection, used for rendering.
//   - Notes: optional secondary messages.
//
// # Emitting diagnostics
//
// Producers use a Reporter so emission stays decoupled from storage.
// BagReporter collects into a Bag, which supports limits, sorting and
// deduplication. ReportBuilder chains notes before Emit.
//
// Annotation no-ops are not errors: the updater returns an Outcome whose
// Diagnostic() lands here with SevWarning, so the CLI renders both kinds
// through FormatShort.
package diag
