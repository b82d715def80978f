// Package diag defines the diagnostic model shared by the lexer, the parser and the driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//     Lexical codes live in 1xxx, syntax codes in 2xxx, I/O in 4xxx.
//   - Message – short, actionable text.
//   - Primary – the source.Span the diagnostic points at.
//   - Notes – optional secondary spans with messages.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter and never to storage directly. BagReporter collects into a
// Bag, which supports sorting and deduplication; DedupReporter filters repeats before
// forwarding. ReportBuilder is a convenience for attaching notes before Emit.
//
// Package diag does no rendering or I/O; internal/diagfmt owns presentation.
package diag
