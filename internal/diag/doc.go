// Package diag defines the diagnostic model shared by the semantic passes.
//
// # Purpose
//
//   - Provide deterministic, serialisable records ("problems") for every
//     user-facing violation the resolver and return checker find.
//   - Offer light-weight utilities (Reporter, Bag) that let passes emit
//     diagnostics without coupling to storage or formatting.
//
// Diagnostics are data. A pass that finds a malformed program records a
// Diagnostic and keeps walking; nothing in this package panics or returns
// an error for a user mistake. Internal invariant violations are not
// diagnostics and are raised by the pass that detects them.
//
// # Data model
//
//   - Severity – Info, Warning or Error.
//   - Code – compact numeric identifier (see codes.go) with a stable ID form.
//   - Message – short, actionable text.
//   - Primary – the [start, end) source.Span the problem points at.
//   - Notes – optional secondary spans with extra context.
//
// # Ordering
//
// A Bag preserves emission order, which is traversal order. Sort exists for
// renderers that want location order; the passes never sort.
//
// # Emitting diagnostics
//
// Passes construct a ReportBuilder via ReportError/ReportWarning/ReportInfo,
// optionally chain WithNote, and call Emit. BagReporter collects into a Bag;
// MultiReporter fans out to several reporters.
package diag
