// Package diag defines the diagnostic model shared by the reader and the
// formatter driver.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form (LEXxxxx, SYNxxxx, IOxxxx, FMTxxxx), a short Message, the
// Primary span and optional Notes.
//
// Producers emit through a Reporter; BagReporter collects into a Bag, which
// supports limits, sorting and deduplication. Rendering lives in
// internal/diagfmt.
package diag
