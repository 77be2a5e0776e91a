// Package logging assembles structured slog loggers used across the
// streampick engine and CLI.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so engine code automatically
// tags log lines with video IDs, operation names, and correlation IDs. Console
// lines start with a fixed per-severity prefix (DEBUG/INFO/WARN/ERROR) so a
// host-side log sink can classify diagnostics without parsing structure.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
