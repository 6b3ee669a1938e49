// Package logging assembles structured slog loggers and formatting helpers used
// across demoreel commands.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so recorder and scaffold code tag
// log lines with the run, segment, and step they belong to. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every command
// emits data with the same shape.
package logging
