// Package logging assembles the structured slog loggers used across bindery.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so orchestration code can
// automatically tag log lines with run, book, and stage identifiers. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail, plus retention pruning for per-run log files.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
