// Package logging assembles structured slog loggers and formatting helpers
// used across the feed services.
//
// It owns the configurable console/JSON handlers, centralizes level plumbing,
// and exposes context-aware helpers so feed code can automatically tag log
// lines with feed names and fetch correlation IDs. The package also provides
// a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
