// Package logging assembles structured slog loggers and formatting helpers used
// across scribe.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so pipeline code can tag log lines with the
// pipeline, stage, and correlation ID of the request being served. A no-op
// logger is provided for tests and for engine values built without one.
package logging
