// Package logging assembles structured slog loggers and formatting helpers used
// across hifiwifi.
//
// It owns the console and JSON handlers, level parsing and output plumbing,
// and exposes context-aware helpers so HTTP handlers and the advisor tag log
// lines with the request's correlation ID. "auto" picks the console format
// for an interactive terminal and JSON otherwise. A no-op logger is provided
// for tests and wiring code that cannot fail.
package logging
