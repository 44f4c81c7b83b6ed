// Package logging provides structured logging utilities for the taskdeck CLI.
//
// It centralizes attribute naming on top of the standard library's slog so
// log lines stay consistent across the auth flow, the API clients, and the
// MCP serve mode, and keeps credentials out of log output.
package logging
