// Package output renders service resources for the terminal. Every listing
// command supports three formats: human-readable tables, a single indented
// JSON document, and newline-delimited JSON for piping into other tools.
package output
