// Package batch provides helpers for tools that accept one id or a list of
// ids and report a per-item outcome. Tools keep processing after individual
// failures so a single bad id does not waste the rest of the batch.
package batch
