// Package tokenstore persists the Taskdeck access token on disk.
//
// The token lives in a single file under the user's cache directory with
// owner-only permissions. Load, Save and Clear are independent operations;
// there is no locking, merging or multi-account handling.
package tokenstore
