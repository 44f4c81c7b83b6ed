package api

import "fmt"

// APIError is a non-success response from a REST endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("taskdeck api: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("taskdeck api: HTTP %d", e.StatusCode)
}

// TransportError means the sync request itself failed before the batch was
// processed (non-success HTTP status).
type TransportError struct {
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sync request failed: HTTP %d", e.StatusCode)
}

// BatchError means the service rejected the whole batch before per-command
// processing, via the response's top-level error field.
type BatchError struct {
	Message string
	Code    int
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("sync batch rejected: %s", e.Message)
}

// CommandError means one command in the batch failed. Sibling commands may
// have succeeded on the server; the client still reports the call as failed.
type CommandError struct {
	UUID    string
	Type    string
	Code    int
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("sync command %s (%s) failed: %s", e.Type, e.UUID, e.Message)
}
