package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/logging"
)

// syncPath is the batched command endpoint. Mutations on goals, reminders,
// filters and notifications all go through it.
const syncPath = "/api/v1/sync"

// Command is a single typed mutation submitted in a sync batch.
type Command struct {
	// Type names the operation, e.g. "reminder_add".
	Type string `json:"type"`

	// UUID is the client-generated idempotency key. It is generated fresh
	// per command and never reused; the service deduplicates on it.
	UUID string `json:"uuid"`

	// TempID is a client-chosen placeholder id, present only on
	// create-type commands. The response maps it to the server-assigned
	// id.
	TempID string `json:"temp_id,omitempty"`

	// Args carries the command-specific parameters.
	Args map[string]any `json:"args"`
}

// NewCommand builds a command with a fresh uuid.
func NewCommand(cmdType string, args map[string]any) Command {
	if args == nil {
		args = map[string]any{}
	}
	return Command{
		Type: cmdType,
		UUID: uuid.NewString(),
		Args: args,
	}
}

// NewCreateCommand builds a create-type command with a fresh uuid and temp id.
func NewCreateCommand(cmdType string, args map[string]any) Command {
	cmd := NewCommand(cmdType, args)
	cmd.TempID = uuid.NewString()
	return cmd
}

// CommandStatus is the per-command outcome reported by the service: either
// the ok marker or a structured error. Exactly one branch is set.
type CommandStatus struct {
	OK  bool
	Err *CommandError
}

// SyncResponse is the parsed result of a sync call.
type SyncResponse struct {
	SyncToken     string
	FullSync      bool
	TempIDMapping map[string]string
	Status        map[string]CommandStatus

	// Resource arrays, populated by ReadResources.
	Goals         []Goal
	Reminders     []Reminder
	Filters       []Filter
	Notifications []Notification
}

// ResolveID returns the server-assigned id for a temp id supplied with a
// create command. Some command types omit the mapping entry and keep the
// client-chosen id verbatim; this fallback reflects observed service
// behavior rather than a documented guarantee.
func (r *SyncResponse) ResolveID(tempID string) string {
	if id, ok := r.TempIDMapping[tempID]; ok {
		return id
	}
	return tempID
}

// syncWire is the raw shape of the sync endpoint's response.
type syncWire struct {
	Error         string                     `json:"error,omitempty"`
	ErrorCode     int                        `json:"error_code,omitempty"`
	SyncToken     string                     `json:"sync_token"`
	FullSync      bool                       `json:"full_sync"`
	SyncStatus    map[string]json.RawMessage `json:"sync_status"`
	TempIDMapping map[string]string          `json:"temp_id_mapping"`

	Goals             []Goal         `json:"goals"`
	Reminders         []Reminder     `json:"reminders"`
	Filters           []Filter       `json:"filters"`
	LiveNotifications []Notification `json:"live_notifications"`
}

// ExecuteCommands submits the commands as one batched request and returns
// the parsed response. The batch must be non-empty and each command's uuid
// unique within it.
//
// Any single command error fails the whole call: callers here never submit
// batches where partial success is acceptable. The uuids make retries safe
// at the protocol level, but no retry is attempted by this client.
func (c *Client) ExecuteCommands(ctx context.Context, commands ...Command) (*SyncResponse, error) {
	if len(commands) == 0 {
		return nil, fmt.Errorf("sync batch must contain at least one command")
	}
	seen := make(map[string]struct{}, len(commands))
	for _, cmd := range commands {
		if cmd.UUID == "" {
			return nil, fmt.Errorf("sync command %q has no uuid", cmd.Type)
		}
		if _, dup := seen[cmd.UUID]; dup {
			return nil, fmt.Errorf("duplicate command uuid %s in batch", cmd.UUID)
		}
		seen[cmd.UUID] = struct{}{}
	}

	payload, err := json.Marshal(commands)
	if err != nil {
		return nil, fmt.Errorf("failed to encode commands: %w", err)
	}

	form := url.Values{}
	form.Set("commands", string(payload))

	wire, err := c.postSync(ctx, form)
	if err != nil {
		return nil, err
	}

	resp := fromWire(wire)
	for _, cmd := range commands {
		raw, ok := wire.SyncStatus[cmd.UUID]
		if !ok {
			// The service occasionally omits entries for accepted
			// commands; treat absence as success.
			resp.Status[cmd.UUID] = CommandStatus{OK: true}
			continue
		}
		status, cmdErr := parseCommandStatus(cmd, raw)
		resp.Status[cmd.UUID] = status
		if cmdErr != nil {
			c.logger.Debug("sync command rejected",
				logging.Command(cmd.Type), logging.UUID(cmd.UUID), logging.Err(cmdErr))
			return nil, cmdErr
		}
	}

	c.logger.Debug("sync batch applied", slog.Int("commands", len(commands)))
	return resp, nil
}

// ReadResources fetches the given resource types ("goals", "reminders",
// "filters", "live_notifications") starting from syncToken. Use "*" for a
// full sync.
func (c *Client) ReadResources(ctx context.Context, syncToken string, resourceTypes []string) (*SyncResponse, error) {
	if syncToken == "" {
		syncToken = "*"
	}
	types, err := json.Marshal(resourceTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resource types: %w", err)
	}

	form := url.Values{}
	form.Set("sync_token", syncToken)
	form.Set("resource_types", string(types))

	wire, err := c.postSync(ctx, form)
	if err != nil {
		return nil, err
	}
	return fromWire(wire), nil
}

func (c *Client) postSync(ctx context.Context, form url.Values) (*syncWire, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+syncPath,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create sync request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sync request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}

	var wire syncWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode sync response: %w", err)
	}

	// A top-level error means the whole batch was rejected before any
	// per-command processing.
	if wire.Error != "" {
		return nil, &BatchError{Message: wire.Error, Code: wire.ErrorCode}
	}
	return &wire, nil
}

func fromWire(wire *syncWire) *SyncResponse {
	resp := &SyncResponse{
		SyncToken:     wire.SyncToken,
		FullSync:      wire.FullSync,
		TempIDMapping: wire.TempIDMapping,
		Status:        make(map[string]CommandStatus),
		Goals:         wire.Goals,
		Reminders:     wire.Reminders,
		Filters:       wire.Filters,
		Notifications: wire.LiveNotifications,
	}
	if resp.TempIDMapping == nil {
		resp.TempIDMapping = map[string]string{}
	}
	return resp
}

// parseCommandStatus distinguishes the literal "ok" marker from a structured
// error object.
func parseCommandStatus(cmd Command, raw json.RawMessage) (CommandStatus, *CommandError) {
	var marker string
	if err := json.Unmarshal(raw, &marker); err == nil && marker == "ok" {
		return CommandStatus{OK: true}, nil
	}

	var wire struct {
		ErrorCode int    `json:"error_code"`
		Error     string `json:"error"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil || wire.Error == "" {
		// Neither "ok" nor a recognizable error object.
		cmdErr := &CommandError{
			UUID:    cmd.UUID,
			Type:    cmd.Type,
			Message: fmt.Sprintf("unrecognized sync status %q", string(raw)),
		}
		return CommandStatus{Err: cmdErr}, cmdErr
	}

	cmdErr := &CommandError{
		UUID:    cmd.UUID,
		Type:    cmd.Type,
		Code:    wire.ErrorCode,
		Message: wire.Error,
	}
	return CommandStatus{Err: cmdErr}, cmdErr
}
