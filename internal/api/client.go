package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/logging"
)

// Client talks to the Taskdeck service with a bearer token. Each call is
// independent and stateless apart from the token; a Client is safe for
// concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the service at baseURL authenticated with
// the given bearer token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs a REST request and decodes the JSON response into out (which
// may be nil for calls without a body of interest).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var wire struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&wire); err == nil {
			apiErr.Message = wire.Error
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	c.logger.Debug("api request",
		logging.Operation(method+" "+path), logging.Status(logging.StatusSuccess))
	return nil
}

// --- Tasks ---

// ListTasks returns all active tasks matching the filter, following the
// pagination cursor until exhausted.
func (c *Client) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	var tasks []Task
	cursor := ""
	for {
		query := url.Values{}
		if filter.ProjectID != "" {
			query.Set("project_id", filter.ProjectID)
		}
		if filter.Label != "" {
			query.Set("label", filter.Label)
		}
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		var page struct {
			Results    []Task `json:"results"`
			NextCursor string `json:"next_cursor"`
		}
		if err := c.do(ctx, http.MethodGet, "/api/v1/tasks", query, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}
		tasks = append(tasks, page.Results...)
		if page.NextCursor == "" {
			return tasks, nil
		}
		cursor = page.NextCursor
	}
}

// GetTask retrieves a single task by id.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks/"+taskID, nil, nil, &task); err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, input TaskInput) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks", nil, input, &task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// UpdateTask updates fields of an existing task. Zero-valued input fields
// are left unchanged by the service.
func (c *Client) UpdateTask(ctx context.Context, taskID string, input TaskInput) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks/"+taskID, nil, input, &task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return &task, nil
}

// CloseTask marks a task as completed.
func (c *Client) CloseTask(ctx context.Context, taskID string) error {
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks/"+taskID+"/close", nil, nil, nil); err != nil {
		return fmt.Errorf("failed to close task: %w", err)
	}
	return nil
}

// ReopenTask reverts a completed task to active.
func (c *Client) ReopenTask(ctx context.Context, taskID string) error {
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks/"+taskID+"/reopen", nil, nil, nil); err != nil {
		return fmt.Errorf("failed to reopen task: %w", err)
	}
	return nil
}

// DeleteTask permanently deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/tasks/"+taskID, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// --- Projects ---

// ListProjects returns all projects, following the pagination cursor.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	cursor := ""
	for {
		query := url.Values{}
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		var page struct {
			Results    []Project `json:"results"`
			NextCursor string    `json:"next_cursor"`
		}
		if err := c.do(ctx, http.MethodGet, "/api/v1/projects", query, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}
		projects = append(projects, page.Results...)
		if page.NextCursor == "" {
			return projects, nil
		}
		cursor = page.NextCursor
	}
}

// GetProject retrieves a single project by id.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodGet, "/api/v1/projects/"+projectID, nil, nil, &project); err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, input ProjectInput) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodPost, "/api/v1/projects", nil, input, &project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

// DeleteProject permanently deletes a project and its tasks.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/projects/"+projectID, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// --- Labels ---

// ListLabels returns all labels.
func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	var labels []Label
	cursor := ""
	for {
		query := url.Values{}
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		var page struct {
			Results    []Label `json:"results"`
			NextCursor string  `json:"next_cursor"`
		}
		if err := c.do(ctx, http.MethodGet, "/api/v1/labels", query, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list labels: %w", err)
		}
		labels = append(labels, page.Results...)
		if page.NextCursor == "" {
			return labels, nil
		}
		cursor = page.NextCursor
	}
}

// CreateLabel creates a new label.
func (c *Client) CreateLabel(ctx context.Context, name, color string) (*Label, error) {
	input := Label{Name: name, Color: color}
	var label Label
	if err := c.do(ctx, http.MethodPost, "/api/v1/labels", nil, input, &label); err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}
	return &label, nil
}

// DeleteLabel deletes a label. Tasks keep working; the label is removed from
// them server-side.
func (c *Client) DeleteLabel(ctx context.Context, labelID string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/labels/"+labelID, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}

// --- Sections ---

// ListSections returns the sections of a project.
func (c *Client) ListSections(ctx context.Context, projectID string) ([]Section, error) {
	query := url.Values{}
	query.Set("project_id", projectID)

	var page struct {
		Results    []Section `json:"results"`
		NextCursor string    `json:"next_cursor"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/sections", query, nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return page.Results, nil
}

// CreateSection creates a section within a project.
func (c *Client) CreateSection(ctx context.Context, projectID, name string) (*Section, error) {
	input := Section{ProjectID: projectID, Name: name}
	var section Section
	if err := c.do(ctx, http.MethodPost, "/api/v1/sections", nil, input, &section); err != nil {
		return nil, fmt.Errorf("failed to create section: %w", err)
	}
	return &section, nil
}

// DeleteSection deletes a section; its tasks move to the project root.
func (c *Client) DeleteSection(ctx context.Context, sectionID string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/v1/sections/"+sectionID, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}
	return nil
}
