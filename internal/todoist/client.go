package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://api.todoist.com/rest/v2"

// APIError is a non-2xx response from the remote task API. It carries the
// HTTP status and the raw body so callers can decide how to surface it.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("todoist API error (%d): %s", e.StatusCode, e.Body)
}

// Client wraps the remote task-tracking REST API. Calls are single-shot:
// failures propagate immediately to the caller, which owns any rollback of
// optimistic state. There is no retry, backoff, or timeout here.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the remote task API. An empty token is a
// configuration error, not something to default around.
func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("todoist API token is required")
	}
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		client:  &http.Client{},
	}, nil
}

// SetBaseURL overrides the API base URL. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// request issues a call and decodes the JSON response into out when out is
// non-nil. A 204 response is normalized to an empty success value.
func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("todoist API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ==================== Tasks ====================

// ListTasks returns active tasks matching the filter.
func (c *Client) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	q := url.Values{}
	if filter.ProjectID != "" {
		q.Set("project_id", filter.ProjectID)
	}
	if filter.SectionID != "" {
		q.Set("section_id", filter.SectionID)
	}
	if filter.Label != "" {
		q.Set("label", filter.Label)
	}
	if filter.Filter != "" {
		q.Set("filter", filter.Filter)
	}

	path := "/tasks"
	if query := q.Encode(); query != "" {
		path += "?" + query
	}

	var tasks []Task
	if err := c.request(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns a single task by ID.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	if err := c.request(ctx, http.MethodGet, "/tasks/"+taskID, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var task Task
	if err := c.request(ctx, http.MethodPost, "/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update to a task. The remote API uses POST
// for updates and echoes the updated task back.
func (c *Client) UpdateTask(ctx context.Context, taskID string, req UpdateTaskRequest) (*Task, error) {
	var task Task
	if err := c.request(ctx, http.MethodPost, "/tasks/"+taskID, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CloseTask completes a task.
func (c *Client) CloseTask(ctx context.Context, taskID string) error {
	return c.request(ctx, http.MethodPost, "/tasks/"+taskID+"/close", nil, nil)
}

// ReopenTask reopens a completed task.
func (c *Client) ReopenTask(ctx context.Context, taskID string) error {
	return c.request(ctx, http.MethodPost, "/tasks/"+taskID+"/reopen", nil, nil)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.request(ctx, http.MethodDelete, "/tasks/"+taskID, nil, nil)
}

// ==================== Projects ====================

// ListProjects returns all projects.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.request(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject returns a single project by ID.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	if err := c.request(ctx, http.MethodGet, "/projects/"+projectID, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	var project Project
	if err := c.request(ctx, http.MethodPost, "/projects", req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject applies a partial update to a project.
func (c *Client) UpdateProject(ctx context.Context, projectID string, req UpdateProjectRequest) (*Project, error) {
	var project Project
	if err := c.request(ctx, http.MethodPost, "/projects/"+projectID, req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	return c.request(ctx, http.MethodDelete, "/projects/"+projectID, nil, nil)
}

// ==================== Sections ====================

// ListSections returns sections, optionally scoped to one project.
func (c *Client) ListSections(ctx context.Context, projectID string) ([]Section, error) {
	path := "/sections"
	if projectID != "" {
		path += "?project_id=" + url.QueryEscape(projectID)
	}

	var sections []Section
	if err := c.request(ctx, http.MethodGet, path, nil, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// GetSection returns a single section by ID.
func (c *Client) GetSection(ctx context.Context, sectionID string) (*Section, error) {
	var section Section
	if err := c.request(ctx, http.MethodGet, "/sections/"+sectionID, nil, &section); err != nil {
		return nil, err
	}
	return &section, nil
}

// ==================== Labels ====================

// ListLabels returns all labels.
func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	var labels []Label
	if err := c.request(ctx, http.MethodGet, "/labels", nil, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// GetLabel returns a single label by ID.
func (c *Client) GetLabel(ctx context.Context, labelID string) (*Label, error) {
	var label Label
	if err := c.request(ctx, http.MethodGet, "/labels/"+labelID, nil, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// ==================== Comments ====================

// ListTaskComments returns all comments on a task.
func (c *Client) ListTaskComments(ctx context.Context, taskID string) ([]Comment, error) {
	var comments []Comment
	path := "/comments?task_id=" + url.QueryEscape(taskID)
	if err := c.request(ctx, http.MethodGet, path, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// ListProjectComments returns all comments on a project.
func (c *Client) ListProjectComments(ctx context.Context, projectID string) ([]Comment, error) {
	var comments []Comment
	path := "/comments?project_id=" + url.QueryEscape(projectID)
	if err := c.request(ctx, http.MethodGet, path, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment creates a comment on a task or project.
func (c *Client) CreateComment(ctx context.Context, req CreateCommentRequest) (*Comment, error) {
	var comment Comment
	if err := c.request(ctx, http.MethodPost, "/comments", req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
