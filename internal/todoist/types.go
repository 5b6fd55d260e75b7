package todoist

// Priority levels as the remote API encodes them: 1 = normal, 4 = highest.
const (
	PriorityNormal  = 1
	PriorityHigh    = 2
	PriorityHigher  = 3
	PriorityHighest = 4
)

// Task is an active task as returned by the remote API.
type Task struct {
	ID           string   `json:"id"`
	ProjectID    string   `json:"project_id"`
	SectionID    string   `json:"section_id,omitempty"`
	Content      string   `json:"content"`
	Description  string   `json:"description"`
	IsCompleted  bool     `json:"is_completed"`
	Labels       []string `json:"labels"`
	ParentID     string   `json:"parent_id,omitempty"`
	Order        int      `json:"order"`
	Priority     int      `json:"priority"`
	Due          *Due     `json:"due,omitempty"`
	URL          string   `json:"url"`
	CommentCount int      `json:"comment_count"`
	CreatedAt    string   `json:"created_at"`
	CreatorID    string   `json:"creator_id"`
	AssigneeID   string   `json:"assignee_id,omitempty"`
}

// Due describes a task's due descriptor.
type Due struct {
	Date      string `json:"date"`
	String    string `json:"string"`
	Datetime  string `json:"datetime,omitempty"`
	Timezone  string `json:"timezone,omitempty"`
	Recurring bool   `json:"is_recurring"`
}

// Project is a remote project. Single-level hierarchy via ParentID.
type Project struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Color          string `json:"color"`
	ParentID       string `json:"parent_id,omitempty"`
	Order          int    `json:"order"`
	CommentCount   int    `json:"comment_count"`
	IsShared       bool   `json:"is_shared"`
	IsFavorite     bool   `json:"is_favorite"`
	IsInboxProject bool   `json:"is_inbox_project"`
	ViewStyle      string `json:"view_style"`
	URL            string `json:"url"`
}

// Section is a section within a project.
type Section struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Order     int    `json:"order"`
	Name      string `json:"name"`
}

// Label is a remote label. Category labels (@putting-off, @strategy,
// @timely) are ordinary labels from the remote system's perspective.
type Label struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Order      int    `json:"order"`
	IsFavorite bool   `json:"is_favorite"`
}

// Comment is a comment on a task or project.
type Comment struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Content   string `json:"content"`
	PostedAt  string `json:"posted_at"`
}

// TaskFilter narrows a task listing. Zero fields are omitted from the query.
type TaskFilter struct {
	ProjectID string
	SectionID string
	Label     string
	Filter    string
}

// CreateTaskRequest holds the writable fields for task creation.
type CreateTaskRequest struct {
	Content     string   `json:"content"`
	Description string   `json:"description,omitempty"`
	ProjectID   string   `json:"project_id,omitempty"`
	SectionID   string   `json:"section_id,omitempty"`
	ParentID    string   `json:"parent_id,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Priority    int      `json:"priority,omitempty"`
	DueString   string   `json:"due_string,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	DueDatetime string   `json:"due_datetime,omitempty"`
}

// UpdateTaskRequest holds the writable fields for a partial task update.
// Labels uses a pointer so an explicit empty list can clear all labels.
type UpdateTaskRequest struct {
	Content     string    `json:"content,omitempty"`
	Description string    `json:"description,omitempty"`
	Labels      *[]string `json:"labels,omitempty"`
	Priority    int       `json:"priority,omitempty"`
	DueString   string    `json:"due_string,omitempty"`
	DueDate     string    `json:"due_date,omitempty"`
	DueDatetime string    `json:"due_datetime,omitempty"`
}

// CreateProjectRequest holds the writable fields for project creation.
type CreateProjectRequest struct {
	Name       string `json:"name"`
	ParentID   string `json:"parent_id,omitempty"`
	Color      string `json:"color,omitempty"`
	IsFavorite bool   `json:"is_favorite,omitempty"`
	ViewStyle  string `json:"view_style,omitempty"`
}

// UpdateProjectRequest holds the writable fields for a project update.
type UpdateProjectRequest struct {
	Name       string `json:"name,omitempty"`
	Color      string `json:"color,omitempty"`
	IsFavorite bool   `json:"is_favorite,omitempty"`
	ViewStyle  string `json:"view_style,omitempty"`
}

// CreateCommentRequest holds the fields for comment creation. Exactly one
// of TaskID or ProjectID should be set.
type CreateCommentRequest struct {
	TaskID    string `json:"task_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Content   string `json:"content"`
}
