package api

// Task is a single todo item.
type Task struct {
	ID          string   `json:"id"`
	Content     string   `json:"content"`
	Description string   `json:"description,omitempty"`
	ProjectID   string   `json:"project_id,omitempty"`
	SectionID   string   `json:"section_id,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Priority    int      `json:"priority,omitempty"` // 1 (normal) to 4 (urgent)
	DueDate     string   `json:"due_date,omitempty"`
	Completed   bool     `json:"completed"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// TaskInput is the payload for creating or updating a task.
type TaskInput struct {
	Content     string   `json:"content,omitempty"`
	Description string   `json:"description,omitempty"`
	ProjectID   string   `json:"project_id,omitempty"`
	SectionID   string   `json:"section_id,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Priority    int      `json:"priority,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
}

// TaskFilter narrows task listings. Zero values mean "no restriction".
type TaskFilter struct {
	ProjectID string
	Label     string
}

// Project groups tasks.
type Project struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	ParentID   string `json:"parent_id,omitempty"`
	IsFavorite bool   `json:"is_favorite,omitempty"`
}

// ProjectInput is the payload for creating a project.
type ProjectInput struct {
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	ParentID string `json:"parent_id,omitempty"`
}

// Label is a user-defined tag applied to tasks.
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Section subdivides a project.
type Section struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Order     int    `json:"order,omitempty"`
}

// Goal is a longer-term objective tracked by the service. Goals are managed
// through sync commands, not REST.
type Goal struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TargetDate  string `json:"target_date,omitempty"`
	Progress    int    `json:"progress,omitempty"` // percent complete
}

// Reminder fires a notification for a task at a given time.
type Reminder struct {
	ID           string `json:"id"`
	TaskID       string `json:"task_id"`
	Due          string `json:"due,omitempty"`
	MinuteOffset int    `json:"minute_offset,omitempty"` // relative reminders
}

// Filter is a saved search query.
type Filter struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Query string `json:"query"`
	Color string `json:"color,omitempty"`
}

// Notification is a service-generated event shown to the user.
type Notification struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	IsRead    bool   `json:"is_read"`
}
