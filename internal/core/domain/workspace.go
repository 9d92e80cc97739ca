package domain

import (
	"fmt"
	"time"
)

// Workspace is the tenant boundary every indexed record belongs to.
type Workspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Task is a workspace task as returned by the backend.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      string       `json:"status,omitempty"`
	Priority    string       `json:"priority,omitempty"`
	AssignedTo  string       `json:"assignedTo,omitempty"`
	CreatedBy   string       `json:"createdBy,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Subtasks    []Subtask    `json:"subtasks,omitempty"`
	Comments    []Comment    `json:"comments,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Subtask is a checklist item nested under a task.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Comment is a discussion entry on a task.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// Attachment describes a file uploaded to a task. Only the descriptor is
// known here; the bytes live in the backend's object store.
type Attachment struct {
	ID         string `json:"id"`
	FileName   string `json:"fileName"`
	MIMEType   string `json:"mimeType,omitempty"`
	Size       int64  `json:"size,omitempty"`
	UploadedBy string `json:"uploadedBy,omitempty"`
}

// ContentFormat identifies how a page body is encoded.
type ContentFormat string

// Supported page body formats.
const (
	ContentFormatMarkdown ContentFormat = "markdown"
	ContentFormatHTML     ContentFormat = "html"
	ContentFormatText     ContentFormat = "text"
)

// IsValid returns true if the content format is recognised.
func (f ContentFormat) IsValid() bool {
	switch f {
	case ContentFormatMarkdown, ContentFormatHTML, ContentFormatText:
		return true
	default:
		return false
	}
}

// Page is a wiki-style document in a workspace.
type Page struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Body       string        `json:"content,omitempty"`
	BodyFormat ContentFormat `json:"contentFormat,omitempty"`
	CreatedBy  string        `json:"createdBy,omitempty"`
	Tags       []string      `json:"tags,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// Member is a user belonging to a workspace.
type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkspaceSnapshot is one fully-materialised fetch of a workspace's
// searchable collections.
type WorkspaceSnapshot struct {
	Workspace Workspace `json:"workspace"`
	Tasks     []Task    `json:"tasks"`
	Pages     []Page    `json:"pages"`
	Members   []Member  `json:"members"`
}

// Validate checks the snapshot carries the fields the indexer relies on.
func (s *WorkspaceSnapshot) Validate() error {
	if s.Workspace.ID == "" {
		return fmt.Errorf("%w: workspace id is required", ErrInvalidInput)
	}
	for i := range s.Tasks {
		if s.Tasks[i].ID == "" {
			return fmt.Errorf("%w: task %d has no id", ErrInvalidInput, i)
		}
	}
	for i := range s.Pages {
		if s.Pages[i].ID == "" {
			return fmt.Errorf("%w: page %d has no id", ErrInvalidInput, i)
		}
		if s.Pages[i].BodyFormat != "" && !s.Pages[i].BodyFormat.IsValid() {
			return fmt.Errorf("%w: page %s has format %q", ErrUnsupportedFormat, s.Pages[i].ID, s.Pages[i].BodyFormat)
		}
	}
	for i := range s.Members {
		if s.Members[i].ID == "" {
			return fmt.Errorf("%w: member %d has no id", ErrInvalidInput, i)
		}
	}
	seen := make(map[string]struct{})
	for _, id := range s.DocumentIDs() {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate record %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// DocumentIDs returns the index id of every record in the snapshot, tasks
// first, then pages, then members. Index ids are global, so no two
// workspaces may share one.
func (s *WorkspaceSnapshot) DocumentIDs() []string {
	ids := make([]string, 0, len(s.Tasks)+len(s.Pages)+len(s.Members))
	for i := range s.Tasks {
		ids = append(ids, ResultTypeTask.DocumentID(s.Tasks[i].ID))
	}
	for i := range s.Pages {
		ids = append(ids, ResultTypePage.DocumentID(s.Pages[i].ID))
	}
	for i := range s.Members {
		ids = append(ids, ResultTypeMember.DocumentID(s.Members[i].ID))
	}
	return ids
}
