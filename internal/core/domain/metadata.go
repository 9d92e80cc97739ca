package domain

import "time"

// Metadata carries the type-specific fields of an indexed document.
// Each result type has its own variant; filters and facets read them
// through Attributes so they never depend on a concrete variant.
type Metadata interface {
	// Kind returns the result type this metadata variant belongs to.
	Kind() ResultType

	// Attributes projects the variant onto the common filterable fields.
	Attributes() Attributes
}

// Attributes is the common projection of every metadata variant.
// Fields a variant does not carry are left at their zero value; nil
// pointers mean "unknown", which never matches a boolean filter.
type Attributes struct {
	Status         string
	Priority       string
	AssignedTo     string
	CreatedBy      string
	Tags           []string
	HasAttachments *bool
	HasComments    *bool
}

// AttributesOf returns the attributes of m, tolerating a nil variant.
func AttributesOf(m Metadata) Attributes {
	if m == nil {
		return Attributes{}
	}
	return m.Attributes()
}

// TaskMetadata holds task-specific fields.
type TaskMetadata struct {
	Status         string     `json:"status,omitempty"`
	Priority       string     `json:"priority,omitempty"`
	AssignedTo     string     `json:"assignedTo,omitempty"`
	CreatedBy      string     `json:"createdBy,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	HasAttachments bool       `json:"hasAttachments"`
	HasComments    bool       `json:"hasComments"`
	SubtaskCount   int        `json:"subtaskCount"`
}

// Kind implements Metadata.
func (m *TaskMetadata) Kind() ResultType { return ResultTypeTask }

// Attributes implements Metadata.
func (m *TaskMetadata) Attributes() Attributes {
	hasAttachments := m.HasAttachments
	hasComments := m.HasComments
	return Attributes{
		Status:         m.Status,
		Priority:       m.Priority,
		AssignedTo:     m.AssignedTo,
		CreatedBy:      m.CreatedBy,
		Tags:           m.Tags,
		HasAttachments: &hasAttachments,
		HasComments:    &hasComments,
	}
}

// PageMetadata holds page-specific fields.
type PageMetadata struct {
	PageID    string   `json:"pageId"`
	CreatedBy string   `json:"createdBy,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Kind implements Metadata.
func (m *PageMetadata) Kind() ResultType { return ResultTypePage }

// Attributes implements Metadata.
func (m *PageMetadata) Attributes() Attributes {
	return Attributes{
		CreatedBy: m.CreatedBy,
		Tags:      m.Tags,
	}
}

// MemberMetadata holds member-specific fields.
type MemberMetadata struct {
	Role     string `json:"role,omitempty"`
	Email    string `json:"email,omitempty"`
	IsActive bool   `json:"isActive"`
}

// Kind implements Metadata.
func (m *MemberMetadata) Kind() ResultType { return ResultTypeMember }

// Attributes implements Metadata.
func (m *MemberMetadata) Attributes() Attributes {
	return Attributes{}
}

// CommentMetadata is reserved for comment results.
type CommentMetadata struct {
	TaskID   string `json:"taskId"`
	AuthorID string `json:"authorId,omitempty"`
}

// Kind implements Metadata.
func (m *CommentMetadata) Kind() ResultType { return ResultTypeComment }

// Attributes implements Metadata.
func (m *CommentMetadata) Attributes() Attributes {
	return Attributes{CreatedBy: m.AuthorID}
}

// AttachmentMetadata is reserved for attachment results.
type AttachmentMetadata struct {
	TaskID     string `json:"taskId"`
	FileName   string `json:"fileName"`
	MIMEType   string `json:"mimeType,omitempty"`
	UploadedBy string `json:"uploadedBy,omitempty"`
}

// Kind implements Metadata.
func (m *AttachmentMetadata) Kind() ResultType { return ResultTypeAttachment }

// Attributes implements Metadata.
func (m *AttachmentMetadata) Attributes() Attributes {
	return Attributes{CreatedBy: m.UploadedBy}
}
