package services

import (
	"strings"

	"github.com/custodia-labs/taskdex/internal/core/domain"
)

// taskDocument maps a task to its index document.
func taskDocument(ws domain.Workspace, t *domain.Task) domain.SearchResult {
	parts := make([]string, 0, 1+len(t.Subtasks)+len(t.Comments))
	if t.Description != "" {
		parts = append(parts, t.Description)
	}
	for _, st := range t.Subtasks {
		if st.Title != "" {
			parts = append(parts, st.Title)
		}
	}
	for _, c := range t.Comments {
		if c.Body != "" {
			parts = append(parts, c.Body)
		}
	}

	return domain.SearchResult{
		ID:            domain.ResultTypeTask.DocumentID(t.ID),
		Type:          domain.ResultTypeTask,
		Title:         t.Title,
		Description:   t.Description,
		Content:       strings.Join(parts, " "),
		WorkspaceID:   ws.ID,
		WorkspaceName: ws.Name,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		Metadata: &domain.TaskMetadata{
			Status:         t.Status,
			Priority:       t.Priority,
			AssignedTo:     t.AssignedTo,
			CreatedBy:      t.CreatedBy,
			Tags:           t.Tags,
			DueDate:        t.DueDate,
			HasAttachments: len(t.Attachments) > 0,
			HasComments:    len(t.Comments) > 0,
			SubtaskCount:   len(t.Subtasks),
		},
	}
}

// pageDocument maps a page to its index document.
func pageDocument(ws domain.Workspace, p *domain.Page) domain.SearchResult {
	return domain.SearchResult{
		ID:            domain.ResultTypePage.DocumentID(p.ID),
		Type:          domain.ResultTypePage,
		Title:         p.Title,
		Content:       p.Body,
		WorkspaceID:   ws.ID,
		WorkspaceName: ws.Name,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Metadata: &domain.PageMetadata{
			PageID:    p.ID,
			CreatedBy: p.CreatedBy,
			Tags:      p.Tags,
		},
	}
}

// memberDocument maps a member to its index document.
func memberDocument(ws domain.Workspace, m *domain.Member) domain.SearchResult {
	return domain.SearchResult{
		ID:            domain.ResultTypeMember.DocumentID(m.ID),
		Type:          domain.ResultTypeMember,
		Title:         m.Name,
		Description:   m.Email,
		WorkspaceID:   ws.ID,
		WorkspaceName: ws.Name,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		Metadata: &domain.MemberMetadata{
			Role:     m.Role,
			Email:    m.Email,
			IsActive: m.IsActive,
		},
	}
}
