// Package snapshot reads workspace export files into domain snapshots.
//
// An export is the JSON document the hosted backend returns for a
// workspace: the workspace itself plus its tasks, pages and members.
// Records without an id are given a random UUID so they can still be
// indexed and addressed.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/taskdex/internal/core/domain"
)

// Extension is the file extension of workspace export files.
const Extension = ".json"

// Decode reads one workspace export from r.
func Decode(r io.Reader) (*domain.WorkspaceSnapshot, error) {
	return decode(r, "snapshot", "")
}

// ReadFile reads a workspace export from path. A snapshot without a
// workspace id takes the file name (without extension) as its id.
func ReadFile(path string) (*domain.WorkspaceSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	return decode(f, filepath.Base(path), WorkspaceIDFromPath(path))
}

func decode(r io.Reader, name, fallbackID string) (*domain.WorkspaceSnapshot, error) {
	var snap domain.WorkspaceSnapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", domain.ErrInvalidInput, name, err)
	}
	if snap.Workspace.ID == "" {
		snap.Workspace.ID = fallbackID
	}

	assignIDs(&snap)

	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// WorkspaceIDFromPath derives a workspace id from an export file name.
func WorkspaceIDFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// IsExportFile reports whether path looks like a workspace export.
// Hidden files are ignored.
func IsExportFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), Extension)
}

func assignIDs(snap *domain.WorkspaceSnapshot) {
	for i := range snap.Tasks {
		task := &snap.Tasks[i]
		ensureID(&task.ID)
		for j := range task.Subtasks {
			ensureID(&task.Subtasks[j].ID)
		}
		for j := range task.Comments {
			ensureID(&task.Comments[j].ID)
		}
		for j := range task.Attachments {
			ensureID(&task.Attachments[j].ID)
		}
	}
	for i := range snap.Pages {
		ensureID(&snap.Pages[i].ID)
	}
	for i := range snap.Members {
		ensureID(&snap.Members[i].ID)
	}
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}
