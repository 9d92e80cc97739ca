package domain

// ChangeType represents the type of workspace change.
type ChangeType int

const (
	// ChangeCreated indicates a new workspace snapshot.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified workspace snapshot.
	ChangeUpdated

	// ChangeDeleted indicates a removed workspace.
	ChangeDeleted
)

// String returns the string representation.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// WorkspaceChange is emitted by a change watcher when the backing data of a
// workspace changed and its slice of the index needs rebuilding.
type WorkspaceChange struct {
	// WorkspaceID identifies the affected workspace.
	WorkspaceID string

	// Type is the kind of change.
	Type ChangeType
}
