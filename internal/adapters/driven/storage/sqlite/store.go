package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/taskdex/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driven"
)

// DatabaseFile is the file name of the database inside the data directory.
const DatabaseFile = "taskdex.db"

// Store is a SQLite-backed workspace store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.taskdex/data/taskdex.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".taskdex", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets readers proceed while an import is writing.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// WorkspaceStore returns a WorkspaceStore interface backed by this store.
func (s *Store) WorkspaceStore() driven.WorkspaceStore {
	return &workspaceStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Workspace Store ====================

// workspaceStore implements driven.WorkspaceStore.
type workspaceStore struct {
	store *Store
}

var _ driven.WorkspaceStore = (*workspaceStore)(nil)

// ListWorkspaces returns every workspace ordered by ID.
func (s *workspaceStore) ListWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT id, name FROM workspaces ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying workspaces: %w", err)
	}
	defer rows.Close()

	workspaces := []domain.Workspace{}
	for rows.Next() {
		var ws domain.Workspace
		if err := rows.Scan(&ws.ID, &ws.Name); err != nil {
			return nil, fmt.Errorf("scanning workspace: %w", err)
		}
		workspaces = append(workspaces, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workspaces: %w", err)
	}
	return workspaces, nil
}

// GetWorkspace retrieves a workspace by ID.
func (s *workspaceStore) GetWorkspace(ctx context.Context, id string) (*domain.Workspace, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT id, name FROM workspaces WHERE id = ?", id)

	var ws domain.Workspace
	if err := row.Scan(&ws.ID, &ws.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("scanning workspace: %w", err)
	}
	return &ws, nil
}

// ListTasks returns the tasks of a workspace in snapshot order.
func (s *workspaceStore) ListTasks(ctx context.Context, workspaceID string) ([]domain.Task, error) {
	if err := s.requireWorkspace(ctx, workspaceID); err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, description, status, priority, assigned_to, created_by,
			due_date, tags, subtasks, comments, attachments, created_at, updated_at
		FROM tasks WHERE workspace_id = ? ORDER BY position
	`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var task domain.Task
		var dueDate, createdAt, updatedAt sql.NullTime
		var tags, subtasks, comments, attachments string
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.Status,
			&task.Priority, &task.AssignedTo, &task.CreatedBy, &dueDate,
			&tags, &subtasks, &comments, &attachments, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		if err := unmarshalColumns(
			column{"tags", tags, &task.Tags},
			column{"subtasks", subtasks, &task.Subtasks},
			column{"comments", comments, &task.Comments},
			column{"attachments", attachments, &task.Attachments},
		); err != nil {
			return nil, fmt.Errorf("task %s: %w", task.ID, err)
		}

		if dueDate.Valid {
			due := dueDate.Time
			task.DueDate = &due
		}
		task.CreatedAt = validTime(createdAt)
		task.UpdatedAt = validTime(updatedAt)
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// ListPages returns the pages of a workspace in snapshot order.
func (s *workspaceStore) ListPages(ctx context.Context, workspaceID string) ([]domain.Page, error) {
	if err := s.requireWorkspace(ctx, workspaceID); err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, body, body_format, created_by, tags, created_at, updated_at
		FROM pages WHERE workspace_id = ? ORDER BY position
	`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	pages := []domain.Page{}
	for rows.Next() {
		var page domain.Page
		var format, tags string
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&page.ID, &page.Title, &page.Body, &format,
			&page.CreatedBy, &tags, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		if err := unmarshalColumns(column{"tags", tags, &page.Tags}); err != nil {
			return nil, fmt.Errorf("page %s: %w", page.ID, err)
		}
		page.BodyFormat = domain.ContentFormat(format)
		page.CreatedAt = validTime(createdAt)
		page.UpdatedAt = validTime(updatedAt)
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}
	return pages, nil
}

// ListMembers returns the members of a workspace in snapshot order.
func (s *workspaceStore) ListMembers(ctx context.Context, workspaceID string) ([]domain.Member, error) {
	if err := s.requireWorkspace(ctx, workspaceID); err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, email, role, is_active, created_at, updated_at
		FROM members WHERE workspace_id = ? ORDER BY position
	`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("querying members: %w", err)
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		var member domain.Member
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&member.ID, &member.Name, &member.Email, &member.Role,
			&member.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		member.CreatedAt = validTime(createdAt)
		member.UpdatedAt = validTime(updatedAt)
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating members: %w", err)
	}
	return members, nil
}

// SaveSnapshot replaces a workspace and all its collections in one transaction.
func (s *workspaceStore) SaveSnapshot(ctx context.Context, snapshot *domain.WorkspaceSnapshot) error {
	if snapshot == nil || snapshot.Workspace.ID == "" {
		return fmt.Errorf("%w: snapshot requires a workspace id", domain.ErrInvalidInput)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	ws := snapshot.Workspace
	if err := checkOwnership(ctx, tx, snapshot); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO workspaces (id, name, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at
	`, ws.ID, ws.Name, time.Now().UTC()); err != nil {
		return fmt.Errorf("saving workspace: %w", err)
	}

	for _, table := range []string{"tasks", "pages", "members"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE workspace_id = ?", ws.ID); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertTasks(ctx, tx, ws.ID, snapshot.Tasks); err != nil {
		return err
	}
	if err := insertPages(ctx, tx, ws.ID, snapshot.Pages); err != nil {
		return err
	}
	if err := insertMembers(ctx, tx, ws.ID, snapshot.Members); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// DeleteWorkspace removes a workspace and, through the foreign keys, its collections.
func (s *workspaceStore) DeleteWorkspace(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM workspaces WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting workspace: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting workspace: %w", err)
	}
	if n == 0 {
		return domain.ErrWorkspaceNotFound
	}
	return nil
}

// requireWorkspace returns domain.ErrWorkspaceNotFound if id is unknown.
func (s *workspaceStore) requireWorkspace(ctx context.Context, id string) error {
	var exists int
	err := s.store.db.QueryRowContext(ctx, "SELECT 1 FROM workspaces WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrWorkspaceNotFound
	}
	if err != nil {
		return fmt.Errorf("checking workspace: %w", err)
	}
	return nil
}

// checkOwnership rejects records already stored under another workspace.
func checkOwnership(ctx context.Context, tx *sql.Tx, snapshot *domain.WorkspaceSnapshot) error {
	taskIDs := make([]string, len(snapshot.Tasks))
	for i := range snapshot.Tasks {
		taskIDs[i] = snapshot.Tasks[i].ID
	}
	pageIDs := make([]string, len(snapshot.Pages))
	for i := range snapshot.Pages {
		pageIDs[i] = snapshot.Pages[i].ID
	}
	memberIDs := make([]string, len(snapshot.Members))
	for i := range snapshot.Members {
		memberIDs[i] = snapshot.Members[i].ID
	}

	wsID := snapshot.Workspace.ID
	if err := checkTableOwnership(ctx, tx, "tasks", domain.ResultTypeTask, wsID, taskIDs); err != nil {
		return err
	}
	if err := checkTableOwnership(ctx, tx, "pages", domain.ResultTypePage, wsID, pageIDs); err != nil {
		return err
	}
	return checkTableOwnership(ctx, tx, "members", domain.ResultTypeMember, wsID, memberIDs)
}

func checkTableOwnership(ctx context.Context, tx *sql.Tx, table string, kind domain.ResultType, workspaceID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, "SELECT workspace_id FROM "+table+" WHERE id = ? AND workspace_id <> ?")
	if err != nil {
		return fmt.Errorf("preparing %s ownership check: %w", table, err)
	}
	defer stmt.Close()

	for _, id := range ids {
		var owner string
		err := stmt.QueryRowContext(ctx, id, workspaceID).Scan(&owner)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			continue
		case err != nil:
			return fmt.Errorf("checking %s %s: %w", kind, id, err)
		}
		return fmt.Errorf("%w: %s already belongs to workspace %s",
			domain.ErrInvalidInput, kind.DocumentID(id), owner)
	}
	return nil
}

func insertTasks(ctx context.Context, tx *sql.Tx, workspaceID string, tasks []domain.Task) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (workspace_id, id, position, title, description, status, priority,
			assigned_to, created_by, due_date, tags, subtasks, comments, attachments,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing task insert: %w", err)
	}
	defer stmt.Close()

	for i := range tasks {
		task := &tasks[i]
		encoded, err := marshalColumns(task.Tags, task.Subtasks, task.Comments, task.Attachments)
		if err != nil {
			return fmt.Errorf("task %s: %w", task.ID, err)
		}
		var due sql.NullTime
		if task.DueDate != nil {
			due = sql.NullTime{Time: task.DueDate.UTC(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, workspaceID, task.ID, i, task.Title, task.Description,
			task.Status, task.Priority, task.AssignedTo, task.CreatedBy, due,
			encoded[0], encoded[1], encoded[2], encoded[3],
			nullTime(task.CreatedAt), nullTime(task.UpdatedAt)); err != nil {
			return fmt.Errorf("saving task %s: %w", task.ID, err)
		}
	}
	return nil
}

func insertPages(ctx context.Context, tx *sql.Tx, workspaceID string, pages []domain.Page) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pages (workspace_id, id, position, title, body, body_format, created_by,
			tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing page insert: %w", err)
	}
	defer stmt.Close()

	for i := range pages {
		page := &pages[i]
		encoded, err := marshalColumns(page.Tags)
		if err != nil {
			return fmt.Errorf("page %s: %w", page.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, workspaceID, page.ID, i, page.Title, page.Body,
			string(page.BodyFormat), page.CreatedBy, encoded[0],
			nullTime(page.CreatedAt), nullTime(page.UpdatedAt)); err != nil {
			return fmt.Errorf("saving page %s: %w", page.ID, err)
		}
	}
	return nil
}

func insertMembers(ctx context.Context, tx *sql.Tx, workspaceID string, members []domain.Member) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO members (workspace_id, id, position, name, email, role, is_active,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing member insert: %w", err)
	}
	defer stmt.Close()

	for i := range members {
		m := &members[i]
		if _, err := stmt.ExecContext(ctx, workspaceID, m.ID, i, m.Name, m.Email, m.Role,
			m.IsActive, nullTime(m.CreatedAt), nullTime(m.UpdatedAt)); err != nil {
			return fmt.Errorf("saving member %s: %w", m.ID, err)
		}
	}
	return nil
}

// column pairs a JSON-encoded column value with its destination.
type column struct {
	name string
	raw  string
	dest any
}

func unmarshalColumns(cols ...column) error {
	for _, c := range cols {
		if c.raw == "" || c.raw == "null" {
			continue
		}
		if err := json.Unmarshal([]byte(c.raw), c.dest); err != nil {
			return fmt.Errorf("unmarshaling %s: %w", c.name, err)
		}
	}
	return nil
}

func marshalColumns(values ...any) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshalling column %d: %w", i, err)
		}
		out[i] = string(data)
	}
	return out, nil
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func validTime(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}
