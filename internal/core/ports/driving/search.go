package driving

import "github.com/custodia-labs/taskdex/internal/core/domain"

// SearchService is the in-memory workspace search index.
// Every operation is synchronous and performs no I/O.
type SearchService interface {
	// IndexTasks maps tasks into documents and adds them to the index.
	// Documents with an existing id are replaced.
	IndexTasks(ws domain.Workspace, tasks []domain.Task)

	// IndexPages maps pages into documents and adds them to the index.
	IndexPages(ws domain.Workspace, pages []domain.Page)

	// IndexMembers maps members into documents and adds them to the index.
	IndexMembers(ws domain.Workspace, members []domain.Member)

	// Search resolves, filters, scores, sorts and pages documents.
	Search(opts domain.SearchOptions) domain.SearchResponse

	// GetSuggestions returns indexed tokens completing the last query token.
	GetSuggestions(query string, limit int) []string

	// ClearWorkspace removes every document of one workspace.
	ClearWorkspace(workspaceID string)

	// ClearIndex empties the whole index.
	ClearIndex()

	// Stats summarises the index contents.
	Stats() domain.IndexStats
}
