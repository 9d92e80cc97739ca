package services

import (
	"strings"
	"sync"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driving"
	"github.com/custodia-labs/taskdex/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService is an in-memory inverted index over workspace documents.
//
// It keeps a forward index (id -> document), an inverted index
// (token -> ids) and, per document, the tokens it was posted under so a
// replaced document never leaves stale postings behind. Every id under a
// token is present in the forward index and its text contains the token.
type SearchService struct {
	mu         sync.RWMutex
	settings   domain.SearchSettings
	similarity similarityFunc

	documents map[string]domain.SearchResult
	postings  map[string]map[string]struct{}
	docTokens map[string][]string
	vocab     *tokenTrie
}

// NewSearchService creates an empty index. Invalid settings fall back to
// the defaults for the offending fields.
func NewSearchService(settings domain.SearchSettings) *SearchService {
	defaults := domain.DefaultSearchSettings()
	if settings.DefaultLimit <= 0 {
		settings.DefaultLimit = defaults.DefaultLimit
	}
	if settings.FuzzyThreshold < 0 || settings.FuzzyThreshold >= 1 {
		settings.FuzzyThreshold = defaults.FuzzyThreshold
	}
	if !settings.FuzzyStrategy.IsValid() {
		settings.FuzzyStrategy = defaults.FuzzyStrategy
	}
	if settings.SnippetLength <= 0 {
		settings.SnippetLength = defaults.SnippetLength
	}
	if settings.HighlightOpen == "" && settings.HighlightClose == "" {
		settings.HighlightOpen = defaults.HighlightOpen
		settings.HighlightClose = defaults.HighlightClose
	}

	return &SearchService{
		settings:   settings,
		similarity: similarityFor(settings.FuzzyStrategy),
		documents:  make(map[string]domain.SearchResult),
		postings:   make(map[string]map[string]struct{}),
		docTokens:  make(map[string][]string),
		vocab:      newTokenTrie(),
	}
}

// Settings returns the effective search settings.
func (s *SearchService) Settings() domain.SearchSettings {
	return s.settings
}

// IndexTasks maps tasks into documents and adds them to the index.
// Content aggregates the description, subtask titles and comment bodies.
func (s *SearchService) IndexTasks(ws domain.Workspace, tasks []domain.Task) {
	docs := make([]domain.SearchResult, 0, len(tasks))
	for i := range tasks {
		docs = append(docs, taskDocument(ws, &tasks[i]))
	}
	s.addDocuments(docs)
	logger.Debug("Indexed %d tasks for workspace %s", len(docs), ws.ID)
}

// IndexPages maps pages into documents and adds them to the index.
// The page body becomes the content verbatim; callers normalise it first.
func (s *SearchService) IndexPages(ws domain.Workspace, pages []domain.Page) {
	docs := make([]domain.SearchResult, 0, len(pages))
	for i := range pages {
		docs = append(docs, pageDocument(ws, &pages[i]))
	}
	s.addDocuments(docs)
	logger.Debug("Indexed %d pages for workspace %s", len(docs), ws.ID)
}

// IndexMembers maps members into documents and adds them to the index.
// The name is the title and the email the description.
func (s *SearchService) IndexMembers(ws domain.Workspace, members []domain.Member) {
	docs := make([]domain.SearchResult, 0, len(members))
	for i := range members {
		docs = append(docs, memberDocument(ws, &members[i]))
	}
	s.addDocuments(docs)
	logger.Debug("Indexed %d members for workspace %s", len(docs), ws.ID)
}

// ClearWorkspace removes every document belonging to workspaceID.
func (s *SearchService) ClearWorkspace(workspaceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, doc := range s.documents {
		if doc.WorkspaceID != workspaceID {
			continue
		}
		s.unpost(id)
		delete(s.documents, id)
		removed++
	}
	logger.Debug("Cleared %d documents of workspace %s", removed, workspaceID)
}

// ClearIndex empties the forward index, the inverted index and the vocabulary.
func (s *SearchService) ClearIndex() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents = make(map[string]domain.SearchResult)
	s.postings = make(map[string]map[string]struct{})
	s.docTokens = make(map[string][]string)
	s.vocab.reset()
	logger.Debug("Search index cleared")
}

// GetSuggestions returns up to limit indexed tokens that extend the last
// token of query. The token itself is never suggested.
func (s *SearchService) GetSuggestions(query string, limit int) []string {
	tokens := Tokenize(query)
	if len(tokens) == 0 || limit <= 0 {
		return []string{}
	}
	last := tokens[len(tokens)-1]

	s.mu.RLock()
	defer s.mu.RUnlock()

	suggestions := s.vocab.withPrefix(last, limit)
	if suggestions == nil {
		return []string{}
	}
	return suggestions
}

// Stats summarises the index contents.
func (s *SearchService) Stats() domain.IndexStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := domain.IndexStats{
		Documents:   len(s.documents),
		Tokens:      len(s.postings),
		ByType:      make(map[domain.ResultType]int),
		ByWorkspace: make(map[string]int),
	}
	for _, doc := range s.documents {
		stats.ByType[doc.Type]++
		stats.ByWorkspace[doc.WorkspaceID]++
	}
	return stats
}

// addDocuments inserts docs into the forward index and posts their tokens,
// replacing any previous version of the same id.
func (s *SearchService) addDocuments(docs []domain.SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range docs {
		doc := docs[i]
		tokens := uniqueTokens(Tokenize(searchableText(&doc)))

		if _, exists := s.documents[doc.ID]; exists {
			s.unpost(doc.ID)
		}
		s.documents[doc.ID] = doc
		s.docTokens[doc.ID] = tokens

		for _, token := range tokens {
			ids, ok := s.postings[token]
			if !ok {
				ids = make(map[string]struct{})
				s.postings[token] = ids
				s.vocab.insert(token)
			}
			ids[doc.ID] = struct{}{}
		}
	}
}

// unpost removes id from every posting set it was added to, dropping
// emptied tokens from the vocabulary. Caller must hold the write lock.
func (s *SearchService) unpost(id string) {
	for _, token := range s.docTokens[id] {
		ids, ok := s.postings[token]
		if !ok {
			continue
		}
		delete(ids, id)
		if len(ids) == 0 {
			delete(s.postings, token)
			s.vocab.remove(token)
		}
	}
	delete(s.docTokens, id)
}

// searchableText is the text a document is tokenized from.
func searchableText(doc *domain.SearchResult) string {
	parts := []string{doc.Title, doc.Description, doc.Content}
	parts = append(parts, domain.AttributesOf(doc.Metadata).Tags...)
	return strings.Join(parts, " ")
}
