package services

import (
	"cmp"
	"slices"
	"strings"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/logger"
)

// Score bonuses for a literal, case-insensitive query match.
const (
	titleMatchBoost       = 0.5
	descriptionMatchBoost = 0.3
)

// recencyScale turns a millisecond timestamp into an ordering-only score.
const recencyScale = 1e12

// Search resolves candidates for the query, applies filters, scores, sorts
// and pages them, and counts facets over the whole filtered set.
// A query without tokens matches every document and scores by recency.
func (s *SearchService) Search(opts domain.SearchOptions) domain.SearchResponse {
	logger.Section("Search Execution")

	query := strings.TrimSpace(opts.Query)
	queryTokens := uniqueTokens(Tokenize(query))

	limit := opts.Limit
	if limit <= 0 {
		limit = s.settings.DefaultLimit
	}
	offset := max(opts.Offset, 0)
	sortBy := opts.SortBy
	if !sortBy.IsValid() {
		sortBy = domain.SortByRelevance
	}
	order := opts.SortOrder
	if order != domain.SortAsc {
		order = domain.SortDesc
	}

	logger.Debug("Query: %q, tokens: %v, fuzzy: %t", query, queryTokens, opts.Fuzzy())
	logger.Debug("Limit: %d, Offset: %d, Sort: %s %s", limit, offset, sortBy, order)

	s.mu.RLock()
	candidates := s.resolveCandidates(queryTokens, opts.Fuzzy())
	matched := make([]domain.SearchResult, 0, len(candidates))
	for id := range candidates {
		doc, ok := s.documents[id]
		if !ok {
			continue
		}
		if !matchesFilters(&doc, &opts.Filters) {
			continue
		}
		doc.Highlights = nil
		doc.Score = scoreDocument(&doc, query, len(queryTokens) > 0)
		matched = append(matched, doc)
	}
	s.mu.RUnlock()

	logger.Debug("Candidates: %d, after filters: %d", len(candidates), len(matched))

	sortResults(matched, sortBy, order)
	facets := computeFacets(matched)
	total := len(matched)

	page := paginate(matched, offset, limit)
	if opts.IncludeContent && len(queryTokens) > 0 {
		h := s.newHighlighter(queryTokens)
		for i := range page {
			page[i].Highlights = h.highlight(&page[i])
		}
	}

	logger.Info("Search returned %d of %d results", len(page), total)

	return domain.SearchResponse{
		Results: page,
		Total:   total,
		HasMore: offset < total && limit < total-offset,
		Facets:  facets,
	}
}

// resolveCandidates returns the ids matching every query token, exactly or
// fuzzily. No tokens means every document. Caller must hold the read lock.
func (s *SearchService) resolveCandidates(queryTokens []string, fuzzy bool) map[string]struct{} {
	if len(queryTokens) == 0 {
		all := make(map[string]struct{}, len(s.documents))
		for id := range s.documents {
			all[id] = struct{}{}
		}
		return all
	}

	var result map[string]struct{}
	for _, qt := range queryTokens {
		matches := make(map[string]struct{})
		for id := range s.postings[qt] {
			matches[id] = struct{}{}
		}
		if fuzzy {
			for token, ids := range s.postings {
				if token == qt || s.similarity(qt, token) <= s.settings.FuzzyThreshold {
					continue
				}
				for id := range ids {
					matches[id] = struct{}{}
				}
			}
		}

		if result == nil {
			result = matches
		} else {
			for id := range result {
				if _, ok := matches[id]; !ok {
					delete(result, id)
				}
			}
		}
		if len(result) == 0 {
			break
		}
	}
	return result
}

// scoreDocument computes the query-time score. With query text it is the
// token similarity of the query and the document text plus literal-match
// bonuses; without it, a recency proxy.
func scoreDocument(doc *domain.SearchResult, query string, hasTokens bool) float64 {
	if !hasTokens {
		return float64(doc.CreatedAt.UnixMilli()) / recencyScale
	}

	text := doc.Title + " " + doc.Description + " " + doc.Content
	score := jaccardSimilarity(query, text)

	lowerQuery := strings.ToLower(query)
	if strings.Contains(strings.ToLower(doc.Title), lowerQuery) {
		score += titleMatchBoost
	}
	if doc.Description != "" && strings.Contains(strings.ToLower(doc.Description), lowerQuery) {
		score += descriptionMatchBoost
	}
	return score
}

// matchesFilters evaluates every supplied filter as a hard AND predicate.
// Missing metadata never matches a filter that needs it.
func matchesFilters(doc *domain.SearchResult, f *domain.SearchFilters) bool {
	if len(f.WorkspaceIDs) > 0 && !slices.Contains(f.WorkspaceIDs, doc.WorkspaceID) {
		return false
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, doc.Type) {
		return false
	}

	attrs := domain.AttributesOf(doc.Metadata)
	if !matchesValue(f.AssignedTo, attrs.AssignedTo) ||
		!matchesValue(f.CreatedBy, attrs.CreatedBy) ||
		!matchesValue(f.Status, attrs.Status) ||
		!matchesValue(f.Priority, attrs.Priority) {
		return false
	}
	if !matchesBool(f.HasAttachments, attrs.HasAttachments) ||
		!matchesBool(f.HasComments, attrs.HasComments) {
		return false
	}
	if len(f.Tags) > 0 && !overlaps(f.Tags, attrs.Tags) {
		return false
	}
	if f.DateRange != nil {
		if doc.CreatedAt.IsZero() || !f.DateRange.Contains(doc.CreatedAt) {
			return false
		}
	}
	return true
}

func matchesValue(allowed []string, value string) bool {
	if len(allowed) == 0 {
		return true
	}
	return value != "" && slices.Contains(allowed, value)
}

func matchesBool(want, have *bool) bool {
	if want == nil {
		return true
	}
	return have != nil && *have == *want
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		if slices.Contains(b, x) {
			return true
		}
	}
	return false
}

// sortResults orders results by the sort key; ties fall back to id
// ascending so output is deterministic.
func sortResults(results []domain.SearchResult, by domain.SortBy, order domain.SortOrder) {
	slices.SortFunc(results, func(a, b domain.SearchResult) int {
		c := compareBy(&a, &b, by)
		if order == domain.SortDesc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func compareBy(a, b *domain.SearchResult, by domain.SortBy) int {
	switch by {
	case domain.SortByDate:
		return a.CreatedAt.Compare(b.CreatedAt)
	case domain.SortByTitle:
		return strings.Compare(a.Title, b.Title)
	case domain.SortByType:
		return strings.Compare(string(a.Type), string(b.Type))
	default:
		return cmp.Compare(a.Score, b.Score)
	}
}

// computeFacets counts type, workspace, status and priority values.
// Workspaces are keyed by name, falling back to id.
func computeFacets(results []domain.SearchResult) domain.Facets {
	facets := domain.NewFacets()
	for i := range results {
		doc := &results[i]
		facets.Type[string(doc.Type)]++

		workspace := doc.WorkspaceName
		if workspace == "" {
			workspace = doc.WorkspaceID
		}
		facets.Workspace[workspace]++

		attrs := domain.AttributesOf(doc.Metadata)
		if attrs.Status != "" {
			facets.Status[attrs.Status]++
		}
		if attrs.Priority != "" {
			facets.Priority[attrs.Priority]++
		}
	}
	return facets
}

// paginate returns results[offset:offset+limit], clamped. offset+limit is
// never computed so values near math.MaxInt cannot overflow.
func paginate(results []domain.SearchResult, offset, limit int) []domain.SearchResult {
	if offset >= len(results) {
		return []domain.SearchResult{}
	}
	return results[offset : offset+min(limit, len(results)-offset)]
}
