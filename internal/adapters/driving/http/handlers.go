package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driving"
	"github.com/custodia-labs/taskdex/internal/logger"
)

const defaultSuggestLimit = 10

type handler struct {
	search  driving.SearchService
	indexer driving.WorkspaceIndexer
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse describes the last indexing run of a workspace.
type StatusResponse struct {
	WorkspaceID string     `json:"workspaceId"`
	Running     bool       `json:"running"`
	Tasks       int        `json:"tasks"`
	Pages       int        `json:"pages"`
	Members     int        `json:"members"`
	LastIndexed *time.Time `json:"lastIndexed,omitempty"`
	LastError   string     `json:"lastError,omitempty"`
}

// SuggestResponse lists token completions.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) searchDocuments(w http.ResponseWriter, r *http.Request) {
	req, err := searchRequestFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := req.Options()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.search.Search(opts))
}

func (h *handler) suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(q, "limit", defaultSuggestLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SuggestResponse{
		Suggestions: h.search.GetSuggestions(q.Get("q"), limit),
	})
}

func (h *handler) stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.search.Stats())
}

func (h *handler) reindex(w http.ResponseWriter, r *http.Request) {
	if h.indexer == nil {
		writeError(w, domain.ErrSearchUnavailable)
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.indexer.Reindex(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	h.writeStatus(w, http.StatusOK, id)
}

func (h *handler) status(w http.ResponseWriter, r *http.Request) {
	if h.indexer == nil {
		writeError(w, domain.ErrSearchUnavailable)
		return
	}
	h.writeStatus(w, http.StatusOK, chi.URLParam(r, "id"))
}

func (h *handler) writeStatus(w http.ResponseWriter, code int, workspaceID string) {
	st, err := h.indexer.Status(workspaceID)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := StatusResponse{
		WorkspaceID: st.WorkspaceID,
		Running:     st.Running,
		Tasks:       st.Tasks,
		Pages:       st.Pages,
		Members:     st.Members,
	}
	if !st.LastIndexed.IsZero() {
		last := st.LastIndexed
		resp.LastIndexed = &last
	}
	if st.LastError != nil {
		resp.LastError = st.LastError.Error()
	}
	writeJSON(w, code, resp)
}

// searchRequestFromQuery reads search parameters. List parameters may be
// repeated or comma-separated.
func searchRequestFromQuery(q url.Values) (domain.SearchRequest, error) {
	req := domain.SearchRequest{
		Query:      q.Get("q"),
		Workspaces: q["workspace"],
		Types:      q["type"],
		Statuses:   q["status"],
		Priorities: q["priority"],
		Assignees:  q["assignee"],
		Creators:   q["creator"],
		Tags:       q["tag"],
		Since:      q.Get("since"),
		Until:      q.Get("until"),
		Sort:       q.Get("sort"),
		Order:      q.Get("order"),
	}

	var err error
	if req.Limit, err = intParam(q, "limit", 0); err != nil {
		return req, err
	}
	if req.Offset, err = intParam(q, "offset", 0); err != nil {
		return req, err
	}
	if req.HasAttachments, err = boolParam(q, "has_attachments"); err != nil {
		return req, err
	}
	if req.HasComments, err = boolParam(q, "has_comments"); err != nil {
		return req, err
	}
	fuzzy, err := boolParam(q, "fuzzy")
	if err != nil {
		return req, err
	}
	req.NoFuzzy = fuzzy != nil && !*fuzzy
	highlight, err := boolParam(q, "highlight")
	if err != nil {
		return req, err
	}
	req.Highlight = highlight != nil && *highlight
	return req, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: parameter %s has invalid value %q", domain.ErrInvalidInput, name, raw)
	}
	return n, nil
}

func boolParam(q url.Values, name string) (*bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: parameter %s has invalid value %q", domain.ErrInvalidInput, name, raw)
	}
	return &b, nil
}

// statusFor maps a domain error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrWorkspaceNotFound), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrIndexInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSearchUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logger.Warn("HTTP request failed: %v", err)
	}
	writeJSON(w, code, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Warn("Failed to encode response: %v", err)
	}
}
