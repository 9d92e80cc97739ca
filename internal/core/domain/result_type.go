package domain

import "fmt"

// ResultType identifies the kind of record a SearchResult was built from.
type ResultType string

// Known result types. Comment and attachment are reserved: no indexer
// produces them yet, but filters and facets accept them.
const (
	ResultTypeTask       ResultType = "task"
	ResultTypePage       ResultType = "page"
	ResultTypeMember     ResultType = "member"
	ResultTypeComment    ResultType = "comment"
	ResultTypeAttachment ResultType = "attachment"
)

// AllResultTypes lists every result type in display order.
func AllResultTypes() []ResultType {
	return []ResultType{
		ResultTypeTask,
		ResultTypePage,
		ResultTypeMember,
		ResultTypeComment,
		ResultTypeAttachment,
	}
}

// IsValid returns true if the result type is recognised.
func (t ResultType) IsValid() bool {
	switch t {
	case ResultTypeTask, ResultTypePage, ResultTypeMember, ResultTypeComment, ResultTypeAttachment:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t ResultType) String() string {
	return string(t)
}

// DocumentID builds the namespaced index id for a source record,
// e.g. DocumentID(ResultTypeTask, "42") == "task-42".
func (t ResultType) DocumentID(sourceID string) string {
	return string(t) + "-" + sourceID
}

// ParseResultType converts a string to a ResultType.
func ParseResultType(s string) (ResultType, error) {
	t := ResultType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown result type %q", ErrInvalidInput, s)
	}
	return t, nil
}
