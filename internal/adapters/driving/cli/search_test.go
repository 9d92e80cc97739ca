package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskdex/internal/core/domain"
)

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasFlags(t *testing.T) {
	for _, name := range []string{
		"workspace", "type", "status", "priority", "assignee", "creator", "tag",
		"since", "until", "has-attachments", "has-comments",
		"limit", "offset", "sort", "order", "no-fuzzy", "highlight", "facets", "json",
	} {
		assert.NotNil(t, searchCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "n", searchCmd.Flags().Lookup("limit").Shorthand)
	assert.Equal(t, "0", searchCmd.Flags().Lookup("limit").DefValue)
}

func TestSearchCmd_NotConfigured(t *testing.T) {
	SetServices(Services{})

	_, err := execute(t, "search", "login")

	assert.ErrorIs(t, err, errSearchNotConfigured)
}

func TestSearchCmd_LoadsStoreAndFindsMatches(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "search", "login")

	require.NoError(t, err)
	assert.Contains(t, out, "Results 1-2 of 2")
	assert.Contains(t, out, "Fix login bug")
	assert.Contains(t, out, "Release notes")
	assert.Contains(t, out, "Engineering · todo · high")
}

func TestSearchCmd_NoResults(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "search", "kubernetes", "--no-fuzzy")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_Filters(t *testing.T) {
	setupTestServices(t)

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "type",
			args:     []string{"search", "login", "--type", "page"},
			contains: []string{"Release notes"},
			excludes: []string{"Fix login bug"},
		},
		{
			name:     "status and workspace",
			args:     []string{"search", "", "--status", "todo", "-w", "w2"},
			contains: []string{"Plan launch event"},
			excludes: []string{"Fix login bug"},
		},
		{
			name:     "has comments",
			args:     []string{"search", "", "--has-comments"},
			contains: []string{"Fix login bug"},
			excludes: []string{"Deploy release"},
		},
		{
			name:     "has no comments",
			args:     []string{"search", "", "--has-comments=false", "--type", "task"},
			contains: []string{"Deploy release", "Plan launch event"},
			excludes: []string{"Fix login bug"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)

			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestSearchCmd_FlagsDoNotLeakBetweenRuns(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "search", "login", "--type", "page")
	require.NoError(t, err)
	require.NotContains(t, out, "Fix login bug")

	out, err = execute(t, "search", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Fix login bug")
}

func TestSearchCmd_Paging(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "search", "", "--limit", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Results 1-2 of 5")
	assert.Contains(t, out, "More results available: --offset 2")

	out, err = execute(t, "search", "", "--limit", "2", "--offset", "4")

	require.NoError(t, err)
	assert.Contains(t, out, "Results 5-5 of 5")
	assert.NotContains(t, out, "More results available")
}

func TestSearchCmd_Highlight(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "search", "login", "--highlight", "--type", "task")

	require.NoError(t, err)
	assert.Contains(t, out, "Fix <mark>login</mark> bug")
}

func TestSearchCmd_Facets(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "search", "", "--facets")

	require.NoError(t, err)
	assert.Contains(t, out, "Type: task 3")
	assert.Contains(t, out, "Workspace: ")
}

func TestSearchCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "search", "deploy", "--json", "--no-fuzzy")
	require.NoError(t, err)

	var resp domain.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "task-2", resp.Results[0].ID)
}

func TestSearchCmd_InvalidInput(t *testing.T) {
	setupTestServices(t)

	for _, args := range [][]string{
		{"search", "x", "--sort", "size"},
		{"search", "x", "--order", "sideways"},
		{"search", "x", "--type", "folder"},
		{"search", "x", "--since", "yesterday"},
		{"search", "x", "--offset", "-1"},
	} {
		_, err := execute(t, args...)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, args)
	}
}
