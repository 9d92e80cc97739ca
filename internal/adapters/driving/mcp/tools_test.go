package mcp

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/ports/driving"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(&Ports{Search: newSearchService()})
	require.NoError(t, err)

	t.Run("returns search results with highlights", func(t *testing.T) {
		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "deploy"})
		require.NoError(t, err)

		require.Equal(t, 1, output.Total)
		require.Len(t, output.Results, 1)
		r := output.Results[0]
		assert.Equal(t, "task-1", r.ID)
		assert.Equal(t, "task", r.Type)
		assert.Equal(t, "Deploy release", r.Title)
		assert.Equal(t, "Engineering", r.Workspace)
		assert.Greater(t, r.Score, 0.5)
		require.NotEmpty(t, r.Highlights)
		assert.Contains(t, r.Highlights[0], "<mark>Deploy</mark>")
		assert.Equal(t, 1, output.Facets.Type["task"])
	})

	t.Run("empty query lists everything with default limit", func(t *testing.T) {
		_, output, err := server.handleSearch(ctx, nil, SearchInput{})
		require.NoError(t, err)
		assert.Equal(t, 3, output.Total)
		assert.Len(t, output.Results, 3)
		assert.False(t, output.HasMore)
	})

	t.Run("filters and pages", func(t *testing.T) {
		_, output, err := server.handleSearch(ctx, nil, SearchInput{
			Types: []string{"task"},
			Limit: 1,
			Sort:  "title",
			Order: "asc",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, output.Total)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "Deploy release", output.Results[0].Title)
		assert.True(t, output.HasMore)
	})

	t.Run("invalid input returns error", func(t *testing.T) {
		_, _, err := server.handleSearch(ctx, nil, SearchInput{Sort: "score"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleSuggest(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(&Ports{Search: newSearchService()})
	require.NoError(t, err)

	_, output, err := server.handleSuggest(ctx, nil, SuggestInput{Prefix: "write dep"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"deploy", "deployment"}, output.Suggestions)

	_, output, err = server.handleSuggest(ctx, nil, SuggestInput{Prefix: "dep", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, output.Suggestions, 1)
}

func TestServer_handleReindex(t *testing.T) {
	ctx := context.Background()

	t.Run("reindexes and reports counts", func(t *testing.T) {
		indexer := &mockIndexer{}
		indexer.On("Reindex", mock.Anything, "w1").Return(nil)
		indexer.On("Status", "w1").Return(&driving.IndexStatus{WorkspaceID: "w1", Tasks: 2, Members: 1}, nil)

		server, err := NewServer(&Ports{Search: newSearchService(), Indexer: indexer})
		require.NoError(t, err)

		_, output, err := server.handleReindex(ctx, nil, ReindexInput{WorkspaceID: "w1"})
		require.NoError(t, err)
		assert.Equal(t, ReindexOutput{WorkspaceID: "w1", Tasks: 2, Members: 1}, output)
		indexer.AssertExpectations(t)
	})

	t.Run("missing workspace id", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: newSearchService(), Indexer: &mockIndexer{}})
		require.NoError(t, err)

		_, _, err = server.handleReindex(ctx, nil, ReindexInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("propagates reindex failure", func(t *testing.T) {
		indexer := &mockIndexer{}
		indexer.On("Reindex", mock.Anything, "nope").Return(fmt.Errorf("get workspace: %w", domain.ErrWorkspaceNotFound))

		server, err := NewServer(&Ports{Search: newSearchService(), Indexer: indexer})
		require.NoError(t, err)

		_, _, err = server.handleReindex(ctx, nil, ReindexInput{WorkspaceID: "nope"})
		assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
		indexer.AssertNotCalled(t, "Status", mock.Anything)
	})
}
