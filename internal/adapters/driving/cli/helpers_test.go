package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/taskdex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/taskdex/internal/core/domain"
	"github.com/custodia-labs/taskdex/internal/core/services"
	"github.com/custodia-labs/taskdex/internal/normalisers"
)

var fixtureTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func engineeringSnapshot() *domain.WorkspaceSnapshot {
	return &domain.WorkspaceSnapshot{
		Workspace: domain.Workspace{ID: "w1", Name: "Engineering"},
		Tasks: []domain.Task{
			{
				ID: "1", Title: "Fix login bug", Description: "Users cannot sign in",
				Status: "todo", Priority: "high", AssignedTo: "u1",
				Comments:  []domain.Comment{{ID: "c1", Body: "Seen on staging"}},
				CreatedAt: fixtureTime,
			},
			{
				ID: "2", Title: "Deploy release", Status: "done", Priority: "low",
				CreatedAt: fixtureTime.Add(time.Hour),
			},
		},
		Pages: []domain.Page{
			{
				ID: "10", Title: "Release notes", Body: "# Release\n\nShipped the **login** fix.",
				BodyFormat: domain.ContentFormatMarkdown, CreatedAt: fixtureTime.Add(2 * time.Hour),
			},
		},
		Members: []domain.Member{
			{ID: "u1", Name: "Ada Lovelace", Email: "ada@example.com", IsActive: true, CreatedAt: fixtureTime},
		},
	}
}

func marketingSnapshot() *domain.WorkspaceSnapshot {
	return &domain.WorkspaceSnapshot{
		Workspace: domain.Workspace{ID: "w2", Name: "Marketing"},
		Tasks: []domain.Task{
			{ID: "3", Title: "Plan launch event", Status: "todo", Priority: "medium", CreatedAt: fixtureTime},
		},
	}
}

// setupTestServices wires real services over an in-memory store holding
// the fixture workspaces and restores empty services when the test ends.
func setupTestServices(t *testing.T) *memory.WorkspaceStore {
	t.Helper()

	store := memory.NewWorkspaceStore()
	ctx := context.Background()
	require.NoError(t, store.SaveSnapshot(ctx, engineeringSnapshot()))
	require.NoError(t, store.SaveSnapshot(ctx, marketingSnapshot()))

	search := services.NewSearchService(domain.DefaultSearchSettings())
	SetServices(Services{
		Search:   search,
		Indexer:  services.NewIndexerService(store, search, normalisers.NewDefaultRegistry(), 0),
		Settings: services.NewSettingsService(memory.NewConfigStore()),
		Store:    store,
	})
	t.Cleanup(func() { SetServices(Services{}) })

	return store
}

// execute runs the root command with args after resetting every flag, so
// values set by an earlier test do not leak into this one.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
