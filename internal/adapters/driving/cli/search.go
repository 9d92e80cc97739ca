package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/taskdex/internal/core/domain"
)

var (
	searchReq           domain.SearchRequest
	searchHasAttachment bool
	searchHasComments   bool
	searchJSON          bool
	searchFacets        bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search tasks, pages and members",
	Long: `Searches the index of every loaded workspace.

All query words must match (AND). Titles weigh more than descriptions and
descriptions more than bodies. Filters narrow the results; a filter given
several values (comma separated or repeated) matches any of them.

Examples:
  taskdex search "login bug" --type task --status todo,in_progress
  taskdex search roadmap --workspace w1 --since 2024-01-01 --highlight
  taskdex search "" --type member --sort title --order asc`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringSliceVarP(&searchReq.Workspaces, "workspace", "w", nil, "only these workspace ids")
	f.StringSliceVarP(&searchReq.Types, "type", "t", nil, "only these result types (task, page, member)")
	f.StringSliceVar(&searchReq.Statuses, "status", nil, "only tasks with these statuses")
	f.StringSliceVar(&searchReq.Priorities, "priority", nil, "only tasks with these priorities")
	f.StringSliceVar(&searchReq.Assignees, "assignee", nil, "only tasks assigned to these user ids")
	f.StringSliceVar(&searchReq.Creators, "creator", nil, "only records created by these user ids")
	f.StringSliceVar(&searchReq.Tags, "tag", nil, "only records carrying one of these tags")
	f.StringVar(&searchReq.Since, "since", "", "created at or after (RFC 3339 or YYYY-MM-DD)")
	f.StringVar(&searchReq.Until, "until", "", "created at or before (RFC 3339 or YYYY-MM-DD)")
	f.BoolVar(&searchHasAttachment, "has-attachments", false, "only tasks with (or, =false, without) attachments")
	f.BoolVar(&searchHasComments, "has-comments", false, "only tasks with (or, =false, without) comments")
	f.IntVarP(&searchReq.Limit, "limit", "n", 0, "maximum number of results (0 uses search.default_limit)")
	f.IntVar(&searchReq.Offset, "offset", 0, "number of results to skip")
	f.StringVar(&searchReq.Sort, "sort", "", "sort by relevance, date, title or type")
	f.StringVar(&searchReq.Order, "order", "", "sort order, asc or desc")
	f.BoolVar(&searchReq.NoFuzzy, "no-fuzzy", false, "disable approximate token matching")
	f.BoolVar(&searchReq.Highlight, "highlight", false, "mark matched terms in titles and snippets")
	f.BoolVar(&searchFacets, "facets", false, "print facet counts after the results")
	f.BoolVar(&searchJSON, "json", false, "output the response as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errSearchNotConfigured
	}

	req := searchReq
	req.Query = args[0]
	if cmd.Flags().Changed("has-attachments") {
		req.HasAttachments = domain.BoolPtr(searchHasAttachment)
	}
	if cmd.Flags().Changed("has-comments") {
		req.HasComments = domain.BoolPtr(searchHasComments)
	}

	opts, err := req.Options()
	if err != nil {
		return err
	}

	if err := ensureIndexed(cmd.Context()); err != nil {
		return err
	}

	resp := searchService.Search(opts)

	if searchJSON {
		return writeJSON(cmd.OutOrStdout(), resp)
	}

	r := newRenderer(cmd.OutOrStdout())
	r.results(resp, opts.Offset)
	if searchFacets && resp.Total > 0 {
		r.facetSummary(resp.Facets)
	}
	return nil
}
