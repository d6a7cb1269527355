package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fabrizia2/blogfocus/internal/blog"
	"github.com/fabrizia2/blogfocus/internal/query"
	"github.com/fabrizia2/blogfocus/internal/session"
)

// listOptions carries the query flags of the list command.
type listOptions struct {
	search   string
	category string
	sortKey  string
	page     int
	pageSize int
}

func newListCmd() *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the filtered, sorted post listing",
		Example: `  blogfocus list --search ai --sort date
  blogfocus list --category Startups --page 2 --page-size 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.search, "search", "", "case-insensitive title substring")
	cmd.Flags().StringVar(&opts.category, "category", "", "exact category filter")
	cmd.Flags().StringVar(&opts.sortKey, "sort", "", "sort key: date, reading_time, or category")
	cmd.Flags().IntVar(&opts.page, "page", 1, "cumulative page number (page 2 shows pages 1-2)")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "records per page (default from config)")
	return cmd
}

// captureSink keeps the session's latest render. The list command applies
// all query flags first and prints the final slice once.
type captureSink struct {
	slice []blog.Record
}

func (s *captureSink) Display(slice []blog.Record) {
	s.slice = slice
}

// printSlice writes record cards as indented text. An empty slice prints a
// distinguishable no-results line rather than nothing.
func printSlice(out io.Writer, slice []blog.Record) {
	if len(slice) == 0 {
		fmt.Fprintln(out, "No posts found.")
		return
	}
	for i, r := range slice {
		fmt.Fprintf(out, "%d. %s\n", i+1, r.Title)
		fmt.Fprintf(out, "   %s · %s · %d min read · %s\n",
			r.DisplayAuthor(), r.DisplayCategory(), r.DisplayReadingTime(), r.DisplayDate())
		if excerpt := r.Excerpt(); excerpt != "" {
			fmt.Fprintf(out, "   %s\n", excerpt)
		}
		fmt.Fprintln(out)
	}
}

func runList(cmd *cobra.Command, opts listOptions) error {
	sortKey, err := query.ParseSortKey(opts.sortKey)
	if err != nil {
		return err
	}

	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	sessionOpts, err := sessionOptions(cmd, cfg)
	if err != nil {
		return err
	}
	sessionOpts.PageSize = cfg.GetPageSize()
	if opts.pageSize > 0 {
		sessionOpts.PageSize = opts.pageSize
	}
	sink := &captureSink{}
	sessionOpts.Sink = sink
	sessionOpts.OnError = func(message string) {
		fmt.Fprintln(cmd.ErrOrStderr(), message)
	}

	sess := session.New(sessionOpts)
	if err := sess.Refresh(cmd.Context()); err != nil {
		return err
	}

	// Refresh rendered page 1; apply the remaining query flags in pipeline
	// order, then grow the prefix to the requested page.
	if opts.search != "" {
		sess.SetSearch(opts.search)
	}
	if opts.category != "" {
		sess.SetCategory(opts.category)
	}
	if sortKey != query.SortNone {
		sess.SetSort(sortKey)
	}
	for p := 1; p < opts.page; p++ {
		sess.AdvancePage()
	}

	printSlice(cmd.OutOrStdout(), sink.slice)
	return nil
}
