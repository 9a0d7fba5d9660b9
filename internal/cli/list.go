package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tsexpr/internal/store"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Database string
	Name     string // optional - history of one query only
	Latest   bool   // with Name: newest revision only
	ID       string // optional - one revision only
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved queries",
		Long: `List every saved query revision, ordered by name and then by the
order in which revisions were saved. With --name, list the revisions of
one query only, or with --name and --latest its newest revision. With
--id, show a single revision.

Examples:
  tsexpr list --db ./tsexpr.db
  tsexpr list --db ./tsexpr.db --name title_search --format json
  tsexpr list --db ./tsexpr.db --name title_search --latest`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Name, "name", "", "list revisions of this query only")
	cmd.Flags().BoolVar(&opts.Latest, "latest", false, "with --name, show only the newest revision")
	cmd.Flags().StringVar(&opts.ID, "id", "", "show the revision with this id")
	cmd.MarkFlagsMutuallyExclusive("name", "id")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if opts.Latest && opts.Name == "" {
		return commandError(formatter, ErrCodeGeneric, "--latest requires --name")
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, fmt.Sprintf("failed to open database: %v", err))
	}
	defer st.Close()

	saved, err := fetchSaved(ctx, st, opts)
	if errors.Is(err, store.ErrNotFound) || (err == nil && opts.Name != "" && len(saved) == 0) {
		return commandError(formatter, ErrCodeNoQueries, fmt.Sprintf("no saved query matches %s", selector(opts)))
	}
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, fmt.Sprintf("failed to list saved queries: %v", err))
	}

	if formatter.JSON() {
		return formatter.Success(saved)
	}

	w := formatter.Writer
	if len(saved) == 0 {
		fmt.Fprintln(w, "No saved queries.")
		return nil
	}
	for _, q := range saved {
		fmt.Fprintf(w, "%s  %s (%s)\n  %s\n", q.ID, q.Name, q.Kind, q.SQL)
		if opts.Verbose {
			fmt.Fprintf(w, "  %s\n  expr %s\n", q.ParamSQL, q.ExprHash)
		}
	}
	return nil
}

// fetchSaved picks the store read that matches the flags.
func fetchSaved(ctx context.Context, st *store.Store, opts *ListOptions) ([]store.SavedQuery, error) {
	switch {
	case opts.ID != "":
		q, err := st.GetByID(ctx, opts.ID)
		if err != nil {
			return nil, err
		}
		return []store.SavedQuery{q}, nil
	case opts.Name != "" && opts.Latest:
		q, err := st.Get(ctx, opts.Name)
		if err != nil {
			return nil, err
		}
		return []store.SavedQuery{q}, nil
	case opts.Name != "":
		return st.History(ctx, opts.Name)
	default:
		return st.List(ctx)
	}
}

func selector(opts *ListOptions) string {
	if opts.ID != "" {
		return fmt.Sprintf("id %s", opts.ID)
	}
	return fmt.Sprintf("name %q", opts.Name)
}
