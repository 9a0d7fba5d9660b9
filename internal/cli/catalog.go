package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/tsexpr/internal/textsearch"
)

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the kinds, functions and operators",
		Long: `List the complete vocabulary available to query definitions: the
registered kinds with their type OIDs, every function signature and
every operator signature.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(rootOpts, cmd)
		},
	}
}

func runCatalog(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	catalog := textsearch.DefaultCatalog()

	if formatter.JSON() {
		return formatter.Success(catalog)
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "Kinds:")
	for _, k := range catalog.Kinds {
		notNull := ""
		if k.NotNull {
			notNull = "not null"
		}
		fmt.Fprintf(tw, "  %s\toid %d\tarray %d\t%s\n", k.Name, k.OID, k.ArrayOID, notNull)
	}

	fmt.Fprintln(tw, "\nFunctions:")
	for _, f := range catalog.Functions {
		fmt.Fprintf(tw, "  %s(%s)\t-> %s\n", f.Name, strings.Join(f.Params, ", "), f.Result)
	}

	fmt.Fprintln(tw, "\nOperators:")
	for _, o := range catalog.Operators {
		grouped := ""
		if o.AlwaysGroup {
			grouped = "grouped"
		}
		fmt.Fprintf(tw, "  %s\t%s %s %s\t-> %s\t%s\n", o.Name, o.Left, o.Symbol, o.Right, o.Result, grouped)
	}

	return tw.Flush()
}
