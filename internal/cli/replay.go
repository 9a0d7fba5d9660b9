package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tsexpr/internal/compiler"
	"github.com/roach88/tsexpr/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Checked int           `json:"checked"`
	Drifts  []store.Drift `json:"drifts"`
	Stable  bool          `json:"stable"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rebuild saved queries and verify their SQL is unchanged",
		Long: `Rebuild every saved query from its stored expression tree, render it
again with the current catalog, and compare the result with what was
saved: expression hash, result kind, inline SQL, parameterized SQL and
bound parameters.

Exit codes:
  0 - Every saved query renders exactly as stored
  1 - Drift detected in one or more saved queries
  2 - Command error (database not found, etc.)

Examples:
  tsexpr replay --db ./tsexpr.db
  tsexpr replay --db ./tsexpr.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	saved, err := st.List(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list saved queries", err)
	}

	drifts, err := st.Replay(ctx, compiler.New(nil).CompileNode)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to replay saved queries", err)
	}

	result := ReplayResult{
		Checked: len(saved),
		Drifts:  drifts,
		Stable:  len(drifts) == 0,
	}

	if formatter.JSON() {
		return outputReplayJSON(formatter, result)
	}
	return outputReplayText(formatter, result)
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(formatter *OutputFormatter, result ReplayResult) error {
	if result.Stable {
		return formatter.Success(result)
	}

	if err := formatter.Failure("E_DRIFT", "saved queries no longer render as stored", result); err != nil {
		return err
	}
	// Drift = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("drift in %d field(s)", len(result.Drifts)))
}

// outputReplayText outputs the replay result as text.
func outputReplayText(formatter *OutputFormatter, result ReplayResult) error {
	w := formatter.Writer

	fmt.Fprintf(w, "Replay Summary: %d saved revision(s)\n", result.Checked)
	fmt.Fprintln(w)

	for _, d := range result.Drifts {
		fmt.Fprintf(w, "%s %s %s: %s changed\n", markFail, d.Name, d.ID, d.Field)
		if formatter.Verbose {
			fmt.Fprintf(w, "  stored:  %s\n", d.Stored)
			fmt.Fprintf(w, "  current: %s\n", d.Current)
		}
	}

	if result.Stable {
		fmt.Fprintf(w, "%s All saved queries render as stored\n", markOK)
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s Drift detected\n", markFail)
	// Drift = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("drift in %d field(s)", len(result.Drifts)))
}
