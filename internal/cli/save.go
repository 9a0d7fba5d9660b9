package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tsexpr/internal/compiler"
	"github.com/roach88/tsexpr/internal/store"
)

// SaveOptions holds flags for the save command.
type SaveOptions struct {
	*RootOptions
	Database string
}

// SavedEntry reports the outcome of saving one definition.
type SavedEntry struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	QueryHash string `json:"query_hash"`
	Created   bool   `json:"created"`
}

// SaveResult holds the overall save result.
type SaveResult struct {
	Saved     []SavedEntry `json:"saved"`
	Created   int          `json:"created"`
	Unchanged int          `json:"unchanged"`
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SaveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "save <path>",
		Short: "Compile query definitions and record them in a database",
		Long: `Compile query definitions and record each one in a SQLite database
together with its rendered SQL, bound parameters and content hash.

Saving is idempotent: a definition whose name and expression are already
stored is reported as unchanged. Changing a definition's expression adds
a new revision under the same name.

Examples:
  tsexpr save ./queries --db ./tsexpr.db
  tsexpr save queries.yaml --db ./tsexpr.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSave(opts *SaveOptions, path string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	loadResult, loadErrors := LoadDefinitions(path, compiler.FailFast)
	if len(loadErrors) > 0 {
		return loadFailure(formatter, loadResult, loadErrors)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return commandError(formatter, ErrCodeDatabase, fmt.Sprintf("failed to open database: %v", err))
	}
	defer st.Close()

	result := SaveResult{Saved: make([]SavedEntry, 0, len(loadResult.Compiled))}
	for _, c := range loadResult.Compiled {
		q, err := store.NewSavedQuery(c.Definition.Name, c.Definition.Description, c.Node)
		if err != nil {
			return commandError(formatter, ErrCodeGeneric, err.Error())
		}
		saved, created, err := st.Save(ctx, q)
		if err != nil {
			return commandError(formatter, ErrCodeDatabase, fmt.Sprintf("failed to save %s: %v", c.Definition.Name, err))
		}

		formatter.VerboseLog("Saved %s as %s (created=%t)", saved.Name, saved.ID, created)
		result.Saved = append(result.Saved, SavedEntry{
			Name:      saved.Name,
			ID:        saved.ID,
			QueryHash: saved.QueryHash,
			Created:   created,
		})
		if created {
			result.Created++
		} else {
			result.Unchanged++
		}
	}

	if formatter.JSON() {
		return formatter.Success(result)
	}

	w := formatter.Writer
	for _, e := range result.Saved {
		state := "created"
		if !e.Created {
			state = "unchanged"
		}
		fmt.Fprintf(w, "%s %s %s (%s)\n", markOK, e.Name, e.ID, state)
	}
	fmt.Fprintf(w, "\n%d created, %d unchanged\n", result.Created, result.Unchanged)
	return nil
}
