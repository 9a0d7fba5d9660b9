package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/tsexpr/internal/compiler"
	"github.com/roach88/tsexpr/internal/expr"
	"github.com/roach88/tsexpr/internal/ir"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Placeholder string // inline | dollar | question
	Name        string // render one definition only
	Output      string // output file path
}

// RenderedQuery is one definition rendered to SQL.
type RenderedQuery struct {
	Name   string       `json:"name"`
	Kind   string       `json:"kind"`
	SQL    string       `json:"sql"`
	Params []expr.Param `json:"params,omitempty"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <path>",
		Short: "Compile query definitions and print their SQL",
		Long: `Compile query definitions and print the SQL for each one.

<path> is a CUE package directory, a .cue file or a .yaml file.

With the default inline placeholder style literals are written into the
SQL for display. The dollar and question styles bind every literal as a
statement argument and list the arguments with their type OIDs.

Examples:
  tsexpr render ./queries
  tsexpr render queries.yaml --placeholder dollar
  tsexpr render queries.cue --name title_search --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Placeholder, "placeholder", "p", "inline", "placeholder style (inline|dollar|question)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "render only the named definition")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write canonical JSON to this file")

	return cmd
}

func runRender(opts *RenderOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	placeholder, err := expr.ParsePlaceholder(opts.Placeholder)
	if err != nil {
		return commandError(formatter, ErrCodeGeneric, err.Error())
	}

	loadResult, loadErrors := LoadDefinitions(path, compiler.FailFast)
	if len(loadErrors) > 0 {
		return loadFailure(formatter, loadResult, loadErrors)
	}
	formatter.VerboseLog("Compiled %d definition(s) from %s", len(loadResult.Compiled), path)

	renderer := expr.Renderer{Placeholder: placeholder}
	var rendered []RenderedQuery
	for _, c := range loadResult.Compiled {
		if opts.Name != "" && c.Definition.Name != opts.Name {
			continue
		}
		sql, params, err := renderer.Render(c.Node)
		if err != nil {
			return commandError(formatter, ErrCodeGeneric, fmt.Sprintf("render %s: %v", c.Definition.Name, err))
		}
		rendered = append(rendered, RenderedQuery{Name: c.Definition.Name, Kind: c.Node.KindName(), SQL: sql, Params: params})
	}
	if opts.Name != "" && len(rendered) == 0 {
		return commandError(formatter, ErrCodeNoQueries, fmt.Sprintf("no definition named %q in %s", opts.Name, path))
	}

	if opts.Output != "" {
		if err := writeRendered(rendered, opts.Output); err != nil {
			return commandError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
		formatter.VerboseLog("Wrote %s", opts.Output)
	}

	if formatter.JSON() {
		return formatter.Success(rendered)
	}
	for _, q := range rendered {
		fmt.Fprintf(formatter.Writer, "-- %s (%s)\n%s\n", q.Name, q.Kind, q.SQL)
		for i, p := range q.Params {
			fmt.Fprintf(formatter.Writer, "--   arg %d = %s (%s, oid %d)\n", i+1, formatParam(p), p.Kind, p.OID)
		}
	}
	return nil
}

// formatParam shows a bound value as it would appear inline.
func formatParam(p expr.Param) string {
	v, err := ir.FromNative(p.Value)
	if err != nil {
		return fmt.Sprint(p.Value)
	}
	return expr.InlineLiteral(v, "")
}

// writeRendered writes the rendered queries as canonical JSON, so that
// the file is byte-stable across runs.
func writeRendered(rendered []RenderedQuery, path string) error {
	out := make([]any, len(rendered))
	for i, q := range rendered {
		params := make([]any, len(q.Params))
		for j, p := range q.Params {
			params[j] = map[string]any{"value": p.Value, "kind": p.Kind, "oid": p.OID}
		}
		out[i] = map[string]any{"name": q.Name, "kind": q.Kind, "sql": q.SQL, "params": params}
	}

	data, err := ir.MarshalCanonical(out)
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
