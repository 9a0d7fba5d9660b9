package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/tsexpr/internal/log"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	LogLevel string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tsexpr CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tsexpr",
		Short: "tsexpr - typed PostgreSQL text search expressions",
		Long: `Build, check and render PostgreSQL full-text search expressions.

Query definitions are written in CUE or YAML as expression trees over
tsvector, tsquery and text. Every operator and function application is
checked against its declared operand kinds before any SQL is produced.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if !log.ValidLevel(opts.LogLevel) {
				return fmt.Errorf("invalid log level %q", opts.LogLevel)
			}

			level := opts.LogLevel
			if opts.Verbose {
				level = log.LevelDebug
			}
			log.Default = log.New(cmd.ErrOrStderr())
			log.SetLevel(level)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", log.LevelWarn, "log level (debug|info|warn|error)")

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewSaveCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
