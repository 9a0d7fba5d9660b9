package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tsexpr/internal/compiler"
)

// ValidationIssue is one problem found in a definitions file.
type ValidationIssue struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool              `json:"valid"`
	Definitions int               `json:"definitions"`
	Errors      []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Check query definitions without rendering them",
		Long: `Check query definitions and report every problem found.

Names, duplicates and expect_kind values are checked first; then every
expression tree is compiled against the catalog and each operand kind
is checked. Unlike render, validate does not stop at the first error.

Exit codes:
  0 - All definitions are valid
  1 - One or more definitions are invalid
  2 - Command error (path not found, unreadable file, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	loadResult, loadErrors := LoadDefinitions(path, compiler.CollectAll)

	// Nothing could be loaded (path not found, malformed file, etc.)
	if loadResult == nil {
		loadErr := firstLoadError(loadErrors)
		return commandError(formatter, loadErr.Code, loadErr.Detail())
	}

	for _, def := range loadResult.Definitions {
		formatter.VerboseLog("Validating query: %s", def.Name)
	}

	result := ValidationResult{
		Valid:       len(loadErrors) == 0,
		Definitions: len(loadResult.Definitions),
	}
	for _, err := range loadErrors {
		loadErr := firstLoadError([]error{err})
		result.Errors = append(result.Errors, ValidationIssue{
			Code:    loadErr.Code,
			Field:   loadErr.Field,
			Message: loadErr.Message,
			Line:    lineOf(loadErr.Pos),
		})
	}

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.JSON() {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s All %d definition(s) valid\n", markOK, result.Definitions)
	return nil
}

// outputValidationErrors outputs every validation error.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	errs := result.Errors
	// Validation failures = exit code 1 (check failure)
	failure := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))

	if formatter.JSON() {
		if err := formatter.Failure(errs[0].Code, errs[0].Message, result); err != nil {
			return err
		}
		return failure
	}

	fmt.Fprintf(formatter.Writer, "%s Validation failed\n\n", markFail)
	for _, e := range errs {
		if e.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", e.Line)
		}
		if e.Field != "" {
			fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", e.Code, e.Field, e.Message)
		} else {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", e.Code, e.Message)
		}
	}

	return failure
}
