// Command tsexpr compiles, renders and records typed PostgreSQL
// full-text search expressions.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/tsexpr/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Check failures have already been reported on stdout.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || exitErr.Code != cli.ExitFailure {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
