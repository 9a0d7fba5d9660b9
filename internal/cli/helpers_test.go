package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const queriesYAML = `
queries:
  - name: title_search
    description: documents whose title matches
    expect_kind: bool
    expr:
      op: "@@"
      left:
        call: to_tsvector
        args:
          - {column: title, table: docs, kind: text}
      right:
        call: plainto_tsquery
        args:
          - {text: fat rats}
  - name: ranked
    expr:
      call: ts_rank_cd
      args:
        - {column: tsv, kind: tsvector}
        - {literal: "fat & rat", kind: tsquery}
`

const queriesCUE = `
package queries

query: nearest: {
	expect_kind: "float4"
	expr: {
		op: "<=>"
		left: {column: "tsv", table: "docs", kind: "tsvector"}
		right: {call: "to_tsquery", args: [{text: "cat"}]}
	}
}
`

const invalidYAML = `
queries:
  - name: bad name
    expr: {text: a}
  - name: mismatch
    expr:
      op: "@@"
      left: {column: tsv, kind: tsvector}
      right: {text: cat}
  - name: mismatch
    expect_kind: tsrange
    expr: {text: b}
`

const mismatchYAML = `
queries:
  - name: mismatch
    expr:
      op: "@@"
      left: {column: tsv, kind: tsvector}
      right: {text: cat}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
