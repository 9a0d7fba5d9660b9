package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tsexpr/internal/compiler"
	"github.com/roach88/tsexpr/internal/sqltype"
)

func matchesScenario() *Scenario {
	return &Scenario{
		Name:        "matches",
		Description: "vector matches query",
		Query: map[string]any{
			"op":    "@@",
			"left":  map[string]any{"column": "tsv", "table": "docs", "kind": "tsvector"},
			"right": map[string]any{"call": "to_tsquery", "args": []any{map[string]any{"text": "cat"}}},
		},
		Expect: Expect{
			Kind:     "bool",
			SQL:      "docs.tsv @@ to_tsquery('cat')",
			ParamSQL: "docs.tsv @@ to_tsquery($1)",
			Params:   []any{"cat"},
		},
	}
}

func TestRunPass(t *testing.T) {
	result, err := Run(matchesScenario())
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "bool", result.Kind)
	require.Len(t, result.Params, 1)
	assert.Equal(t, "cat", result.Params[0].Value)
	assert.Equal(t, uint32(25), result.Params[0].OID)
	require.NotNil(t, result.Node())
}

func TestRunReportsMismatches(t *testing.T) {
	s := matchesScenario()
	s.Expect = Expect{
		Kind:     "float4",
		SQL:      "docs.tsv @@ 'cat'",
		ParamSQL: "docs.tsv @@ $2",
		Params:   []any{"dog"},
	}

	result, err := Run(s)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], `kind: expected "float4", got "bool"`)
	assert.Contains(t, result.Errors[1], "sql: expected")
	assert.Contains(t, result.Errors[2], "param_sql: expected")
	assert.Contains(t, result.Errors[3], "params[0]: expected dog, got cat")
}

func TestRunParamCountMismatch(t *testing.T) {
	s := matchesScenario()
	s.Expect.Params = []any{"cat", "rat"}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors, "params: expected 2 values, got 1")
}

func TestRunIntegerParams(t *testing.T) {
	// YAML decodes integers as int; the renderer binds int64.
	s := &Scenario{
		Name:        "int_literal",
		Description: "integer literal",
		Query:       map[string]any{"int": 7},
		Expect:      Expect{Kind: "int4", Params: []any{7}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, int64(7), result.Params[0].Value)
}

func TestRunExpectedError(t *testing.T) {
	s := &Scenario{
		Name:        "unknown_fn",
		Description: "unknown function",
		Query:       map[string]any{"call": "websearch_to_tsquery"},
		Expect:      Expect{Error: "unknown function"},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Contains(t, result.CompileError, `"websearch_to_tsquery"`)
	assert.Nil(t, result.Node())
}

func TestRunWrongError(t *testing.T) {
	s := &Scenario{
		Name:        "unknown_fn",
		Description: "unknown function",
		Query:       map[string]any{"call": "websearch_to_tsquery"},
		Expect:      Expect{Error: "kind mismatch"},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], `error: expected "kind mismatch"`)
}

func TestRunUnexpectedSuccess(t *testing.T) {
	s := matchesScenario()
	s.Expect = Expect{Error: "kind mismatch"}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "query compiled to docs.tsv @@ to_tsquery('cat')")
}

func TestRunUnexpectedCompileError(t *testing.T) {
	s := matchesScenario()
	s.Query["right"] = map[string]any{"text": "cat"}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "compile: expr: @@: kind mismatch")
}

func TestRunFailingAssertion(t *testing.T) {
	s := matchesScenario()
	s.Assertions = []Assertion{{Type: AssertUsesFunction, Function: "ts_rank"}}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Assertion failed: uses_function")
}

func TestRunWithCustomRegistry(t *testing.T) {
	b := sqltype.NewBuilder()
	require.NoError(t, b.Register("text", sqltype.WireType{OID: 25, ArrayOID: 1009, NotNull: true}))
	c := compiler.New(b.Build())

	s := &Scenario{
		Name:        "no_tsvector",
		Description: "registry without tsvector",
		Query:       map[string]any{"column": "tsv", "kind": "tsvector"},
		Expect:      Expect{Error: "tsvector"},
	}

	result, err := RunWith(c, s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunNilScenario(t *testing.T) {
	_, err := Run(nil)
	require.Error(t, err)
}
