package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tsexpr/internal/expr"
	"github.com/roach88/tsexpr/internal/sqltype"
	"github.com/roach88/tsexpr/internal/textsearch"
)

// rankedMatch builds ts_rank(to_tsvector(body), to_tsquery('cat')) and
// wraps it in a result the way RunWith does.
func rankedMatch(t *testing.T) *Result {
	t.Helper()

	n := textsearch.TSRank(
		textsearch.ToTSVector(expr.Col[sqltype.Text]("", "body")),
		textsearch.ToTSQuery(expr.Text("cat")).And(textsearch.PlainToTSQuery(expr.Text("rat"))),
	)
	r := NewResult("ranked")
	r.node = n
	sql, err := expr.SQL(n)
	require.NoError(t, err)
	r.SQL = sql
	r.ParamSQL, r.Params, err = expr.Renderer{Placeholder: expr.Dollar}.Render(n)
	require.NoError(t, err)
	return r
}

func TestAssertUsesFunction(t *testing.T) {
	r := rankedMatch(t)

	assert.NoError(t, assertUsesFunction(r, Assertion{Type: AssertUsesFunction, Function: "plainto_tsquery"}))

	err := assertUsesFunction(r, Assertion{Type: AssertUsesFunction, Function: "ts_headline"})
	require.Error(t, err)
	assertErr, ok := err.(*AssertionError)
	require.True(t, ok)
	assert.Equal(t, "uses_function", assertErr.Type)
	assert.Equal(t, "call to ts_headline", assertErr.Expected)
	assert.Equal(t, "calls [ts_rank to_tsvector to_tsquery plainto_tsquery]", assertErr.Actual)
	assert.Equal(t, r.SQL, assertErr.SQL)
}

func TestAssertUsesOperator(t *testing.T) {
	r := rankedMatch(t)

	tests := []struct {
		operator string
		ok       bool
	}{
		{"&&", true},
		{"And", true},
		{"and", true},
		{"||", false},
		{"Matches", false},
	}

	for _, tt := range tests {
		t.Run(tt.operator, func(t *testing.T) {
			err := assertUsesOperator(r, Assertion{Type: AssertUsesOperator, Operator: tt.operator})
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "operators [&&]")
		})
	}
}

func TestAssertCallOrder(t *testing.T) {
	r := rankedMatch(t)

	tests := []struct {
		name      string
		functions []string
		ok        bool
	}{
		{"full order", []string{"ts_rank", "to_tsvector", "to_tsquery", "plainto_tsquery"}, true},
		{"gaps allowed", []string{"ts_rank", "plainto_tsquery"}, true},
		{"single", []string{"to_tsquery"}, true},
		{"reversed", []string{"plainto_tsquery", "to_tsquery"}, false},
		{"missing", []string{"ts_rank", "strip"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := assertCallOrder(r, Assertion{Type: AssertCallOrder, Functions: tt.functions})
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAssertCallOrderNamesMissingCall(t *testing.T) {
	r := rankedMatch(t)

	err := assertCallOrder(r, Assertion{Type: AssertCallOrder, Functions: []string{"to_tsvector", "strip"}})
	require.Error(t, err)
	assert.Contains(t, err.(*AssertionError).Actual, "missing strip")
}

func TestAssertParamCount(t *testing.T) {
	r := rankedMatch(t)

	assert.NoError(t, assertParamCount(r, Assertion{Type: AssertParamCount, Count: 2}))

	err := assertParamCount(r, Assertion{Type: AssertParamCount, Count: 0})
	require.Error(t, err)
	assertErr := err.(*AssertionError)
	assert.Equal(t, "0 bound values", assertErr.Expected)
	assert.Equal(t, "2 bound values", assertErr.Actual)
	assert.Equal(t, "ts_rank(to_tsvector(body), to_tsquery($1) && plainto_tsquery($2))", assertErr.SQL)
}

func TestEvaluateAssertionUnknownType(t *testing.T) {
	err := evaluateAssertion(rankedMatch(t), Assertion{Type: "final_state"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown assertion type "final_state"`)
}

func TestAssertionErrorFormat(t *testing.T) {
	err := &AssertionError{
		Type:     AssertUsesFunction,
		Expected: "call to strip",
		Actual:   "calls []",
		SQL:      "docs.tsv",
	}
	assert.Equal(t, "Assertion failed: uses_function\n  Expected: call to strip\n  Actual: calls []\n  SQL: docs.tsv\n", err.Error())
}
