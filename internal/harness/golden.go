package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/tsexpr/internal/expr"
	"github.com/roach88/tsexpr/internal/ir"
)

// Snapshot converts a result to a map[string]any for canonical JSON
// serialization. A rejected query snapshots only its compile error.
func (r *Result) Snapshot() (map[string]any, error) {
	snap := map[string]any{"scenario": r.Scenario}
	if r.node == nil {
		snap["error"] = r.CompileError
		return snap, nil
	}

	params := make([]any, len(r.Params))
	for i, p := range r.Params {
		v, err := ir.FromNative(p.Value)
		if err != nil {
			return nil, fmt.Errorf("snapshot params[%d]: %w", i, err)
		}
		params[i] = map[string]any{"value": v, "kind": p.Kind, "oid": p.OID}
	}

	snap["kind"] = r.Kind
	snap["sql"] = r.SQL
	snap["param_sql"] = r.ParamSQL
	snap["params"] = params
	snap["tree"] = expr.Describe(r.node)
	return snap, nil
}

// CanonicalSnapshot returns the snapshot as canonical JSON, the exact
// bytes stored in golden files.
func (r *Result) CanonicalSnapshot() ([]byte, error) {
	snap, err := r.Snapshot()
	if err != nil {
		return nil, err
	}
	return ir.MarshalCanonical(snap)
}

// RunWithGolden executes a scenario and compares its canonical snapshot
// against testdata/golden/{scenario.Name}.golden.
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := result.CanonicalSnapshot()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
