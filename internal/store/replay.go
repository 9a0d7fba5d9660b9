package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/roach88/tsexpr/internal/expr"
)

// RebuildFunc compiles a stored tree back into an expression.
// compiler.Compiler.CompileNode satisfies it.
type RebuildFunc func(tree map[string]any) (expr.Node, error)

// Drift describes a stored field that no longer matches what the current
// catalog produces for the same tree.
type Drift struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Field   string `json:"field"`
	Stored  string `json:"stored"`
	Current string `json:"current"`
}

// Replay rebuilds every saved query from its stored tree, renders it
// again, and reports each field that changed. An empty result means
// every row still renders byte-for-byte as it did when saved.
func (s *Store) Replay(ctx context.Context, rebuild RebuildFunc) ([]Drift, error) {
	saved, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	drifts := []Drift{}
	for _, q := range saved {
		drifts = append(drifts, replayOne(q, rebuild)...)
	}
	return drifts, nil
}

func replayOne(q SavedQuery, rebuild RebuildFunc) []Drift {
	drift := func(field, stored, current string) Drift {
		return Drift{ID: q.ID, Name: q.Name, Field: field, Stored: stored, Current: current}
	}

	tree, err := q.TreeMap()
	if err != nil {
		return []Drift{drift("tree", string(q.Tree), err.Error())}
	}
	n, err := rebuild(tree)
	if err != nil {
		return []Drift{drift("tree", string(q.Tree), err.Error())}
	}
	fresh, err := NewSavedQuery(q.Name, q.Description, n)
	if err != nil {
		return []Drift{drift("tree", string(q.Tree), err.Error())}
	}

	var out []Drift
	if fresh.ExprHash != q.ExprHash {
		out = append(out, drift("expr_hash", q.ExprHash, fresh.ExprHash))
	}
	if fresh.Kind != q.Kind {
		out = append(out, drift("result_kind", q.Kind, fresh.Kind))
	}
	if fresh.SQL != q.SQL {
		out = append(out, drift("sql_inline", q.SQL, fresh.SQL))
	}
	if fresh.ParamSQL != q.ParamSQL {
		out = append(out, drift("sql_params", q.ParamSQL, fresh.ParamSQL))
	}
	if !slices.Equal(fresh.Params, q.Params) {
		out = append(out, drift("params", fmt.Sprint(q.Params), fmt.Sprint(fresh.Params)))
	}
	return out
}
