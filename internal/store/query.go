package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/tsexpr/internal/expr"
	"github.com/roach88/tsexpr/internal/ir"
)

// ErrNotFound is returned when no saved query matches.
var ErrNotFound = errors.New("saved query not found")

// SavedQuery is a compiled query in every form the store keeps.
type SavedQuery struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	QueryHash   string          `json:"query_hash"`
	ExprHash    string          `json:"expr_hash"`
	Kind        string          `json:"kind"`
	Tree        json.RawMessage `json:"tree"`
	SQL         string          `json:"sql"`
	ParamSQL    string          `json:"param_sql"`
	Params      []expr.Param    `json:"params"`
}

// NewSavedQuery renders n inline and with $n placeholders and computes
// its hashes. The ID is assigned by Save.
func NewSavedQuery(name, description string, n expr.Node) (SavedQuery, error) {
	if name == "" {
		return SavedQuery{}, fmt.Errorf("saved query: empty name")
	}
	if n == nil {
		return SavedQuery{}, fmt.Errorf("saved query %q: %w", name, expr.ErrNilNode)
	}

	desc := expr.Describe(n)
	tree, err := ir.MarshalCanonical(desc)
	if err != nil {
		return SavedQuery{}, fmt.Errorf("saved query %q: %w", name, err)
	}
	exprHash, err := ir.ExprHash(desc)
	if err != nil {
		return SavedQuery{}, fmt.Errorf("saved query %q: %w", name, err)
	}

	inline, err := expr.SQL(n)
	if err != nil {
		return SavedQuery{}, fmt.Errorf("saved query %q: %w", name, err)
	}
	paramSQL, params, err := expr.Renderer{Placeholder: expr.Dollar}.Render(n)
	if err != nil {
		return SavedQuery{}, fmt.Errorf("saved query %q: %w", name, err)
	}
	if params == nil {
		params = []expr.Param{}
	}

	return SavedQuery{
		Name:        name,
		Description: description,
		QueryHash:   ir.QueryHash(name, exprHash),
		ExprHash:    exprHash,
		Kind:        n.KindName(),
		Tree:        tree,
		SQL:         inline,
		ParamSQL:    paramSQL,
		Params:      params,
	}, nil
}

// TreeMap decodes the stored tree. Integers decode as json.Number, which
// the compiler package accepts.
func (q SavedQuery) TreeMap() (map[string]any, error) {
	return unmarshalTree(q.Tree)
}
