package store

import (
	"context"
	"fmt"
)

// Save records q and returns the stored row. Uses ON CONFLICT(query_hash)
// DO NOTHING for idempotency: saving an already stored name and tree
// returns the existing row with created set to false.
//
// q must come from NewSavedQuery; its ID is ignored.
func (s *Store) Save(ctx context.Context, q SavedQuery) (saved SavedQuery, created bool, err error) {
	if q.Name == "" || q.QueryHash == "" || q.ExprHash == "" {
		return SavedQuery{}, false, fmt.Errorf("save: incomplete saved query %q", q.Name)
	}

	paramsJSON, err := marshalParams(q.Params)
	if err != nil {
		return SavedQuery{}, false, fmt.Errorf("save %s: %w", q.Name, err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_queries
		(id, name, description, query_hash, expr_hash, result_kind, tree, sql_inline, sql_params, params)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(query_hash) DO NOTHING
	`,
		s.ids.Generate(),
		q.Name,
		q.Description,
		q.QueryHash,
		q.ExprHash,
		q.Kind,
		string(q.Tree),
		q.SQL,
		q.ParamSQL,
		paramsJSON,
	)
	if err != nil {
		return SavedQuery{}, false, fmt.Errorf("save %s: %w", q.Name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return SavedQuery{}, false, fmt.Errorf("save %s: %w", q.Name, err)
	}

	saved, err = s.getOne(ctx, `WHERE query_hash = ?`, q.QueryHash)
	if err != nil {
		return SavedQuery{}, false, fmt.Errorf("save %s: %w", q.Name, err)
	}
	return saved, n == 1, nil
}
