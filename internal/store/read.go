package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const selectColumns = `
	SELECT id, name, description, query_hash, expr_hash, result_kind, tree, sql_inline, sql_params, params
	FROM saved_queries
`

// Get returns the newest revision of the named query.
func (s *Store) Get(ctx context.Context, name string) (SavedQuery, error) {
	q, err := s.getOne(ctx, `WHERE name = ? ORDER BY id COLLATE BINARY DESC LIMIT 1`, name)
	if err != nil {
		return SavedQuery{}, fmt.Errorf("get %q: %w", name, err)
	}
	return q, nil
}

// GetByID returns the revision with the given id.
func (s *Store) GetByID(ctx context.Context, id string) (SavedQuery, error) {
	q, err := s.getOne(ctx, `WHERE id = ?`, id)
	if err != nil {
		return SavedQuery{}, fmt.Errorf("get id %s: %w", id, err)
	}
	return q, nil
}

// History returns every revision of the named query, oldest first.
// Returns an empty slice (not nil) if the name was never saved.
func (s *Store) History(ctx context.Context, name string) ([]SavedQuery, error) {
	return s.list(ctx, `WHERE name = ? ORDER BY id ASC COLLATE BINARY`, name)
}

// List returns every saved revision.
// Results are ordered deterministically: ORDER BY name ASC, id ASC COLLATE BINARY.
func (s *Store) List(ctx context.Context) ([]SavedQuery, error) {
	return s.list(ctx, `ORDER BY name ASC, id ASC COLLATE BINARY`)
}

func (s *Store) getOne(ctx context.Context, clause string, args ...any) (SavedQuery, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+clause, args...)
	q, err := scanSavedQuery(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedQuery{}, ErrNotFound
	}
	return q, err
}

func (s *Store) list(ctx context.Context, clause string, args ...any) ([]SavedQuery, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query saved queries: %w", err)
	}
	defer rows.Close()

	queries := []SavedQuery{}
	for rows.Next() {
		q, err := scanSavedQuery(rows)
		if err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved queries: %w", err)
	}
	return queries, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSavedQuery(row rowScanner) (SavedQuery, error) {
	var (
		q          SavedQuery
		tree       string
		paramsJSON string
	)
	err := row.Scan(&q.ID, &q.Name, &q.Description, &q.QueryHash, &q.ExprHash,
		&q.Kind, &tree, &q.SQL, &q.ParamSQL, &paramsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SavedQuery{}, err
		}
		return SavedQuery{}, fmt.Errorf("scan saved query: %w", err)
	}

	q.Tree = []byte(tree)
	if q.Params, err = unmarshalParams(paramsJSON); err != nil {
		return SavedQuery{}, fmt.Errorf("scan saved query %s: %w", q.ID, err)
	}
	return q, nil
}
