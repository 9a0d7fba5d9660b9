// Package store provides SQLite-backed storage for saved text-search
// queries.
//
// A saved query records a compiled expression in every form a caller
// needs: the canonical tree, the inline SQL, the parameterized SQL and
// its bound parameters, and the result kind.
//
// # Identity
//
//   - expr_hash: ir.ExprHash of the canonical tree
//   - query_hash: ir.QueryHash(name, expr_hash), UNIQUE
//   - id: UUIDv7, so ids sort in save order
//
// Saving the same name and tree twice is a no-op that returns the
// existing row. Saving a changed tree under an existing name adds a new
// revision; Get returns the newest.
//
// # Deterministic Query Results
//
// Every listing uses ORDER BY name ASC, id ASC COLLATE BINARY.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
