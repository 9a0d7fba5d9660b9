// Package ir provides the literal value types bound into expression trees
// and the canonical serialization used to identify those trees.
//
// This package imports nothing internal. Every other package may depend on
// it, so it stays free of SQL and expression concepts.
//
// Key design constraints:
//   - No float literals. Ranks and distances are computed by the database,
//     never supplied by callers, and floats break canonical encoding.
//   - Object keys are ordered by UTF-16 code units (RFC 8785).
//   - Strings are NFC normalized at the serialization boundary.
//   - Hashes are domain separated so ids of different record types never
//     collide.
package ir
