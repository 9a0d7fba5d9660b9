// Package sqltype declares the value kinds expressions are typed by and
// the wire-level type metadata each kind maps to.
//
// A kind is a zero-size marker type used only as a type argument. Two
// distinct markers can never be substituted for each other, so an
// expression of one kind is rejected by the Go compiler wherever another
// kind is required:
//
//	var v expr.Expr[sqltype.TSVector]
//	var q expr.Expr[sqltype.TSQuery] = v // does not compile
//
// The registry maps kinds to PostgreSQL type OIDs. Default is populated
// once during package initialization and never mutated afterwards, so it
// is safe for concurrent readers without locking.
package sqltype
