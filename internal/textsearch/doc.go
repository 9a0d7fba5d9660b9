// Package textsearch is the PostgreSQL full-text-search vocabulary built
// on package expr: the tsvector and tsquery kinds, the functions and
// operators over them, and capability methods that make each operator
// available only on expressions of the right kind.
//
// Example:
//
//	q := textsearch.ToTSVector(expr.Text("the cat sat")).
//		Matches(textsearch.ToTSQuery(expr.Text("cat & sat")))
//	// to_tsvector('the cat sat') @@ to_tsquery('cat & sat')
//
// CAPABILITIES:
//
// Go cannot attach methods to every Expr[TSVector], so expressions of the
// two domain kinds are carried by wrapper types that embed them:
//
//	VectorExpr  implements VectorCapability and RankingCapability
//	QueryExpr   implements QueryCapability
//
// Both still satisfy expr.Expr of their kind and can be passed anywhere a
// plain expression is expected. Functions returning tsvector or tsquery
// return the wrappers, so calls chain fluently.
//
// The catalog is closed: Functions and Operators list every declaration
// and are what the dynamic compiler resolves names against.
package textsearch
