package textsearch

import (
	"github.com/roach88/tsexpr/internal/expr"
	"github.com/roach88/tsexpr/internal/sqltype"
)

// Function declarations.
var (
	lengthFn         = expr.DeclareFunc1[sqltype.TSVector, sqltype.Integer]("length")
	numnodeFn        = expr.DeclareFunc1[sqltype.TSQuery, sqltype.Integer]("numnode")
	plaintoTSQueryFn = expr.DeclareFunc1[sqltype.Text, sqltype.TSQuery]("plainto_tsquery")
	querytreeFn      = expr.DeclareFunc1[sqltype.TSQuery, sqltype.Text]("querytree")
	stripFn          = expr.DeclareFunc1[sqltype.TSVector, sqltype.TSVector]("strip")
	toTSQueryFn      = expr.DeclareFunc1[sqltype.Text, sqltype.TSQuery]("to_tsquery")
	toTSVectorFn     = expr.DeclareFunc1[sqltype.Text, sqltype.TSVector]("to_tsvector")
	tsHeadlineFn     = expr.DeclareFunc2[sqltype.Text, sqltype.TSQuery, sqltype.Text]("ts_headline")
	tsRankFn         = expr.DeclareFunc2[sqltype.TSVector, sqltype.TSQuery, sqltype.Float]("ts_rank")
	tsRankCDFn       = expr.DeclareFunc2[sqltype.TSVector, sqltype.TSQuery, sqltype.Float]("ts_rank_cd")
)

// Length returns the number of lexemes in a document: length(tsvector).
func Length(v expr.Expr[sqltype.TSVector]) expr.Expr[sqltype.Integer] {
	return lengthFn.Call(v)
}

// NumNode returns the number of nodes in a query: numnode(tsquery).
func NumNode(q expr.Expr[sqltype.TSQuery]) expr.Expr[sqltype.Integer] {
	return numnodeFn.Call(q)
}

// PlainToTSQuery parses plain text into a query: plainto_tsquery(text).
func PlainToTSQuery(s expr.Expr[sqltype.Text]) QueryExpr {
	return Query(plaintoTSQueryFn.Call(s))
}

// QueryTree returns the indexable part of a query: querytree(tsquery).
func QueryTree(q expr.Expr[sqltype.TSQuery]) expr.Expr[sqltype.Text] {
	return querytreeFn.Call(q)
}

// Strip removes positions and weights: strip(tsvector).
func Strip(v expr.Expr[sqltype.TSVector]) VectorExpr {
	return Vector(stripFn.Call(v))
}

// ToTSQuery normalizes query syntax into a query: to_tsquery(text).
func ToTSQuery(s expr.Expr[sqltype.Text]) QueryExpr {
	return Query(toTSQueryFn.Call(s))
}

// ToTSVector reduces a document to a vector: to_tsvector(text).
func ToTSVector(s expr.Expr[sqltype.Text]) VectorExpr {
	return Vector(toTSVectorFn.Call(s))
}

// TSHeadline highlights query matches in a document:
// ts_headline(text, tsquery).
func TSHeadline(doc expr.Expr[sqltype.Text], q expr.Expr[sqltype.TSQuery]) expr.Expr[sqltype.Text] {
	return tsHeadlineFn.Call(doc, q)
}

// TSRank ranks a document against a query by frequency:
// ts_rank(tsvector, tsquery).
func TSRank(v expr.Expr[sqltype.TSVector], q expr.Expr[sqltype.TSQuery]) expr.Expr[sqltype.Float] {
	return tsRankFn.Call(v, q)
}

// TSRankCD ranks by cover density: ts_rank_cd(tsvector, tsquery).
func TSRankCD(v expr.Expr[sqltype.TSVector], q expr.Expr[sqltype.TSQuery]) expr.Expr[sqltype.Float] {
	return tsRankCDFn.Call(v, q)
}

// Functions lists every function declaration, ordered by name.
func Functions() []expr.FuncSig {
	return []expr.FuncSig{
		lengthFn.Signature(),
		numnodeFn.Signature(),
		plaintoTSQueryFn.Signature(),
		querytreeFn.Signature(),
		stripFn.Signature(),
		toTSQueryFn.Signature(),
		toTSVectorFn.Signature(),
		tsHeadlineFn.Signature(),
		tsRankFn.Signature(),
		tsRankCDFn.Signature(),
	}
}
