package textsearch

import (
	"github.com/roach88/tsexpr/internal/expr"
	"github.com/roach88/tsexpr/internal/sqltype"
)

// VectorCapability is the set of operators available on a document
// vector.
type VectorCapability interface {
	// Matches builds vector @@ query.
	Matches(q expr.Expr[sqltype.TSQuery]) expr.Expr[sqltype.Bool]
	// Concat builds (vector || other).
	Concat(other expr.Expr[sqltype.TSVector]) VectorExpr
}

// QueryCapability is the set of operators available on a search query.
type QueryCapability interface {
	// Matches builds query @@ vector.
	Matches(v expr.Expr[sqltype.TSVector]) expr.Expr[sqltype.Bool]
	And(other expr.Expr[sqltype.TSQuery]) QueryExpr
	Or(other expr.Expr[sqltype.TSQuery]) QueryExpr
	Contains(other expr.Expr[sqltype.TSQuery]) expr.Expr[sqltype.Bool]
	ContainedBy(other expr.Expr[sqltype.TSQuery]) expr.Expr[sqltype.Bool]
}

// RankingCapability is the set of RUM distance operators available on a
// document vector.
type RankingCapability interface {
	Distance(q expr.Expr[sqltype.TSQuery]) expr.Expr[sqltype.Float]
	LeftDistance(other expr.Expr[sqltype.TSVector]) expr.Expr[sqltype.Float]
	RightDistance(other expr.Expr[sqltype.TSVector]) expr.Expr[sqltype.Float]
}

var (
	_ VectorCapability  = VectorExpr{}
	_ RankingCapability = VectorExpr{}
	_ QueryCapability   = QueryExpr{}

	_ expr.Expr[sqltype.TSVector] = VectorExpr{}
	_ expr.Expr[sqltype.TSQuery]  = QueryExpr{}
)

// VectorExpr is a tsvector expression with its capabilities attached.
// The zero value is not usable; obtain one from Vector or a function.
type VectorExpr struct {
	expr.Expr[sqltype.TSVector]
}

// Vector attaches the vector capabilities to e.
func Vector(e expr.Expr[sqltype.TSVector]) VectorExpr {
	if v, ok := e.(VectorExpr); ok {
		return v
	}
	return VectorExpr{Expr: e}
}

// VectorColumn references a tsvector column.
func VectorColumn(table, name string) VectorExpr {
	return Vector(expr.Col[sqltype.TSVector](table, name))
}

// VectorLiteral binds a tsvector literal such as "a:1 fat:2".
func VectorLiteral(s string) VectorExpr {
	return Vector(expr.Lit[sqltype.TSVector](s))
}

func (v VectorExpr) Matches(q expr.Expr[sqltype.TSQuery]) expr.Expr[sqltype.Bool] {
	return MatchesVQ.Apply(v, q)
}

func (v VectorExpr) Concat(other expr.Expr[sqltype.TSVector]) VectorExpr {
	return Vector(Concat.Apply(v, other))
}

func (v VectorExpr) Distance(q expr.Expr[sqltype.TSQuery]) expr.Expr[sqltype.Float] {
	return Distance.Apply(v, q)
}

func (v VectorExpr) LeftDistance(other expr.Expr[sqltype.TSVector]) expr.Expr[sqltype.Float] {
	return LeftDistance.Apply(v, other)
}

func (v VectorExpr) RightDistance(other expr.Expr[sqltype.TSVector]) expr.Expr[sqltype.Float] {
	return RightDistance.Apply(v, other)
}

// QueryExpr is a tsquery expression with its capabilities attached.
// The zero value is not usable; obtain one from Query or a function.
type QueryExpr struct {
	expr.Expr[sqltype.TSQuery]
}

// Query attaches the query capabilities to e.
func Query(e expr.Expr[sqltype.TSQuery]) QueryExpr {
	if q, ok := e.(QueryExpr); ok {
		return q
	}
	return QueryExpr{Expr: e}
}

// QueryColumn references a tsquery column.
func QueryColumn(table, name string) QueryExpr {
	return Query(expr.Col[sqltype.TSQuery](table, name))
}

// QueryLiteral binds a tsquery literal such as "fat & rat".
func QueryLiteral(s string) QueryExpr {
	return Query(expr.Lit[sqltype.TSQuery](s))
}

func (q QueryExpr) Matches(v expr.Expr[sqltype.TSVector]) expr.Expr[sqltype.Bool] {
	return MatchesQV.Apply(q, v)
}

func (q QueryExpr) And(other expr.Expr[sqltype.TSQuery]) QueryExpr {
	return Query(And.Apply(q, other))
}

func (q QueryExpr) Or(other expr.Expr[sqltype.TSQuery]) QueryExpr {
	return Query(Or.Apply(q, other))
}

func (q QueryExpr) Contains(other expr.Expr[sqltype.TSQuery]) expr.Expr[sqltype.Bool] {
	return Contains.Apply(q, other)
}

func (q QueryExpr) ContainedBy(other expr.Expr[sqltype.TSQuery]) expr.Expr[sqltype.Bool] {
	return ContainedBy.Apply(q, other)
}
