package textsearch

import (
	"github.com/roach88/tsexpr/internal/expr"
	"github.com/roach88/tsexpr/internal/sqltype"
)

// Operator declarations.
//
// Matches is declared in both operand orders; PostgreSQL accepts
// tsvector @@ tsquery and tsquery @@ tsvector with the same meaning.
var (
	MatchesVQ = expr.DeclareOperator[sqltype.TSVector, sqltype.TSQuery, sqltype.Bool]("Matches", "@@")
	MatchesQV = expr.DeclareOperator[sqltype.TSQuery, sqltype.TSVector, sqltype.Bool]("Matches", "@@")

	// Concat binds looser than @@ and the comparison operators, so it is
	// always parenthesized.
	Concat = expr.DeclareOperator[sqltype.TSVector, sqltype.TSVector, sqltype.TSVector]("Concat", "||", expr.AlwaysGroup())

	And         = expr.DeclareOperator[sqltype.TSQuery, sqltype.TSQuery, sqltype.TSQuery]("And", "&&")
	Or          = expr.DeclareOperator[sqltype.TSQuery, sqltype.TSQuery, sqltype.TSQuery]("Or", "||")
	Contains    = expr.DeclareOperator[sqltype.TSQuery, sqltype.TSQuery, sqltype.Bool]("Contains", "@>")
	ContainedBy = expr.DeclareOperator[sqltype.TSQuery, sqltype.TSQuery, sqltype.Bool]("ContainedBy", "<@")

	// RUM index distance operators. Distance measures a document against a
	// query; the directional forms measure it against another document.
	Distance      = expr.DeclareOperator[sqltype.TSVector, sqltype.TSQuery, sqltype.Float]("Distance", "<=>")
	LeftDistance  = expr.DeclareOperator[sqltype.TSVector, sqltype.TSVector, sqltype.Float]("LeftDistance", "<=|")
	RightDistance = expr.DeclareOperator[sqltype.TSVector, sqltype.TSVector, sqltype.Float]("RightDistance", "|=>")
)

// Operators lists every operator declaration. Matches appears once per
// operand order.
func Operators() []expr.OperatorSig {
	return []expr.OperatorSig{
		MatchesVQ.Signature(),
		MatchesQV.Signature(),
		Concat.Signature(),
		And.Signature(),
		Or.Signature(),
		Contains.Signature(),
		ContainedBy.Signature(),
		Distance.Signature(),
		LeftDistance.Signature(),
		RightDistance.Signature(),
	}
}
