package expr

import (
	"fmt"

	"github.com/roach88/tsexpr/internal/sqltype"
)

// OperatorSig is the declaration of a binary infix operator.
type OperatorSig struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	Result string `json:"result"`

	// AlwaysGroup renders every application parenthesized. Used where the
	// operator binds looser than its neighbours in SQL, e.g. tsvector ||.
	AlwaysGroup bool `json:"always_group,omitempty"`
}

func (s OperatorSig) String() string {
	return fmt.Sprintf("%s %s %s -> %s", s.Left, s.Symbol, s.Right, s.Result)
}

// OperatorOption customizes an operator declaration.
type OperatorOption func(*OperatorSig)

// AlwaysGroup marks the operator as always parenthesized.
func AlwaysGroup() OperatorOption {
	return func(s *OperatorSig) {
		s.AlwaysGroup = true
	}
}

// Operator is a declared infix operator with left kind L, right kind R
// and result kind Res.
type Operator[L, R, Res sqltype.Kind] struct {
	sig OperatorSig
}

// DeclareOperator declares an infix operator. The kinds are fixed by the
// type arguments.
//
//	var Concat = DeclareOperator[TSVector, TSVector, TSVector]("Concat", "||", AlwaysGroup())
func DeclareOperator[L, R, Res sqltype.Kind](name, symbol string, opts ...OperatorOption) Operator[L, R, Res] {
	sig := OperatorSig{
		Name:   name,
		Symbol: symbol,
		Left:   sqltype.NameOf[L](),
		Right:  sqltype.NameOf[R](),
		Result: sqltype.NameOf[Res](),
	}
	for _, opt := range opts {
		opt(&sig)
	}
	return Operator[L, R, Res]{sig: sig}
}

// Signature returns the operator declaration.
func (o Operator[L, R, Res]) Signature() OperatorSig {
	return o.sig
}

// Apply builds left <symbol> right. The operand kinds are checked by the
// compiler, so Apply cannot fail.
func (o Operator[L, R, Res]) Apply(left Expr[L], right Expr[R]) Expr[Res] {
	return typedOf[Res](newInfix(o.sig, left.base(), right.base()))
}

// NewInfix is the dynamic form of Apply. It returns *KindError when an
// operand's kind differs from the declaration; no node is built in that
// case.
func NewInfix(sig OperatorSig, left, right Node) (Node, error) {
	if err := checkOperand(sig.Name, "left", sig.Left, left); err != nil {
		return nil, err
	}
	if err := checkOperand(sig.Name, "right", sig.Right, right); err != nil {
		return nil, err
	}
	return newInfix(sig, left.base(), right.base()), nil
}

func newInfix(sig OperatorSig, left, right Node) Node {
	n := &Infix{sig: sig, left: left, right: right}
	if sig.AlwaysGroup {
		return &Grouped{inner: n}
	}
	return n
}
