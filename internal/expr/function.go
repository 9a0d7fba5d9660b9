package expr

import (
	"fmt"
	"strings"

	"github.com/roach88/tsexpr/internal/sqltype"
)

// FuncSig is the declaration of a SQL function.
type FuncSig struct {
	Name   string   `json:"name"`
	Params []string `json:"params"`
	Result string   `json:"result"`
}

func (s FuncSig) String() string {
	return fmt.Sprintf("%s(%s) -> %s", s.Name, strings.Join(s.Params, ", "), s.Result)
}

// Func1 is a declared one-argument function.
type Func1[P1, R sqltype.Kind] struct {
	sig FuncSig
}

// DeclareFunc1 declares name(P1) -> R.
func DeclareFunc1[P1, R sqltype.Kind](name string) Func1[P1, R] {
	return Func1[P1, R]{sig: FuncSig{
		Name:   name,
		Params: []string{sqltype.NameOf[P1]()},
		Result: sqltype.NameOf[R](),
	}}
}

// Signature returns the function declaration.
func (f Func1[P1, R]) Signature() FuncSig {
	return cloneSig(f.sig)
}

// Call builds name(a).
func (f Func1[P1, R]) Call(a Expr[P1]) Expr[R] {
	return typedOf[R](&Call{sig: f.sig, args: []Node{a.base()}})
}

// Func2 is a declared two-argument function.
type Func2[P1, P2, R sqltype.Kind] struct {
	sig FuncSig
}

// DeclareFunc2 declares name(P1, P2) -> R.
func DeclareFunc2[P1, P2, R sqltype.Kind](name string) Func2[P1, P2, R] {
	return Func2[P1, P2, R]{sig: FuncSig{
		Name:   name,
		Params: []string{sqltype.NameOf[P1](), sqltype.NameOf[P2]()},
		Result: sqltype.NameOf[R](),
	}}
}

// Signature returns the function declaration.
func (f Func2[P1, P2, R]) Signature() FuncSig {
	return cloneSig(f.sig)
}

// Call builds name(a, b).
func (f Func2[P1, P2, R]) Call(a Expr[P1], b Expr[P2]) Expr[R] {
	return typedOf[R](&Call{sig: f.sig, args: []Node{a.base(), b.base()}})
}

// NewCall is the dynamic form of Call. Arguments are matched positionally
// against sig.Params; a wrong count fails with ErrArity and a wrong kind
// with *KindError. No node is built on failure.
func NewCall(sig FuncSig, args ...Node) (Node, error) {
	if len(args) != len(sig.Params) {
		return nil, fmt.Errorf("%s: %w: want %d, got %d", sig.Name, ErrArity, len(sig.Params), len(args))
	}

	bases := make([]Node, len(args))
	for i, arg := range args {
		if err := checkOperand(sig.Name, fmt.Sprintf("arg %d", i+1), sig.Params[i], arg); err != nil {
			return nil, err
		}
		bases[i] = arg.base()
	}
	return &Call{sig: cloneSig(sig), args: bases}, nil
}

func cloneSig(s FuncSig) FuncSig {
	params := make([]string, len(s.Params))
	copy(params, s.Params)
	s.Params = params
	return s
}
