package textsearch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/tsexpr/internal/expr"
	"github.com/roach88/tsexpr/internal/sqltype"
)

// Catalog lookup errors.
var (
	ErrUnknownFunction = errors.New("unknown function")
	ErrUnknownOperator = errors.New("unknown operator")
)

// Catalog is the complete, closed vocabulary of the package.
type Catalog struct {
	Kinds     []sqltype.WireType `json:"kinds"`
	Functions []expr.FuncSig     `json:"functions"`
	Operators []expr.OperatorSig `json:"operators"`
}

// DefaultCatalog returns the kinds registered in sqltype.Default together
// with every function and operator.
func DefaultCatalog() Catalog {
	return Catalog{
		Kinds:     sqltype.Default.Entries(),
		Functions: Functions(),
		Operators: Operators(),
	}
}

// LookupFunc returns the declaration of the named function.
func LookupFunc(name string) (expr.FuncSig, error) {
	for _, sig := range Functions() {
		if sig.Name == name {
			return sig, nil
		}
	}
	return expr.FuncSig{}, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
}

// LookupOperator resolves an operator by name (case-insensitive) or
// symbol and the kinds of its operands. Names and symbols can be
// overloaded ("||" is both Concat and Or, "@@" accepts either operand
// order), so the operand kinds pick the declaration.
func LookupOperator(nameOrSymbol, left, right string) (expr.OperatorSig, error) {
	var candidates []expr.OperatorSig
	for _, sig := range Operators() {
		if sig.Symbol == nameOrSymbol || strings.EqualFold(sig.Name, nameOrSymbol) {
			candidates = append(candidates, sig)
		}
	}
	if len(candidates) == 0 {
		return expr.OperatorSig{}, fmt.Errorf("%w: %q", ErrUnknownOperator, nameOrSymbol)
	}

	for _, sig := range candidates {
		if sig.Left == left && sig.Right == right {
			return sig, nil
		}
	}

	overloads := make([]string, len(candidates))
	for i, sig := range candidates {
		overloads[i] = sig.String()
	}
	return expr.OperatorSig{}, fmt.Errorf("%s: %w: no overload for %s, %s (have %s)",
		nameOrSymbol, expr.ErrKindMismatch, left, right, strings.Join(overloads, "; "))
}
