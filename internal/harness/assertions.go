package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/tsexpr/internal/expr"
)

// AssertionError is returned when an assertion fails.
// It includes the rendered SQL to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	SQL      string // Rendered query for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	fmt.Fprintf(&buf, "  SQL: %s\n", e.SQL)
	return buf.String()
}

// evaluateAssertion dispatches a to its checker.
func evaluateAssertion(r *Result, a Assertion) error {
	switch a.Type {
	case AssertUsesFunction:
		return assertUsesFunction(r, a)
	case AssertUsesOperator:
		return assertUsesOperator(r, a)
	case AssertCallOrder:
		return assertCallOrder(r, a)
	case AssertParamCount:
		return assertParamCount(r, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// callNames returns the function names of every call in pre-order.
func callNames(n expr.Node) []string {
	var names []string
	expr.Walk(n, func(node expr.Node) {
		if c, ok := node.(*expr.Call); ok {
			names = append(names, c.Name())
		}
	})
	return names
}

// operators returns the signature of every infix node in pre-order.
func operators(n expr.Node) []expr.OperatorSig {
	var sigs []expr.OperatorSig
	expr.Walk(n, func(node expr.Node) {
		if i, ok := node.(*expr.Infix); ok {
			sigs = append(sigs, i.Signature())
		}
	})
	return sigs
}

func assertUsesFunction(r *Result, a Assertion) error {
	names := callNames(r.node)
	if slices.Contains(names, a.Function) {
		return nil
	}
	return &AssertionError{
		Type:     AssertUsesFunction,
		Expected: fmt.Sprintf("call to %s", a.Function),
		Actual:   fmt.Sprintf("calls %v", names),
		SQL:      r.SQL,
	}
}

func assertUsesOperator(r *Result, a Assertion) error {
	var seen []string
	for _, sig := range operators(r.node) {
		if sig.Symbol == a.Operator || strings.EqualFold(sig.Name, a.Operator) {
			return nil
		}
		seen = append(seen, sig.Symbol)
	}
	return &AssertionError{
		Type:     AssertUsesOperator,
		Expected: fmt.Sprintf("operator %s", a.Operator),
		Actual:   fmt.Sprintf("operators %v", seen),
		SQL:      r.SQL,
	}
}

// assertCallOrder checks that the functions appear in the given order.
// Calls don't need to be adjacent (intervening calls are allowed).
func assertCallOrder(r *Result, a Assertion) error {
	names := callNames(r.node)
	next := 0
	for _, name := range names {
		if next < len(a.Functions) && name == a.Functions[next] {
			next++
		}
	}
	if next == len(a.Functions) {
		return nil
	}
	return &AssertionError{
		Type:     AssertCallOrder,
		Expected: fmt.Sprintf("calls in order %v", a.Functions),
		Actual:   fmt.Sprintf("calls %v (missing %s)", names, a.Functions[next]),
		SQL:      r.SQL,
	}
}

func assertParamCount(r *Result, a Assertion) error {
	if len(r.Params) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertParamCount,
		Expected: fmt.Sprintf("%d bound values", a.Count),
		Actual:   fmt.Sprintf("%d bound values", len(r.Params)),
		SQL:      r.ParamSQL,
	}
}
