package expr

import (
	"errors"
	"fmt"
)

// Sentinel errors for dynamic construction.
var (
	// ErrKindMismatch reports an operand whose kind differs from the
	// declared parameter kind.
	ErrKindMismatch = errors.New("kind mismatch")

	// ErrArity reports a call with the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")

	// ErrNilNode reports a missing operand or argument.
	ErrNilNode = errors.New("nil expression")
)

// KindError describes a rejected composition.
type KindError struct {
	Target  string // operator or function name
	Operand string // "left", "right", "arg 1", ...
	Want    string // declared kind
	Got     string // supplied kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("%s: %s: %s must be %s, got %s", e.Target, ErrKindMismatch.Error(), e.Operand, e.Want, e.Got)
}

func (e *KindError) Unwrap() error {
	return ErrKindMismatch
}

// checkOperand verifies that n is present and of kind want.
func checkOperand(target, operand, want string, n Node) error {
	if n == nil {
		return fmt.Errorf("%s: %s: %w", target, operand, ErrNilNode)
	}
	if got := n.KindName(); got != want {
		return &KindError{Target: target, Operand: operand, Want: want, Got: got}
	}
	return nil
}
