package expr

import (
	"fmt"

	"github.com/roach88/tsexpr/internal/ir"
	"github.com/roach88/tsexpr/internal/sqltype"
)

// Node is a sealed interface over expression tree nodes.
//
// Node types:
//   - *Column: reference to a table column
//   - *Literal: bound literal value
//   - *Infix: binary operator application
//   - *Call: function call
//   - *Grouped: parenthesized sub-expression
type Node interface {
	// KindName returns the type name of the value the node produces.
	KindName() string

	// String renders the node as SQL with literals inlined.
	String() string

	// base returns the concrete node, unwrapping typed views.
	base() Node
}

// Expr is a Node whose kind is known statically.
//
// Only this package mints Expr values, and always with K matching the
// node's KindName, so holding an Expr[K] is proof of its kind.
type Expr[K sqltype.Kind] interface {
	Node
	Kind() K
}

// typed is the static view of a node.
type typed[K sqltype.Kind] struct {
	Node
}

func (typed[K]) Kind() K {
	var k K
	return k
}

func typedOf[K sqltype.Kind](n Node) Expr[K] {
	return typed[K]{Node: n}
}

// Column references a column of kind Kind.
type Column struct {
	table string
	name  string
	kind  string
}

// Table returns the qualifying table, or "" for an unqualified column.
func (c *Column) Table() string { return c.table }

// Name returns the column name.
func (c *Column) Name() string { return c.name }

func (c *Column) KindName() string { return c.kind }
func (c *Column) String() string   { return stringOf(c) }
func (c *Column) base() Node       { return c }

// Literal is a value bound into the tree.
type Literal struct {
	value ir.Value
	kind  string
}

// Value returns the literal value.
func (l *Literal) Value() ir.Value { return l.value }

func (l *Literal) KindName() string { return l.kind }
func (l *Literal) String() string   { return stringOf(l) }
func (l *Literal) base() Node       { return l }

// Infix applies a binary operator: left <symbol> right.
type Infix struct {
	sig   OperatorSig
	left  Node
	right Node
}

// Signature returns the declaration the node was built from.
func (i *Infix) Signature() OperatorSig { return i.sig }

// Symbol returns the operator symbol, e.g. "@@".
func (i *Infix) Symbol() string { return i.sig.Symbol }

// Left returns the left operand.
func (i *Infix) Left() Node { return i.left }

// Right returns the right operand.
func (i *Infix) Right() Node { return i.right }

func (i *Infix) KindName() string { return i.sig.Result }
func (i *Infix) String() string   { return stringOf(i) }
func (i *Infix) base() Node       { return i }

// Call is a function call: name(arg1, arg2, ...).
type Call struct {
	sig  FuncSig
	args []Node
}

// Signature returns the declaration the node was built from.
func (c *Call) Signature() FuncSig { return c.sig }

// Name returns the function name.
func (c *Call) Name() string { return c.sig.Name }

// Args returns a copy of the arguments in call order.
func (c *Call) Args() []Node {
	out := make([]Node, len(c.args))
	copy(out, c.args)
	return out
}

func (c *Call) KindName() string { return c.sig.Result }
func (c *Call) String() string   { return stringOf(c) }
func (c *Call) base() Node       { return c }

// Grouped wraps a node in parentheses when rendered.
type Grouped struct {
	inner Node
}

// Inner returns the wrapped node.
func (g *Grouped) Inner() Node { return g.inner }

func (g *Grouped) KindName() string { return g.inner.KindName() }
func (g *Grouped) String() string   { return stringOf(g) }
func (g *Grouped) base() Node       { return g }

// Col references column name of table (may be empty) with kind K.
func Col[K sqltype.Kind](table, name string) Expr[K] {
	return typedOf[K](&Column{table: table, name: name, kind: sqltype.NameOf[K]()})
}

// Lit binds a string literal of kind K, e.g. Lit[sqltype.TSQuery]("fat & rat").
func Lit[K sqltype.Kind](s string) Expr[K] {
	return typedOf[K](&Literal{value: ir.String(s), kind: sqltype.NameOf[K]()})
}

// Text binds a text literal.
func Text(s string) Expr[sqltype.Text] {
	return Lit[sqltype.Text](s)
}

// Int binds an int4 literal.
func Int(n int64) Expr[sqltype.Integer] {
	return typedOf[sqltype.Integer](&Literal{value: ir.Int(n), kind: sqltype.NameOf[sqltype.Integer]()})
}

// Bool binds a boolean literal.
func Bool(b bool) Expr[sqltype.Bool] {
	return typedOf[sqltype.Bool](&Literal{value: ir.Bool(b), kind: sqltype.NameOf[sqltype.Bool]()})
}

// Group parenthesizes e without changing its kind. An already grouped
// expression is returned as is.
func Group[K sqltype.Kind](e Expr[K]) Expr[K] {
	return typedOf[K](group(e.base()))
}

func group(n Node) Node {
	if g, ok := n.(*Grouped); ok {
		return g
	}
	return &Grouped{inner: n}
}

// As views n as an Expr[K], failing if n is of another kind. This is the
// bridge from dynamically built nodes back into the typed API.
func As[K sqltype.Kind](n Node) (Expr[K], error) {
	if err := checkOperand("as", "node", sqltype.NameOf[K](), n); err != nil {
		return nil, err
	}
	return typedOf[K](n.base()), nil
}

// NewColumn is the dynamic form of Col. The kind must be registered.
func NewColumn(r *sqltype.Registry, table, name, kind string) (Node, error) {
	if name == "" {
		return nil, fmt.Errorf("column: empty name")
	}
	if _, err := r.Lookup(kind); err != nil {
		return nil, fmt.Errorf("column %q: %w", name, err)
	}
	return &Column{table: table, name: name, kind: kind}, nil
}

// NewLiteral is the dynamic form of Lit, Int and Bool. The value must be
// representable in the kind, and NULL is refused for kinds registered
// as not null.
func NewLiteral(r *sqltype.Registry, kind string, v ir.Value) (Node, error) {
	wt, err := r.Lookup(kind)
	if err != nil {
		return nil, fmt.Errorf("literal: %w", err)
	}

	switch v.(type) {
	case ir.Null:
		if wt.NotNull {
			return nil, fmt.Errorf("literal: NULL not allowed for %s", kind)
		}
	case ir.String:
		switch kind {
		case sqltype.NameOf[sqltype.Text](), sqltype.NameOf[sqltype.TSVector](), sqltype.NameOf[sqltype.TSQuery]():
		default:
			return nil, &KindError{Target: "literal", Operand: "value", Want: kind, Got: "text"}
		}
	case ir.Int:
		if kind != sqltype.NameOf[sqltype.Integer]() {
			return nil, &KindError{Target: "literal", Operand: "value", Want: kind, Got: "int4"}
		}
	case ir.Bool:
		if kind != sqltype.NameOf[sqltype.Bool]() {
			return nil, &KindError{Target: "literal", Operand: "value", Want: kind, Got: "bool"}
		}
	default:
		return nil, fmt.Errorf("literal: unsupported value %T", v)
	}
	return &Literal{value: v, kind: kind}, nil
}

// NewGroup is the dynamic form of Group.
func NewGroup(n Node) (Node, error) {
	if n == nil {
		return nil, fmt.Errorf("group: %w", ErrNilNode)
	}
	return group(n.base()), nil
}
