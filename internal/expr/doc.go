// Package expr provides the typed expression tree that SQL fragments are
// built from.
//
// ARCHITECTURE:
//
//	[leaf lifts] → [Operator.Apply / FuncN.Call] → [Renderer] → SQL + params
//
// Every node carries the name of its value kind, but the kind that matters
// for composition is the static one: Expr[K] is a Node whose kind is
// fixed by the constructor that produced it. Operators and functions are
// declared with their operand and result kinds as type arguments, so
//
//	Concat.Apply(vec, query)
//
// fails to compile when query is not an Expr[sqltype.TSVector]. No node is
// ever inspected at runtime to decide whether a composition is legal.
//
// DYNAMIC CONSTRUCTION:
//
// NewInfix, NewCall, NewColumn and NewLiteral build the same nodes from
// untyped input (query definitions loaded from files). They check kinds
// explicitly and fail before any node is created, returning *KindError.
// The typed API never reaches those checks.
//
// SEALED INTERFACE:
//
// Node uses the marker method pattern; only this package defines node
// types. Renderers and describers switch exhaustively over:
//
//	*Column, *Literal, *Infix, *Call, *Grouped
//
// IMMUTABILITY:
//
// Nodes have no setters and copy their argument slices, so a tree can be
// rendered concurrently from any number of goroutines.
package expr
