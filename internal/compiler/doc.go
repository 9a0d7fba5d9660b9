// Package compiler turns query definitions written in YAML or CUE into
// expression trees.
//
// It is the dynamically typed counterpart of the generic API in package
// expr: every node is checked against the catalog as it is built and the
// first mismatch aborts compilation with a *CompileError naming the
// offending node by path, e.g. "title_search.expr.left.args[0]".
//
// A definition's expr is a tree of maps. Each map has exactly one
// discriminating key:
//
//	{call: "to_tsvector", args: [...]}
//	{op: "@@", left: {...}, right: {...}}
//	{column: "body", table: "docs", kind: "tsvector"}
//	{text: "fat & rat"}
//	{int: 32}
//	{bool: true}
//	{literal: "fat:2", kind: "tsvector"}
//	{group: {...}}
//
// Operators may be given by symbol ("@@") or name ("Matches"); overloads
// are resolved from the operand kinds.
package compiler
