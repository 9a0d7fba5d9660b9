package expr

// Describe returns n as a tree of maps, slices and scalars suitable for
// ir.MarshalCanonical. The shape mirrors the query definition format
// accepted by the compiler package:
//
//	{"kind": "bool", "op": "Matches", "symbol": "@@", "left": {...}, "right": {...}}
//	{"kind": "float4", "call": "ts_rank", "args": [{...}, {...}]}
//	{"kind": "tsvector", "column": "body", "table": "docs"}
//	{"kind": "text", "literal": "the cat sat"}
//	{"kind": "tsvector", "group": {...}}
func Describe(n Node) map[string]any {
	if n == nil {
		return nil
	}

	switch node := n.base().(type) {
	case *Column:
		out := map[string]any{"kind": node.kind, "column": node.name}
		if node.table != "" {
			out["table"] = node.table
		}
		return out
	case *Literal:
		return map[string]any{"kind": node.kind, "literal": node.value}
	case *Infix:
		return map[string]any{
			"kind":   node.sig.Result,
			"op":     node.sig.Name,
			"symbol": node.sig.Symbol,
			"left":   Describe(node.left),
			"right":  Describe(node.right),
		}
	case *Call:
		args := make([]any, len(node.args))
		for i, arg := range node.args {
			args[i] = Describe(arg)
		}
		return map[string]any{"kind": node.sig.Result, "call": node.sig.Name, "args": args}
	case *Grouped:
		return map[string]any{"kind": node.KindName(), "group": Describe(node.inner)}
	default:
		return nil
	}
}

// Walk calls fn for n and every descendant in pre-order. Grouping nodes
// are visited like any other node.
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}
	b := n.base()
	fn(b)

	switch node := b.(type) {
	case *Infix:
		Walk(node.left, fn)
		Walk(node.right, fn)
	case *Call:
		for _, arg := range node.args {
			Walk(arg, fn)
		}
	case *Grouped:
		Walk(node.inner, fn)
	}
}
