package compiler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/tsexpr/internal/expr"
	"github.com/roach88/tsexpr/internal/ir"
	"github.com/roach88/tsexpr/internal/log"
	"github.com/roach88/tsexpr/internal/sqltype"
	"github.com/roach88/tsexpr/internal/textsearch"
)

// Mode controls how errors are handled by CompileAll.
type Mode int

const (
	// FailFast stops on the first error encountered.
	FailFast Mode = iota
	// CollectAll compiles every definition and reports all errors.
	CollectAll
)

// Compiled pairs a definition with its expression tree.
type Compiled struct {
	Definition Definition
	Node       expr.Node
}

// Compiler builds expression trees from definitions. The zero value
// uses sqltype.Default.
type Compiler struct {
	Registry *sqltype.Registry
}

// New returns a Compiler validating kinds against r.
func New(r *sqltype.Registry) *Compiler {
	return &Compiler{Registry: r}
}

func (c *Compiler) registry() *sqltype.Registry {
	if c == nil || c.Registry == nil {
		return sqltype.Default
	}
	return c.Registry
}

// CompileNode compiles a single node tree. Error paths start at "expr".
func (c *Compiler) CompileNode(def map[string]any) (expr.Node, error) {
	return c.compile(def, "expr")
}

// CompileDefinition compiles def and checks its result against
// ExpectKind when one is given.
func (c *Compiler) CompileDefinition(def Definition) (*Compiled, error) {
	if def.Name == "" {
		return nil, withPos(failf("name", "definition name is required"), def.Pos)
	}
	if def.Expr == nil {
		return nil, withPos(failf(def.Name+".expr", "expr is required"), def.Pos)
	}

	n, err := c.compile(def.Expr, def.Name+".expr")
	if err != nil {
		return nil, withPos(err, def.Pos)
	}

	if def.ExpectKind != "" {
		if _, err := c.registry().Lookup(def.ExpectKind); err != nil {
			return nil, withPos(fail(def.Name+".expect_kind", err), def.Pos)
		}
		if n.KindName() != def.ExpectKind {
			return nil, withPos(&CompileError{
				Field:   def.Name,
				Message: fmt.Sprintf("result is %s, expected %s", n.KindName(), def.ExpectKind),
				Err:     expr.ErrKindMismatch,
			}, def.Pos)
		}
	}

	log.Debugf("compiled %s -> %s: %s", def.Name, n.KindName(), n)
	return &Compiled{Definition: def, Node: n}, nil
}

// CompileAll validates defs as a set and compiles each of them.
// Validation failures are returned without compiling anything.
func (c *Compiler) CompileAll(defs []Definition, mode Mode) ([]Compiled, []error) {
	if verrs := Validate(defs, c.registry()); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, v := range verrs {
			errs[i] = v
		}
		if mode == FailFast {
			return nil, errs[:1]
		}
		return nil, errs
	}

	var (
		out  []Compiled
		errs []error
	)
	for _, def := range defs {
		compiled, err := c.CompileDefinition(def)
		if err != nil {
			errs = append(errs, err)
			if mode == FailFast {
				return out, errs
			}
			continue
		}
		out = append(out, *compiled)
	}
	return out, errs
}

func (c *Compiler) compile(raw any, path string) (expr.Node, error) {
	if raw == nil {
		return nil, failf(path, "missing node")
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, failf(path, "node must be a mapping, got %T", raw)
	}

	disc, err := discriminator(m, path)
	if err != nil {
		return nil, err
	}
	n, err := c.compileShape(disc, m, path)
	if err != nil {
		return nil, err
	}

	if raw, ok := m[keyKind]; ok {
		if kind, _ := raw.(string); kind != n.KindName() {
			return nil, &CompileError{
				Field:   path + "." + keyKind,
				Message: fmt.Sprintf("node is %s, declared %v", n.KindName(), raw),
				Err:     expr.ErrKindMismatch,
			}
		}
	}
	return n, nil
}

func (c *Compiler) compileShape(disc string, m map[string]any, path string) (expr.Node, error) {
	switch disc {
	case keyCall:
		return c.compileCall(m, path)
	case keyOp:
		return c.compileOp(m, path)
	case keyColumn:
		return c.compileColumn(m, path)
	case keyText:
		s, ok := m[keyText].(string)
		if !ok {
			return nil, failf(path+"."+keyText, "text must be a string, got %T", m[keyText])
		}
		return c.literal(path, sqltype.NameOf[sqltype.Text](), ir.NewString(s))
	case keyInt:
		v, err := ir.FromNative(m[keyInt])
		if err != nil {
			return nil, fail(path+"."+keyInt, err)
		}
		i, ok := v.(ir.Int)
		if !ok {
			return nil, failf(path+"."+keyInt, "int must be an integer, got %T", m[keyInt])
		}
		return c.literal(path, sqltype.NameOf[sqltype.Integer](), i)
	case keyBool:
		b, ok := m[keyBool].(bool)
		if !ok {
			return nil, failf(path+"."+keyBool, "bool must be true or false, got %T", m[keyBool])
		}
		return c.literal(path, sqltype.NameOf[sqltype.Bool](), ir.NewBool(b))
	case keyLiteral:
		kind, err := stringField(m, keyKind, path)
		if err != nil {
			return nil, err
		}
		v, err := ir.FromNative(m[keyLiteral])
		if err != nil {
			return nil, fail(path+"."+keyLiteral, err)
		}
		return c.literal(path, kind, v)
	case keyGroup:
		inner, err := c.compile(m[keyGroup], path+"."+keyGroup)
		if err != nil {
			return nil, err
		}
		n, err := expr.NewGroup(inner)
		if err != nil {
			return nil, fail(path, err)
		}
		return n, nil
	}
	return nil, failf(path, "unhandled node %q", disc)
}

func (c *Compiler) compileCall(m map[string]any, path string) (expr.Node, error) {
	name, err := stringField(m, keyCall, path)
	if err != nil {
		return nil, err
	}
	sig, err := textsearch.LookupFunc(name)
	if err != nil {
		return nil, fail(path+"."+keyCall, err)
	}

	var list []any
	if raw, ok := m[keyArgs]; ok && raw != nil {
		list, ok = raw.([]any)
		if !ok {
			return nil, failf(path+"."+keyArgs, "args must be a list, got %T", raw)
		}
	}

	args := make([]expr.Node, len(list))
	for i, raw := range list {
		n, err := c.compile(raw, fmt.Sprintf("%s.%s[%d]", path, keyArgs, i))
		if err != nil {
			return nil, err
		}
		args[i] = n
	}

	n, err := expr.NewCall(sig, args...)
	if err != nil {
		return nil, fail(path, err)
	}
	return n, nil
}

func (c *Compiler) compileOp(m map[string]any, path string) (expr.Node, error) {
	op, err := stringField(m, keyOp, path)
	if err != nil {
		return nil, err
	}
	left, err := c.compile(m[keyLeft], path+"."+keyLeft)
	if err != nil {
		return nil, err
	}
	right, err := c.compile(m[keyRight], path+"."+keyRight)
	if err != nil {
		return nil, err
	}

	sig, err := textsearch.LookupOperator(op, left.KindName(), right.KindName())
	if err != nil {
		return nil, fail(path, err)
	}
	if raw, ok := m[keySymbol]; ok && raw != sig.Symbol {
		return nil, failf(path+"."+keySymbol, "%s is %q, not %v", sig.Name, sig.Symbol, raw)
	}
	n, err := expr.NewInfix(sig, left, right)
	if err != nil {
		return nil, fail(path, err)
	}
	return n, nil
}

func (c *Compiler) compileColumn(m map[string]any, path string) (expr.Node, error) {
	name, err := stringField(m, keyColumn, path)
	if err != nil {
		return nil, err
	}
	kind, err := stringField(m, keyKind, path)
	if err != nil {
		return nil, err
	}
	var table string
	if raw, ok := m[keyTable]; ok {
		if table, ok = raw.(string); !ok {
			return nil, failf(path+"."+keyTable, "table must be a string, got %T", raw)
		}
	}

	n, err := expr.NewColumn(c.registry(), table, name, kind)
	if err != nil {
		return nil, fail(path, err)
	}
	return n, nil
}

func (c *Compiler) literal(path, kind string, v ir.Value) (expr.Node, error) {
	n, err := expr.NewLiteral(c.registry(), kind, v)
	if err != nil {
		return nil, fail(path, err)
	}
	return n, nil
}

// discriminator returns the single key that decides the node's shape and
// rejects keys that shape does not accept.
func discriminator(m map[string]any, path string) (string, error) {
	var found []string
	for _, d := range discriminators {
		if _, ok := m[d]; ok {
			found = append(found, d)
		}
	}
	switch len(found) {
	case 0:
		return "", failf(path, "node needs one of: %s", strings.Join(discriminators, ", "))
	case 1:
	default:
		return "", failf(path, "ambiguous node has %s", strings.Join(found, ", "))
	}

	allowed := allowedKeys[found[0]]
	for _, k := range ir.SortedKeys(m) {
		if !slices.Contains(allowed, k) {
			return "", failf(path+"."+k, "unexpected key in %s node", found[0])
		}
	}
	return found[0], nil
}

func stringField(m map[string]any, key, path string) (string, error) {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return "", failf(path+"."+key, "%s must be a non-empty string", key)
	}
	return s, nil
}
