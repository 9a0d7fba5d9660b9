package expr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/roach88/tsexpr/internal/ir"
	"github.com/roach88/tsexpr/internal/sqltype"
)

// Placeholder selects how literals appear in rendered SQL.
type Placeholder int

const (
	// Inline writes literals into the SQL text. Use for display only.
	Inline Placeholder = iota
	// Dollar writes $1, $2, ... (PostgreSQL).
	Dollar
	// Question writes ? for every parameter.
	Question
)

// ParsePlaceholder maps "inline", "dollar" and "question" to a Placeholder.
func ParsePlaceholder(s string) (Placeholder, error) {
	switch s {
	case "inline", "":
		return Inline, nil
	case "dollar":
		return Dollar, nil
	case "question":
		return Question, nil
	default:
		return Inline, fmt.Errorf("unknown placeholder style %q", s)
	}
}

// Param is a statement argument produced by parameterized rendering.
type Param struct {
	Value any    `json:"value"`
	Kind  string `json:"kind"`
	OID   uint32 `json:"oid"`
}

// Renderer walks expression trees into SQL text.
//
// Infix operators render as "left symbol right". PostgreSQL gives the
// text-search operators equal precedence and left associativity, so an
// infix right operand is parenthesized; a left operand never needs it.
//
// CRITICAL: with Dollar or Question placeholders, literal values are
// never interpolated into the SQL text.
type Renderer struct {
	Placeholder Placeholder

	// Registry resolves parameter OIDs. Nil means sqltype.Default.
	Registry *sqltype.Registry
}

// Render returns the SQL for n and, for parameterized styles, the
// arguments in placeholder order.
func (r Renderer) Render(n Node) (string, []Param, error) {
	w := &sqlWriter{renderer: r}
	if r.Registry == nil {
		w.renderer.Registry = sqltype.Default
	}
	if err := w.write(n); err != nil {
		return "", nil, err
	}
	return w.sb.String(), w.params, nil
}

// SQL renders n with literals inlined.
func SQL(n Node) (string, error) {
	sql, _, err := Renderer{Placeholder: Inline}.Render(n)
	return sql, err
}

// stringOf backs Node.String. Rendering only fails on malformed trees,
// which the constructors never produce.
func stringOf(n Node) string {
	sql, err := SQL(n)
	if err != nil {
		return fmt.Sprintf("<invalid expression: %v>", err)
	}
	return sql
}

type sqlWriter struct {
	renderer Renderer
	sb       strings.Builder
	params   []Param
}

func (w *sqlWriter) write(n Node) error {
	if n == nil {
		return ErrNilNode
	}

	switch node := n.base().(type) {
	case *Column:
		if node.table != "" {
			w.sb.WriteString(QuoteIdent(node.table))
			w.sb.WriteByte('.')
		}
		w.sb.WriteString(QuoteIdent(node.name))
		return nil
	case *Literal:
		return w.writeLiteral(node)
	case *Infix:
		if err := w.write(node.left); err != nil {
			return fmt.Errorf("%s left: %w", node.sig.Name, err)
		}
		w.sb.WriteByte(' ')
		w.sb.WriteString(node.sig.Symbol)
		w.sb.WriteByte(' ')
		right := node.right
		if _, nested := baseOf(right).(*Infix); nested {
			right = group(right.base())
		}
		if err := w.write(right); err != nil {
			return fmt.Errorf("%s right: %w", node.sig.Name, err)
		}
		return nil
	case *Call:
		w.sb.WriteString(node.sig.Name)
		w.sb.WriteByte('(')
		for i, arg := range node.args {
			if i > 0 {
				w.sb.WriteString(", ")
			}
			if err := w.write(arg); err != nil {
				return fmt.Errorf("%s arg %d: %w", node.sig.Name, i+1, err)
			}
		}
		w.sb.WriteByte(')')
		return nil
	case *Grouped:
		w.sb.WriteByte('(')
		if err := w.write(node.inner); err != nil {
			return err
		}
		w.sb.WriteByte(')')
		return nil
	default:
		return fmt.Errorf("unsupported node type: %T", n)
	}
}

// baseOf unwraps typed views, passing nil through.
func baseOf(n Node) Node {
	if n == nil {
		return nil
	}
	return n.base()
}

func (w *sqlWriter) writeLiteral(l *Literal) error {
	if w.renderer.Placeholder == Inline {
		w.sb.WriteString(InlineLiteral(l.value, l.kind))
		return nil
	}

	wt, err := w.renderer.Registry.Lookup(l.kind)
	if err != nil {
		return fmt.Errorf("bind literal: %w", err)
	}
	native, err := ir.Native(l.value)
	if err != nil {
		return fmt.Errorf("bind literal: %w", err)
	}
	w.params = append(w.params, Param{Value: native, Kind: l.kind, OID: wt.OID})

	if w.renderer.Placeholder == Dollar {
		w.sb.WriteByte('$')
		w.sb.WriteString(strconv.Itoa(len(w.params)))
	} else {
		w.sb.WriteByte('?')
	}
	return nil
}

// InlineLiteral renders v as a SQL literal of the given kind.
// Text is quoted; tsvector and tsquery literals carry an explicit cast.
func InlineLiteral(v ir.Value, kind string) string {
	switch val := v.(type) {
	case ir.String:
		quoted := QuoteString(string(val))
		if kind == "" || kind == sqltype.NameOf[sqltype.Text]() {
			return quoted
		}
		return quoted + "::" + kind
	case ir.Int:
		return strconv.FormatInt(int64(val), 10)
	case ir.Bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	default:
		return "NULL"
	}
}

// QuoteString quotes s as a standard SQL string literal, doubling any
// embedded single quotes.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

var plainIdent = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// QuoteIdent returns name unchanged when it is a plain lower-case
// identifier and double-quoted otherwise.
func QuoteIdent(name string) string {
	if plainIdent.MatchString(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
