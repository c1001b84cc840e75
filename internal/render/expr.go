package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sequel/sequel/internal/clause"
	"github.com/go-sequel/sequel/pkg/dialect"
)

// ctx threads the dialect, the parameter tracker, and the current
// Pretty/indent state through both the clause-level and
// expression-level renderers.
type ctx struct {
	d       *dialect.Dialect
	params  *tracker
	pretty  bool
	indent  int
}

func (c *ctx) quote(name string) string { return c.d.QuoteIdentifier(name) }

func (c *ctx) qualifiedName(qualifier []string, name string) string {
	parts := make([]string, 0, len(qualifier)+1)
	for _, q := range qualifier {
		parts = append(parts, c.quote(q))
	}
	parts = append(parts, c.quote(name))
	return strings.Join(parts, ".")
}

// expr renders any expression clause inline. Exactly one of these
// cases fires per call since clause.Expr implementations are mutually
// exclusive.
func (c *ctx) expr(e clause.Expr) string {
	switch v := e.(type) {
	case nil:
		return ""
	case *clause.Ident:
		return c.qualifiedName(v.Qualifier, v.Name)
	case *clause.Lit:
		return c.lit(v)
	case *clause.Var:
		return c.params.placeholder(v.Name)
	case *clause.Fun:
		return c.fun(v)
	case *clause.Op:
		return c.op(v)
	case *clause.Agg:
		return c.agg(v)
	case *clause.Case:
		return c.caseExpr(v)
	case *clause.Partition:
		return "OVER (" + c.partition(v) + ")"
	case *clause.Subquery:
		return "(" + c.selectInline(v.Select) + ")"
	case *clause.As:
		return c.asExpr(v)
	case *clause.Kw:
		return v.Text
	default:
		return fmt.Sprintf("/* unsupported expr %T */", e)
	}
}

func (c *ctx) asExpr(v *clause.As) string {
	inner := c.expr(v.Expr)
	if !c.d.HasAsKeyword {
		return inner + " " + c.quote(v.Name)
	}
	return inner + " AS " + c.quote(v.Name)
}

func (c *ctx) lit(v *clause.Lit) string {
	switch v.Kind {
	case clause.LitNull:
		return "NULL"
	case clause.LitBool:
		return c.d.FormatBoolean(v.Value.(bool))
	case clause.LitString:
		return c.quoteString(v.Value.(string))
	case clause.LitDate:
		return c.dateLiteral(v.Value)
	default:
		return c.number(v.Value)
	}
}

func (c *ctx) quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (c *ctx) dateLiteral(v any) string {
	var text string
	switch t := v.(type) {
	case time.Time:
		text = t.Format("2006-01-02 15:04:05")
	default:
		text = fmt.Sprint(v)
	}
	if c.d.DateLiteralPrefix != "" {
		return c.d.DateLiteralPrefix + c.quoteString(text)
	}
	return c.quoteString(text)
}

func (c *ctx) number(v any) string {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func (c *ctx) list(exprs []clause.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = c.expr(e)
	}
	return strings.Join(parts, ", ")
}

func (c *ctx) fun(v *clause.Fun) string {
	if v.Template != "" {
		return c.template(v.Template, v.Args)
	}
	distinct := ""
	if v.Distinct {
		distinct = "DISTINCT "
	}
	return strings.ToUpper(v.Name) + "(" + distinct + c.list(v.Args) + ")"
}

// template substitutes "?" placeholders in tmpl, positionally, with
// args, used for operators a dialect renders as infix syntax rather
// than a function call (e.g. string concatenation).
func (c *ctx) template(tmpl string, args []clause.Expr) string {
	var b strings.Builder
	i := 0
	for _, r := range tmpl {
		if r == '?' && i < len(args) {
			b.WriteString(c.expr(args[i]))
			i++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (c *ctx) op(v *clause.Op) string {
	switch {
	case v.Name == "not" && len(v.Args) == 1:
		return "NOT " + c.expr(v.Args[0])
	case v.Name == "is null" && len(v.Args) == 1:
		return c.expr(v.Args[0]) + " IS NULL"
	case len(v.Args) == 1:
		return strings.ToUpper(v.Name) + " " + c.expr(v.Args[0])
	default:
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = c.expr(a)
		}
		return "(" + strings.Join(parts, " "+strings.ToUpper(v.Name)+" ") + ")"
	}
}

func (c *ctx) agg(v *clause.Agg) string {
	distinct := ""
	if v.Distinct {
		distinct = "DISTINCT "
	}
	s := strings.ToUpper(v.Name) + "(" + distinct + c.list(v.Args) + ")"
	if v.Filter != nil {
		s += " FILTER (WHERE " + c.expr(v.Filter) + ")"
	}
	if v.Over != nil {
		s += " OVER " + c.windowRef(v.Over)
	}
	return s
}

func (c *ctx) windowRef(w *clause.WindowDef) string {
	if w.Name != "" {
		return c.quote(w.Name)
	}
	return "(" + c.partition(w.Spec) + ")"
}

func (c *ctx) partition(p *clause.Partition) string {
	var parts []string
	if len(p.Keys) > 0 {
		parts = append(parts, "PARTITION BY "+c.list(p.Keys))
	}
	if p.Order != nil && len(p.Order.Items) > 0 {
		parts = append(parts, "ORDER BY "+c.orderItems(p.Order))
	}
	if p.Frame != nil {
		parts = append(parts, c.frame(p.Frame))
	}
	return strings.Join(parts, " ")
}

func (c *ctx) frame(f *clause.Frame) string {
	mode := "ROWS"
	switch f.Mode {
	case clause.FrameRange:
		mode = "RANGE"
	case clause.FrameGroups:
		mode = "GROUPS"
	}
	s := mode + " BETWEEN " + c.frameBound(f.Start) + " AND " + c.frameBound(f.End)
	if f.Exclusion != clause.ExcludeNone {
		if !c.d.HasFrameExclusion {
			return s
		}
		s += " EXCLUDE " + excludeText(f.Exclusion)
	}
	return s
}

func excludeText(e clause.FrameExclusion) string {
	switch e {
	case clause.ExcludeCurrentRow:
		return "CURRENT ROW"
	case clause.ExcludeGroup:
		return "GROUP"
	case clause.ExcludeTies:
		return "TIES"
	default:
		return "NO OTHERS"
	}
}

func (c *ctx) frameBound(b clause.FrameBound) string {
	switch b.Kind {
	case clause.BoundUnboundedPreceding:
		return "UNBOUNDED PRECEDING"
	case clause.BoundUnboundedFollowing:
		return "UNBOUNDED FOLLOWING"
	case clause.BoundCurrentRow:
		return "CURRENT ROW"
	case clause.BoundPreceding:
		return c.expr(b.Offset) + " PRECEDING"
	default:
		return c.expr(b.Offset) + " FOLLOWING"
	}
}

func (c *ctx) caseExpr(v *clause.Case) string {
	var b strings.Builder
	b.WriteString("CASE")
	if v.Operand != nil {
		b.WriteString(" " + c.expr(v.Operand))
	}
	for _, w := range v.Whens {
		b.WriteString(" WHEN " + c.expr(w.Condition) + " THEN " + c.expr(w.Result))
	}
	if v.Else != nil {
		b.WriteString(" ELSE " + c.expr(v.Else))
	}
	b.WriteString(" END")
	return b.String()
}

func (c *ctx) sort(s *clause.Sort) string {
	dir := "ASC"
	if s.Direction == clause.Descending {
		dir = "DESC"
	}
	out := c.expr(s.Value) + " " + dir
	switch s.Nulls {
	case clause.NullsFirst:
		out += " NULLS FIRST"
	case clause.NullsLast:
		out += " NULLS LAST"
	}
	return out
}

func (c *ctx) orderItems(o *clause.OrderBy) string {
	parts := make([]string, len(o.Items))
	for i, s := range o.Items {
		parts[i] = c.sort(s)
	}
	return strings.Join(parts, ", ")
}
