package render

import (
	"strings"

	"github.com/go-sequel/sequel/internal/clause"
	"github.com/go-sequel/sequel/pkg/dialect"
)

// nl writes a line break plus indentation when pretty, or a single
// space when compact; every clause-boundary join in this file goes
// through it so Pretty toggles whitespace only, never content
//.
func (c *ctx) nl() string {
	if !c.pretty {
		return " "
	}
	return "\n" + strings.Repeat("  ", c.indent)
}

func (c *ctx) nested() *ctx {
	cp := *c
	cp.indent = c.indent + 1
	return &cp
}

func (c *ctx) program(p *clause.Program) string {
	var stmts []string
	for _, tt := range p.TempTables {
		stmts = append(stmts, c.tempTable(tt))
	}
	switch {
	case p.Compound != nil:
		stmts = append(stmts, c.compound(p.Compound))
	case p.Recursive != nil:
		stmts = append(stmts, c.recursive(p.Recursive, p.Query))
	default:
		stmts = append(stmts, c.selectInline(p.Query))
	}
	return strings.Join(stmts, ";"+c.nl())
}

func (c *ctx) tempTable(tt *clause.TempTable) string {
	return "CREATE TEMP TABLE " + c.quote(tt.Name) + " AS (" + c.selectInline(tt.Select) + ")"
}

func (c *ctx) recursive(r *clause.Recursive, outer *clause.Select) string {
	cols := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		cols[i] = c.quote(col)
	}
	body := "WITH RECURSIVE " + c.quote(r.Name) + "(" + strings.Join(cols, ", ") + ")" +
		" AS (" + c.selectInline(r.Seed) + " UNION ALL " + c.selectInline(r.Step) + ")"
	return body + c.nl() + c.selectInline(outer)
}

func (c *ctx) compound(cp *clause.Compound) string {
	parts := make([]string, len(cp.Selects))
	for i, s := range cp.Selects {
		parts[i] = c.selectInline(s)
	}
	out := strings.Join(parts, c.nl()+"UNION ALL"+c.nl())
	if cp.OrderBy != nil {
		out += c.nl() + "ORDER BY " + c.orderItems(cp.OrderBy)
	}
	if cp.Limit != nil {
		out += c.nl() + c.limitClause(cp.Limit)
	}
	return out
}

// selectInline renders sel as a standalone SELECT statement (no
// trailing alias: callers wrap that on at the TableRef level via
// tableRef/derived).
func (c *ctx) selectInline(sel *clause.Select) string {
	inner := c.nested()
	var b strings.Builder

	if sel.With != nil && len(sel.With.CTEs) > 0 {
		b.WriteString(c.withClause(sel.With))
		b.WriteString(c.nl())
	}

	b.WriteString("SELECT")
	if sel.Distinct {
		b.WriteString(" DISTINCT")
	}
	top := sel.Top
	if top == nil && c.d.LimitStyle == dialect.Top && sel.Limit != nil && sel.Limit.Offset == nil {
		top = sel.Limit.Count
	}
	if top != nil {
		b.WriteString(" TOP " + c.expr(top))
	}
	b.WriteString(c.nl())
	b.WriteString(inner.projectionList(sel.Projection))

	if sel.From != nil {
		b.WriteString(c.nl())
		b.WriteString("FROM " + c.tableRef(sel.From))
	}
	for _, j := range sel.Joins {
		b.WriteString(c.nl())
		b.WriteString(c.join(j))
	}
	if sel.Where != nil {
		b.WriteString(c.nl())
		b.WriteString("WHERE " + c.expr(sel.Where))
	}
	if sel.Group != nil {
		b.WriteString(c.nl())
		b.WriteString("GROUP BY " + c.list(sel.Group.Keys))
	}
	if sel.Having != nil {
		b.WriteString(c.nl())
		b.WriteString("HAVING " + c.expr(sel.Having))
	}
	if len(sel.Windows) > 0 {
		b.WriteString(c.nl())
		b.WriteString(c.windowClause(sel.Windows))
	}
	if sel.Order != nil {
		b.WriteString(c.nl())
		b.WriteString("ORDER BY " + c.orderItems(sel.Order))
	}
	if sel.Limit != nil && c.d.LimitStyle != dialect.Top {
		b.WriteString(c.nl())
		b.WriteString(c.limitClause(sel.Limit))
	}
	return b.String()
}

func (c *ctx) projectionList(items []clause.Projection) string {
	parts := make([]string, len(items))
	for i, p := range items {
		s := c.expr(p.Expr)
		if p.Alias != "" {
			if c.d.HasAsKeyword {
				s += " AS " + c.quote(p.Alias)
			} else {
				s += " " + c.quote(p.Alias)
			}
		}
		parts[i] = s
	}
	return strings.Join(parts, ","+c.nl())
}

func (c *ctx) withClause(w *clause.With) string {
	kw := "WITH"
	if w.Recursive {
		kw = "WITH RECURSIVE"
	}
	ctes := make([]string, len(w.CTEs))
	for i, cte := range w.CTEs {
		ctes[i] = c.cte(cte)
	}
	return kw + " " + strings.Join(ctes, ", ")
}

func (c *ctx) cte(cte *clause.CTE) string {
	cols := make([]string, len(cte.Columns))
	for i, col := range cte.Columns {
		cols[i] = c.quote(col)
	}
	head := c.quote(cte.Name)
	if len(cols) > 0 {
		head += "(" + strings.Join(cols, ", ") + ")"
	}
	head += " AS "
	if cte.Materialized != nil {
		if *cte.Materialized {
			head += "MATERIALIZED "
		} else {
			head += "NOT MATERIALIZED "
		}
	}
	return head + "(" + c.selectInline(cte.Select) + ")"
}

func (c *ctx) limitClause(l *clause.Limit) string {
	switch c.d.LimitStyle {
	case dialect.OffsetFetch:
		var parts []string
		if l.Offset != nil {
			parts = append(parts, "OFFSET "+c.expr(l.Offset)+" ROWS")
		}
		fetch := "FETCH NEXT " + c.expr(l.Count) + " ROWS"
		if l.WithTies {
			fetch += " WITH TIES"
		} else {
			fetch += " ONLY"
		}
		parts = append(parts, fetch)
		return strings.Join(parts, " ")
	default: // LimitOffset
		s := "LIMIT " + c.expr(l.Count)
		if l.Offset != nil {
			s += " OFFSET " + c.expr(l.Offset)
		}
		return s
	}
}

func (c *ctx) windowClause(defs []*clause.WindowDef) string {
	parts := make([]string, 0, len(defs))
	for _, w := range defs {
		if w.Name == "" {
			continue
		}
		parts = append(parts, c.quote(w.Name)+" AS ("+c.partition(w.Spec)+")")
	}
	if len(parts) == 0 {
		return ""
	}
	return "WINDOW " + strings.Join(parts, ", ")
}

func (c *ctx) tableRef(t clause.TableRef) string {
	switch v := t.(type) {
	case *clause.Table:
		name := c.tableName(v.Schema, v.Name)
		if v.Alias == "" {
			return name
		}
		if c.d.HasAsKeyword {
			return name + " AS " + c.quote(v.Alias)
		}
		return name + " " + c.quote(v.Alias)
	case *clause.Derived:
		return c.derived(v)
	case *clause.Compound:
		return "(" + c.compound(v) + ")"
	case *clause.Values:
		return c.values(v)
	default:
		return ""
	}
}

func (c *ctx) tableName(schema []string, name string) string {
	parts := make([]string, 0, len(schema)+1)
	for _, s := range schema {
		parts = append(parts, c.quote(s))
	}
	parts = append(parts, c.quote(name))
	return strings.Join(parts, ".")
}

func (c *ctx) derived(d *clause.Derived) string {
	inner := "(" + c.tableRefInline(d.Inner) + ")"
	lateral := ""
	if d.Lateral && c.d.HasLateral {
		lateral = "LATERAL "
	}
	if c.d.HasAsKeyword {
		return lateral + inner + " AS " + c.quote(d.Alias)
	}
	return lateral + inner + " " + c.quote(d.Alias)
}

// tableRefInline renders the statement inside a Derived's parentheses:
// a *Select renders as a bare SELECT (not re-wrapped), a *Compound as
// its UNION ALL body.
func (c *ctx) tableRefInline(t clause.TableRef) string {
	switch v := t.(type) {
	case *clause.Select:
		return c.selectInline(v)
	case *clause.Compound:
		return c.compound(v)
	default:
		return c.tableRef(t)
	}
}

func (c *ctx) values(v *clause.Values) string {
	rows := make([]string, len(v.Rows))
	for i, row := range v.Rows {
		rows[i] = "(" + c.list(row) + ")"
	}
	out := "(VALUES " + strings.Join(rows, ", ") + ")"
	if v.Alias == "" {
		return out
	}
	alias := c.quote(v.Alias)
	if len(v.Columns) > 0 {
		cols := make([]string, len(v.Columns))
		for i, col := range v.Columns {
			cols[i] = c.quote(col)
		}
		alias += "(" + strings.Join(cols, ", ") + ")"
	}
	if c.d.HasAsKeyword {
		return out + " AS " + alias
	}
	return out + " " + alias
}

func (c *ctx) join(j *clause.Join) string {
	kw := "JOIN"
	switch j.Kind {
	case clause.LeftJoin:
		kw = "LEFT JOIN"
	case clause.CrossJoin:
		kw = "CROSS JOIN"
	}
	if j.Lateral && c.d.HasLateral && j.Kind != clause.CrossJoin {
		kw += " LATERAL"
	}
	s := kw + " " + c.tableRefNoLateralPrefix(j)
	if j.On != nil {
		s += " ON " + c.expr(j.On)
	}
	return s
}

// tableRefNoLateralPrefix renders j.Table without re-adding the
// "LATERAL" keyword derived's own renderer would otherwise prepend,
// since join() already placed it right after JOIN per standard SQL
// syntax (JOIN LATERAL (...) AS alias, not JOIN (LATERAL (...)) alias).
func (c *ctx) tableRefNoLateralPrefix(j *clause.Join) string {
	if d, ok := j.Table.(*clause.Derived); ok && d.Lateral {
		cp := *d
		cp.Lateral = false
		return c.tableRef(&cp)
	}
	return c.tableRef(j.Table)
}
