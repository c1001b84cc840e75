package clause

// Projection is one item of a SELECT's projection list.
type Projection struct {
	Expr  Expr
	Alias string // empty when the expression needs no AS
}

// GroupBy is a SELECT's GROUP BY clause.
type GroupBy struct {
	Keys []Expr
}

// OrderBy is an ORDER BY clause (also reused inside Partition for
// PARTITION BY ... ORDER BY).
type OrderBy struct {
	Items []*Sort
}

// Limit is a SELECT's LIMIT/OFFSET/FETCH clause; rendering form is
// chosen by the dialect's LimitStyle.
type Limit struct {
	Count    Expr
	Offset   Expr
	WithTies bool
}

// CTE is one entry of a WITH clause.
type CTE struct {
	Name         string
	Columns      []string
	Select       *Select
	Materialized *bool // nil: no hint; else true/false
}

// With is a SELECT's leading WITH clause.
type With struct {
	Recursive bool
	CTEs      []*CTE
}

// SetOp is the set operator joining a Compound's branches. Only UnionAll
// is produced today.
type SetOp int

const (
	UnionAll SetOp = iota
)

// Compound is a sequence of SELECTs combined by a set operator,
// produced by Append.
type Compound struct {
	Op       SetOp
	Selects  []*Select
	OrderBy  *OrderBy
	Limit    *Limit
}

func (*Compound) clauseNode()    {}
func (*Compound) tableRefClause() {}

// Select is a single SELECT statement: the clause tree's central
// value, with slots in SQL's fixed grammar order (spec.md §3's "Clause
// tree (C3)").
type Select struct {
	With       *With
	Distinct   bool
	Top        Expr // SELECT TOP n, used only when the dialect's LimitStyle is Top
	Projection []Projection
	From       TableRef
	Joins      []*Join
	Where      Expr
	Group      *GroupBy
	Having     Expr
	Windows    []*WindowDef
	Order      *OrderBy
	Limit      *Limit

	// Alias is set when this Select is wrapped as a FROM-position
	// subquery reference elsewhere in the tree; Select itself doesn't
	// carry an alias slot in standalone (top-level) position.
	Alias string
}

func (*Select) clauseNode()    {}
func (*Select) tableRefClause() {}

// Recursive wraps a recursive CTE body: WITH RECURSIVE name AS (seed
// UNION ALL iterator) SELECT ... FROM name.
type Recursive struct {
	Name    string
	Columns []string
	Seed    *Select
	Step    *Select
}

func (*Recursive) clauseNode() {}

// TempTable is a CREATE TEMP TABLE ... AS ... statement, emitted by the
// WithExternal handler extension point ahead of the main
// SELECT, once per defined table, in declaration order.
type TempTable struct {
	Name   string
	Select *Select
}

func (*TempTable) clauseNode() {}

// Program is the top-level compiled unit: zero or more WithExternal
// temp-table statements followed by the main query.
type Program struct {
	TempTables []*TempTable
	Query      *Select // the Recursive case is wrapped: see Recursive
	Recursive  *Recursive

	// Compound holds a bare top-level UNION ALL (an Append with no
	// further pipeline stage on top of it), rendered without an
	// unnecessary wrapping SELECT. Mutually exclusive with Query.
	Compound *Compound
}
