package clause

// Ident is a column reference with an optional qualifier chain (a
// table alias, or a nested-row path for Get(name, inner) chains
// flattened during translation).
type Ident struct {
	Qualifier []string
	Name      string
}

func (*Ident) clauseNode() {}
func (*Ident) exprClause() {}

// LitKind distinguishes how a Lit's Value should be formatted.
type LitKind int

const (
	LitNumber LitKind = iota
	LitString
	LitBool
	LitNull
	LitDate
)

// Lit is a literal value.
type Lit struct {
	Kind  LitKind
	Value any
}

func (*Lit) clauseNode() {}
func (*Lit) exprClause() {}

// Var is a free (unbound) query parameter, rendered per the dialect's
// VariableStyle. A Var that the resolver bound to an enclosing Bind
// becomes a correlated Ident instead; only unbound Vars survive to the
// clause tree.
type Var struct {
	Name string
}

func (*Var) clauseNode() {}
func (*Var) exprClause() {}

// Fun is a function call. Template, when non-empty, is a serializer
// template containing "?" placeholders consumed positionally by Args
// (for operators rendered as infix syntax, e.g. "? || ?" for string
// concatenation); when empty the call renders as Name(args...).
type Fun struct {
	Name     string
	Args     []Expr
	Distinct bool
	Template string
}

func (*Fun) clauseNode() {}
func (*Fun) exprClause() {}

// Op is a normalized infix/prefix operator.
type Op struct {
	Name string
	Args []Expr
}

func (*Op) clauseNode() {}
func (*Op) exprClause() {}

// Agg is an aggregate function call, optionally filtered and/or
// windowed.
type Agg struct {
	Name     string
	Args     []Expr
	Distinct bool
	Filter   Expr
	Over     *WindowDef
}

func (*Agg) clauseNode() {}
func (*Agg) exprClause() {}

// When is one WHEN ... THEN ... arm of a Case.
type When struct {
	Condition Expr
	Result    Expr
}

// Case is a CASE expression, optionally with a leading operand (the
// "simple CASE" form) and an optional ELSE.
type Case struct {
	Operand Expr
	Whens   []When
	Else    Expr
}

func (*Case) clauseNode() {}
func (*Case) exprClause() {}

// SortDirection is ASC or DESC.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// NullsPosition places NULLs first, last, or leaves it
// dialect-default.
type NullsPosition int

const (
	NullsDefault NullsPosition = iota
	NullsFirst
	NullsLast
)

// Sort is one ORDER BY (or PARTITION BY ... ORDER BY) item.
type Sort struct {
	Value     Expr
	Direction SortDirection
	Nulls     NullsPosition
}

func (*Sort) clauseNode() {}

// Subquery is a parenthesized SELECT used in a scalar/boolean
// expression position (e.g. Fun("in", Get(...), subquery)), as
// opposed to Derived, which is the FROM/JOIN-position form of the
// same thing.
type Subquery struct {
	Select *Select
}

func (*Subquery) clauseNode() {}
func (*Subquery) exprClause() {}
