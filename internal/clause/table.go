package clause

// Table is a real table reference, aliased uniquely by the translator
//.
type Table struct {
	Schema []string
	Name   string
	Alias  string
}

func (*Table) clauseNode()    {}
func (*Table) tableRefClause() {}

// Derived is a subquery used in a FROM or JOIN position. Inner is
// usually a *Select, but may be a *Compound (a parenthesized UNION ALL
// wrapped so a further pipeline stage can qualify its columns).
type Derived struct {
	Inner   TableRef
	Alias   string
	Lateral bool
}

func (*Derived) clauseNode()    {}
func (*Derived) tableRefClause() {}

// Values is a VALUES(...) table reference (an inline row constructor).
type Values struct {
	Rows  [][]Expr
	Alias string
	// Columns names the projected columns, required when the dialect
	// needs them to label an otherwise-anonymous VALUES row set.
	Columns []string
}

func (*Values) clauseNode()    {}
func (*Values) tableRefClause() {}

// JoinKind is the kind of JOIN.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	CrossJoin
)

// Join is one JOIN clause appended to a SELECT's FROM list.
type Join struct {
	Kind    JoinKind
	Table   TableRef
	On      Expr // nil for CrossJoin
	Lateral bool
}

func (*Join) clauseNode() {}
