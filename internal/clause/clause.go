package clause

// Clause is the base marker for every syntactic IR value. Clauses are
// immutable once built.
type Clause interface {
	clauseNode()
}

// Expr is a clause usable in a scalar/boolean-valued position: a
// projection item, a WHERE/HAVING/ON condition, a function argument.
type Expr interface {
	Clause
	exprClause()
}

// TableRef is a clause usable in a FROM or JOIN position.
type TableRef interface {
	Clause
	tableRefClause()
}

// Kw is a bare keyword or symbol token the serializer emits verbatim
// ("*", "DEFAULT", "CURRENT ROW"), used where a full Expr would be
// overkill.
type Kw struct {
	Text string
}

func (*Kw) clauseNode() {}
func (*Kw) exprClause() {}

// Note is a non-emitting annotation carried on the tree for
// diagnostics — e.g. the linker recording which Append branch columns
// were dropped. The serializer ignores it.
type Note struct {
	Text string
}

func (*Note) clauseNode() {}

// As wraps an expression with an output alias. Table-position aliases
// are carried on the TableRef values themselves (Table.Alias,
// Derived.Alias); As is for projection-list and CTE-name aliasing.
type As struct {
	Expr Expr
	Name string
}

func (*As) clauseNode() {}
func (*As) exprClause() {}
