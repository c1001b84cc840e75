package node

import "time"

// GetNode references a column, optionally qualified through a chain of
// nested records (As-wrapped pipelines). Get("l", "state") means: look up
// the nested record "l" in scope, then its "state" field.
type GetNode struct {
	Name  string
	Inner *GetNode // non-nil when this Get qualifies through a nested record
}

func (*GetNode) node() {}

// Get builds a (possibly qualified) column reference. Get("x") refers to
// column "x" of the enclosing pipeline node's input; Get("a", "b", "c")
// is sugar for peeling nested record "a", then "b", then field "c".
func Get(path ...string) *GetNode {
	if len(path) == 0 {
		panic("node: Get requires at least one name")
	}
	g := &GetNode{Name: path[0]}
	for _, p := range path[1:] {
		g = &GetNode{Name: p, Inner: g}
	}
	return g
}

// Col is a builder-style alias for Get, offered alongside the plain
// constructor form for callers who prefer reading a pipeline as a chain
// of method-like calls: Select(tail, Col("person_id")).
func Col(path ...string) *GetNode { return Get(path...) }

// VarNode is a free query parameter, or a reference to a value supplied
// by an enclosing Bind once resolved.
type VarNode struct {
	Name string
}

func (*VarNode) node() {}

// Var constructs a named query parameter reference.
func Var(name string) *VarNode { return &VarNode{Name: name} }

// LitNode is a literal scalar value.
type LitNode struct {
	Value any
}

func (*LitNode) node() {}

// Lit converts a host primitive (bool, any integer/float kind, string,
// time.Time, or nil) into a literal node. Passing an already-built Node
// returns it unchanged, so call sites that accept "either a Node or a Go
// value" can always route through Lit.
func Lit(value any) Node {
	if n, ok := value.(Node); ok {
		return n
	}
	switch value.(type) {
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, string, time.Time, nil:
		return &LitNode{Value: value}
	default:
		return &LitNode{Value: value}
	}
}

// FunNode is a scalar function call, or an infix/prefix operator after
// name normalization (== -> =, != -> <>, && -> and, || -> or, ! -> not).
type FunNode struct {
	Name string
	Args []Node
}

func (*FunNode) node() {}

// Fun builds a scalar function call. Unknown function names are never an
// error at this layer: the serializer emits them verbatim.
func Fun(name string, args ...Node) *FunNode {
	return &FunNode{Name: normalizeOperator(name), Args: args}
}

// AggNode is an aggregate function call, valid only where the enclosing
// scope's input type is a GroupRow (the output of Group/Partition).
type AggNode struct {
	Name   string
	Args   []Node
	Filter Node // optional FILTER (WHERE ...) condition
}

func (*AggNode) node() {}

// Agg builds an aggregate function call. Agg("count") with no arguments
// is COUNT(*).
func Agg(name string, args ...Node) *AggNode {
	if err := checkArity(name, len(args)); err != nil {
		panic(err)
	}
	return &AggNode{Name: name, Args: args}
}

// WithFilter returns a copy of the aggregate with a FILTER (WHERE cond)
// clause attached. AggNode is immutable, so this never mutates a.
func (a *AggNode) WithFilter(cond Node) *AggNode {
	cp := *a
	cp.Filter = cond
	return &cp
}

// SortOrder is the direction of a Sort node.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// NullsOrder places NULLs first or last, or leaves it dialect-default.
type NullsOrder int

const (
	NullsDefault NullsOrder = iota
	NullsFirst
	NullsLast
)

// SortNode wraps a value expression with ordering direction, used as an
// Order key.
type SortNode struct {
	Value Node
	By    SortOrder
	Nulls NullsOrder
}

func (*SortNode) node() {}

// Sort builds an explicit sort key.
func Sort(value Node, by SortOrder, nulls NullsOrder) *SortNode {
	return &SortNode{Value: value, By: by, Nulls: nulls}
}

// Asc is sugar for an ascending Sort key with dialect-default null order.
func Asc(value Node) *SortNode { return Sort(value, Ascending, NullsDefault) }

// Desc is sugar for a descending Sort key with dialect-default null order.
func Desc(value Node) *SortNode { return Sort(value, Descending, NullsDefault) }

// normalizeOperator rewrites source-language operator spellings to their
// SQL equivalents.
func normalizeOperator(name string) string {
	switch name {
	case "==":
		return "="
	case "!=":
		return "<>"
	case "&&":
		return "and"
	case "||":
		return "or"
	case "!":
		return "not"
	default:
		return name
	}
}

// Eq, Ne, Lt, Le, Gt, Ge, And, Or and Not are free-function sugar over
// Fun for the common comparison and boolean operators; any other
// operator or function always remains reachable through Fun directly.
func Eq(a, b Node) Node  { return Fun("=", a, b) }
func Ne(a, b Node) Node  { return Fun("<>", a, b) }
func Lt(a, b Node) Node  { return Fun("<", a, b) }
func Le(a, b Node) Node  { return Fun("<=", a, b) }
func Gt(a, b Node) Node  { return Fun(">", a, b) }
func Ge(a, b Node) Node  { return Fun(">=", a, b) }
func Not(a Node) Node    { return Fun("not", a) }
func IsNull(a Node) Node { return Fun("is null", a) }
func Like(a, b Node) Node { return Fun("like", a, b) }

// Add, Sub, Mul, Div and Mod are free-function sugar over Fun for the
// arithmetic operators (spec.md §8 example 6 uses Get("n")+1 / Get("f")*
// Get("n")); unlike Eq/Ne/... these names already match their SQL
// spelling, so Fun needs no renaming for them.
func Add(a, b Node) Node { return Fun("+", a, b) }
func Sub(a, b Node) Node { return Fun("-", a, b) }
func Mul(a, b Node) Node { return Fun("*", a, b) }
func Div(a, b Node) Node { return Fun("/", a, b) }
func Mod(a, b Node) Node { return Fun("%", a, b) }

// Concat builds a string-concatenation call, rendered per the
// dialect's StringConcatOp ("||" infix or a CONCAT(...) call; see
// pkg/dialect and internal/translate).
func Concat(args ...Node) Node { return Fun("concat", args...) }

// And AND-combines two or more conditions; a single condition is returned
// unwrapped.
func And(conds ...Node) Node {
	if len(conds) == 1 {
		return conds[0]
	}
	return Fun("and", conds...)
}

// Or OR-combines two or more conditions; a single condition is returned
// unwrapped.
func Or(conds ...Node) Node {
	if len(conds) == 1 {
		return conds[0]
	}
	return Fun("or", conds...)
}

// Method sugar on GetNode, the most common left-hand operand in practice
//.
func (g *GetNode) Eq(other Node) Node  { return Eq(g, other) }
func (g *GetNode) Ne(other Node) Node  { return Ne(g, other) }
func (g *GetNode) Lt(other Node) Node  { return Lt(g, other) }
func (g *GetNode) Le(other Node) Node  { return Le(g, other) }
func (g *GetNode) Gt(other Node) Node  { return Gt(g, other) }
func (g *GetNode) Ge(other Node) Node  { return Ge(g, other) }
func (g *GetNode) Like(other Node) Node { return Like(g, other) }
func (g *GetNode) IsNull() Node         { return IsNull(g) }
func (g *GetNode) Add(other Node) Node  { return Add(g, other) }
func (g *GetNode) Sub(other Node) Node  { return Sub(g, other) }
func (g *GetNode) Mul(other Node) Node  { return Mul(g, other) }
func (g *GetNode) Div(other Node) Node  { return Div(g, other) }
