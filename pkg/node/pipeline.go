package node

// FromNode is the root of a pipeline: either a catalog table lookup, or
// (when Table == "") the synthetic one-row, one-column "unit row" used as
// the seed of a pipeline with no table source.
type FromNode struct {
	Table string
}

func (*FromNode) node() {}

// From starts a pipeline from a catalog table. From("") is the unit-row
// source; use FromNil for readability at call sites.
func From(table string) *FromNode { return &FromNode{Table: table} }

// FromNil is sugar for From(""): a single row with no real columns.
func FromNil() *FromNode { return &FromNode{} }

// WhereNode filters its input by a boolean condition.
type WhereNode struct {
	base
	Cond Node
}

func (*WhereNode) node() {}

// Where filters tail by cond. Successive Where nodes AND-combine, exactly
// as one Where with an And(...) condition would.
func Where(tail Node, cond Node) *WhereNode {
	return &WhereNode{base: base{tail}, Cond: cond}
}

// SelectNode closes the current projection, replacing the visible column
// set with exactly its items.
type SelectNode struct {
	base
	Items []Item
}

func (*SelectNode) node() {}

// Select projects tail down to items. Each item is either a bare
// expression (labeled by its default) or an As-wrapped expression
// (labeled explicitly). Select panics with *DuplicateLabelError if two
// items share a label.
func Select(tail Node, items ...Node) *SelectNode {
	return &SelectNode{base: base{tail}, Items: mustBuildItems("Select", items)}
}

// DefineNode adds new columns to, or replaces existing columns of, its
// input, preserving column order.
type DefineNode struct {
	base
	Items []Item
}

func (*DefineNode) node() {}

// Define adds or overwrites columns of tail. A label matching an existing
// column replaces it in place; a new label is appended. Over the unit row
// (FromNil), the synthetic "_" column is dropped.
func Define(tail Node, items ...Node) *DefineNode {
	return &DefineNode{base: base{tail}, Items: mustBuildItems("Define", items)}
}

// JoinNode combines tail with joinee's row set under an ON condition.
type JoinNode struct {
	base
	Joinee   Node
	On       Node
	Left     bool
	Optional bool
	Lateral  bool
}

func (*JoinNode) node() {}

// JoinOption configures a Join beyond its required tail/joinee/on.
type JoinOption func(*JoinNode)

// Left marks a Join as LEFT JOIN.
func Left() JoinOption { return func(j *JoinNode) { j.Left = true } }

// OptionalJoin hints to the linker that this join may be pruned entirely
// if nothing downstream references a column from joinee.
func OptionalJoin() JoinOption { return func(j *JoinNode) { j.Optional = true } }

// LateralJoin marks the joinee as a LATERAL subquery that may reference
// columns of tail.
func LateralJoin() JoinOption { return func(j *JoinNode) { j.Lateral = true } }

// Join combines tail with joinee's rows under the on condition.
func Join(tail, joinee, on Node, opts ...JoinOption) *JoinNode {
	j := &JoinNode{base: base{tail}, Joinee: joinee, On: on}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// LeftJoin is sugar for Join with the Left flag preset.
func LeftJoin(tail, joinee, on Node, opts ...JoinOption) *JoinNode {
	return Join(tail, joinee, on, append([]JoinOption{Left()}, opts...)...)
}

// CrossJoin is sugar for Join with an always-true ON condition.
func CrossJoin(tail, joinee Node, opts ...JoinOption) *JoinNode {
	return Join(tail, joinee, Lit(true), opts...)
}

// AppendNode concatenates tail with one or more sibling branches
// (UNION ALL), intersecting their column sets.
type AppendNode struct {
	base
	Others []Node
}

func (*AppendNode) node() {}

// Append concatenates tail with others via UNION ALL.
func Append(tail Node, others ...Node) *AppendNode {
	return &AppendNode{base: base{tail}, Others: others}
}

// IterateNode expresses a recursive pipeline: tail is the seed row set,
// Iterator is the recursive step. Iterator must resolve to the same row
// shape as the seed and
// must terminate in an As node naming the recursive binding, so the
// iterator body can refer back to the previous iteration via
// From(thatName).
type IterateNode struct {
	base
	Iterator Node
}

func (*IterateNode) node() {}

// Iterate builds a WITH RECURSIVE pipeline from a seed and an iterator
// step.
func Iterate(seed, iterator Node) *IterateNode {
	return &IterateNode{base: base{seed}, Iterator: iterator}
}

// CTEItem is one named common table expression inside a With/Over node.
type CTEItem struct {
	Label        string
	Query        Node
	Materialized bool
}

// CTE pairs a label with a pipeline to define a common table expression.
func CTE(label string, query Node) CTEItem { return CTEItem{Label: label, Query: query} }

// AsMaterialized returns a copy of the CTEItem with the MATERIALIZED hint
// set. The hint is rendered as AS MATERIALIZED for every dialect.
func (c CTEItem) AsMaterialized() CTEItem { c.Materialized = true; return c }

// WithNode introduces one or more named subqueries, reachable from the
// rest of the tree (Main) via From(label).
type WithNode struct {
	base
	CTEs []CTEItem
}

func (*WithNode) node() {}

// With attaches named CTEs ahead of main, which may reference them via
// From(label). It panics with *DuplicateLabelError if two CTEs share a
// label.
func With(main Node, ctes ...CTEItem) *WithNode {
	checkCTELabels(ctes)
	return &WithNode{base: base{main}, CTEs: ctes}
}

// Over is With with its arguments reversed, for call sites that read
// better cte-list-first (spec.md §4.4: "Over (alias for With reversal)").
func Over(ctes []CTEItem, main Node) *WithNode {
	checkCTELabels(ctes)
	return &WithNode{base: base{main}, CTEs: ctes}
}

func checkCTELabels(ctes []CTEItem) {
	seen := make(map[string]bool, len(ctes))
	for _, c := range ctes {
		if seen[c.Label] {
			panic(&DuplicateLabelError{Label: c.Label, Path: []string{"With"}})
		}
		seen[c.Label] = true
	}
}

// WithExternalNode is like With, but each CTE is materialized through
// an external handler (e.g. CREATE TEMP TABLE ... AS ...) instead of
// an inline WITH clause.
type WithExternalNode struct {
	base
	CTEs []CTEItem
}

func (*WithExternalNode) node() {}

// WithExternal attaches named CTEs materialized via an external
// handler rather than an inline WITH clause.
func WithExternal(main Node, ctes ...CTEItem) *WithExternalNode {
	checkCTELabels(ctes)
	return &WithExternalNode{base: base{main}, CTEs: ctes}
}

// BindNode makes Args available as Var(label) substitutions inside tail,
// which is typically a correlated subquery or a LATERAL joinee.
type BindNode struct {
	base
	Args []Item
}

func (*BindNode) node() {}

// Bind supplies named values, drawn from the enclosing scope, as Var
// bindings visible inside inner.
func Bind(inner Node, args ...Item) *BindNode {
	checkItemLabels("Bind", args)
	return &BindNode{base: base{inner}, Args: args}
}

func checkItemLabels(kind string, items []Item) {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it.Label] {
			panic(&DuplicateLabelError{Label: it.Label, Path: []string{kind}})
		}
		seen[it.Label] = true
	}
}

// GroupNode collapses tail to one row per distinct combination of Keys
// (or exactly one row, if Keys is empty), exposing a GroupRow scope to
// downstream Agg calls.
type GroupNode struct {
	base
	Keys []Item
}

func (*GroupNode) node() {}

// Group collapses tail by keys. Group(tail) with no keys still produces
// exactly one output row.
func Group(tail Node, keys ...Node) *GroupNode {
	return &GroupNode{base: base{tail}, Keys: mustBuildItems("Group", keys)}
}

// FrameMode is the windowing unit for a Partition frame.
type FrameMode int

const (
	FrameNone FrameMode = iota
	FrameRows
	FrameRange
	FrameGroups
)

// FrameExclusion is the EXCLUDE clause of a window frame.
type FrameExclusion int

const (
	ExcludeNone FrameExclusion = iota
	ExcludeCurrentRow
	ExcludeGroup
	ExcludeTies
	ExcludeNoOthers
)

// FrameBound is one edge of a window frame.
type FrameBound struct {
	Preceding    bool // true for PRECEDING, false for FOLLOWING
	Unbounded    bool
	CurrentRow   bool
	Offset       Node // nil when Unbounded or CurrentRow
}

// Frame describes a PARTITION's window frame clause.
type Frame struct {
	Mode     FrameMode
	Start    FrameBound
	End      FrameBound
	Exclude  FrameExclusion
}

// PartitionNode preserves tail's rows (unlike Group) while exposing a
// GroupRow view, keyed by Keys and ordered by OrderBy, for window
// aggregate references.
type PartitionNode struct {
	base
	Keys    []Item
	OrderBy []*SortNode
	Frame   *Frame
}

func (*PartitionNode) node() {}

// PartitionOption configures a Partition beyond its required tail.
type PartitionOption func(*PartitionNode)

// PartitionBy sets the partition's grouping keys.
func PartitionBy(keys ...Node) PartitionOption {
	return func(p *PartitionNode) { p.Keys = mustBuildItems("Partition", keys) }
}

// OrderBy sets the partition's window ordering.
func OrderBy(sorts ...*SortNode) PartitionOption {
	return func(p *PartitionNode) { p.OrderBy = sorts }
}

// WithFrame sets the partition's window frame.
func WithFrame(f Frame) PartitionOption {
	return func(p *PartitionNode) { p.Frame = &f }
}

// Partition builds a windowing scope over tail.
func Partition(tail Node, opts ...PartitionOption) *PartitionNode {
	p := &PartitionNode{base: base{tail}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OrderNode fixes the row order of tail.
type OrderNode struct {
	base
	By []*SortNode
}

func (*OrderNode) node() {}

// Order sorts tail by the given keys.
func Order(tail Node, by ...*SortNode) *OrderNode {
	return &OrderNode{base: base{tail}, By: by}
}

// LimitNode bounds the number of rows (and optionally skips a prefix).
type LimitNode struct {
	base
	Offset   Node
	Count    Node
	WithTies bool
}

func (*LimitNode) node() {}

// LimitOption configures a Limit beyond its required count.
type LimitOption func(*LimitNode)

// WithOffset sets the number of leading rows to skip.
func WithOffset(offset Node) LimitOption {
	return func(l *LimitNode) { l.Offset = offset }
}

// WithTies includes rows tied with the last row under Order (requires a
// dialect with HasWithTies set; see pkg/dialect).
func WithTies() LimitOption {
	return func(l *LimitNode) { l.WithTies = true }
}

// Limit bounds tail to at most count rows.
func Limit(tail Node, count Node, opts ...LimitOption) *LimitNode {
	l := &LimitNode{base: base{tail}, Count: count}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AsNode renames its Input's exposed label. Over a pipeline, it produces
// a nested record (Get(outer, inner) to traverse back in); over a scalar
// expression, it is simply a SQL column alias. Which behavior applies is
// decided by the resolver from Input's resolved type.
type AsNode struct {
	Name  string
	Input Node
}

func (*AsNode) node() {}

// Tail lets AsNode participate as a Pipeline when Input is a pipeline
// node (e.g. As("l", From("location")) used as a Join joinee).
func (a *AsNode) Tail() Node { return a.Input }

// As labels input with name.
func As(name string, input Node) *AsNode { return &AsNode{Name: name, Input: input} }
