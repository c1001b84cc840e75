package resolve

import (
	"github.com/go-sequel/sequel/pkg/dialect"
	"github.com/go-sequel/sequel/pkg/node"
)

// TableLookup is the catalog capability the resolver needs: given an
// unqualified table name, return its declared columns in order. Kept
// as a narrow local interface (rather than importing pkg/catalog
// directly) so pkg/catalog can depend on internal/resolve without a
// cycle; *catalog.Catalog satisfies this.
type TableLookup interface {
	LookupTable(name string) (columns []string, ok bool)
}

// GetBinding records what a Get resolved to: the root-first path of
// field names it traverses from its input row type.
type GetBinding struct {
	Path []string
}

// VarBinding records what a Var resolved to.
type VarBinding struct {
	Bound  bool
	Depth  int
	Binder *node.BindNode
}

// Result is the resolver's output: row types and reference bindings
// keyed by node identity.
type Result struct {
	Types map[node.Node]*RowType
	Gets  map[*node.GetNode]*GetBinding
	Vars  map[*node.VarNode]*VarBinding
}

// Resolver assigns row types and reference bindings to a Semantic IR
// graph against one catalog and dialect.
type Resolver struct {
	tables  TableLookup
	dialect *dialect.Dialect
}

// New builds a Resolver bound to tables and d.
func New(tables TableLookup, d *dialect.Dialect) *Resolver {
	return &Resolver{tables: tables, dialect: d}
}

// Resolve runs the resolver over root, returning its annotations or
// the first error encountered.
func (r *Resolver) Resolve(root node.Node) (*Result, error) {
	res := &Result{
		Types: map[node.Node]*RowType{},
		Gets:  map[*node.GetNode]*GetBinding{},
		Vars:  map[*node.VarNode]*VarBinding{},
	}
	rs := &resolveState{Resolver: r, result: res}
	if _, err := rs.pipeline(root, newScope()); err != nil {
		return nil, err
	}
	return res, nil
}

type resolveState struct {
	*Resolver
	result *Result
}

// pipeline resolves a pipeline node's row type in post-order,
// memoizing per node identity.
func (rs *resolveState) pipeline(n node.Node, sc *scope) (*RowType, error) {
	if rt, ok := rs.result.Types[n]; ok {
		return rt, nil
	}
	rt, err := rs.pipelineUncached(n, sc)
	if err != nil {
		return nil, err
	}
	rs.result.Types[n] = rt
	return rt, nil
}

func (rs *resolveState) pipelineUncached(n node.Node, sc *scope) (*RowType, error) {
	switch v := n.(type) {
	case *node.FromNode:
		return rs.resolveFrom(v, sc)
	case *node.WhereNode:
		return rs.resolveWhere(v, sc)
	case *node.SelectNode:
		return rs.resolveSelect(v, sc)
	case *node.DefineNode:
		return rs.resolveDefine(v, sc)
	case *node.JoinNode:
		return rs.resolveJoin(v, sc)
	case *node.AppendNode:
		return rs.resolveAppend(v, sc)
	case *node.IterateNode:
		return rs.resolveIterate(v, sc)
	case *node.WithNode:
		return rs.resolveWith(v, sc)
	case *node.WithExternalNode:
		return rs.resolveWithExternal(v, sc)
	case *node.BindNode:
		return rs.resolveBind(v, sc)
	case *node.GroupNode:
		return rs.resolveGroup(v, sc)
	case *node.PartitionNode:
		return rs.resolvePartition(v, sc)
	case *node.OrderNode:
		return rs.pipeline(v.Tail(), sc)
	case *node.LimitNode:
		return rs.resolveLimit(v, sc)
	case *node.AsNode:
		return rs.resolveAs(v, sc)
	default:
		panic("resolve: unhandled pipeline node type")
	}
}

func (rs *resolveState) resolveFrom(v *node.FromNode, sc *scope) (*RowType, error) {
	if v.Table == "" {
		return Empty(), nil
	}
	if rt, ok := sc.recur[v.Table]; ok {
		return rt, nil
	}
	if rt, ok := sc.ctes[v.Table]; ok {
		return rt, nil
	}
	cols, ok := rs.tables.LookupTable(v.Table)
	if !ok {
		return nil, &UnknownTableError{Name: v.Table}
	}
	fields := make([]Field, len(cols))
	for i, c := range cols {
		fields[i] = Field{Name: c, Kind: Scalar}
	}
	return NewRow(fields), nil
}

func (rs *resolveState) resolveWhere(v *node.WhereNode, sc *scope) (*RowType, error) {
	input, err := rs.pipeline(v.Tail(), sc)
	if err != nil {
		return nil, err
	}
	if err := rs.scalar(v.Cond, input, sc); err != nil {
		return nil, err
	}
	return input, nil
}

func (rs *resolveState) resolveSelect(v *node.SelectNode, sc *scope) (*RowType, error) {
	input, err := rs.pipeline(v.Tail(), sc)
	if err != nil {
		return nil, err
	}
	fields := make([]Field, len(v.Items))
	for i, item := range v.Items {
		f, err := rs.itemField(item, input, sc)
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	return NewRow(fields), nil
}

func (rs *resolveState) resolveDefine(v *node.DefineNode, sc *scope) (*RowType, error) {
	input, err := rs.pipeline(v.Tail(), sc)
	if err != nil {
		return nil, err
	}
	out := input
	if f, ok := v.Tail().(*node.FromNode); ok && f.Table == "" {
		// The unit row's synthetic "_" column does not carry through a
		// Define: only the defined columns remain.
		out = NewRow(nil)
	}
	for _, item := range v.Items {
		f, err := rs.itemField(item, input, sc)
		if err != nil {
			return nil, err
		}
		out = out.With(f)
	}
	return out, nil
}

// itemField resolves one Select/Define/Group/Partition/Bind item's
// value and returns the Field it contributes under item.Label.
func (rs *resolveState) itemField(item node.Item, input *RowType, sc *scope) (Field, error) {
	if as, ok := item.Value.(*node.AsNode); ok {
		if isPipelineNode(as.Input) {
			nested, err := rs.pipeline(as.Input, sc)
			if err != nil {
				return Field{}, err
			}
			return Field{Name: item.Label, Kind: Nested, Nested: nested}, nil
		}
		if err := rs.scalar(as.Input, input, sc); err != nil {
			return Field{}, err
		}
		return Field{Name: item.Label, Kind: Scalar}, nil
	}
	if err := rs.scalar(item.Value, input, sc); err != nil {
		return Field{}, err
	}
	return Field{Name: item.Label, Kind: Scalar}, nil
}

func (rs *resolveState) resolveJoin(v *node.JoinNode, sc *scope) (*RowType, error) {
	if v.Lateral && !rs.dialect.HasLateral {
		return nil, &DialectCapabilityError{Feature: "LATERAL"}
	}
	left, err := rs.pipeline(v.Tail(), sc)
	if err != nil {
		return nil, err
	}
	var joineeSc *scope
	if v.Lateral {
		joineeSc = sc.withOuter(left)
	} else {
		joineeSc = newScope()
		joineeSc.ctes, joineeSc.recur = sc.ctes, sc.recur
	}
	right, err := rs.pipeline(v.Joinee, joineeSc)
	if err != nil {
		return nil, err
	}
	combined := Concat(left, right)
	if err := rs.scalar(v.On, combined, sc); err != nil {
		return nil, err
	}
	return combined, nil
}

func (rs *resolveState) resolveAppend(v *node.AppendNode, sc *scope) (*RowType, error) {
	lead, err := rs.pipeline(v.Tail(), sc)
	if err != nil {
		return nil, err
	}
	branches := make([]*RowType, len(v.Others))
	for i, o := range v.Others {
		b, err := rs.pipeline(o, sc)
		if err != nil {
			return nil, err
		}
		branches[i] = b
	}
	rt, _ := Intersect(lead, branches...)
	return rt, nil
}

func (rs *resolveState) resolveIterate(v *node.IterateNode, sc *scope) (*RowType, error) {
	seed, err := rs.pipeline(v.Tail(), sc)
	if err != nil {
		return nil, err
	}
	label, ok := recurLabel(v.Iterator)
	if !ok {
		return nil, &RecursionShapeError{Seed: seed.Names()}
	}
	innerSc := sc.defineRecur(label, seed)
	// v.Iterator's terminal As(label, ...) is a recursion marker, not a
	// genuine nested-record wrapper; compare seed's shape
	// against its unwrapped Input so the documented shape (seed columns
	// directly, not nested under label) lines up.
	shapeNode := v.Iterator
	if as, ok := v.Iterator.(*node.AsNode); ok {
		shapeNode = as.Input
	}
	iter, err := rs.pipeline(shapeNode, innerSc)
	if err != nil {
		return nil, err
	}
	if !sameShape(seed, iter) {
		return nil, &RecursionShapeError{Seed: seed.Names(), Iterator: iter.Names()}
	}
	if shapeNode != v.Iterator {
		// Still resolve and cache the full wrapper node so every node in
		// the graph carries a Resolved annotation, even
		// though nothing downstream reads it: the translator bypasses
		// AsNode entirely when walking a pipeline (internal/translate).
		if _, err := rs.pipeline(v.Iterator, innerSc); err != nil {
			return nil, err
		}
	}
	return seed, nil
}

// recurLabel finds the trailing As(label, ...) that names an
// Iterate's recursive binding.
func recurLabel(n node.Node) (string, bool) {
	if as, ok := n.(*node.AsNode); ok {
		return as.Name, true
	}
	if p, ok := n.(node.Pipeline); ok {
		return recurLabel(p.Tail())
	}
	return "", false
}

func sameShape(a, b *RowType) bool {
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		if a.Fields[i].Name != b.Fields[i].Name {
			return false
		}
	}
	return true
}

func (rs *resolveState) resolveWith(v *node.WithNode, sc *scope) (*RowType, error) {
	cur := sc
	for _, c := range v.CTEs {
		rt, err := rs.pipeline(c.Query, cur)
		if err != nil {
			return nil, err
		}
		cur = cur.defineCTE(c.Label, rt)
	}
	return rs.pipeline(v.Tail(), cur)
}

func (rs *resolveState) resolveWithExternal(v *node.WithExternalNode, sc *scope) (*RowType, error) {
	cur := sc
	for _, c := range v.CTEs {
		rt, err := rs.pipeline(c.Query, cur)
		if err != nil {
			return nil, err
		}
		cur = cur.defineCTE(c.Label, rt)
	}
	return rs.pipeline(v.Tail(), cur)
}

func (rs *resolveState) resolveBind(v *node.BindNode, sc *scope) (*RowType, error) {
	labels := make([]string, len(v.Args))
	for i, a := range v.Args {
		labels[i] = a.Label
	}
	for _, a := range v.Args {
		// Bind's argument values are resolved against the outer row
		// type in scope (they are drawn from the enclosing pipeline),
		// not the inner query's own input.
		if err := rs.scalar(a.Value, sc.outer, sc); err != nil {
			return nil, err
		}
	}
	innerSc := sc.pushBind(v, labels)
	return rs.pipeline(v.Tail(), innerSc)
}

func (rs *resolveState) resolveGroup(v *node.GroupNode, sc *scope) (*RowType, error) {
	input, err := rs.pipeline(v.Tail(), sc)
	if err != nil {
		return nil, err
	}
	fields := make([]Field, len(v.Keys))
	for i, k := range v.Keys {
		f, err := rs.itemField(k, input, sc)
		if err != nil {
			return nil, err
		}
		fields[i] = f
	}
	keys := NewRow(fields)
	keys.AggregateScope = input
	return keys, nil
}

func (rs *resolveState) resolvePartition(v *node.PartitionNode, sc *scope) (*RowType, error) {
	input, err := rs.pipeline(v.Tail(), sc)
	if err != nil {
		return nil, err
	}
	for _, k := range v.Keys {
		if err := rs.scalar(k.Value, input, sc); err != nil {
			return nil, err
		}
	}
	for _, s := range v.OrderBy {
		if err := rs.scalar(s.Value, input, sc); err != nil {
			return nil, err
		}
	}
	out := *input
	out.AggregateScope = input
	return &out, nil
}

func (rs *resolveState) resolveLimit(v *node.LimitNode, sc *scope) (*RowType, error) {
	input, err := rs.pipeline(v.Tail(), sc)
	if err != nil {
		return nil, err
	}
	if v.Offset != nil {
		if err := rs.scalar(v.Offset, nil, sc); err != nil {
			return nil, err
		}
	}
	if err := rs.scalar(v.Count, nil, sc); err != nil {
		return nil, err
	}
	if v.WithTies && !rs.dialect.HasWithTies {
		return nil, &DialectCapabilityError{Feature: "WITH TIES"}
	}
	return input, nil
}

func (rs *resolveState) resolveAs(v *node.AsNode, sc *scope) (*RowType, error) {
	if isPipelineNode(v.Input) {
		inner, err := rs.pipeline(v.Input, sc)
		if err != nil {
			return nil, err
		}
		return NewRow([]Field{{Name: v.Name, Kind: Nested, Nested: inner}}), nil
	}
	// As over a scalar expression is a plain alias; it contributes no
	// row-type nesting of its own. Resolved as a degenerate one-field
	// row so As can still appear wherever a pipeline is structurally
	// expected (e.g. As("l", From("location")) vs. Select(..., As("n",
	// Get("name")))); the translator distinguishes the two by context.
	if err := rs.scalar(v.Input, nil, sc); err != nil {
		return nil, err
	}
	return NewRow([]Field{{Name: v.Name, Kind: Scalar}}), nil
}

// scalar resolves a scalar expression node against input (the row
// type Get/Var/Agg references bind against). input may be nil when
// resolving a value that must not reference row columns, such as a
// Limit count; a Bind argument is resolved with the outer scope's row
// passed in this slot.
func (rs *resolveState) scalar(n node.Node, input *RowType, sc *scope) error {
	switch v := n.(type) {
	case *node.GetNode:
		_, field, path, err := rs.resolveGetChain(v, input, sc)
		if err != nil {
			return err
		}
		_ = field
		rs.result.Gets[v] = &GetBinding{Path: path}
		return nil
	case *node.VarNode:
		if binder, depth, ok := sc.lookupVar(v.Name); ok {
			rs.result.Vars[v] = &VarBinding{Bound: true, Depth: depth, Binder: binder}
		} else {
			rs.result.Vars[v] = &VarBinding{Bound: false}
		}
		return nil
	case *node.LitNode:
		return nil
	case *node.FunNode:
		for _, a := range v.Args {
			if err := rs.scalarOrSubquery(a, input, sc); err != nil {
				return err
			}
		}
		return nil
	case *node.AggNode:
		if input == nil || input.AggregateScope == nil {
			return &AggregateContextError{Name: v.Name}
		}
		for _, a := range v.Args {
			if err := rs.scalar(a, input.AggregateScope, sc); err != nil {
				return err
			}
		}
		if v.Filter != nil {
			return rs.scalar(v.Filter, input.AggregateScope, sc)
		}
		return nil
	case *node.SortNode:
		return rs.scalar(v.Value, input, sc)
	case *node.AsNode:
		// As wrapping a scalar (a projection alias) used inline in an
		// expression position.
		return rs.scalar(v.Input, input, sc)
	default:
		panic("resolve: unhandled scalar node type")
	}
}

// scalarOrSubquery handles Fun arguments, which may themselves be full
// pipelines, e.g. Fun("in", Get(...), From(...)|>Select(...)).
func (rs *resolveState) scalarOrSubquery(n node.Node, input *RowType, sc *scope) error {
	if isPipelineNode(n) {
		_, err := rs.pipeline(n, sc.withOuter(input))
		return err
	}
	return rs.scalar(n, input, sc)
}

func (rs *resolveState) resolveGetChain(g *node.GetNode, input *RowType, sc *scope) (*RowType, *Field, []string, error) {
	if g.Inner == nil {
		f, ok := input.Lookup(g.Name)
		if !ok {
			return nil, nil, nil, &CannotFindError{Name: g.Name}
		}
		if f.Kind == Ambiguous {
			return nil, nil, nil, &AmbiguousError{Name: g.Name, Sources: f.Sources}
		}
		return input, f, []string{g.Name}, nil
	}
	_, innerField, innerPath, err := rs.resolveGetChain(g.Inner, input, sc)
	if err != nil {
		return nil, nil, nil, err
	}
	if innerField.Kind != Nested {
		return nil, nil, nil, &OrphanReferenceError{Name: g.Name}
	}
	f, ok := innerField.Nested.Lookup(g.Name)
	if !ok {
		return nil, nil, nil, &CannotFindError{Name: g.Name, Path: innerPath}
	}
	if f.Kind == Ambiguous {
		return nil, nil, nil, &AmbiguousError{Name: g.Name, Sources: f.Sources}
	}
	return innerField.Nested, f, append(innerPath, g.Name), nil
}

func isPipelineNode(n node.Node) bool {
	switch n.(type) {
	case *node.FromNode, *node.WhereNode, *node.SelectNode, *node.DefineNode,
		*node.JoinNode, *node.AppendNode, *node.IterateNode, *node.WithNode,
		*node.WithExternalNode, *node.BindNode, *node.GroupNode, *node.PartitionNode,
		*node.OrderNode, *node.LimitNode:
		return true
	case *node.AsNode:
		return isPipelineNode(n.(*node.AsNode).Input)
	default:
		return false
	}
}
