package translate

import (
	"fmt"

	"github.com/go-sequel/sequel/internal/clause"
	"github.com/go-sequel/sequel/internal/link"
	"github.com/go-sequel/sequel/internal/resolve"
	"github.com/go-sequel/sequel/pkg/dialect"
	"github.com/go-sequel/sequel/pkg/node"
)

// Translator maps a resolved and linked Semantic IR graph to a clause
// tree (C6), deciding subquery boundaries from SQL's fixed grammar
// slot order and generating stable per-name aliases.
type Translator struct {
	types   *resolve.Result
	link    *link.Result
	dialect *dialect.Dialect
	aliases *aliasGen
}

// New builds a Translator over a resolved and linked graph.
func New(types *resolve.Result, lk *link.Result, d *dialect.Dialect) *Translator {
	return &Translator{types: types, link: lk, dialect: d, aliases: newAliasGen()}
}

// Translate runs the pass over root.
func (tr *Translator) Translate(root node.Node) (*clause.Program, error) {
	b, err := tr.translate(root, newTctx())
	if err != nil {
		return nil, err
	}
	names := tr.types.Types[root].Names()
	prog := &clause.Program{TempTables: b.tempTables}
	if b.isBareCompound() {
		prog.Compound = b.compound
		return prog, nil
	}
	sel := tr.finishSelect(b, names)
	prog.Query = sel
	prog.Recursive = b.recursive
	return prog, nil
}

// neededNamesFor looks up the linker's recorded reference set for n's
// own output.
func (tr *Translator) neededNamesFor(n node.Node) []string {
	if a, ok := tr.link.Nodes[n]; ok {
		return a.Refs
	}
	return nil
}

// finishSelect materializes b's projection against names (falling
// back to everything currently in scope) and returns the finished
// *clause.Select.
func (tr *Translator) finishSelect(b *builder, names []string) *clause.Select {
	if len(names) == 0 {
		names = b.env.order
	}
	b.sel.Projection = tr.materializeProjection(b, names)
	return b.sel
}

func (tr *Translator) translate(n node.Node, tc *tctx) (*builder, error) {
	switch v := n.(type) {
	case *node.FromNode:
		return tr.translateFrom(v, tc)
	case *node.WhereNode:
		return tr.translateWhere(v, tc)
	case *node.SelectNode:
		return tr.translateSelect(v, tc)
	case *node.DefineNode:
		return tr.translateDefine(v, tc)
	case *node.JoinNode:
		return tr.translateJoin(v, tc)
	case *node.AppendNode:
		return tr.translateAppend(v, tc)
	case *node.IterateNode:
		return tr.translateIterate(v, tc)
	case *node.WithNode:
		return tr.translateWith(v, tc)
	case *node.WithExternalNode:
		return tr.translateWithExternal(v, tc)
	case *node.BindNode:
		return tr.translateBind(v, tc, nil)
	case *node.GroupNode:
		return tr.translateGroup(v, tc)
	case *node.PartitionNode:
		return tr.translatePartition(v, tc)
	case *node.OrderNode:
		return tr.translateOrder(v, tc)
	case *node.LimitNode:
		return tr.translateLimit(v, tc)
	case *node.AsNode:
		return tr.translate(v.Input, tc)
	default:
		return nil, fmt.Errorf("translate: unhandled pipeline node %T", n)
	}
}

func (tr *Translator) translateFrom(v *node.FromNode, tc *tctx) (*builder, error) {
	if v.Table == "" {
		env := newEnvironment()
		env.set("_", &binding{expr: &clause.Lit{Kind: clause.LitNumber, Value: 1}})
		return &builder{sel: &clause.Select{}, env: env, tc: tc}, nil
	}
	if ref, ok := tc.refs[v.Table]; ok {
		if ref.selfRef {
			tbl := &clause.Table{Name: ref.tableName}
			env := newEnvironment()
			for _, c := range ref.columns {
				env.set(c, &binding{expr: &clause.Ident{Name: c}})
			}
			return &builder{sel: &clause.Select{From: tbl}, env: env, tc: tc, baseName: v.Table}, nil
		}
		alias := tr.aliases.next(v.Table)
		tbl := &clause.Table{Name: ref.tableName, Alias: alias}
		env := newEnvironment()
		for _, c := range ref.columns {
			env.set(c, &binding{expr: &clause.Ident{Qualifier: []string{alias}, Name: c}})
		}
		return &builder{sel: &clause.Select{From: tbl}, env: env, tc: tc, baseName: v.Table}, nil
	}
	alias := tr.aliases.next(v.Table)
	tbl := &clause.Table{Name: v.Table, Alias: alias}
	rt := tr.types.Types[v]
	env := newEnvironment()
	for _, f := range rt.Fields {
		env.set(f.Name, &binding{expr: &clause.Ident{Qualifier: []string{alias}, Name: f.Name}})
	}
	return &builder{sel: &clause.Select{From: tbl}, env: env, tc: tc, baseName: v.Table}, nil
}

func andCombine(a, b clause.Expr) clause.Expr {
	if a == nil {
		return b
	}
	return &clause.Op{Name: "and", Args: []clause.Expr{a, b}}
}

func (tr *Translator) translateWhere(v *node.WhereNode, tc *tctx) (*builder, error) {
	b, err := tr.translate(v.Tail(), tc)
	if err != nil {
		return nil, err
	}
	b = tr.ensureNotCompound(b, tr.neededNamesFor(v.Tail()))
	useHaving := b.sel.Group != nil && exprReferencesAgg(v.Cond)
	target := stageWhere
	if useHaving {
		target = stageHaving
	}
	if target < b.stg {
		b = tr.close(b, tr.neededNamesFor(v.Tail()))
		// Closing drops the old Group scope; re-evaluate against the
		// fresh builder, which can only ever land on a plain WHERE.
		useHaving = false
	}
	cond, err := tr.expr(v.Cond, b.env, b.pendingWindow, tc)
	if err != nil {
		return nil, err
	}
	if useHaving {
		b.sel.Having = andCombine(b.sel.Having, cond)
		b.stg = maxStage(b.stg, stageHaving)
	} else {
		b.sel.Where = andCombine(b.sel.Where, cond)
		b.stg = maxStage(b.stg, stageWhere)
	}
	b.modified = true
	return b, nil
}

func maxStage(a, b stage) stage {
	if a > b {
		return a
	}
	return b
}

func (tr *Translator) translateSelect(v *node.SelectNode, tc *tctx) (*builder, error) {
	b, err := tr.translate(v.Tail(), tc)
	if err != nil {
		return nil, err
	}
	needed := tr.neededNamesFor(v.Tail())
	b = tr.ensureNotCompound(b, needed)
	b = tr.ensureNotSealed(b, needed)
	newEnv := newEnvironment()
	newEnv.aggregateScope = b.env.aggregateScope
	for _, item := range v.Items {
		e, err := tr.itemExpr(item, b.env, b.pendingWindow, tc)
		if err != nil {
			return nil, err
		}
		newEnv.set(item.Label, &binding{expr: e})
	}
	b.env = newEnv
	b.projectionSealed = true
	b.modified = true
	return b, nil
}

func (tr *Translator) translateDefine(v *node.DefineNode, tc *tctx) (*builder, error) {
	b, err := tr.translate(v.Tail(), tc)
	if err != nil {
		return nil, err
	}
	needed := tr.neededNamesFor(v.Tail())
	b = tr.ensureNotCompound(b, needed)
	b = tr.ensureNotSealed(b, needed)
	newEnv := b.env.clone()
	for _, item := range v.Items {
		e, err := tr.itemExpr(item, b.env, b.pendingWindow, tc)
		if err != nil {
			return nil, err
		}
		newEnv.set(item.Label, &binding{expr: e})
	}
	b.env = newEnv
	b.modified = true
	return b, nil
}

func (tr *Translator) translateGroup(v *node.GroupNode, tc *tctx) (*builder, error) {
	b, err := tr.translate(v.Tail(), tc)
	if err != nil {
		return nil, err
	}
	needed := tr.neededNamesFor(v.Tail())
	b = tr.ensureNotCompound(b, needed)
	b = tr.ensureStage(b, stageGroup, b.sel.Group != nil, needed)
	preGroup := b.env
	keyExprs := make([]clause.Expr, len(v.Keys))
	newEnv := newEnvironment()
	for i, k := range v.Keys {
		e, err := tr.itemExpr(k, preGroup, nil, tc)
		if err != nil {
			return nil, err
		}
		keyExprs[i] = e
		newEnv.set(k.Label, &binding{expr: e})
	}
	newEnv.aggregateScope = preGroup
	b.sel.Group = &clause.GroupBy{Keys: keyExprs}
	b.env = newEnv
	b.stg = maxStage(b.stg, stageGroup)
	b.modified = true
	return b, nil
}

func (tr *Translator) translatePartition(v *node.PartitionNode, tc *tctx) (*builder, error) {
	b, err := tr.translate(v.Tail(), tc)
	if err != nil {
		return nil, err
	}
	b = tr.ensureNotCompound(b, tr.neededNamesFor(v.Tail()))
	prePartition := b.env
	keyExprs := make([]clause.Expr, len(v.Keys))
	for i, k := range v.Keys {
		e, err := tr.itemExpr(k, prePartition, nil, tc)
		if err != nil {
			return nil, err
		}
		keyExprs[i] = e
	}
	var order *clause.OrderBy
	if len(v.OrderBy) > 0 {
		items := make([]*clause.Sort, len(v.OrderBy))
		for i, s := range v.OrderBy {
			e, err := tr.expr(s.Value, prePartition, nil, tc)
			if err != nil {
				return nil, err
			}
			items[i] = &clause.Sort{Value: e, Direction: sortDirection(s.By), Nulls: nullsPosition(s.Nulls)}
		}
		order = &clause.OrderBy{Items: items}
	}
	var frame *clause.Frame
	if v.Frame != nil {
		frame, err = tr.translateFrame(v.Frame, prePartition, tc)
		if err != nil {
			return nil, err
		}
	}
	b.pendingWindow = &clause.Partition{Keys: keyExprs, Order: order, Frame: frame}
	b.env = b.env.clone()
	b.env.aggregateScope = prePartition
	return b, nil
}

func (tr *Translator) translateFrame(f *node.Frame, env *environment, tc *tctx) (*clause.Frame, error) {
	if f.Exclude != node.ExcludeNone && !tr.dialect.HasFrameExclusion {
		return nil, &DialectCapabilityError{Feature: "frame exclusion"}
	}
	start, err := tr.translateBound(f.Start, env, tc)
	if err != nil {
		return nil, err
	}
	end, err := tr.translateBound(f.End, env, tc)
	if err != nil {
		return nil, err
	}
	return &clause.Frame{
		Mode:      frameMode(f.Mode),
		Start:     start,
		End:       end,
		Exclusion: frameExclusion(f.Exclude),
	}, nil
}

func (tr *Translator) translateBound(fb node.FrameBound, env *environment, tc *tctx) (clause.FrameBound, error) {
	switch {
	case fb.Unbounded && fb.Preceding:
		return clause.FrameBound{Kind: clause.BoundUnboundedPreceding}, nil
	case fb.Unbounded:
		return clause.FrameBound{Kind: clause.BoundUnboundedFollowing}, nil
	case fb.CurrentRow:
		return clause.FrameBound{Kind: clause.BoundCurrentRow}, nil
	default:
		e, err := tr.expr(fb.Offset, env, nil, tc)
		if err != nil {
			return clause.FrameBound{}, err
		}
		kind := clause.BoundFollowing
		if fb.Preceding {
			kind = clause.BoundPreceding
		}
		return clause.FrameBound{Kind: kind, Offset: e}, nil
	}
}

func frameMode(m node.FrameMode) clause.FrameMode {
	switch m {
	case node.FrameRange:
		return clause.FrameRange
	case node.FrameGroups:
		return clause.FrameGroups
	default:
		return clause.FrameRows
	}
}

func frameExclusion(e node.FrameExclusion) clause.FrameExclusion {
	switch e {
	case node.ExcludeCurrentRow:
		return clause.ExcludeCurrentRow
	case node.ExcludeGroup:
		return clause.ExcludeGroup
	case node.ExcludeTies:
		return clause.ExcludeTies
	case node.ExcludeNoOthers:
		return clause.ExcludeNoOthers
	default:
		return clause.ExcludeNone
	}
}

func sortDirection(o node.SortOrder) clause.SortDirection {
	if o == node.Descending {
		return clause.Descending
	}
	return clause.Ascending
}

func nullsPosition(n node.NullsOrder) clause.NullsPosition {
	switch n {
	case node.NullsFirst:
		return clause.NullsFirst
	case node.NullsLast:
		return clause.NullsLast
	default:
		return clause.NullsDefault
	}
}

func (tr *Translator) translateOrder(v *node.OrderNode, tc *tctx) (*builder, error) {
	b, err := tr.translate(v.Tail(), tc)
	if err != nil {
		return nil, err
	}
	needed := tr.neededNamesFor(v.Tail())
	compound := b.isBareCompound()
	if !compound {
		b = tr.ensureStage(b, stageOrder, b.sel.Order != nil, needed)
	}
	items := make([]*clause.Sort, len(v.By))
	for i, s := range v.By {
		e, err := tr.expr(s.Value, b.env, b.pendingWindow, tc)
		if err != nil {
			return nil, err
		}
		items[i] = &clause.Sort{Value: e, Direction: sortDirection(s.By), Nulls: nullsPosition(s.Nulls)}
	}
	order := &clause.OrderBy{Items: items}
	if compound {
		b.compound.OrderBy = order
	} else {
		b.sel.Order = order
		b.stg = maxStage(b.stg, stageOrder)
		b.modified = true
	}
	return b, nil
}

func (tr *Translator) translateLimit(v *node.LimitNode, tc *tctx) (*builder, error) {
	b, err := tr.translate(v.Tail(), tc)
	if err != nil {
		return nil, err
	}
	needed := tr.neededNamesFor(v.Tail())
	compound := b.isBareCompound()
	alreadySet := b.sel.Limit != nil
	if compound {
		alreadySet = b.compound.Limit != nil
	}
	if !compound {
		b = tr.ensureStage(b, stageLimit, alreadySet, needed)
		compound = b.isBareCompound()
	} else if alreadySet {
		b = tr.close(b, needed)
		compound = false
	}
	count, err := tr.expr(v.Count, b.env, nil, tc)
	if err != nil {
		return nil, err
	}
	var offset clause.Expr
	if v.Offset != nil {
		offset, err = tr.expr(v.Offset, b.env, nil, tc)
		if err != nil {
			return nil, err
		}
	}
	if v.WithTies && !tr.dialect.HasWithTies {
		return nil, &DialectCapabilityError{Feature: "WITH TIES"}
	}
	lim := &clause.Limit{Count: count, Offset: offset, WithTies: v.WithTies}
	if compound {
		b.compound.Limit = lim
	} else {
		b.sel.Limit = lim
		b.stg = maxStage(b.stg, stageLimit)
		b.modified = true
	}
	return b, nil
}

// DialectCapabilityError mirrors internal/resolve's error of the same
// name for capability checks the translator, not the resolver,
// performs (frame exclusion syntax, WITH TIES rendering).
type DialectCapabilityError struct {
	Feature string
}

func (e *DialectCapabilityError) Error() string {
	return fmt.Sprintf("translate: dialect does not support %s", e.Feature)
}
