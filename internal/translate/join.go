package translate

import (
	"github.com/go-sequel/sequel/internal/clause"
	"github.com/go-sequel/sequel/pkg/node"
)

func (tr *Translator) translateJoin(v *node.JoinNode, tc *tctx) (*builder, error) {
	left, err := tr.translate(v.Tail(), tc)
	if err != nil {
		return nil, err
	}
	leftNeeded := tr.neededNamesFor(v.Tail())
	left = tr.ensureNotCompound(left, leftNeeded)
	if left.stg > stageFrom || left.projectionSealed {
		left = tr.close(left, leftNeeded)
	}

	if pruned, ok := tr.link.PrunedJoins[v]; ok && pruned {
		return left, nil
	}

	label := ""
	target := v.Joinee
	if as, ok := target.(*node.AsNode); ok {
		label = as.Name
		target = as.Input
	}

	var joinee *builder
	if bn, ok := target.(*node.BindNode); ok && v.Lateral {
		joinee, err = tr.translateBind(bn, tc, left.env)
	} else {
		joinee, err = tr.translate(target, tc)
	}
	if err != nil {
		return nil, err
	}

	joineeRef, joineeEnv := tr.wrapAsJoinTarget(joinee)

	var combinedEnv *environment
	if label != "" {
		combinedEnv = left.env.clone()
		combinedEnv.set(label, &binding{nested: joineeEnv})
	} else {
		combinedEnv = left.env.concat(joineeEnv)
	}

	onExpr, err := tr.expr(v.On, combinedEnv, nil, tc)
	if err != nil {
		return nil, err
	}

	kind := clause.InnerJoin
	isCross := false
	if lit, ok := v.On.(*node.LitNode); ok {
		if b, ok := lit.Value.(bool); ok && b {
			isCross = true
		}
	}
	switch {
	case isCross:
		kind = clause.CrossJoin
		onExpr = nil
	case v.Left:
		kind = clause.LeftJoin
	}

	left.sel.Joins = append(left.sel.Joins, &clause.Join{Kind: kind, Table: joineeRef, On: onExpr, Lateral: v.Lateral})
	left.env = combinedEnv
	left.modified = true
	return left, nil
}

// wrapAsJoinTarget decides how a translated joinee builder is embedded
// in the parent's FROM/JOIN list: a still-bare table reference is
// reused directly, while
// anything that has accumulated its own WHERE/GROUP/projection is
// closed into an aliased derived table first.
func (tr *Translator) wrapAsJoinTarget(b *builder) (clause.TableRef, *environment) {
	if !b.modified {
		if tbl, ok := b.sel.From.(*clause.Table); ok {
			return tbl, b.env
		}
	}
	needed := b.env.order
	b.sel.Projection = tr.materializeProjection(b, needed)
	alias := tr.aliases.next(baseNameOr(b.baseName))
	newEnv := newEnvironment()
	for _, name := range needed {
		newEnv.set(name, &binding{expr: &clause.Ident{Qualifier: []string{alias}, Name: name}})
	}
	return &clause.Derived{Inner: b.sel, Alias: alias, Lateral: false}, newEnv
}
