package translate

import (
	"github.com/go-sequel/sequel/internal/clause"
	"github.com/go-sequel/sequel/pkg/node"
)

// translateAppend emits each branch as its own complete top-level
// SELECT, combined by UNION ALL.
func (tr *Translator) translateAppend(v *node.AppendNode, tc *tctx) (*builder, error) {
	branches := append([]node.Node{v.Tail()}, v.Others...)
	names := tr.types.Types[v].Names()

	selects := make([]*clause.Select, len(branches))
	var leadBase string
	for i, br := range branches {
		bb, err := tr.translate(br, tc)
		if err != nil {
			return nil, err
		}
		selects[i] = tr.finishSelect(bb, names)
		if i == 0 {
			leadBase = bb.baseName
		}
	}

	compound := &clause.Compound{Op: clause.UnionAll, Selects: selects}
	alias := tr.aliases.next(baseNameOr(leadBase))
	env := newEnvironment()
	for _, name := range names {
		env.set(name, &binding{expr: &clause.Ident{Qualifier: []string{alias}, Name: name}})
	}
	return &builder{
		sel:      &clause.Select{From: &clause.Derived{Inner: compound, Alias: alias}},
		env:      env,
		tc:       tc,
		baseName: leadBase,
		compound: compound,
	}, nil
}
