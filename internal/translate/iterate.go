package translate

import (
	"github.com/go-sequel/sequel/internal/clause"
	"github.com/go-sequel/sequel/pkg/node"
)

// translateIterate builds a WITH RECURSIVE body from an Iterate's seed
// and step: the recursive binding gets
// one aliasGen slot for its declared CTE name and, once translated,
// another for however the outer query references it.
func (tr *Translator) translateIterate(v *node.IterateNode, tc *tctx) (*builder, error) {
	seed, err := tr.translate(v.Tail(), tc)
	if err != nil {
		return nil, err
	}
	seedNeeded := tr.neededNamesFor(v)
	if len(seedNeeded) == 0 {
		seedNeeded = tr.types.Types[v].Names()
	}
	seedSel := tr.finishSelect(seed, seedNeeded)

	label, ok := recurLabel(v.Iterator)
	if !ok {
		return nil, &RecursionShapeError{}
	}
	recName := tr.aliases.next(label)
	tc2 := tc.with(label, &cteRef{tableName: recName, columns: seedNeeded, selfRef: true})

	iterB, err := tr.translate(v.Iterator, tc2)
	if err != nil {
		return nil, err
	}
	iterSel := tr.finishSelect(iterB, seedNeeded)

	outerAlias := tr.aliases.next(label)
	outerTbl := &clause.Table{Name: recName, Alias: outerAlias}
	outerEnv := newEnvironment()
	for _, c := range seedNeeded {
		outerEnv.set(c, &binding{expr: &clause.Ident{Qualifier: []string{outerAlias}, Name: c}})
	}

	b := &builder{
		sel:      &clause.Select{From: outerTbl},
		env:      outerEnv,
		tc:       tc,
		baseName: label,
		recursive: &clause.Recursive{
			Name:    recName,
			Columns: seedNeeded,
			Seed:    seedSel,
			Step:    iterSel,
		},
	}
	return b, nil
}

// recurLabel finds the trailing As(label, ...) naming an Iterate's
// recursive self-reference (mirrors internal/resolve's rule of the
// same name).
func recurLabel(n node.Node) (string, bool) {
	if as, ok := n.(*node.AsNode); ok {
		return as.Name, true
	}
	if p, ok := n.(node.Pipeline); ok {
		return recurLabel(p.Tail())
	}
	return "", false
}

// RecursionShapeError mirrors internal/resolve's error of the same
// name; reaching this path means an Iterate already passed resolve, so
// it only fires if the iterator lost its trailing As during linking,
// which should not happen.
type RecursionShapeError struct{}

func (e *RecursionShapeError) Error() string {
	return "translate: iterate body has no trailing As binding"
}
