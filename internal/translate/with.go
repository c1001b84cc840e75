package translate

import (
	"github.com/go-sequel/sequel/internal/clause"
	"github.com/go-sequel/sequel/pkg/node"
)

// translateWith emits each non-dropped CTE ahead of the main query as
// a leading WITH clause.
func (tr *Translator) translateWith(v *node.WithNode, tc *tctx) (*builder, error) {
	tc2 := tc
	var ctes []*clause.CTE
	for _, c := range v.CTEs {
		if tr.link.DroppedCTEs[c.Label] {
			continue
		}
		cb, err := tr.translate(c.Query, tc2)
		if err != nil {
			return nil, err
		}
		needed := tr.neededNamesFor(c.Query)
		if len(needed) == 0 {
			needed = tr.types.Types[c.Query].Names()
		}
		sel := tr.finishSelect(cb, needed)
		name := tr.aliases.next(c.Label)
		tc2 = tc2.with(c.Label, &cteRef{tableName: name, columns: needed})
		var materialized *bool
		if c.Materialized {
			t := true
			materialized = &t
		}
		ctes = append(ctes, &clause.CTE{Name: name, Columns: needed, Select: sel, Materialized: materialized})
	}
	main, err := tr.translate(v.Tail(), tc2)
	if err != nil {
		return nil, err
	}
	if len(ctes) > 0 {
		main.sel.With = &clause.With{CTEs: ctes}
	}
	return main, nil
}

// translateWithExternal materializes each non-dropped CTE as a leading
// CREATE TEMP TABLE statement instead of an inline WITH.
func (tr *Translator) translateWithExternal(v *node.WithExternalNode, tc *tctx) (*builder, error) {
	tc2 := tc
	var temps []*clause.TempTable
	for _, c := range v.CTEs {
		if tr.link.DroppedCTEs[c.Label] {
			continue
		}
		cb, err := tr.translate(c.Query, tc2)
		if err != nil {
			return nil, err
		}
		needed := tr.neededNamesFor(c.Query)
		if len(needed) == 0 {
			needed = tr.types.Types[c.Query].Names()
		}
		sel := tr.finishSelect(cb, needed)
		name := tr.aliases.next(c.Label)
		tc2 = tc2.with(c.Label, &cteRef{tableName: name, columns: needed})
		temps = append(temps, &clause.TempTable{Name: name, Select: sel})
	}
	main, err := tr.translate(v.Tail(), tc2)
	if err != nil {
		return nil, err
	}
	main.tempTables = append(temps, main.tempTables...)
	return main, nil
}
