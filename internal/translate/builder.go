package translate

import "github.com/go-sequel/sequel/internal/clause"

// stage tracks how far into SQL's fixed grammar slot order (FROM/JOIN <
// WHERE < GROUP < HAVING < ORDER < LIMIT) the builder's open SELECT has
// committed. A pipeline operation whose own slot sits at or before the
// builder's current stage can't simply extend it — the builder must be
// closed into a FROM-subquery first.
type stage int

const (
	stageFrom stage = iota
	stageWhere
	stageGroup
	stageHaving
	stageOrder
	stageLimit
)

// builder is the translator's open SELECT under construction: the
// clause tree fragment plus the environment mapping the input row's
// field names to their current physical expressions.
type builder struct {
	sel   *clause.Select
	env   *environment
	tc    *tctx

	// baseName seeds aliasGen: every subquery boundary introduced while
	// closing this builder continues the same per-name counter as the
	// table (or CTE/recursive label) it was originally rooted at
	//.
	baseName string

	stg              stage
	modified         bool // true once anything beyond a bare From has been applied
	projectionSealed bool // true once an explicit Select has fixed the column set

	// pendingWindow is the window spec introduced by the innermost
	// enclosing Partition, attached to any Agg translated while it is
	// in scope.
	pendingWindow *clause.Partition

	tempTables []*clause.TempTable
	recursive  *clause.Recursive

	// compound is set when this builder's sel.From is an aliased
	// wrapping of an Append's UNION ALL and nothing has modified it
	// yet: the top-level Translate() unwraps this case back to a bare
	// Program.Compound, skipping the otherwise-unnecessary outer
	// SELECT.
	compound *clause.Compound
}

func (b *builder) isBareCompound() bool {
	return b.compound != nil && !b.modified
}

// materializeProjection builds the ordered projection list for names,
// reading each one's current expression out of b's environment.
func (tr *Translator) materializeProjection(b *builder, names []string) []clause.Projection {
	proj := make([]clause.Projection, 0, len(names))
	for _, name := range names {
		bd, ok := b.env.get(name)
		if !ok {
			continue
		}
		alias := ""
		if id, isIdent := bd.expr.(*clause.Ident); !isIdent || id.Name != name {
			alias = name
		}
		proj = append(proj, clause.Projection{Expr: bd.expr, Alias: alias})
	}
	return proj
}

// close finalizes b's projection to exactly needed (or, lacking any
// recorded need, every field currently in scope) and wraps it as an
// aliased FROM-subquery for a fresh builder whose environment points
// back at that alias.
func (tr *Translator) close(b *builder, needed []string) *builder {
	if len(needed) == 0 {
		needed = b.env.order
	}
	b.sel.Projection = tr.materializeProjection(b, needed)
	alias := tr.aliases.next(baseNameOr(b.baseName))
	newEnv := newEnvironment()
	for _, name := range needed {
		newEnv.set(name, &binding{expr: &clause.Ident{Qualifier: []string{alias}, Name: name}})
	}
	derived := &clause.Derived{Inner: b.sel, Alias: alias}
	return &builder{
		sel:        &clause.Select{From: derived},
		env:        newEnv,
		tc:         b.tc,
		baseName:   b.baseName,
		tempTables: b.tempTables,
		recursive:  b.recursive,
	}
}

func baseNameOr(name string) string {
	if name == "" {
		return "t"
	}
	return name
}

// ensureStage closes b (projecting needed) before filling a slot whose
// grammar position would otherwise go backward, or re-fill a slot
// that's already occupied and can't be merged in place.
func (tr *Translator) ensureStage(b *builder, target stage, alreadyFilled bool, needed []string) *builder {
	if target < b.stg || (target == b.stg && alreadyFilled) {
		return tr.close(b, needed)
	}
	return b
}

// ensureNotCompound closes b first if it's still a bare wrapping of an
// Append's UNION ALL: only Order/Limit may attach directly to a
// compound; every other operation needs it closed into
// an ordinary derived table first.
func (tr *Translator) ensureNotCompound(b *builder, needed []string) *builder {
	if b.isBareCompound() {
		return tr.close(b, needed)
	}
	return b
}

// ensureNotSealed closes b first if an explicit Select has already
// fixed its projection (Select/Define after Select, spec.md §4.6).
func (tr *Translator) ensureNotSealed(b *builder, needed []string) *builder {
	if b.projectionSealed {
		return tr.close(b, needed)
	}
	return b
}
