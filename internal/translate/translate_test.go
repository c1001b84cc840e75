package translate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sequel/sequel/internal/link"
	"github.com/go-sequel/sequel/internal/render"
	"github.com/go-sequel/sequel/internal/resolve"
	"github.com/go-sequel/sequel/internal/translate"
	"github.com/go-sequel/sequel/pkg/dialect/presets/sqlite"
	"github.com/go-sequel/sequel/pkg/node"
)

type fakeTables map[string][]string

func (f fakeTables) LookupTable(name string) ([]string, bool) {
	cols, ok := f[name]
	return cols, ok
}

var testTables = fakeTables{
	"person":               {"person_id", "year_of_birth", "gender_concept_id", "location_id"},
	"location":             {"location_id", "state"},
	"condition_occurrence": {"condition_concept_id", "person_id"},
}

// compile runs the full Resolve -> Link -> Translate -> Render pipeline
// against the sqlite preset, matching the "dialect = sqlite unless noted"
// convention of spec.md §8's worked examples.
func compile(t *testing.T, q node.Node) string {
	t.Helper()
	r := resolve.New(testTables, sqlite.SQLite)
	types, err := r.Resolve(q)
	require.NoError(t, err)
	lk := link.New(types).Link(q)
	prog, err := translate.New(types, lk, sqlite.SQLite).Translate(q)
	require.NoError(t, err)
	res, err := render.Render(prog, sqlite.SQLite, render.Options{})
	require.NoError(t, err)
	return res.SQL
}

// Scenario 2, spec.md §8: Order+Limit ahead of a Where forces the
// translator to close the current SELECT as a FROM-subquery before the
// outer Where can be applied, since LIMIT precedes WHERE in slot order.
func TestScenario_OrderLimitThenWhere_ClosesSubquery(t *testing.T) {
	ordered := node.Limit(node.Order(node.From("person"), node.Asc(node.Get("year_of_birth"))), node.Lit(3))
	q := node.Where(ordered, node.Eq(node.Get("gender_concept_id"), node.Lit(8507)))

	sql := compile(t, q)
	assert.Contains(t, sql, "FROM (SELECT")
	assert.Contains(t, sql, `ORDER BY "person_1"."year_of_birth" ASC`)
	assert.Contains(t, sql, "LIMIT 3")
	assert.Contains(t, sql, `"gender_concept_id" = 8507`)
}

// Scenario 5, spec.md §8: a With-introduced CTE is reachable from the
// main query via From(label) and is emitted as a WITH clause ahead of
// the main SELECT.
func TestScenario_WithCTE_ReachableFromMain(t *testing.T) {
	cte := node.Where(node.From("condition_occurrence"),
		node.Eq(node.Get("condition_concept_id"), node.Lit(320128)))
	main := node.Where(node.From("person"),
		node.Fun("in", node.Get("person_id"),
			node.Select(node.From("ess_htn"), node.Get("person_id"))))
	q := node.With(main, node.CTE("ess_htn", cte))

	sql := compile(t, q)
	assert.Contains(t, sql, `WITH "ess_htn`)
	assert.Contains(t, sql, `IN (SELECT`)
	assert.Contains(t, sql, `= 320128`)
}

// Scenario 6, spec.md §8: Iterate compiles to WITH RECURSIVE, and the
// recursive binding's column order (n, f) is preserved end to end.
func TestScenario_Iterate_EmitsWithRecursive(t *testing.T) {
	seed := node.Define(node.FromNil(),
		node.Labeled("n", node.Lit(1)), node.Labeled("f", node.Lit(1)))
	body := node.As("factorial", node.Where(
		node.Define(
			node.Define(node.From("factorial"),
				node.Labeled("n", node.Add(node.Get("n"), node.Lit(1)))),
			node.Labeled("f", node.Mul(node.Get("f"), node.Get("n"))),
		),
		node.Le(node.Get("n"), node.Lit(10)),
	))
	q := node.Iterate(seed, body)

	sql := compile(t, q)
	assert.Contains(t, sql, "WITH RECURSIVE")
	assert.Contains(t, sql, "UNION ALL")
	assert.True(t,
		indexOf(sql, `"n"`) < indexOf(sql, `"f"`),
		"expected n before f in projected column order, got: %s", sql)
}

// Alias stability, spec.md §8: aliases assigned to a structural input
// are identical regardless of the outer context wrapping it.
func TestProperty_AliasStability(t *testing.T) {
	bare := node.Select(node.From("person"), node.Get("person_id"))
	nested := node.Select(node.Where(node.From("person"), node.Lit(true)), node.Get("person_id"))

	sqlBare := compile(t, bare)
	sqlNested := compile(t, nested)
	assert.Contains(t, sqlBare, `"person_1"`)
	assert.Contains(t, sqlNested, `"person_1"`)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
