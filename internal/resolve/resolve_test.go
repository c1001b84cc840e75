package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sequel/sequel/internal/resolve"
	"github.com/go-sequel/sequel/pkg/dialect"
	"github.com/go-sequel/sequel/pkg/node"
)

// fakeTables is a minimal resolve.TableLookup for tests that don't need
// a full pkg/catalog.Catalog.
type fakeTables map[string][]string

func (f fakeTables) LookupTable(name string) ([]string, bool) {
	cols, ok := f[name]
	return cols, ok
}

var testTables = fakeTables{
	"person":               {"person_id", "year_of_birth", "location_id"},
	"location":             {"location_id", "state"},
	"condition_occurrence": {"person_id", "condition_concept_id"},
}

func ansiDialect() *dialect.Dialect {
	return dialect.NewDialect("ansi").Build()
}

func lateralDialect() *dialect.Dialect {
	return dialect.NewDialect("ansi-lateral").Features(true, false, false, false, false).Build()
}

func TestResolve_From_UnknownTable(t *testing.T) {
	r := resolve.New(testTables, ansiDialect())
	_, err := r.Resolve(node.From("nope"))
	require.Error(t, err)
	var uerr *resolve.UnknownTableError
	assert.ErrorAs(t, err, &uerr)
}

func TestResolve_Select_AssignsDeclaredColumnOrder(t *testing.T) {
	r := resolve.New(testTables, ansiDialect())
	q := node.Where(node.From("person"), node.Eq(node.Get("year_of_birth"), node.Lit(1980)))
	res, err := r.Resolve(q)
	require.NoError(t, err)
	rt := res.Types[q]
	require.NotNil(t, rt)
	assert.Equal(t, []string{"person_id", "year_of_birth", "location_id"}, rt.Names())
}

func TestResolve_Join_AmbiguousSharedColumn(t *testing.T) {
	r := resolve.New(testTables, ansiDialect())
	j := node.Join(node.From("location"), node.From("location"), node.Lit(true))
	q := node.Select(j, node.Get("location_id"))
	_, err := r.Resolve(q)
	require.Error(t, err)
	var aerr *resolve.AmbiguousError
	assert.ErrorAs(t, err, &aerr)
}

func TestResolve_Join_DisambiguatedByAs_Succeeds(t *testing.T) {
	r := resolve.New(testTables, ansiDialect())
	j := node.Join(node.From("person"),
		node.As("l", node.From("location")),
		node.Eq(node.Get("location_id"), node.Get("l", "location_id")),
		node.Left())
	q := node.Select(j, node.Get("person_id"), node.Get("l", "state"))
	res, err := r.Resolve(q)
	require.NoError(t, err)
	assert.Equal(t, []string{"person_id", "state"}, res.Types[q].Names())
}

func TestResolve_Join_LateralWithoutCapability_IsDialectError(t *testing.T) {
	r := resolve.New(testTables, ansiDialect())
	q := node.Join(node.From("person"), node.From("location"), node.Lit(true), node.LateralJoin())
	_, err := r.Resolve(q)
	require.Error(t, err)
	var derr *resolve.DialectCapabilityError
	assert.ErrorAs(t, err, &derr)
}

func TestResolve_Join_LateralWithCapability_Succeeds(t *testing.T) {
	r := resolve.New(testTables, lateralDialect())
	q := node.Join(node.From("person"), node.From("location"), node.Lit(true), node.LateralJoin())
	_, err := r.Resolve(q)
	assert.NoError(t, err)
}

func TestResolve_Get_CannotFind(t *testing.T) {
	r := resolve.New(testTables, ansiDialect())
	q := node.Select(node.From("person"), node.Get("nonexistent_column"))
	_, err := r.Resolve(q)
	require.Error(t, err)
	var cerr *resolve.CannotFindError
	assert.ErrorAs(t, err, &cerr)
}

func TestResolve_Get_OrphanReference(t *testing.T) {
	r := resolve.New(testTables, ansiDialect())
	// "person_id" isn't a nested record, so qualifying through it is an
	// orphan reference.
	q := node.Select(node.From("person"), node.Get("person_id", "x"))
	_, err := r.Resolve(q)
	require.Error(t, err)
	var oerr *resolve.OrphanReferenceError
	assert.ErrorAs(t, err, &oerr)
}

func TestResolve_Agg_OutsideGroupScope_IsContextError(t *testing.T) {
	r := resolve.New(testTables, ansiDialect())
	q := node.Select(node.From("person"), node.Agg("count"))
	_, err := r.Resolve(q)
	require.Error(t, err)
	var aerr *resolve.AggregateContextError
	assert.ErrorAs(t, err, &aerr)
}

func TestResolve_Group_ExposesAggregateScope(t *testing.T) {
	r := resolve.New(testTables, ansiDialect())
	g := node.Group(node.From("person"), node.Get("year_of_birth"))
	q := node.Select(g, node.Get("year_of_birth"), node.Agg("count"))
	res, err := r.Resolve(q)
	require.NoError(t, err)
	assert.Equal(t, []string{"year_of_birth", "count"}, res.Types[q].Names())
}

func TestResolve_Append_IntersectsColumnSets(t *testing.T) {
	r := resolve.New(testTables, ansiDialect())
	lead := node.Select(node.From("person"), node.Get("person_id"), node.Get("year_of_birth"))
	other := node.Select(node.From("condition_occurrence"), node.Get("person_id"))
	q := node.Append(lead, other)
	res, err := r.Resolve(q)
	require.NoError(t, err)
	// year_of_birth is dropped: it's absent from the second branch.
	assert.Equal(t, []string{"person_id"}, res.Types[q].Names())
}

func TestResolve_Iterate_ShapeMismatch(t *testing.T) {
	r := resolve.New(testTables, ansiDialect())
	seed := node.Define(node.FromNil(), node.Labeled("n", node.Lit(1)))
	// Iterator body produces an extra column "m": seed/iterator shapes differ.
	body := node.As("counter", node.Define(node.From("counter"),
		node.Labeled("n", node.Get("n")),
		node.Labeled("m", node.Lit(2)),
	))
	q := node.Iterate(seed, body)
	_, err := r.Resolve(q)
	require.Error(t, err)
	var serr *resolve.RecursionShapeError
	assert.ErrorAs(t, err, &serr)
}

func TestResolve_Iterate_MatchingShape_Succeeds(t *testing.T) {
	r := resolve.New(testTables, ansiDialect())
	seed := node.Define(node.FromNil(),
		node.Labeled("n", node.Lit(1)), node.Labeled("f", node.Lit(1)))
	body := node.As("factorial", node.Where(
		node.Define(node.From("factorial"),
			node.Labeled("n", node.Get("n")),
			node.Labeled("f", node.Get("f"))),
		node.Lit(true)))
	q := node.Iterate(seed, body)
	res, err := r.Resolve(q)
	require.NoError(t, err)
	assert.Equal(t, []string{"n", "f"}, res.Types[q].Names())
}

func TestResolve_With_CTEReachableByFrom(t *testing.T) {
	r := resolve.New(testTables, ansiDialect())
	cte := node.Select(node.From("condition_occurrence"), node.Get("person_id"))
	main := node.Where(node.From("person"),
		node.Fun("in", node.Get("person_id"), node.Select(node.From("ess_htn"), node.Get("person_id"))))
	q := node.With(main, node.CTE("ess_htn", cte))
	_, err := r.Resolve(q)
	assert.NoError(t, err)
}

func TestResolve_DeterministicAcrossRuns(t *testing.T) {
	q := node.Select(
		node.Where(node.From("person"), node.Eq(node.Get("year_of_birth"), node.Lit(1980))),
		node.Get("person_id"),
	)
	r1 := resolve.New(testTables, ansiDialect())
	res1, err := r1.Resolve(q)
	require.NoError(t, err)
	r2 := resolve.New(testTables, ansiDialect())
	res2, err := r2.Resolve(q)
	require.NoError(t, err)
	assert.Equal(t, res1.Types[q].Names(), res2.Types[q].Names())
}
