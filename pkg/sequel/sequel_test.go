package sequel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sequel/sequel/pkg/sequel"

	_ "github.com/go-sequel/sequel/pkg/dialect/presets/sqlite"
)

func testCatalog(t *testing.T) *sequel.Catalog {
	t.Helper()
	d, err := sequel.DialectByName("sqlite")
	require.NoError(t, err)

	person, err := sequel.NewTable("person", []string{
		"person_id", "year_of_birth", "gender_concept_id", "location_id",
	})
	require.NoError(t, err)
	location, err := sequel.NewTable("location", []string{"location_id", "state"})
	require.NoError(t, err)

	cat, err := sequel.NewCatalog(d, []*sequel.Table{person, location})
	require.NoError(t, err)
	return cat
}

// Scenario 1, spec.md §8.
func TestScenario_FilterThenSelect(t *testing.T) {
	cat := testCatalog(t)
	q := sequel.Select(
		sequel.Where(sequel.From("person"), sequel.Eq(sequel.Get("year_of_birth"), sequel.Lit(1980))),
		sequel.Get("person_id"),
	)
	res, err := sequel.Render(q, cat)
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT "person_1"."person_id" FROM "person" AS "person_1" WHERE ("person_1"."year_of_birth" = 1980)`,
		res.Text)
}

// Scenario 3, spec.md §8.
func TestScenario_GroupAndAggregate(t *testing.T) {
	cat := testCatalog(t)
	q := sequel.Select(
		sequel.Group(sequel.From("person"), sequel.Get("year_of_birth")),
		sequel.Get("year_of_birth"), sequel.Agg("count"),
	)
	res, err := sequel.Render(q, cat)
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT "person_1"."year_of_birth", COUNT(*) AS "count" FROM "person" AS "person_1" GROUP BY "person_1"."year_of_birth"`,
		res.Text)
}

// Scenario 4, spec.md §8.
func TestScenario_LeftJoin(t *testing.T) {
	cat := testCatalog(t)
	q := sequel.Select(
		sequel.Join(
			sequel.From("person"),
			sequel.As("l", sequel.From("location")),
			sequel.Eq(sequel.Get("location_id"), sequel.Get("l", "location_id")),
			sequel.Left(),
		),
		sequel.Get("person_id"), sequel.Get("l", "state"),
	)
	res, err := sequel.Render(q, cat)
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT "person_1"."person_id", "location_1"."state" FROM "person" AS "person_1" LEFT JOIN "location" AS "location_1" ON ("person_1"."location_id" = "location_1"."location_id")`,
		res.Text)
}

// TestProperty_AmbiguityDetection covers spec.md §8: a Join of two
// From's sharing a column name, referenced without As disambiguation,
// must raise Ambiguous.
func TestProperty_AmbiguityDetection(t *testing.T) {
	cat := testCatalog(t)
	q := sequel.Select(
		sequel.Join(
			sequel.From("location"),
			sequel.From("location"),
			sequel.Lit(true),
		),
		sequel.Get("location_id"),
	)
	_, err := sequel.Render(q, cat)
	assert.Error(t, err)
}

// TestProperty_SelectPresenceOptional: a query with no explicit Select
// projects exactly the columns of its declared input shape.
func TestProperty_SelectPresenceOptional(t *testing.T) {
	cat := testCatalog(t)
	q := sequel.Where(sequel.From("location"), sequel.Eq(sequel.Get("state"), sequel.Lit("CA")))
	res, err := sequel.Render(q, cat)
	require.NoError(t, err)
	assert.Contains(t, res.Text, `"location_1"."location_id"`)
	assert.Contains(t, res.Text, `"location_1"."state"`)
}

func TestProperty_DeterministicOutput(t *testing.T) {
	cat := testCatalog(t)
	q := sequel.Select(sequel.From("location"), sequel.Get("state"))
	first, err := sequel.Render(q, cat)
	require.NoError(t, err)
	second, err := sequel.Render(q, cat)
	require.NoError(t, err)
	assert.Equal(t, first.Text, second.Text)
}

func TestPack_OrdersValuesByVarNames(t *testing.T) {
	sql := &sequel.SqlString{Text: "SELECT ? WHERE x = ? AND y = ?", VarNames: []string{"a", "a", "b"}}
	values, err := sequel.Pack(sql, map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 1, 2}, values)
}
