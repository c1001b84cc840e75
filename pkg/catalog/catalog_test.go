package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sequel/sequel/pkg/dialect/presets/sqlite"
	"github.com/go-sequel/sequel/pkg/node"
)

func testTables(t *testing.T) []*Table {
	t.Helper()
	person, err := NewTable("person", []string{"person_id", "year_of_birth"})
	require.NoError(t, err)
	return []*Table{person}
}

func TestNew_DuplicateTableName(t *testing.T) {
	person, err := NewTable("person", []string{"person_id"})
	require.NoError(t, err)
	dup, err := NewTable("PERSON", []string{"person_id"})
	require.NoError(t, err)

	_, err = New(sqlite.SQLite, []*Table{person, dup})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateTable)
}

func TestNew_RequiresDialect(t *testing.T) {
	_, err := New(nil, testTables(t))
	require.Error(t, err)
}

func TestCatalog_GetAndLookupTable(t *testing.T) {
	cat, err := New(sqlite.SQLite, testTables(t))
	require.NoError(t, err)

	tbl, err := cat.Get("person")
	require.NoError(t, err)
	assert.Equal(t, "person", tbl.Name)

	_, err = cat.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownTable)

	cols, ok := cat.LookupTable("PERSON")
	assert.True(t, ok)
	assert.Equal(t, []string{"person_id", "year_of_birth"}, cols)

	_, ok = cat.LookupTable("nope")
	assert.False(t, ok)
}

func personByBirthYear() node.Node {
	return node.Select(
		node.Where(node.From("person"), node.Eq(node.Get("year_of_birth"), node.Lit(1980))),
		node.Get("person_id"),
	)
}

func TestCatalog_Compile(t *testing.T) {
	cat, err := New(sqlite.SQLite, testTables(t))
	require.NoError(t, err)

	res, err := cat.Compile(personByBirthYear())
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT "person_1"."person_id" FROM "person" AS "person_1" WHERE ("person_1"."year_of_birth" = 1980)`,
		res.SQL)
}

// TestCatalog_CacheEquivalence covers spec.md §8's "cache equivalence"
// property: a cache hit must return output bit-identical to a miss.
func TestCatalog_CacheEquivalence(t *testing.T) {
	cat, err := New(sqlite.SQLite, testTables(t))
	require.NoError(t, err)

	miss, err := cat.Compile(personByBirthYear())
	require.NoError(t, err)
	hit, err := cat.Compile(personByBirthYear())
	require.NoError(t, err)

	assert.Equal(t, miss.SQL, hit.SQL)
	assert.Equal(t, miss.VarNames, hit.VarNames)
}

func TestCatalog_ConcurrentCompileSameQuery(t *testing.T) {
	cat, err := New(sqlite.SQLite, testTables(t))
	require.NoError(t, err)

	const n = 32
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := cat.Compile(personByBirthYear())
			require.NoError(t, err)
			results[i] = res.SQL
		}(i)
	}
	wg.Wait()

	for _, sql := range results {
		assert.Equal(t, results[0], sql)
	}
}

func TestCatalog_ExternalHandlerBypassesCache(t *testing.T) {
	cat, err := New(sqlite.SQLite, testTables(t))
	require.NoError(t, err)

	calls := 0
	opts := CompileOptions{ExternalHandler: func(string, string) error {
		calls++
		return nil
	}}

	// Plain From has no WithExternal temp tables, so the handler simply
	// never fires; the point of this test is that Compile doesn't panic
	// or cache a handler-bearing call across invocations with a
	// different handler.
	_, err = cat.Compile(personByBirthYear(), opts)
	require.NoError(t, err)
	_, err = cat.Compile(personByBirthYear(), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
}

func TestWithCacheSize_ZeroDisablesCache(t *testing.T) {
	cat, err := New(sqlite.SQLite, testTables(t), WithCacheSize(0))
	require.NoError(t, err)
	assert.Nil(t, cat.cache)

	res, err := cat.Compile(personByBirthYear())
	require.NoError(t, err)
	assert.NotEmpty(t, res.SQL)
}
