package catalog

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sequel/sequel/internal/render"
	"github.com/go-sequel/sequel/pkg/dialect/presets/sqlite"
	"github.com/go-sequel/sequel/pkg/node"
)

// TestPack_DriverReceivesOrderedDuplicatedValues proves render.Pack's
// ordered value list is exactly what a database/sql driver receives for
// a positional dialect, including duplicated occurrences of one named
// parameter.
func TestPack_DriverReceivesOrderedDuplicatedValues(t *testing.T) {
	cat, err := New(sqlite.SQLite, testTables(t))
	require.NoError(t, err)

	q := node.Select(
		node.Where(node.From("person"),
			node.Or(
				node.Eq(node.Get("year_of_birth"), node.Var("year")),
				node.Eq(node.Get("year_of_birth"), node.Var("year")),
			)),
		node.Get("person_id"),
	)

	res, err := cat.Compile(q)
	require.NoError(t, err)
	require.Equal(t, []string{"year", "year"}, res.VarNames)

	values, err := render.Pack(res, map[string]any{"year": 1980})
	require.NoError(t, err)
	require.Equal(t, []any{1980, 1980}, values)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM "person" .*`).
		WithArgs(values...).
		WillReturnRows(sqlmock.NewRows([]string{"person_id"}))

	rows, err := db.Query(res.SQL, values...)
	require.NoError(t, err)
	defer rows.Close()

	assert.NoError(t, mock.ExpectationsWereMet())
}
