package render

import (
	"database/sql"
	"embed"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/go-sequel/sequel/pkg/dialect/presets/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

func openMigratedDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	goose.SetBaseFS(migrations)
	require.NoError(t, goose.SetDialect("sqlite"))
	require.NoError(t, goose.Up(db, "migrations"))
	return db
}

// TestRoundTrip_WorkedExamplesExecute proves compiled queries are
// valid, executable SQL for the sqlite dialect, not just the expected
// string.
func TestRoundTrip_WorkedExamplesExecute(t *testing.T) {
	db := openMigratedDB(t)

	res, err := Render(personByBirthYear(), sqlite.SQLite, Options{})
	require.NoError(t, err)

	rows, err := db.Query(res.SQL)
	require.NoError(t, err)
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []int{1}, ids)
}
