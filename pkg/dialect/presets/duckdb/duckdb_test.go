package duckdb

import (
	"database/sql"
	"testing"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sequel/sequel/internal/clause"
	"github.com/go-sequel/sequel/internal/render"
	"github.com/go-sequel/sequel/pkg/dialect"
)

func TestDuckDB_Capabilities(t *testing.T) {
	assert.True(t, DuckDB.HasLateral)
	assert.True(t, DuckDB.HasFrameExclusion)
	assert.Equal(t, dialect.Positional, DuckDB.VariableStyle)
}

// TestDuckDB_CompiledQueryExecutes proves a compiled query isn't just
// string-equal to the expected output but actually valid, executable
// SQL, by running it against a real in-memory DuckDB database.
func TestDuckDB_CompiledQueryExecutes(t *testing.T) {
	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE person (person_id INTEGER, year_of_birth INTEGER)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO person VALUES (1, 1980), (2, 1990)`)
	require.NoError(t, err)

	prog := &clause.Program{Query: &clause.Select{
		Projection: []clause.Projection{
			{Expr: &clause.Ident{Qualifier: []string{"person_1"}, Name: "person_id"}},
		},
		From: &clause.Table{Name: "person", Alias: "person_1"},
		Where: &clause.Op{Name: "=", Args: []clause.Expr{
			&clause.Ident{Qualifier: []string{"person_1"}, Name: "year_of_birth"},
			&clause.Lit{Kind: clause.LitNumber, Value: 1980},
		}},
	}}
	res, err := render.Render(prog, DuckDB, render.Options{})
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

// TestDuckDB_FrameExclusionRenders covers the Open Question resolution:
// frame exclusion is gated per-dialect, and duckdb opts in.
func TestDuckDB_FrameExclusionRenders(t *testing.T) {
	prog := &clause.Program{Query: &clause.Select{
		Projection: []clause.Projection{{
			Expr: &clause.Agg{
				Name: "sum",
				Args: []clause.Expr{&clause.Ident{Qualifier: []string{"t_1"}, Name: "amount"}},
				Over: &clause.WindowDef{
					Spec: &clause.Partition{
						Frame: &clause.Frame{
							Mode:      clause.FrameRange,
							Start:     clause.FrameBound{Kind: clause.BoundUnboundedPreceding},
							End:       clause.FrameBound{Kind: clause.BoundCurrentRow},
							Exclusion: clause.ExcludeCurrentRow,
						},
					},
				},
			},
		}},
		From: &clause.Table{Name: "t", Alias: "t_1"},
	}}
	res, err := render.Render(prog, DuckDB, render.Options{})
	require.NoError(t, err)
	assert.Contains(t, res.SQL, "EXCLUDE CURRENT ROW")
}
