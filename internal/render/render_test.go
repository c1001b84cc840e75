package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sequel/sequel/internal/clause"
	"github.com/go-sequel/sequel/pkg/dialect"
	"github.com/go-sequel/sequel/pkg/dialect/presets/sqlite"
)

// personByBirthYear builds a person-filtered-by-birth-year query
// directly as a clause.Program, bypassing resolve/link/translate so
// render can be tested in isolation.
func personByBirthYear() *clause.Program {
	sel := &clause.Select{
		Projection: []clause.Projection{
			{Expr: &clause.Ident{Qualifier: []string{"person_1"}, Name: "person_id"}},
		},
		From: &clause.Table{Name: "person", Alias: "person_1"},
		Where: &clause.Op{
			Name: "=",
			Args: []clause.Expr{
				&clause.Ident{Qualifier: []string{"person_1"}, Name: "year_of_birth"},
				&clause.Lit{Kind: clause.LitNumber, Value: 1980},
			},
		},
	}
	return &clause.Program{Query: sel}
}

func TestRender_Compact(t *testing.T) {
	prog := personByBirthYear()
	res, err := Render(prog, sqlite.SQLite, Options{})
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT "person_1"."person_id" FROM "person" AS "person_1" WHERE ("person_1"."year_of_birth" = 1980)`,
		res.SQL)
	assert.Empty(t, res.VarNames)
}

func TestRender_Pretty_IsMultiLine(t *testing.T) {
	prog := personByBirthYear()
	compact, err := Render(prog, sqlite.SQLite, Options{Pretty: false})
	require.NoError(t, err)
	pretty, err := Render(prog, sqlite.SQLite, Options{Pretty: true})
	require.NoError(t, err)

	assert.NotEqual(t, compact.SQL, pretty.SQL)
	assert.Contains(t, pretty.SQL, "\n")
}

func TestRender_Deterministic(t *testing.T) {
	prog := personByBirthYear()
	first, err := Render(prog, sqlite.SQLite, Options{})
	require.NoError(t, err)
	second, err := Render(prog, sqlite.SQLite, Options{})
	require.NoError(t, err)
	assert.Equal(t, first.SQL, second.SQL)
	assert.Equal(t, first.VarNames, second.VarNames)
}

// TestRender_PositionalParameterDuplication checks the parameter
// duplication property: a positional-only dialect must repeat a named
// parameter's VarNames entry once per occurrence.
func TestRender_PositionalParameterDuplication(t *testing.T) {
	sel := &clause.Select{
		Projection: []clause.Projection{
			{Expr: &clause.Ident{Qualifier: []string{"person_1"}, Name: "person_id"}},
		},
		From: &clause.Table{Name: "person", Alias: "person_1"},
		Where: &clause.Op{
			Name: "or",
			Args: []clause.Expr{
				&clause.Op{Name: "=", Args: []clause.Expr{
					&clause.Ident{Qualifier: []string{"person_1"}, Name: "gender_concept_id"},
					&clause.Var{Name: "gender"},
				}},
				&clause.Op{Name: "=", Args: []clause.Expr{
					&clause.Ident{Qualifier: []string{"person_1"}, Name: "location_id"},
					&clause.Var{Name: "gender"},
				}},
			},
		},
	}
	prog := &clause.Program{Query: sel}

	res, err := Render(prog, sqlite.SQLite, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"gender", "gender"}, res.VarNames)

	values, err := Pack(res, map[string]any{"gender": 8507})
	require.NoError(t, err)
	assert.Equal(t, []any{8507, 8507}, values)
}

func TestRender_NamedDialect_OneEntryPerDistinctName(t *testing.T) {
	named := dialect.NewDialect("named-test").
		Identifiers(`"`, `"`, false, false).
		Variables(dialect.Named, ":").
		Limit(dialect.LimitOffset).
		Build()

	sel := &clause.Select{
		Projection: []clause.Projection{{Expr: &clause.Var{Name: "x"}}},
		From:       &clause.Table{Name: "t", Alias: "t_1"},
		Where: &clause.Op{Name: "=", Args: []clause.Expr{
			&clause.Var{Name: "x"}, &clause.Var{Name: "x"},
		}},
	}
	res, err := Render(&clause.Program{Query: sel}, named, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, res.VarNames)
}

func TestRender_NilDialect(t *testing.T) {
	_, err := Render(&clause.Program{Query: &clause.Select{}}, nil, Options{})
	assert.ErrorIs(t, err, dialect.ErrDialectRequired)
}

func TestPack_MissingParam(t *testing.T) {
	res := &Result{SQL: "SELECT ?", VarNames: []string{"x"}}
	_, err := Pack(res, map[string]any{})
	require.Error(t, err)
	var missing *MissingParamError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "x", missing.Name)
}

func TestRender_ExternalHandler_FiresOncePerTableInOrder(t *testing.T) {
	first := &clause.TempTable{Name: "a", Select: &clause.Select{From: &clause.Table{Name: "t", Alias: "t_1"}}}
	second := &clause.TempTable{Name: "b", Select: &clause.Select{From: &clause.Table{Name: "t", Alias: "t_2"}}}
	prog := &clause.Program{
		TempTables: []*clause.TempTable{first, second},
		Query:      &clause.Select{From: &clause.Table{Name: "a", Alias: "a_1"}},
	}

	var seen []string
	res, err := Render(prog, sqlite.SQLite, Options{
		ExternalHandler: func(tableName, createSQL string) error {
			seen = append(seen, tableName)
			assert.Contains(t, createSQL, "CREATE TEMP TABLE")
			return nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seen)
	assert.NotContains(t, res.SQL, "CREATE TEMP TABLE")
}
