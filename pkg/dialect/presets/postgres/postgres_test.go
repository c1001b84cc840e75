package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sequel/sequel/internal/clause"
	"github.com/go-sequel/sequel/internal/render"
	"github.com/go-sequel/sequel/pkg/dialect"
)

func TestPostgres_QuotesViaPgx(t *testing.T) {
	// pgx.Identifier.Sanitize doubles embedded quotes the same way the
	// hand-rolled quoter does, but it's the library's own quoting, not
	// ours; this pins the wiring rather than pgx's internals.
	assert.Equal(t, `"person"`, Postgres.QuoteIdentifier("person"))
	assert.Equal(t, `"person""s"`, Postgres.QuoteIdentifier(`person"s`))
}

func TestPostgres_Capabilities(t *testing.T) {
	assert.True(t, Postgres.HasLateral)
	assert.True(t, Postgres.HasGeneratedAlways)
	assert.True(t, Postgres.HasFrameExclusion)
	assert.Equal(t, dialect.Numbered, Postgres.VariableStyle)
}

func TestPostgres_LateralJoinRenders(t *testing.T) {
	prog := &clause.Program{Query: &clause.Select{
		Projection: []clause.Projection{{Expr: &clause.Ident{Qualifier: []string{"p_1"}, Name: "person_id"}}},
		From:       &clause.Table{Name: "person", Alias: "p_1"},
		Joins: []*clause.Join{{
			Kind:    clause.InnerJoin,
			Lateral: true,
			On:      &clause.Lit{Kind: clause.LitBool, Value: true},
			Table: &clause.Derived{
				Alias:   "l_1",
				Lateral: true,
				Inner:   &clause.Select{From: &clause.Table{Name: "location", Alias: "loc_1"}},
			},
		}},
	}}

	res, err := render.Render(prog, Postgres, render.Options{})
	require.NoError(t, err)
	assert.Contains(t, res.SQL, "LATERAL")
}

func TestPostgres_NumberedParametersDistinctPerName(t *testing.T) {
	prog := &clause.Program{Query: &clause.Select{
		Projection: []clause.Projection{{Expr: &clause.Var{Name: "x"}}},
		From:       &clause.Table{Name: "t", Alias: "t_1"},
		Where: &clause.Op{Name: "=", Args: []clause.Expr{
			&clause.Var{Name: "x"}, &clause.Var{Name: "x"},
		}},
	}}
	res, err := render.Render(prog, Postgres, render.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, res.VarNames)
	assert.Contains(t, res.SQL, "$1")
}
