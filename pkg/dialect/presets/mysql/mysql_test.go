package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sequel/sequel/internal/clause"
	"github.com/go-sequel/sequel/internal/render"
	"github.com/go-sequel/sequel/pkg/dialect"
)

func TestMySQL_Capabilities(t *testing.T) {
	assert.False(t, MySQL.HasLateral)
	assert.False(t, MySQL.HasBooleanType)
	assert.Equal(t, dialect.Positional, MySQL.VariableStyle)
	assert.Equal(t, "`person`", MySQL.QuoteIdentifier("person"))
}

func TestMySQL_BooleanLiteralRendersAsComparison(t *testing.T) {
	prog := &clause.Program{Query: &clause.Select{
		Projection: []clause.Projection{{Expr: &clause.Lit{Kind: clause.LitBool, Value: true}}},
		From:       &clause.Table{Name: "t", Alias: "t_1"},
	}}
	res, err := render.Render(prog, MySQL, render.Options{})
	require.NoError(t, err)
	assert.NotContains(t, res.SQL, "TRUE")
}
