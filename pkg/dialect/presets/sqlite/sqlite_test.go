package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sequel/sequel/internal/clause"
	"github.com/go-sequel/sequel/internal/render"
	"github.com/go-sequel/sequel/pkg/dialect"
)

func TestSQLite_Capabilities(t *testing.T) {
	assert.False(t, SQLite.HasLateral)
	assert.False(t, SQLite.HasGeneratedAlways)
	assert.False(t, SQLite.HasFrameExclusion)
	assert.False(t, SQLite.BooleanLiteral)
	assert.Equal(t, dialect.Positional, SQLite.VariableStyle)
	assert.Equal(t, "?", SQLite.VariablePrefix)
}

func TestSQLite_QuotesWithDoubleQuotes(t *testing.T) {
	assert.Equal(t, `"person"`, SQLite.QuoteIdentifier("person"))
	assert.Equal(t, `"a""b"`, SQLite.QuoteIdentifier(`a"b`))
}

func TestSQLite_BooleanLiteralsRenderAsIntegerComparisons(t *testing.T) {
	assert.Equal(t, "(1=1)", SQLite.FormatBoolean(true))
	assert.Equal(t, "(1=0)", SQLite.FormatBoolean(false))
}

func TestSQLite_PositionalParametersRepeatPerOccurrence(t *testing.T) {
	prog := &clause.Program{Query: &clause.Select{
		Projection: []clause.Projection{{Expr: &clause.Var{Name: "x"}}},
		From:       &clause.Table{Name: "t", Alias: "t_1"},
		Where: &clause.Op{Name: "=", Args: []clause.Expr{
			&clause.Var{Name: "x"}, &clause.Var{Name: "x"},
		}},
	}}
	res, err := render.Render(prog, SQLite, render.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "x"}, res.VarNames)
	assert.Contains(t, res.SQL, "SELECT ? FROM")
}
