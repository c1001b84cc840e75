package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_DuplicateColumn(t *testing.T) {
	_, err := NewTable("person", []string{"person_id", "person_id"})
	require.Error(t, err)
	var dup *DuplicateColumnError
	assert.ErrorAs(t, err, &dup)
	assert.Equal(t, "person", dup.Table)
	assert.Equal(t, "person_id", dup.Column)
}

func TestTable_HasColumn(t *testing.T) {
	tbl, err := NewTable("person", []string{"person_id", "year_of_birth"})
	require.NoError(t, err)
	assert.True(t, tbl.HasColumn("person_id"))
	assert.False(t, tbl.HasColumn("location_id"))
}
