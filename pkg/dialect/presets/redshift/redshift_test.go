package redshift

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-sequel/sequel/pkg/dialect/presets/postgres"
)

func TestRedshift_InheritsFromPostgresButDropsLateral(t *testing.T) {
	assert.Equal(t, "redshift", Redshift.Name)
	assert.False(t, Redshift.HasLateral)
	assert.False(t, Redshift.HasGeneratedAlways)

	// Inherited, unmodified settings.
	assert.Equal(t, postgres.Postgres.VariableStyle, Redshift.VariableStyle)
	assert.Equal(t, postgres.Postgres.Quote, Redshift.Quote)
}

func TestRedshift_DoesNotMutatePostgresPreset(t *testing.T) {
	assert.True(t, postgres.Postgres.HasLateral)
	assert.True(t, postgres.Postgres.HasGeneratedAlways)
}
