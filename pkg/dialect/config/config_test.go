package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sequel/sequel/pkg/dialect/presets/sqlite"
)

func TestLoad_FileOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dialect.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: custom\nquote_open: \"`\"\nquote_close: \"`\"\n"), 0o600))

	opts, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "custom", opts.Name)
	assert.Equal(t, "`", opts.QuoteOpen)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dialect.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: from_file\n"), 0o600))

	require.NoError(t, os.Setenv("SEQUEL_DIALECT_NAME", "from_env"))
	defer func() { _ = os.Unsetenv("SEQUEL_DIALECT_NAME") }()

	opts, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from_env", opts.Name)
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	require.NoError(t, os.Setenv("SEQUEL_DIALECT_NAME", "from_env"))
	defer func() { _ = os.Unsetenv("SEQUEL_DIALECT_NAME") }()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("name", "", "dialect name")
	require.NoError(t, fs.Set("name", "from_flag"))

	opts, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "from_flag", opts.Name)
}

func TestApply_ZeroFieldsLeaveBaseUntouched(t *testing.T) {
	got := Apply(sqlite.SQLite, Options{})
	assert.Equal(t, sqlite.SQLite.Quote.Open, got.Quote.Open)
	assert.Equal(t, sqlite.SQLite.VariableStyle, got.VariableStyle)
	assert.Equal(t, sqlite.SQLite.Name, got.Name)
}

func TestApply_OverridesQuotingAndVariableStyle(t *testing.T) {
	got := Apply(sqlite.SQLite, Options{
		QuoteOpen:      "[",
		QuoteClose:     "]",
		VariableStyle:  "numbered",
		VariablePrefix: "$",
	})
	assert.Equal(t, "[", got.Quote.Open)
	assert.Equal(t, "]", got.Quote.Close)
	assert.Equal(t, "$", got.VariablePrefix)
	assert.NotEqual(t, sqlite.SQLite.VariableStyle, got.VariableStyle)
}

func TestApply_FeatureFlagsAreAdditiveOnly(t *testing.T) {
	// HasLateral starting false can be turned on by an override, but a
	// false override never turns an already-true base flag off (spec.md
	// §6 options only ever narrow from a full descriptor via Customize,
	// never silently downgrade a capability the base already has).
	got := Apply(sqlite.SQLite, Options{HasLateral: true})
	assert.True(t, got.HasLateral)
}
