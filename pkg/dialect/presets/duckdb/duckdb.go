// Package duckdb provides the DuckDB dialect preset, exercised in tests
// against the real marcboeker/go-duckdb driver (see duckdb_test.go).
package duckdb

import "github.com/go-sequel/sequel/pkg/dialect"

func init() {
	dialect.Register(DuckDB)
}

// DuckDB is the DuckDB dialect: double-quoted, case-insensitive
// identifiers, bare "?" parameters, LATERAL joins, and frame-exclusion
// support.
var DuckDB = dialect.NewDialect("duckdb").
	Identifiers(`"`, `"`, true, false).
	Variables(dialect.Positional, "?").
	Limit(dialect.LimitOffset).
	Booleans(true).
	Features(true, true, true, true, true).
	Build()
