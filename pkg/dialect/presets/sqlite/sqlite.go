// Package sqlite provides the SQLite dialect preset, the default dialect
// used throughout spec.md §8's worked examples.
package sqlite

import "github.com/go-sequel/sequel/pkg/dialect"

func init() {
	dialect.Register(SQLite)
}

// SQLite is the SQLite dialect: double-quoted identifiers, bare "?"
// positional parameters, no LATERAL, no frame exclusion.
var SQLite = dialect.NewDialect("sqlite").
	Identifiers(`"`, `"`, true, false).
	Variables(dialect.Positional, "?").
	Limit(dialect.LimitOffset).
	Booleans(false).
	Features(false, false, true, false, false).
	Build()
