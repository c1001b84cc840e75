// Package postgres provides the PostgreSQL dialect preset.
package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/go-sequel/sequel/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
}

// Postgres is the PostgreSQL dialect: double-quoted identifiers (quoted
// via pgx.Identifier.Sanitize, the same quoting the driver itself uses,
// rather than a hand-rolled doubling routine), $N numbered parameters,
// LATERAL joins, and GENERATED ALWAYS support.
var Postgres = dialect.NewDialect("postgres").
	Identifiers(`"`, `"`, true, false).
	QuoteIdentifierFunc(quoteIdentifier).
	Variables(dialect.Numbered, "$").
	Limit(dialect.LimitOffset).
	Booleans(true).
	Features(true, true, true, true, true).
	Build()

func quoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
