// Package mysql provides the MySQL dialect preset.
package mysql

import "github.com/go-sequel/sequel/pkg/dialect"

func init() {
	dialect.Register(MySQL)
}

// MySQL is the MySQL dialect: backtick identifiers, bare "?" positional
// parameters, no LATERAL, no native boolean type (rendered as (1=1)), and
// LIMIT count OFFSET offset rather than OFFSET/FETCH.
var MySQL = dialect.NewDialect("mysql").
	Identifiers("`", "`", true, false).
	Variables(dialect.Positional, "?").
	Limit(dialect.LimitOffset).
	Booleans(false).
	Features(false, false, false, false, false).
	Build()
