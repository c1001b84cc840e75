// Package redshift provides the Amazon Redshift dialect preset, derived
// from postgres via Dialect.Customize.
package redshift

import (
	"github.com/go-sequel/sequel/pkg/dialect"
	"github.com/go-sequel/sequel/pkg/dialect/presets/postgres"
)

func init() {
	dialect.Register(Redshift)
}

// Redshift is Postgres-like but without LATERAL joins or GENERATED
// ALWAYS identity columns.
var Redshift = postgres.Postgres.Customize(func(b *dialect.Builder) {
	b.Named("redshift").Features(false, false, true, false, false)
})
