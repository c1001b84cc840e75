// Package dialect describes how a target database's SQL grammar differs
// from plain ANSI SQL: identifier quoting, parameter style, LIMIT/OFFSET
// form, and a handful of feature flags the translator consults when
// deciding how to emit a clause.
//
// Concrete dialects live under pkg/dialect/presets; this package defines
// the Dialect type, its Builder, and a small process-wide registry those
// presets register themselves into, adapted from the teacher's
// pkg/dialect parsing-dialect registry but re-purposed for serialization
// rather than parsing.
package dialect
