// Package translate implements the translator (C6): it maps a linked
// Semantic IR graph to a clause tree (internal/clause), deciding when
// SQL's fixed grammar slot order forces a new SELECT subquery
// boundary and generating stable per-name aliases.
package translate
