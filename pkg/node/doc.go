// Package node defines the Semantic IR: the high-level, order-insensitive
// pipeline of data operations that a caller builds by hand.
//
// A query is a DAG of Nodes rooted at the pipeline's final stage. Pipeline
// nodes (From, Where, Select, Join, ...) each carry a single "tail" that
// points at their input; scalar nodes (Get, Var, Lit, Fun, Agg, ...) are
// Nodes too and may reference columns of the enclosing pipeline node.
//
// Nodes are immutable once built. The compiler (pkg/catalog, internal/...)
// never mutates a Node; it builds a fresh, derived representation instead.
//
// # Basic usage
//
//	q := node.From("person").
//		Pipe(node.Where(node.Get("year_of_birth").Eq(node.Lit(1980)))).
//		Pipe(node.Select(node.Get("person_id")))
package node
