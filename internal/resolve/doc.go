// Package resolve implements the resolver (C4): the pass that assigns a
// row type to every semantic node and binds each Get/Var/Agg reference
// to the node that produces it. It is the hardest pass
// in the pipeline — the rest of the compiler (internal/link,
// internal/translate) consumes its output rather than re-deriving
// scope information from the tree.
//
// Annotations are never written onto node.Node values (those stay
// immutable and owned by the caller); instead Resolve returns a
// Result holding side-tables keyed by node identity, mirroring the
// teacher's Scope/ScopeEntry bookkeeping but adapted to Go's lack of
// algebraic node mutation.
package resolve
