package node

// Node is the common type for every Semantic IR node: pipeline operations
// (From, Where, Select, Join, ...) and scalar expressions (Get, Var, Lit,
// Fun, Agg, ...) alike. Nodes are immutable once constructed; the compiler
// never mutates a caller-supplied Node.
//
// Concrete node types are unexported-method-gated so only this package can
// introduce new kinds; callers always go through the constructor functions.
type Node interface {
	node()
}

// Pipeline identifies a Node whose output is a row set (as opposed to a
// scalar expression). Every pipeline node except From carries a single
// Tail: the pipeline stage it consumes as input.
type Pipeline interface {
	Node
	Tail() Node
}

// base is embedded by every pipeline node to record its single input.
// It is not itself exported: callers reach the tail through the Tail()
// method on the concrete node type, which also satisfies Pipeline.
type base struct {
	tail Node
}

func (b base) Tail() Node { return b.tail }

// Label returns the name this node exposes to its parent scope: the
// explicit alias given via As, or the node kind's default label. It
// mirrors spec's "Label" concept used for duplicate-name checks at
// construction time and, later, for GROUP/ORDER/SELECT column naming.
//
// ok is false when the node has no inferable default (e.g. a bare Lit);
// callers must wrap such nodes in As to give them a label. A Fun or Agg
// is labeled by its function name.
func Label(n Node) (name string, ok bool) {
	switch v := n.(type) {
	case *AsNode:
		return v.Name, true
	case *GetNode:
		if v.Inner != nil {
			return v.Name, true
		}
		return v.Name, true
	case *VarNode:
		return v.Name, true
	case *FunNode:
		return v.Name, true
	case *AggNode:
		return v.Name, true
	default:
		return "", false
	}
}
