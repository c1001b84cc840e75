package link

import (
	"github.com/go-sequel/sequel/internal/resolve"
	"github.com/go-sequel/sequel/pkg/node"
)

// Annotation records the externally-needed columns at one node's
// output.
type Annotation struct {
	// Refs is the ordered set of field names of this node's own output
	// that something above it actually needs.
	Refs []string
}

// Result is the linker's output.
type Result struct {
	Nodes map[node.Node]*Annotation

	// PrunedJoins marks optional Joins whose joinee contributes no
	// referenced column.
	PrunedJoins map[*node.JoinNode]bool

	// DroppedCTEs marks With/Over CTE labels never reached by a
	// From(label) anywhere under the main branch.
	DroppedCTEs map[string]bool
}

// Linker propagates needed-reference sets using row types computed by
// internal/resolve.
type Linker struct {
	types *resolve.Result
}

// New builds a Linker over a resolve.Result.
func New(types *resolve.Result) *Linker {
	return &Linker{types: types}
}

// Link runs the pass over root, rooted at "every column of root's
// resolved type is needed" (the compiled query's caller wants the
// full declared output shape).
func (lk *Linker) Link(root node.Node) *Result {
	res := &Result{
		Nodes:       map[node.Node]*Annotation{},
		PrunedJoins: map[*node.JoinNode]bool{},
		DroppedCTEs: map[string]bool{},
	}
	rootType := lk.types.Types[root]
	lk.visit(root, rootType.Names(), res)
	return res
}

func (lk *Linker) record(n node.Node, needed []string, res *Result) {
	if a, ok := res.Nodes[n]; ok {
		a.Refs = mergeOrdered(a.Refs, needed)
		return
	}
	res.Nodes[n] = &Annotation{Refs: append([]string(nil), needed...)}
}

func mergeOrdered(a, b []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func (lk *Linker) visit(n node.Node, needed []string, res *Result) {
	lk.record(n, needed, res)
	switch v := n.(type) {
	case *node.FromNode:
		// leaf
	case *node.WhereNode:
		child := mergeOrdered(needed, directRefs(v.Cond))
		lk.linkSubqueries(v.Cond, res)
		lk.visit(v.Tail(), child, res)
	case *node.SelectNode:
		needSet := toSet(needed)
		var child []string
		for _, it := range v.Items {
			if len(needSet) > 0 && !needSet[it.Label] {
				continue
			}
			child = mergeOrdered(child, directRefs(it.Value))
			lk.linkSubqueries(it.Value, res)
		}
		lk.visit(v.Tail(), child, res)
	case *node.DefineNode:
		defined := map[string]bool{}
		for _, it := range v.Items {
			defined[it.Label] = true
		}
		var passthrough []string
		for _, n := range needed {
			if !defined[n] {
				passthrough = append(passthrough, n)
			}
		}
		needSet := toSet(needed)
		child := passthrough
		for _, it := range v.Items {
			if len(needSet) > 0 && !needSet[it.Label] {
				continue
			}
			child = mergeOrdered(child, directRefs(it.Value))
			lk.linkSubqueries(it.Value, res)
		}
		lk.visit(v.Tail(), child, res)
	case *node.JoinNode:
		onRefs := directRefs(v.On)
		lk.linkSubqueries(v.On, res)
		combined := mergeOrdered(needed, onRefs)
		leftType := lk.types.Types[v.Tail()]
		rightType := lk.types.Types[v.Joinee]
		var leftNeeded, rightNeeded []string
		for _, name := range combined {
			if _, ok := leftType.Lookup(name); ok {
				leftNeeded = append(leftNeeded, name)
			}
			if _, ok := rightType.Lookup(name); ok {
				rightNeeded = append(rightNeeded, name)
			}
		}
		if v.Optional {
			genuinelyNeeded := false
			for _, name := range needed {
				if _, ok := rightType.Lookup(name); ok {
					genuinelyNeeded = true
					break
				}
			}
			if !genuinelyNeeded {
				res.PrunedJoins[v] = true
			}
		}
		lk.visit(v.Tail(), leftNeeded, res)
		lk.visit(v.Joinee, rightNeeded, res)
	case *node.AppendNode:
		lk.visit(v.Tail(), needed, res)
		for _, o := range v.Others {
			lk.visit(o, needed, res)
		}
	case *node.IterateNode:
		lk.visit(v.Tail(), needed, res)
		lk.visit(v.Iterator, needed, res)
	case *node.WithNode:
		referenced := collectFromLabels(v.Tail())
		for _, c := range v.CTEs {
			if !referenced[c.Label] {
				res.DroppedCTEs[c.Label] = true
				continue
			}
			cteType := lk.types.Types[c.Query]
			lk.visit(c.Query, cteType.Names(), res)
		}
		lk.visit(v.Tail(), needed, res)
	case *node.WithExternalNode:
		referenced := collectFromLabels(v.Tail())
		for _, c := range v.CTEs {
			if !referenced[c.Label] {
				res.DroppedCTEs[c.Label] = true
				continue
			}
			cteType := lk.types.Types[c.Query]
			lk.visit(c.Query, cteType.Names(), res)
		}
		lk.visit(v.Tail(), needed, res)
	case *node.BindNode:
		// Bind arguments reference the enclosing scope, which link
		// does not track across this boundary; conservatively treat
		// them as always-needed from wherever they're consumed (the
		// resolver already validated the binding). See DESIGN.md.
		lk.visit(v.Tail(), needed, res)
	case *node.GroupNode:
		inputType := lk.types.Types[v.Tail()]
		var child []string
		for _, k := range v.Keys {
			child = mergeOrdered(child, directRefs(k.Value))
		}
		// Conservative: aggregate-scope references used by a sibling
		// Agg downstream aren't tracked through Group's key list here,
		// so fall back to the full pre-group row when anything beyond
		// the keys is needed.
		keyLabels := make(map[string]bool, len(v.Keys))
		for _, k := range v.Keys {
			keyLabels[k.Label] = true
		}
		for _, name := range needed {
			if !keyLabels[name] {
				child = inputType.Names()
				break
			}
		}
		lk.visit(v.Tail(), child, res)
	case *node.PartitionNode:
		var child []string
		for _, k := range v.Keys {
			child = mergeOrdered(child, directRefs(k.Value))
		}
		if v.OrderBy != nil {
			for _, s := range v.OrderBy {
				child = mergeOrdered(child, directRefs(s))
			}
		}
		child = mergeOrdered(child, needed)
		lk.visit(v.Tail(), child, res)
	case *node.OrderNode:
		child := needed
		for _, s := range v.By {
			child = mergeOrdered(child, directRefs(s))
		}
		lk.visit(v.Tail(), child, res)
	case *node.LimitNode:
		lk.visit(v.Tail(), needed, res)
	case *node.AsNode:
		if isPipelineNode(v.Input) {
			innerType := lk.types.Types[v.Input]
			lk.visit(v.Input, innerType.Names(), res)
		}
	}
}

// linkSubqueries finds any pipeline embedded as a Fun argument and
// links it independently, rooted at its own full output shape.
func (lk *Linker) linkSubqueries(n node.Node, res *Result) {
	switch v := n.(type) {
	case *node.FunNode:
		for _, a := range v.Args {
			if isPipelineNode(a) {
				t := lk.types.Types[a]
				lk.visit(a, t.Names(), res)
			} else {
				lk.linkSubqueries(a, res)
			}
		}
	case *node.AggNode:
		for _, a := range v.Args {
			lk.linkSubqueries(a, res)
		}
	}
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
