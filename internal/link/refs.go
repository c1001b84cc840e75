package link

import "github.com/go-sequel/sequel/pkg/node"

// directRefs collects, in first-occurrence order, the top-level field
// names of whatever row type n is resolved against that n's Get nodes
// touch. It does not descend into nested pipelines (Fun/subquery
// arguments, As-wrapped pipelines): those are independent scope
// boundaries linked in their own right.
func directRefs(n node.Node) []string {
	var names []string
	seen := map[string]bool{}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	var walk func(node.Node)
	walk = func(n node.Node) {
		switch v := n.(type) {
		case *node.GetNode:
			add(rootName(v))
		case *node.VarNode, *node.LitNode:
			// no column references
		case *node.FunNode:
			for _, a := range v.Args {
				if isScalarLike(a) {
					walk(a)
				}
			}
		case *node.AggNode:
			for _, a := range v.Args {
				walk(a)
			}
			if v.Filter != nil {
				walk(v.Filter)
			}
		case *node.SortNode:
			walk(v.Value)
		case *node.AsNode:
			if !isPipelineNode(v.Input) {
				walk(v.Input)
			}
		}
	}
	walk(n)
	return names
}

func rootName(g *node.GetNode) string {
	for g.Inner != nil {
		g = g.Inner
	}
	return g.Name
}

// isScalarLike reports whether n should be walked as an ordinary
// scalar expression rather than treated as an opaque nested pipeline
// (a Fun subquery argument).
func isScalarLike(n node.Node) bool {
	return !isPipelineNode(n)
}

func isPipelineNode(n node.Node) bool {
	switch v := n.(type) {
	case *node.FromNode, *node.WhereNode, *node.SelectNode, *node.DefineNode,
		*node.JoinNode, *node.AppendNode, *node.IterateNode, *node.WithNode,
		*node.WithExternalNode, *node.BindNode, *node.GroupNode, *node.PartitionNode,
		*node.OrderNode, *node.LimitNode:
		return true
	case *node.AsNode:
		return isPipelineNode(v.Input)
	default:
		return false
	}
}

// collectFromLabels gathers every table name referenced via From(name)
// under n, without crossing into nested pipelines' own CTE scopes
// (used to find which With/Over CTEs are actually reachable).
func collectFromLabels(n node.Node) map[string]bool {
	out := map[string]bool{}
	var walk func(node.Node)
	walk = func(n node.Node) {
		switch v := n.(type) {
		case *node.FromNode:
			if v.Table != "" {
				out[v.Table] = true
			}
		case *node.WhereNode:
			walk(v.Tail())
			walkExprSubqueries(v.Cond, walk)
		case *node.SelectNode:
			walk(v.Tail())
			for _, it := range v.Items {
				walkExprSubqueries(it.Value, walk)
			}
		case *node.DefineNode:
			walk(v.Tail())
			for _, it := range v.Items {
				walkExprSubqueries(it.Value, walk)
			}
		case *node.JoinNode:
			walk(v.Tail())
			walk(v.Joinee)
			walkExprSubqueries(v.On, walk)
		case *node.AppendNode:
			walk(v.Tail())
			for _, o := range v.Others {
				walk(o)
			}
		case *node.IterateNode:
			walk(v.Tail())
			walk(v.Iterator)
		case *node.WithNode:
			for _, c := range v.CTEs {
				walk(c.Query)
			}
			walk(v.Tail())
		case *node.WithExternalNode:
			for _, c := range v.CTEs {
				walk(c.Query)
			}
			walk(v.Tail())
		case *node.BindNode:
			walk(v.Tail())
		case *node.GroupNode:
			walk(v.Tail())
		case *node.PartitionNode:
			walk(v.Tail())
		case *node.OrderNode:
			walk(v.Tail())
		case *node.LimitNode:
			walk(v.Tail())
		case *node.AsNode:
			walk(v.Input)
		}
	}
	walk(n)
	return out
}

// walkExprSubqueries descends into any pipeline embedded as a Fun
// argument (e.g. Fun("in", Get(...), From(...)|>Select(...))).
func walkExprSubqueries(n node.Node, walk func(node.Node)) {
	switch v := n.(type) {
	case *node.FunNode:
		for _, a := range v.Args {
			if isPipelineNode(a) {
				walk(a)
			} else {
				walkExprSubqueries(a, walk)
			}
		}
	case *node.AggNode:
		for _, a := range v.Args {
			walkExprSubqueries(a, walk)
		}
	}
}
