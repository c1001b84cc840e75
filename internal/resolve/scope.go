package resolve

import "github.com/go-sequel/sequel/pkg/node"

// binderFrame is one active Bind's variable bindings, pushed while its
// inner pipeline is resolved and popped on return: a Var resolves to
// the nearest enclosing Bind that supplies its name.
type binderFrame struct {
	node   *node.BindNode
	labels map[string]bool
}

// scope threads the lexical bookkeeping a resolve pass needs beyond
// the current node's own input row type: named CTEs reachable via
// From(label), and the stack of enclosing Bind frames.
type scope struct {
	ctes    map[string]*RowType
	recur   map[string]*RowType // Iterate's self-reference binding, by As-label
	binders []*binderFrame

	// outer is the row type a Bind's arguments resolve against: the
	// row type in scope at the point a Bind-wrapped pipeline was
	// reached (a Join's left input for a lateral joinee, or a Where/
	// Select's own input for a Fun-argument subquery).
	outer *RowType
}

func newScope() *scope {
	return &scope{ctes: map[string]*RowType{}, recur: map[string]*RowType{}}
}

// child returns a copy sharing the same maps (CTEs and recursion
// bindings are visible to every nested subquery) but an independently
// growable binder stack, so pushing a Bind frame while resolving one
// branch never leaks into a sibling branch.
func (s *scope) child() *scope {
	return &scope{ctes: s.ctes, recur: s.recur, binders: append([]*binderFrame(nil), s.binders...), outer: s.outer}
}

// withOuter returns a copy with outer set, for entering a context
// where a nested Bind's arguments should resolve against rt.
func (s *scope) withOuter(rt *RowType) *scope {
	cp := s.child()
	cp.outer = rt
	return cp
}

func (s *scope) pushBind(b *node.BindNode, labels []string) *scope {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[l] = true
	}
	cp := s.child()
	cp.binders = append(cp.binders, &binderFrame{node: b, labels: set})
	return cp
}

// lookupVar searches binder frames innermost-first, returning the
// binding frame and its depth (0 = nearest enclosing Bind).
func (s *scope) lookupVar(name string) (*node.BindNode, int, bool) {
	for depth, i := 0, len(s.binders)-1; i >= 0; i, depth = i-1, depth+1 {
		if s.binders[i].labels[name] {
			return s.binders[i].node, depth, true
		}
	}
	return nil, 0, false
}

func (s *scope) defineCTE(label string, rt *RowType) *scope {
	cp := s.child()
	ctes := make(map[string]*RowType, len(cp.ctes)+1)
	for k, v := range cp.ctes {
		ctes[k] = v
	}
	ctes[label] = rt
	cp.ctes = ctes
	return cp
}

func (s *scope) defineRecur(label string, rt *RowType) *scope {
	cp := s.child()
	recur := make(map[string]*RowType, len(cp.recur)+1)
	for k, v := range cp.recur {
		recur[k] = v
	}
	recur[label] = rt
	cp.recur = recur
	return cp
}
