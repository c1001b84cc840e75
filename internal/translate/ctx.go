package translate

import "github.com/go-sequel/sequel/internal/clause"

// cteRef is how a With/Over/WithExternal-registered or Iterate's
// recursive label resolves when a later From(label) reaches it: the
// physical name to reference (a CTE's alias or a recursive binding's
// fixed name) and the row shape to build an environment from.
type cteRef struct {
	tableName string
	columns   []string
	selfRef   bool // true for an Iterate's own recursive self-reference
}

// tctx threads the lexical bindings a translate pass needs beyond the
// immediately-open builder: named CTEs and Iterate's self-reference,
// both reachable via From(label).
type tctx struct {
	refs map[string]*cteRef
	vars []map[string]clause.Expr
}

func newTctx() *tctx {
	return &tctx{refs: map[string]*cteRef{}}
}

func (c *tctx) with(label string, ref *cteRef) *tctx {
	refs := make(map[string]*cteRef, len(c.refs)+1)
	for k, v := range c.refs {
		refs[k] = v
	}
	refs[label] = ref
	return &tctx{refs: refs, vars: c.vars}
}

// withVars pushes a Bind's argument values as a new innermost Var
// frame, shadowing any outer frame with the same names.
func (c *tctx) withVars(frame map[string]clause.Expr) *tctx {
	return &tctx{refs: c.refs, vars: append(append([]map[string]clause.Expr(nil), c.vars...), frame)}
}

// lookupVar searches Var frames innermost-first, mirroring
// internal/resolve's scope.lookupVar depth search.
func (c *tctx) lookupVar(name string) (clause.Expr, bool) {
	for i := len(c.vars) - 1; i >= 0; i-- {
		if e, ok := c.vars[i][name]; ok {
			return e, true
		}
	}
	return nil, false
}
