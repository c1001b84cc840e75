package translate

import "github.com/go-sequel/sequel/internal/clause"

// binding is how one field of the current scope's row materializes in
// the clause tree: either a directly renderable expression, or (for a
// field produced by As over a pipeline) a nested environment to keep
// resolving an inner Get chain against.
type binding struct {
	expr   clause.Expr
	nested *environment
}

// environment is the translator's parallel to resolve.RowType: instead
// of a field's type, it carries the field's concrete physical
// representation at the current point in the clause tree.
type environment struct {
	fields map[string]*binding
	order  []string

	// aggregateScope, when non-nil, is the environment an Agg's
	// arguments resolve against (the pre-Group/Partition row).
	aggregateScope *environment
}

func newEnvironment() *environment {
	return &environment{fields: map[string]*binding{}}
}

func (e *environment) set(name string, b *binding) {
	if _, exists := e.fields[name]; !exists {
		e.order = append(e.order, name)
	}
	e.fields[name] = b
}

func (e *environment) get(name string) (*binding, bool) {
	if e == nil {
		return nil, false
	}
	b, ok := e.fields[name]
	return b, ok
}

// clone copies e's fields and order (not its aggregateScope chain,
// which callers reassign explicitly), so a Define can build on top of
// its input without retroactively mutating anything upstream already
// holding a reference to it.
func (e *environment) clone() *environment {
	cp := newEnvironment()
	cp.order = append([]string(nil), e.order...)
	for k, v := range e.fields {
		cp.fields[k] = v
	}
	cp.aggregateScope = e.aggregateScope
	return cp
}

// concat appends other's fields after e's own, in order. Used for
// Join, where the resolver has already rejected any ambiguous name
// actually referenced; a plain last-wins merge is safe here.
func (e *environment) concat(other *environment) *environment {
	cp := e.clone()
	for _, name := range other.order {
		b, _ := other.get(name)
		cp.set(name, b)
	}
	return cp
}
