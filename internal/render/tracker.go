package render

import "github.com/go-sequel/sequel/pkg/dialect"

// tracker assigns placeholder text to each clause.Var occurrence and
// accumulates the ordered parameter-name list pack() later consumes
//.
//
// Named and Numbered dialects give one stable index per distinct name
// (first occurrence wins); VarNames then holds one entry per distinct
// name, in first-occurrence order, and pack() hands back exactly one
// value per index. Positional dialects have no index to reuse, so
// VarNames instead records one entry per occurrence, duplicates
// included, and pack() must look up the same name twice.
type tracker struct {
	d        *dialect.Dialect
	index    map[string]int
	VarNames []string
}

func newTracker(d *dialect.Dialect) *tracker {
	return &tracker{d: d, index: map[string]int{}}
}

// placeholder renders a Var named name and records it per d.VariableStyle.
func (t *tracker) placeholder(name string) string {
	switch t.d.VariableStyle {
	case dialect.Positional:
		t.VarNames = append(t.VarNames, name)
		return t.d.FormatPlaceholder(name, 0)
	default: // Named, Numbered
		idx, ok := t.index[name]
		if !ok {
			idx = len(t.VarNames) + 1
			t.index[name] = idx
			t.VarNames = append(t.VarNames, name)
		}
		return t.d.FormatPlaceholder(name, idx)
	}
}
