// Package catalog holds table metadata and the per-dialect compile
// entry point. A Catalog binds a fixed table set to
// one Dialect and fronts Resolve+Link+Translate+Render with a bounded,
// concurrency-safe compiled-query cache.
package catalog

import "fmt"

// DuplicateColumnError is raised by NewTable when two columns share a
// name (spec.md §3: "ordered list of column names with a companion set
// (uniqueness enforced)").
type DuplicateColumnError struct {
	Table, Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("catalog: table %q: duplicate column %q", e.Table, e.Column)
}

// Table is a catalog entry: a name, an optional schema qualifier
// chain, and an ordered, duplicate-free column list.
type Table struct {
	Schema  []string
	Name    string
	Columns []string

	columnSet map[string]bool
}

// NewTable builds a Table, rejecting a duplicate column name.
func NewTable(name string, columns []string, schema ...string) (*Table, error) {
	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		if set[c] {
			return nil, &DuplicateColumnError{Table: name, Column: c}
		}
		set[c] = true
	}
	return &Table{Schema: schema, Name: name, Columns: columns, columnSet: set}, nil
}

// HasColumn reports whether name is one of t's declared columns.
func (t *Table) HasColumn(name string) bool { return t.columnSet[name] }
