package render

import (
	"github.com/go-sequel/sequel/internal/clause"
	"github.com/go-sequel/sequel/pkg/dialect"
)

// ExternalHandler is WithExternal's extension point: it is
// invoked exactly once per defined temp table, in declaration order,
// before the main query is rendered, receiving the table's name and the
// CREATE TEMP TABLE statement text. When nil, the CREATE statements are
// rendered inline ahead of the main query instead.
type ExternalHandler func(tableName, createSQL string) error

// Options configures one Render call.
type Options struct {
	// Pretty selects multi-line, indented output; the default (false)
	// is the single-line compact form.
	Pretty bool

	// ExternalHandler, if set, receives each WithExternal-declared temp
	// table instead of having it rendered inline.
	ExternalHandler ExternalHandler
}

// Result is a compiled query's SQL text plus its ordered parameter-name
// list.
type Result struct {
	SQL      string
	VarNames []string
}

// Render serializes prog to dialect-specific SQL text.
func Render(prog *clause.Program, d *dialect.Dialect, opts Options) (*Result, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	c := &ctx{d: d, params: newTracker(d), pretty: opts.Pretty}

	if opts.ExternalHandler != nil && len(prog.TempTables) > 0 {
		for _, tt := range prog.TempTables {
			sql := c.tempTable(tt)
			if err := opts.ExternalHandler(tt.Name, sql); err != nil {
				return nil, err
			}
		}
		cp := *prog
		cp.TempTables = nil
		prog = &cp
	}

	sql := c.program(prog)
	return &Result{SQL: sql, VarNames: c.params.VarNames}, nil
}
