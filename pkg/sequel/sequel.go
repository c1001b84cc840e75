// Package sequel is the library's public facade: a thin
// re-export of the Semantic IR constructors (pkg/node), the catalog and
// dialect types (pkg/catalog, pkg/dialect), and the two top-level
// entry points, Render and Pack, that run a query through the full
// Resolve → Link → Translate → Render pipeline without requiring a
// caller to reach into internal/ directly.
package sequel

import (
	"github.com/go-sequel/sequel/internal/render"
	"github.com/go-sequel/sequel/pkg/catalog"
	"github.com/go-sequel/sequel/pkg/dialect"
	"github.com/go-sequel/sequel/pkg/node"
)

// SqlString is a compiled query's output: its dialect-specific SQL
// text and the ordered parameter-name list Pack consumes.
type SqlString struct {
	Text     string
	VarNames []string
}

// RenderOptions configures one Render call.
type RenderOptions struct {
	// Pretty selects multi-line, indented SQL text; the default is the
	// single-line compact form.
	Pretty bool

	// ExternalHandler, when set, receives each WithExternal-declared
	// temp table's CREATE statement instead of having it inlined
	// ahead of the main query.
	ExternalHandler func(tableName, createSQL string) error
}

// Render compiles query against cat without going through its
// compiled-query cache (spec.md §6: "render(query, dialect|catalog) →
// SqlString(text, var_names)"). Prefer catalog.Catalog.Compile directly
// when cache reuse across calls matters.
func Render(query node.Node, cat *catalog.Catalog, opts ...RenderOptions) (*SqlString, error) {
	var o RenderOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	res, err := cat.Compile(query, catalog.CompileOptions{
		Pretty:          o.Pretty,
		ExternalHandler: render.ExternalHandler(o.ExternalHandler),
	})
	if err != nil {
		return nil, err
	}
	return &SqlString{Text: res.SQL, VarNames: res.VarNames}, nil
}

// Pack adapts a compiled query's named parameters to the ordered
// positional protocol a database/sql driver expects.
func Pack(sql *SqlString, mapping map[string]any) ([]any, error) {
	return render.Pack(&render.Result{SQL: sql.Text, VarNames: sql.VarNames}, mapping)
}

// Re-exported construction surface: every Semantic node constructor a caller needs to build a
// pipeline lives in pkg/node; the aliases below let a caller that only
// needs the common path import just pkg/sequel.
var (
	From         = node.From
	FromNil      = node.FromNil
	Where        = node.Where
	Select       = node.Select
	Define       = node.Define
	Join         = node.Join
	LeftJoin     = node.LeftJoin
	CrossJoin    = node.CrossJoin
	Append       = node.Append
	Iterate      = node.Iterate
	CTE          = node.CTE
	With         = node.With
	Over         = node.Over
	WithExternal = node.WithExternal
	Bind         = node.Bind
	Group        = node.Group
	Partition    = node.Partition
	PartitionBy  = node.PartitionBy
	OrderBy      = node.OrderBy
	WithFrame    = node.WithFrame
	Order        = node.Order
	Limit        = node.Limit
	WithOffset   = node.WithOffset
	WithTies     = node.WithTies
	As           = node.As
	Labeled      = node.Labeled

	Get  = node.Get
	Col  = node.Col
	Var  = node.Var
	Lit  = node.Lit
	Fun  = node.Fun
	Agg  = node.Agg
	Sort = node.Sort
	Asc  = node.Asc
	Desc = node.Desc

	Eq     = node.Eq
	Ne     = node.Ne
	Lt     = node.Lt
	Le     = node.Le
	Gt     = node.Gt
	Ge     = node.Ge
	Not    = node.Not
	IsNull = node.IsNull
	Like   = node.Like
	And    = node.And
	Or     = node.Or
	Concat = node.Concat
	Add    = node.Add
	Sub    = node.Sub
	Mul    = node.Mul
	Div    = node.Div
	Mod    = node.Mod

	Left         = node.Left
	OptionalJoin = node.OptionalJoin
	LateralJoin  = node.LateralJoin
)

// Re-exported types a caller constructs pipelines against.
type (
	Node     = node.Node
	Item     = node.Item
	CTEItem  = node.CTEItem
	SortNode = node.SortNode
	Frame    = node.Frame
)

// Re-exported dialect/catalog surface.
type (
	Dialect = dialect.Dialect
	Table   = catalog.Table
	Catalog = catalog.Catalog
)

// NewCatalog builds a Catalog over tables bound to d.
func NewCatalog(d *dialect.Dialect, tables []*catalog.Table, opts ...catalog.Option) (*catalog.Catalog, error) {
	return catalog.New(d, tables, opts...)
}

// NewTable builds a catalog.Table.
func NewTable(name string, columns []string, schema ...string) (*catalog.Table, error) {
	return catalog.NewTable(name, columns, schema...)
}

// DialectByName looks up a registered dialect preset.
func DialectByName(name string) (*dialect.Dialect, error) {
	return dialect.Get(name)
}
