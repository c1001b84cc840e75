package catalog

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/go-sequel/sequel/internal/link"
	"github.com/go-sequel/sequel/internal/render"
	"github.com/go-sequel/sequel/internal/resolve"
	"github.com/go-sequel/sequel/internal/translate"
	"github.com/go-sequel/sequel/pkg/dialect"
	"github.com/go-sequel/sequel/pkg/node"
)

// ErrUnknownTable is returned by Get when no table is registered under
// the requested name (spec.md §4.1's "catalog_lookup(name) → Table |
// NotFound").
var ErrUnknownTable = errors.New("catalog: unknown table")

// ErrDuplicateTable is returned by New when two tables share a
// (case-folded) name.
var ErrDuplicateTable = errors.New("catalog: duplicate table name")

// DefaultCacheSize is the compiled-query LRU's default bound (spec.md
// §5: "The cache uses an LRU bound (default 256)").
const DefaultCacheSize = 256

// Catalog maps logical table names to Tables, bound to one Dialect,
// and is the public compile entry point.
type Catalog struct {
	dialect *dialect.Dialect
	tables  map[string]*Table
	cache   *queryCache
	log     *slog.Logger
}

// Option configures a Catalog beyond its required dialect and tables.
type Option func(*Catalog)

// WithCacheSize overrides the compiled-query cache's LRU bound. n <= 0
// disables caching entirely.
func WithCacheSize(n int) Option {
	return func(c *Catalog) {
		if n <= 0 {
			c.cache = nil
			return
		}
		c.cache = newQueryCache(n)
	}
}

// WithLogger overrides the logger used for cache-miss diagnostics
// (evictions are not logged). The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) { c.log = l }
}

// New builds a Catalog over tables, bound to d, with a default-sized
// compiled-query cache.
func New(d *dialect.Dialect, tables []*Table, opts ...Option) (*Catalog, error) {
	if d == nil {
		return nil, dialect.ErrDialectRequired
	}
	byName := make(map[string]*Table, len(tables))
	for _, t := range tables {
		key := d.NormalizeName(t.Name)
		if _, dup := byName[key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTable, t.Name)
		}
		byName[key] = t
	}
	c := &Catalog{
		dialect: d,
		tables:  byName,
		cache:   newQueryCache(DefaultCacheSize),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns the Table registered under name, case-folded per the
// catalog's dialect.
func (c *Catalog) Get(name string) (*Table, error) {
	t, ok := c.tables[c.dialect.NormalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

// LookupTable implements internal/resolve.TableLookup.
func (c *Catalog) LookupTable(name string) (columns []string, ok bool) {
	t, err := c.Get(name)
	if err != nil {
		return nil, false
	}
	return t.Columns, true
}

// Dialect returns the catalog's bound dialect descriptor.
func (c *Catalog) Dialect() *dialect.Dialect { return c.dialect }

// CompileOptions configures one Compile call.
type CompileOptions struct {
	Pretty          bool
	ExternalHandler render.ExternalHandler
}

// Compile is the public entry point: Resolve + Link +
// Translate + Render, with a cache lookup on a structural key of
// (dialect identity, query shape, Pretty) in front. A query carrying an
// ExternalHandler always recompiles, since the handler's side effects
// must fire on every call, not just the
// first.
func (c *Catalog) Compile(query node.Node, opts ...CompileOptions) (*render.Result, error) {
	var o CompileOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.ExternalHandler != nil {
		return c.compile(query, o)
	}

	key := fmt.Sprintf("%s:%v", structuralKey(query, c.dialect.Name), o.Pretty)
	if c.cache != nil {
		if res, ok := c.cache.get(key); ok {
			return res, nil
		}
	}

	compileID := uuid.NewString()
	res, err := c.compileOnce(compileID, key, query, o)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// compileOnce runs the pipeline behind the cache's singleflight group
// so N goroutines racing to compile the same structural key collapse
// into one compile.
func (c *Catalog) compileOnce(compileID, key string, query node.Node, o CompileOptions) (*render.Result, error) {
	if c.cache == nil {
		return c.compile(query, o)
	}
	v, err, shared := c.cache.group.Do(key, func() (any, error) {
		return c.compile(query, o)
	})
	if err != nil {
		return nil, err
	}
	res := v.(*render.Result)
	if !shared {
		c.log.Debug("catalog: compiled-query cache miss",
			"compile_id", compileID, "dialect", c.dialect.Name)
		c.cache.put(key, res)
	}
	return res, nil
}

func (c *Catalog) compile(query node.Node, o CompileOptions) (*render.Result, error) {
	resolver := resolve.New(c, c.dialect)
	types, err := resolver.Resolve(query)
	if err != nil {
		return nil, err
	}
	linked := link.New(types).Link(query)
	prog, err := translate.New(types, linked, c.dialect).Translate(query)
	if err != nil {
		return nil, err
	}
	return render.Render(prog, c.dialect, render.Options{Pretty: o.Pretty, ExternalHandler: o.ExternalHandler})
}
