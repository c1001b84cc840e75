package resolve

// Kind distinguishes the two top-level row-type shapes: an empty row, or
// a plain row of scalar/nested fields.
type Kind int

const (
	// EmptyRow carries no columns (not currently produced by any node,
	// but kept distinct from a zero-field Row for clarity at call sites).
	EmptyRow Kind = iota
	// RowKind is a row with zero or more named fields.
	RowKind
)

// FieldKind distinguishes a Row field's shape.
type FieldKind int

const (
	// Scalar is an ordinary column.
	Scalar FieldKind = iota
	// Nested is a field produced by As(name, pipeline): a sub-row
	// reached by Get(name, inner...) chains.
	Nested
	// Ambiguous is a field reachable by more than one path with no
	// disambiguating As; referencing it is a resolve-time error.
	Ambiguous
)

// Field is one named entry of a RowType.
type Field struct {
	Name string
	Kind FieldKind

	// Nested holds the field's row type when Kind == Nested.
	Nested *RowType

	// Sources records the originating paths when Kind == Ambiguous, so
	// an AmbiguousError can report where each candidate came from.
	Sources []string
}

// RowType is a semantic node's resolved output shape. A RowType whose
// AggregateScope is non-nil is the output of Group or Partition: Fields
// exposes exactly what a plain Get may address (the grouping keys),
// while AggregateScope is the wider row an Agg's arguments resolve
// against. This folds the separate grouped-row variant into an
// availability flag on Row, since Go has no closed sum type to model
// a wider field-type union directly — see DESIGN.md.
type RowType struct {
	Kind   Kind
	Fields []Field

	// AggregateScope is non-nil exactly when this RowType is the output
	// of Group or Partition.
	AggregateScope *RowType

	index map[string]int
}

// Empty is the unit row type: From(nil)'s single synthetic "_" column.
func Empty() *RowType {
	return NewRow([]Field{{Name: "_", Kind: Scalar}})
}

// NewRow builds a Row-kind RowType from an ordered field list.
func NewRow(fields []Field) *RowType {
	rt := &RowType{Kind: RowKind, Fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		rt.index[f.Name] = i
	}
	return rt
}

// Lookup finds a field by name. It never searches AggregateScope: a
// bare Get against a grouped row only ever sees the grouping keys.
func (rt *RowType) Lookup(name string) (*Field, bool) {
	if rt == nil {
		return nil, false
	}
	i, ok := rt.index[name]
	if !ok {
		return nil, false
	}
	return &rt.Fields[i], true
}

// Names returns the field names in declaration order.
func (rt *RowType) Names() []string {
	names := make([]string, len(rt.Fields))
	for i, f := range rt.Fields {
		names[i] = f.Name
	}
	return names
}

// With returns a copy of rt with field name replaced or appended,
// preserving order for unchanged fields (Define's semantics).
func (rt *RowType) With(field Field) *RowType {
	if rt == nil {
		return NewRow([]Field{field})
	}
	if i, ok := rt.index[field.Name]; ok {
		fields := append([]Field(nil), rt.Fields...)
		fields[i] = field
		cp := NewRow(fields)
		cp.AggregateScope = rt.AggregateScope
		return cp
	}
	fields := append(append([]Field(nil), rt.Fields...), field)
	cp := NewRow(fields)
	cp.AggregateScope = rt.AggregateScope
	return cp
}

// Concat concatenates rt and other's fields in order, marking any
// shared name Ambiguous on both sides (Join's semantics).
func Concat(left, right *RowType) *RowType {
	seen := make(map[string]int, len(left.Fields)+len(right.Fields))
	var fields []Field
	add := func(f Field, side string) {
		if i, dup := seen[f.Name]; dup {
			prev := fields[i]
			sources := append([]string{}, prev.Sources...)
			if prev.Kind != Ambiguous {
				sources = []string{oppositeSide(side)}
			}
			sources = append(sources, side)
			fields[i] = Field{Name: f.Name, Kind: Ambiguous, Sources: sources}
			return
		}
		seen[f.Name] = len(fields)
		fields = append(fields, f)
	}
	for _, f := range left.Fields {
		add(f, "left")
	}
	for _, f := range right.Fields {
		add(f, "right")
	}
	return NewRow(fields)
}

func oppositeSide(side string) string {
	if side == "left" {
		return "right"
	}
	return "left"
}

// Intersect keeps only fields present (by name) in every branch,
// preserving lead's order (Append's intersect-only semantics). Fields
// whose type disagrees across branches collapse to Scalar.
func Intersect(lead *RowType, branches ...*RowType) (*RowType, []string) {
	var dropped []string
	var fields []Field
	for _, f := range lead.Fields {
		inAll := true
		agree := true
		for _, b := range branches {
			bf, ok := b.Lookup(f.Name)
			if !ok {
				inAll = false
				break
			}
			if bf.Kind != f.Kind {
				agree = false
			}
		}
		if !inAll {
			dropped = append(dropped, f.Name)
			continue
		}
		if !agree {
			f = Field{Name: f.Name, Kind: Scalar}
		}
		fields = append(fields, f)
	}
	return NewRow(fields), dropped
}
