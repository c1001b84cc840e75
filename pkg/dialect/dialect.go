package dialect

import (
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// VariableStyle controls how a compiled query's parameters are rendered.
type VariableStyle int

const (
	// Named dialects emit :name, preserving the original parameter name.
	Named VariableStyle = iota
	// Numbered dialects emit a prefix followed by a 1-based index that is
	// stable per distinct name within one compiled query ($1, ?1, ...).
	Numbered
	// Positional dialects emit the bare prefix every time a parameter
	// occurs, with no index; duplicate occurrences of one name are
	// resolved later by pack().
	Positional
)

// LimitStyle controls how LIMIT/OFFSET is rendered.
type LimitStyle int

const (
	LimitOffset LimitStyle = iota // LIMIT n OFFSET m
	OffsetFetch                   // OFFSET m ROWS FETCH NEXT n ROWS ONLY
	Top                           // SELECT TOP n ...
)

// IdentifierQuote is the open/close pair used to quote identifiers.
type IdentifierQuote struct {
	Open, Close string
}

// Dialect is an immutable descriptor of one database's SQL surface. Build
// one with NewDialect(...).Build(), or customize an existing preset with
// Dialect.Customize.
type Dialect struct {
	Name string

	Quote    IdentifierQuote
	FoldCase bool // true: identifiers compare case-insensitively
	Upper    bool // when FoldCase, fold to upper instead of lower

	VariableStyle  VariableStyle
	VariablePrefix string // ":", "$", "?"

	BooleanLiteral    bool // false: render TRUE/FALSE as (1=1)/(1=0)
	LimitStyle        LimitStyle
	StringConcatOp    string // "||" or "CONCAT"
	DateLiteralPrefix string // "" or "DATE " etc.

	HasLateral         bool
	HasBooleanType     bool
	HasGeneratedAlways bool
	HasAsKeyword       bool
	HasFrameExclusion  bool
	HasWithTies        bool

	// QuoteIdentifierFunc, when non-nil, overrides the default
	// Quote-pair-based quoting (e.g. the postgres preset delegates to
	// pgx.Identifier.Sanitize instead of hand-rolled doubling; see
	// pkg/dialect/presets/postgres).
	QuoteIdentifierFunc func(name string) string
}

// QuoteIdentifier quotes name for safe use as a SQL identifier, doubling
// any embedded close-quote characters (or delegating to
// QuoteIdentifierFunc when the dialect supplies one).
func (d *Dialect) QuoteIdentifier(name string) string {
	if d.QuoteIdentifierFunc != nil {
		return d.QuoteIdentifierFunc(name)
	}
	escaped := replaceAll(name, d.Quote.Close, d.Quote.Close+d.Quote.Close)
	return d.Quote.Open + escaped + d.Quote.Close
}

func replaceAll(s, old, replacement string) string {
	if old == "" {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		if i+len(old) <= len(s) && s[i:i+len(old)] == old {
			out = append(out, replacement...)
			i += len(old)
			continue
		}
		out = append(out, s[i])
		i++
	}
	return string(out)
}

var foldLower = cases.Fold()
var foldUpper = cases.Upper(language.Und)

// NormalizeName folds name per the dialect's catalog lookup rule, used
// for case-insensitive table/column matching. Unicode
// case folding is used rather than strings.ToUpper/ToLower so multi-byte
// identifiers fold correctly.
func (d *Dialect) NormalizeName(name string) string {
	if !d.FoldCase {
		return name
	}
	if d.Upper {
		return foldUpper.String(name)
	}
	return foldLower.String(name)
}

// FormatPlaceholder renders the parameter at position index (1-based,
// stable per distinct name) per the dialect's VariableStyle.
func (d *Dialect) FormatPlaceholder(name string, index int) string {
	switch d.VariableStyle {
	case Named:
		return d.VariablePrefix + name
	case Numbered:
		return d.VariablePrefix + strconv.Itoa(index)
	default: // Positional
		return d.VariablePrefix
	}
}

// FormatBoolean renders a boolean literal per the dialect's boolean
// support.
func (d *Dialect) FormatBoolean(v bool) string {
	if d.BooleanLiteral {
		if v {
			return "TRUE"
		}
		return "FALSE"
	}
	if v {
		return "(1=1)"
	}
	return "(1=0)"
}

// Builder assembles a Dialect via a fluent, mutation-free API: every
// method returns the same *Builder so calls chain, but Build() is the
// only place a *Dialect value is produced.
type Builder struct {
	d Dialect
}

// NewDialect starts building a dialect named name, preset to plain ANSI
// defaults (double-quote identifiers, named parameters, LIMIT/OFFSET).
func NewDialect(name string) *Builder {
	return &Builder{d: Dialect{
		Name:           name,
		Quote:          IdentifierQuote{Open: `"`, Close: `"`},
		VariableStyle:  Named,
		VariablePrefix: ":",
		BooleanLiteral: true,
		LimitStyle:     LimitOffset,
		StringConcatOp: "||",
		HasAsKeyword:   true,
	}}
}

// Identifiers sets the identifier quote pair and case-folding rule.
func (b *Builder) Identifiers(open, close string, foldCase, upper bool) *Builder {
	b.d.Quote = IdentifierQuote{Open: open, Close: close}
	b.d.FoldCase = foldCase
	b.d.Upper = upper
	return b
}

// QuoteIdentifierFunc overrides identifier quoting with a custom
// function (e.g. delegating to a driver package's own quoting helper).
func (b *Builder) QuoteIdentifierFunc(f func(string) string) *Builder {
	b.d.QuoteIdentifierFunc = f
	return b
}

// Variables sets the parameter style and prefix character.
func (b *Builder) Variables(style VariableStyle, prefix string) *Builder {
	b.d.VariableStyle = style
	b.d.VariablePrefix = prefix
	return b
}

// Limit sets the LIMIT/OFFSET rendering form.
func (b *Builder) Limit(style LimitStyle) *Builder {
	b.d.LimitStyle = style
	return b
}

// Named sets (or overrides) the dialect's name tag, used when deriving
// one dialect from another with Customize.
func (b *Builder) Named(name string) *Builder {
	b.d.Name = name
	return b
}

// Booleans sets whether the dialect has a native boolean literal.
func (b *Builder) Booleans(hasBooleanLiteral bool) *Builder {
	b.d.BooleanLiteral = hasBooleanLiteral
	b.d.HasBooleanType = hasBooleanLiteral
	return b
}

// StringConcat sets the string concatenation operator/function name.
func (b *Builder) StringConcat(op string) *Builder {
	b.d.StringConcatOp = op
	return b
}

// Features sets the dialect's capability flags.
func (b *Builder) Features(lateral, generatedAlways, asKeyword, frameExclusion, withTies bool) *Builder {
	b.d.HasLateral = lateral
	b.d.HasGeneratedAlways = generatedAlways
	b.d.HasAsKeyword = asKeyword
	b.d.HasFrameExclusion = frameExclusion
	b.d.HasWithTies = withTies
	return b
}

// Build returns the constructed, immutable Dialect.
func (b *Builder) Build() *Dialect {
	d := b.d
	return &d
}

// Customize returns a new Dialect derived from d with overrides applied,
// leaving d untouched (spec.md §6: "dialect.customize(overrides) yields
// a new descriptor (builder, not mutation)").
func (d *Dialect) Customize(overrides func(*Builder)) *Dialect {
	b := &Builder{d: *d}
	overrides(b)
	return b.Build()
}
