// Package config loads Dialect override options from YAML files,
// environment variables, and flags using koanf, mirroring the layered
// configuration approach the teacher uses for its CLI config
// (internal/config), adapted here to the much smaller surface of a
// single dialect override record.
package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/go-sequel/sequel/pkg/dialect"
)

// envPrefix is stripped from SEQUEL_DIALECT_*-style environment
// variables before they're folded into the koanf key space.
const envPrefix = "SEQUEL_DIALECT_"

// Options is the subset of dialect.Builder knobs that make sense to load
// from outside Go code: a caller pointing sequel at an unlisted
// Postgres-compatible database, say, without writing a preset package.
type Options struct {
	Name               string `koanf:"name"`
	QuoteOpen          string `koanf:"quote_open"`
	QuoteClose         string `koanf:"quote_close"`
	FoldCase           bool   `koanf:"fold_case"`
	Upper              bool   `koanf:"upper"`
	VariableStyle      string `koanf:"variable_style"` // "named" | "numbered" | "positional"
	VariablePrefix     string `koanf:"variable_prefix"`
	LimitStyle         string `koanf:"limit_style"` // "limit_offset" | "offset_fetch" | "top"
	BooleanLiteral     bool   `koanf:"boolean_literal"`
	HasLateral         bool   `koanf:"has_lateral"`
	HasGeneratedAlways bool   `koanf:"has_generated_always"`
	HasFrameExclusion  bool   `koanf:"has_frame_exclusion"`
}

// Load layers a YAML override file (if path is non-empty), environment
// variables prefixed SEQUEL_DIALECT_, and CLI flags (if fs is non-nil)
// into an Options value, in that precedence order (file < env < flags).
func Load(path string, fs *pflag.FlagSet) (Options, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Options{}, err
		}
	}

	envKey := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Options{}, err
	}

	if fs != nil {
		if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
			return Options{}, err
		}
	}

	var opts Options
	if err := k.Unmarshal("", &opts); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Apply returns base customized with opts (spec.md §4.1: "yields a new
// descriptor (builder, not mutation)"); zero-valued fields of opts leave
// the corresponding base setting untouched.
func Apply(base *dialect.Dialect, opts Options) *dialect.Dialect {
	return base.Customize(func(b *dialect.Builder) {
		if opts.Name != "" {
			b.Named(opts.Name)
		}
		if opts.QuoteOpen != "" || opts.QuoteClose != "" {
			openQuote, closeQuote := opts.QuoteOpen, opts.QuoteClose
			if openQuote == "" {
				openQuote = base.Quote.Open
			}
			if closeQuote == "" {
				closeQuote = base.Quote.Close
			}
			b.Identifiers(openQuote, closeQuote, opts.FoldCase || base.FoldCase, opts.Upper || base.Upper)
		}
		if opts.VariableStyle != "" {
			style := base.VariableStyle
			switch opts.VariableStyle {
			case "named":
				style = dialect.Named
			case "numbered":
				style = dialect.Numbered
			case "positional":
				style = dialect.Positional
			}
			prefix := opts.VariablePrefix
			if prefix == "" {
				prefix = base.VariablePrefix
			}
			b.Variables(style, prefix)
		}
		if opts.LimitStyle != "" {
			style := base.LimitStyle
			switch opts.LimitStyle {
			case "limit_offset":
				style = dialect.LimitOffset
			case "offset_fetch":
				style = dialect.OffsetFetch
			case "top":
				style = dialect.Top
			}
			b.Limit(style)
		}
		b.Booleans(opts.BooleanLiteral || base.BooleanLiteral)
		b.Features(
			opts.HasLateral || base.HasLateral,
			opts.HasGeneratedAlways || base.HasGeneratedAlways,
			base.HasAsKeyword,
			opts.HasFrameExclusion || base.HasFrameExclusion,
			base.HasWithTies,
		)
	})
}
