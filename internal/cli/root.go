// Package cli provides the command-line interface for the sequel demo
// binary. It exercises pkg/sequel's facade over a handful of fixture
// queries; it is not part of the library's documented contract.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/go-sequel/sequel/pkg/dialect/presets/duckdb"
	_ "github.com/go-sequel/sequel/pkg/dialect/presets/mysql"
	_ "github.com/go-sequel/sequel/pkg/dialect/presets/postgres"
	_ "github.com/go-sequel/sequel/pkg/dialect/presets/redshift"
	_ "github.com/go-sequel/sequel/pkg/dialect/presets/sqlite"
)

// Version is set at build time via -ldflags.
var Version = "0.1.0"

// NewRootCmd builds the root command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "sequel",
		Short:   "sequel - a compositional SQL query-builder/compiler",
		Version: Version,
		Long: `sequel compiles a dialect-agnostic query pipeline (From, Where, Select,
Join, ...) to dialect-specific SQL text and an ordered parameter list.

This binary is a thin demonstration of pkg/sequel; it is not part of
the library's contract.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRenderCommand())
	root.AddCommand(newDialectsCommand())
	return root
}

// Execute runs the root command.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
