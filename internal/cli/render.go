package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/go-sequel/sequel/internal/cli/fixtures"
	"github.com/go-sequel/sequel/pkg/sequel"
)

func newRenderCommand() *cobra.Command {
	var dialectName string
	var pretty bool
	var compact bool

	cmd := &cobra.Command{
		Use:   "render <fixture>",
		Short: "Render one of the worked example queries",
		Long: `Render compiles a named fixture query to SQL text plus its ordered
parameter list for the given dialect.

Run "sequel render" with no arguments to list the available fixtures.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range fixtures.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			return runRender(cmd, args[0], dialectName, pretty, compact)
		},
	}

	cmd.Flags().StringVarP(&dialectName, "dialect", "d", "sqlite", "dialect to render for")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "force multi-line pretty output")
	cmd.Flags().BoolVar(&compact, "compact", false, "force single-line compact output")
	return cmd
}

func runRender(cmd *cobra.Command, name, dialectName string, pretty, compact bool) error {
	fixture, ok := fixtures.Get(name)
	if !ok {
		return fmt.Errorf("unknown fixture %q (run %q with no arguments to list them)", name, cmd.CommandPath())
	}

	d, err := sequel.DialectByName(dialectName)
	if err != nil {
		return fmt.Errorf("render %q: %w", name, err)
	}

	person, location, condition, err := fixtures.Catalog()
	if err != nil {
		return err
	}
	cat, err := sequel.NewCatalog(d, []*sequel.Table{person, location, condition})
	if err != nil {
		return err
	}

	switch {
	case compact:
		pretty = false
	case pretty:
		// explicit
	default:
		pretty = !term.IsTerminal(int(os.Stdout.Fd()))
	}

	result, err := sequel.Render(fixture.Node, cat, sequel.RenderOptions{Pretty: pretty})
	if err != nil {
		return fmt.Errorf("render %q: %w", name, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Text)
	if len(result.VarNames) > 0 {
		fmt.Fprintf(out, "-- params: %s\n", strings.Join(result.VarNames, ", "))
	}
	return nil
}
