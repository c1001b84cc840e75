package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/go-sequel/sequel/pkg/dialect"
)

func newDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered dialects and their capability flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Dialect", "Quote", "Variables", "Limit", "Lateral", "Frame Excl.", "With Ties"})

			for _, name := range dialect.List() {
				d, err := dialect.Get(name)
				if err != nil {
					return err
				}
				t.AppendRow(table.Row{
					d.Name,
					d.Quote.Open + "..." + d.Quote.Close,
					variableStyleText(d.VariableStyle) + " " + d.VariablePrefix,
					limitStyleText(d.LimitStyle),
					yesNo(d.HasLateral),
					yesNo(d.HasFrameExclusion),
					yesNo(d.HasWithTies),
				})
			}

			t.Render()
			return nil
		},
	}
}

func variableStyleText(s dialect.VariableStyle) string {
	switch s {
	case dialect.Named:
		return "named"
	case dialect.Numbered:
		return "numbered"
	case dialect.Positional:
		return "positional"
	default:
		return "unknown"
	}
}

func limitStyleText(s dialect.LimitStyle) string {
	switch s {
	case dialect.LimitOffset:
		return "LIMIT/OFFSET"
	case dialect.OffsetFetch:
		return "OFFSET/FETCH"
	case dialect.Top:
		return "TOP"
	default:
		return "unknown"
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
