package cli

import (
	"io"

	"github.com/spf13/cobra"

	graphio "github.com/kzmshx/php-graph/pkg/io"
)

// graphCommand creates the graph export command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		flags  sourceFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph [dir...]",
		Short: "Export the whole dependency graph as JSON",
		Long: `Scan the given directories and write every class with its source path and
dependents as JSON. Pass the export to 'phpgraph dependents --from' to
query it without scanning again.

With --from, an existing export is read and written back in canonical
order.`,
		Example: `  phpgraph graph src lib -o graph.json
  phpgraph dependents --from graph.json 'App\Models\User'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			g, err := c.loadGraph(cmd.Context(), &flags, cfg, args)
			if err != nil {
				return err
			}

			err = writeOutput(cmd, output, func(w io.Writer) error {
				return graphio.WriteJSON(g, w)
			})
			if err != nil {
				return err
			}
			if output != "" {
				printSuccess("Exported %d classes", g.NodeCount())
				printFile(output)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
