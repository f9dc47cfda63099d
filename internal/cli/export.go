package cli

import (
	"github.com/spf13/cobra"

	gfaio "github.com/matzehuels/gfak/pkg/io"
)

func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <file>...",
		Short: "Dump the graph model as JSON",
		Long: `Export reads every file into one graph and writes it as a JSON document with
nodes (segments), edges (links and GFA2 edges) and paths. Optional fields are
kept as their raw TAG:TYPE:VALUE text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			g, diags, err := runner.Load(cmd.Context(), args)
			if err != nil {
				return err
			}
			logSummary(c.Logger, diags)

			if output == "" || output == "-" {
				return gfaio.WriteJSON(g, cmd.OutOrStdout())
			}
			if err := gfaio.ExportJSON(g, output); err != nil {
				return err
			}
			c.Logger.Info("exported", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
