package cli

import (
	"github.com/spf13/cobra"
)

func (c *CLI) diffCommand() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Merge two GFA files and print the union",
		Long: `Diff reads both files into one graph and prints it.

Segments, paths, groups and headers present in both files take the value from
<b> but keep their position from <a>. Links and other adjacency records from
both files are kept, so a link present in both appears twice.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only the order applies: a diff shows records as written.
			opts := c.options(cmd, flags)
			opts.Version, opts.Walks = "", false
			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Diff(cmd.Context(), args, opts)
			if err != nil {
				return err
			}
			logSummary(c.Logger, res.Diagnostics)
			_, err = cmd.OutOrStdout().Write(res.Output)
			return err
		},
	}

	flags.register(cmd, false)
	return cmd
}
