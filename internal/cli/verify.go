package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/gfak/pkg/errors"
)

func (c *CLI) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file>...",
		Short: "Report references to undeclared segments",
		Long: `Verify reads every file into one graph and lists each record that names a
segment, edge or group nobody declared. Parse diagnostics are listed too.

The command fails when any reference dangles.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			refs, diags, err := runner.Verify(cmd.Context(), args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, d := range diags {
				printWarning(out, "%s", d.Error())
			}
			for _, ref := range refs {
				printError(out, "%s", ref.String())
			}
			if len(refs) > 0 {
				return errs.New(errs.ErrCodeDanglingReference, "%d dangling reference(s)", len(refs))
			}

			printSuccess(out, "No dangling references")
			if len(diags) > 0 {
				printDetail(out, "%s", pluralize(len(diags), "diagnostic"))
			}
			return nil
		},
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
