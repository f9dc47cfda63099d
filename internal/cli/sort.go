package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/gfak/pkg/errors"
	"github.com/matzehuels/gfak/pkg/pipeline"
)

// convertFlags are the serialize flags shared by sort and diff.
type convertFlags struct {
	block bool
	to    string
	walks bool
}

func (f *convertFlags) register(cmd *cobra.Command, conversions bool) {
	cmd.Flags().BoolVarP(&f.block, "block", "b", false, "write each record kind as one block instead of per segment")
	if conversions {
		cmd.Flags().StringVar(&f.to, "to", "", "convert to GFA version 1 or 2")
		cmd.Flags().BoolVar(&f.walks, "walks", false, "add walk (W) records for every path")
	}
}

// options merges flags over config file defaults. A flag wins only when it
// was set on the command line.
func (c *CLI) options(cmd *cobra.Command, f convertFlags) pipeline.Options {
	opts := pipeline.Options{
		Block:   c.Config.BlockOrder,
		Version: c.Config.Version,
		Walks:   c.Config.Walks,
		Logger:  c.Logger,
	}
	flags := cmd.Flags()
	if flags.Changed("block") {
		opts.Block = f.block
	}
	if flags.Changed("to") {
		opts.Version = f.to
	}
	if flags.Changed("walks") {
		opts.Walks = f.walks
	}
	return opts
}

func (c *CLI) sortCommand() *cobra.Command {
	var (
		flags   convertFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "sort <file>...",
		Short: "Rewrite GFA files in a stable order",
		Long: `Sort reads every file into one graph and writes it back.

By default each segment is followed by the links, containments and edges that
start at it, segments in natural name order (s2 before s10). With --block,
each record kind is written as one block in input order.

--to converts the graph so one version's record set carries all of it:
links and paths become edges and groups (--to 2) or the reverse (--to 1).`,
		Example: `  gfak sort assembly.gfa
  gfak sort -b --to 2 assembly.gfa -o assembly.gfa2
  cat a.gfa | gfak sort -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, flags)
			if err := opts.ValidateForConvert(); err != nil {
				return err
			}
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(loggerFromContext(cmd.Context()))
			res, err := runner.Convert(cmd.Context(), args, opts)
			if err != nil {
				return err
			}
			logSummary(c.Logger, res.Diagnostics)
			if err := writeOutput(cmd, output, res.Output); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Sorted %d file(s)", len(args)))
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the output cache")

	return cmd
}

// writeOutput writes data to path, or to the command's stdout when path is
// empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := errs.ValidateOutputPath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
