package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gfak/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file; derived from the first input when empty
	format   string // svg, png or dot
	labels   bool   // label arrows with overlaps
	maxNodes int    // refuse graphs with more nodes
	to       string // draw after converting to this version
	noCache  bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file>...",
		Short: "Draw the segment graph with Graphviz",
		Long: `Render draws every segment as a node and every link or edge as an arrow
from the source segment to the sink, labelled with the orientation at each end.
Segments that are referenced but never declared are drawn dashed.

The output file defaults to the first input's name with the format extension.`,
		Example: `  gfak render assembly.gfa
  gfak render -f png --labels assembly.gfa -o graph.png
  gfak render -f dot assembly.gfa -o - | dot -Tpdf > graph.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label arrows with their overlap")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", 0, fmt.Sprintf("largest graph to draw (default %d)", pipeline.DefaultMaxNodes))
	cmd.Flags().StringVar(&opts.to, "to", "", "convert to GFA version 1 or 2 before drawing")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the output cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, ro renderOpts) error {
	opts := pipeline.Options{
		Version:  c.Config.Version,
		Format:   c.Config.RenderFormat,
		Labels:   c.Config.Labels,
		MaxNodes: c.Config.MaxNodes,
		Logger:   c.Logger,
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		opts.Format = ro.format
	}
	if flags.Changed("labels") {
		opts.Labels = ro.labels
	}
	if flags.Changed("max-nodes") {
		opts.MaxNodes = ro.maxNodes
	}
	if flags.Changed("to") {
		opts.Version = ro.to
	}
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(cmd.Context()))
	res, err := runner.Render(cmd.Context(), args, opts)
	if err != nil {
		return err
	}
	logSummary(c.Logger, res.Diagnostics)

	out := ro.output
	if out == "" {
		out = outputPath(args[0], opts.Format)
	}
	if err := writeOutput(cmd, out, res.Output); err != nil {
		return err
	}
	if out == "-" {
		return nil
	}

	w := cmd.OutOrStdout()
	printSuccess(w, "Rendered %s", opts.Format)
	printFile(w, out)
	st := res.Stats.Records
	printStats(w, map[string]int{
		"segments": st.Sequences,
		"links":    st.Links,
		"edges":    st.Edges,
	}, []string{"segments", "links", "edges"}, res.CacheHit)
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(args)))
	return nil
}

// outputPath derives "<base>.<format>" from an input path. Stdin renders to
// "gfak.<format>".
func outputPath(input, format string) string {
	if input == "-" {
		return appName + "." + format
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(filepath.Dir(input), base+"."+format)
}
