package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/gfak/pkg/errors"
	"github.com/matzehuels/gfak/pkg/gfa"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Labels adds segment lengths to nodes and overlaps to arrows.
	// When false, only segment names are shown.
	Labels bool
	// MaxNodes bounds the number of drawn segments. Zero means no limit.
	MaxNodes int
}

// ToDOT converts a graph to Graphviz DOT source.
//
// Links and edges are both drawn unless the graph is marked consistent for
// one version; see [Arrows].
func ToDOT(g *gfa.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, name := range g.Owners() {
		fmt.Fprintf(&buf, "  %q [%s];\n", name, strings.Join(nodeAttrs(g, name, opts.Labels), ", "))
	}
	for _, name := range danglingSinks(g) {
		fmt.Fprintf(&buf, "  %q [%s];\n", name, strings.Join(nodeAttrs(g, name, opts.Labels), ", "))
	}

	buf.WriteString("\n")
	for _, a := range Arrows(g) {
		attrs := []string{fmt.Sprintf("taillabel=%q", orient(a.From.Forward)), fmt.Sprintf("headlabel=%q", orient(a.To.Forward))}
		if opts.Labels && a.Label != "" && a.Label != "*" {
			attrs = append(attrs, fmt.Sprintf("label=%q", a.Label))
		}
		if a.Contained {
			attrs = append(attrs, "style=dashed", "arrowhead=odiamond")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", a.From.Name, a.To.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Arrow is one drawn adjacency.
type Arrow struct {
	From, To  gfa.Ref
	Label     string
	Contained bool
}

// Arrows lists the adjacencies [ToDOT] draws, in natural order of their
// source. When the graph is marked consistent for one version, only that
// version's records are drawn.
func Arrows(g *gfa.Graph) []Arrow {
	c := g.Consistency()
	useLinks := !c.GFA2 || c.GFA1
	useEdges := !c.GFA1 || c.GFA2
	if c.GFA1 && c.GFA2 {
		useEdges = g.Version() == gfa.Version2
		useLinks = !useEdges
	}

	var out []Arrow
	for _, name := range g.Owners() {
		if useLinks {
			for _, l := range g.Links(name) {
				out = append(out, Arrow{From: l.Source, To: l.Sink, Label: l.Overlap})
			}
		}
		for _, ct := range g.Contained(name) {
			out = append(out, Arrow{From: ct.Source, To: ct.Sink, Label: ct.Overlap, Contained: true})
		}
		if useEdges {
			for _, e := range g.Edges(name) {
				out = append(out, Arrow{From: e.Source, To: e.Sink, Label: e.Alignment})
			}
		}
	}
	return out
}

// Count returns the number of nodes [ToDOT] draws.
func Count(g *gfa.Graph) int { return len(g.Owners()) + len(danglingSinks(g)) }

// Check reports an error when g exceeds opts.MaxNodes.
func Check(g *gfa.Graph, opts Options) error {
	if n := Count(g); opts.MaxNodes > 0 && n > opts.MaxNodes {
		return errs.New(errs.ErrCodeInvalidInput, "graph has %d segments, render limit is %d", n, opts.MaxNodes)
	}
	return nil
}

// danglingSinks returns arrow targets that are neither declared nor owners,
// in natural order.
func danglingSinks(g *gfa.Graph) []string {
	owners := make(map[string]bool)
	for _, name := range g.Owners() {
		owners[name] = true
	}
	seen := make(map[string]bool)
	var out []string
	for _, a := range Arrows(g) {
		if !owners[a.To.Name] && !seen[a.To.Name] {
			seen[a.To.Name] = true
			out = append(out, a.To.Name)
		}
	}
	gfa.SortNames(out)
	return out
}

func nodeAttrs(g *gfa.Graph, name string, labels bool) []string {
	s, declared := g.Sequence(name)
	label := name
	if labels && declared {
		label = fmt.Sprintf("%s\n%d bp", name, s.Length)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if !declared {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

func orient(fwd bool) string {
	if fwd {
		return "+"
	}
	return "-"
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
