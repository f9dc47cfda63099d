// Package nodelink renders GFA graphs as node-link diagrams.
//
// # Overview
//
// Segments become boxes and links or GFA2 edges become arrows between them,
// laid out by Graphviz from left to right, the way assembly graphs are
// usually drawn. Containments are drawn as dashed arrows. References to
// undeclared segments get a dashed grey box so that dangling records stay
// visible.
//
// # Usage
//
// Convert a graph to DOT, then render to SVG or PNG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// Nodes and arrows are emitted in natural order, so the DOT text for a graph
// is deterministic and can be cached by content.
//
// # Options
//
//   - Labels: include segment lengths in node labels and overlaps on arrows
//   - MaxNodes: refuse graphs with more segments than this (0 means no limit)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], which runs Graphviz as
// WebAssembly in-process. No system Graphviz install is needed.
package nodelink
