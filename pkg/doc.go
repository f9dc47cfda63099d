// Package pkg holds the gfak libraries for Graphical Fragment Assembly files.
//
// # Overview
//
// GFA is the tab-separated text format genome assemblers use to exchange
// sequence graphs. gfak reads both major versions into one model, converts
// between them and writes them back deterministically. The packages are:
//
//  1. [gfa] - record types, parser, graph model, converter, serializer
//  2. [io] - file import, GFA and JSON export
//  3. [pipeline] - load, convert, serialize or render, with caching
//  4. [render/nodelink] - Graphviz node-link diagrams
//  5. [cache], [config], [errors], [observability], [buildinfo] - support
//
// # Data flow
//
//	GFA1 / GFA2 text
//	      ↓
//	 [gfa.Parse] (records + diagnostics)
//	      ↓
//	 [gfa.Graph] (GFA2ize / GFA1ize / PathsAsWalks)
//	      ↓
//	 [gfa.Write] or [nodelink.ToDOT]
//	      ↓
//	GFA text, JSON, SVG, PNG, DOT
//
// # Quick Start
//
//	g, diags, err := gfa.Parse(f)
//	if err != nil {
//	    return err // the source could not be read
//	}
//	for _, d := range diags {
//	    log.Printf("line %d: %s", d.Line, d.Message)
//	}
//	g.GFA2ize()
//	return gfa.Write(os.Stdout, g, gfa.WriteOptions{Version: gfa.Version2})
package pkg
