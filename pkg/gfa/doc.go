// Package gfa parses, models, converts and serializes Graphical Fragment
// Assembly (GFA) files.
//
// # Overview
//
// GFA is a tab-delimited text format for sequence graphs. Version 1 describes
// segments, links, containments and paths; version 2 describes segments,
// edges, fragments, gaps and groups. Both carry a trailing run of typed
// optional fields shaped key:type:value.
//
// This package holds every record of a file in a single [Graph], grouped by
// record kind and indexed by the segment each record hangs off:
//
//	g, diags, err := gfa.Parse(r)
//	if err != nil {
//	    return err // the stream could not be read
//	}
//	for _, d := range diags {
//	    log.Warn(d.Message, "line", d.Line)
//	}
//	fmt.Print(g.String())
//
// # Diagnostics
//
// Parsing never aborts on a bad line. Malformed lines, malformed optional
// fields and version conflicts are collected as [Diagnostics] and returned with
// the partially built graph. Referential integrity is not checked while
// parsing; call [Graph.Verify] to list dangling references.
//
// # Versions
//
// A VN header is authoritative. Without one, the version is inferred from the
// first record kind exclusive to one version (E, F, G, O, U and
// length-carrying S lines imply GFA 2; L, C and P imply GFA 1). Records of the
// other version are still stored, and [Graph.Conflict] reports the mix.
//
// # Conversion
//
// [Graph.GFA2ize] and [Graph.GFA1ize] translate between the two record sets
// (links and edges, paths and ordered groups). The conversions are best
// effort and not bijective: edge coordinate ranges and path overlaps have no
// counterpart on the other side, and each loss is reported as a
// LOSSY_CONVERSION diagnostic. Derived records are merged into the sibling
// containers, so applying the same direction twice leaves the graph unchanged.
//
// # Serialization
//
// [Graph.String] renders in natural order: each segment, sorted with
// [Compare], is followed by the records that hang off it. [Graph.BlockString]
// renders in block order: every record kind contiguously, in insertion order,
// which makes two graphs with the same content line-diffable.
//
// # Concurrency
//
// A Graph is not safe for concurrent mutation. Readers may share a graph that
// nobody modifies; the serializers never modify the graph.
package gfa
