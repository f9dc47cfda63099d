// Package io resolves paths to GFA streams and writes graphs to files.
//
// # Overview
//
// The core parser in [gfa] never opens files: it reads any io.Reader. This
// package is the thin layer that turns a command-line path into such a reader,
// reports unopenable sources as SOURCE_UNAVAILABLE errors, and writes results
// back out as GFA text or as a JSON summary for external tools.
//
// # Import
//
// Use [ImportGFA] to parse a file into a new graph, or [ImportGFAInto] to merge
// another file into an existing one:
//
//	g, diags, err := io.ImportGFA("assembly.gfa")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range diags {
//	    log.Warn(d.Message, "line", d.Line)
//	}
//
// The path "-" reads standard input.
//
// # Export
//
// [ExportGFA] writes GFA text in the requested order and version. [WriteJSON]
// and [ExportJSON] write a JSON document of the graph:
//
//	{
//	  "version": "1.0",
//	  "nodes": [
//	    {"id": "A", "length": 4, "sequence": "ACGT"},
//	    {"id": "B", "length": 4, "sequence": "TTTT", "tags": ["RC:i:12"]}
//	  ],
//	  "edges": [
//	    {"kind": "link", "from": "A+", "to": "B+", "overlap": "4M"}
//	  ],
//	  "paths": [
//	    {"name": "p1", "steps": ["A+", "B+"]}
//	  ]
//	}
//
// Links and GFA2 edges both appear under "edges", told apart by "kind". Edge
// coordinates are kept in "range". Ordered groups that mirror paths are listed
// under "paths" only when the graph has no paths of its own.
//
// [gfa]: github.com/matzehuels/gfak/pkg/gfa
package io
