package gfa

import (
	"fmt"

	errs "github.com/matzehuels/gfak/pkg/errors"
)

// DanglingReference names a record that refers to something the graph does
// not declare.
type DanglingReference struct {
	Kind   Kind   // kind of the referring record
	Record string // how the referring record is identified in messages
	Name   string // the missing name
}

func (d DanglingReference) String() string {
	return fmt.Sprintf("%s %s refers to undeclared %q", d.Kind, d.Record, d.Name)
}

// Diagnostic converts d into a DANGLING_REFERENCE diagnostic.
func (d DanglingReference) Diagnostic() Diagnostic {
	return Diagnostic{Code: errs.ErrCodeDanglingReference, Message: d.String()}
}

// Verify lists every reference to a segment that is not declared. Group items
// may also name another group or a named edge. Parsing never calls Verify;
// dangling references are legal in the model.
func (g *Graph) Verify() []DanglingReference {
	var out []DanglingReference
	check := func(k Kind, rec, name string) {
		if _, ok := g.seqIdx[name]; !ok {
			out = append(out, DanglingReference{Kind: k, Record: rec, Name: name})
		}
	}

	for _, l := range g.links {
		rec := l.Source.String() + " " + l.Sink.String()
		check(KindLink, rec, l.Source.Name)
		check(KindLink, rec, l.Sink.Name)
	}
	for _, c := range g.contained {
		rec := c.Source.String() + " " + c.Sink.String()
		check(KindContainment, rec, c.Source.Name)
		check(KindContainment, rec, c.Sink.Name)
	}
	for _, a := range g.alignments {
		check(KindAlignment, a.Source+" "+a.Reference, a.Source)
	}
	edgeIDs := make(map[string]bool)
	for _, e := range g.edges {
		if e.ID != "*" {
			edgeIDs[e.ID] = true
		}
		rec := orStar(e.ID)
		check(KindEdge, rec, e.Source.Name)
		check(KindEdge, rec, e.Sink.Name)
	}
	for _, f := range g.fragments {
		check(KindFragment, f.Segment+" "+f.External.String(), f.Segment)
	}
	for _, gap := range g.gaps {
		rec := orStar(gap.ID)
		check(KindGap, rec, gap.Source.Name)
		check(KindGap, rec, gap.Sink.Name)
	}
	for _, p := range g.paths {
		for _, seg := range p.Segments {
			check(KindPath, p.Name, seg)
		}
	}
	for _, w := range g.walks {
		check(KindWalk, fmt.Sprintf("%s rank %d", w.Path, w.Rank), w.Segment)
	}
	for _, grp := range g.groups {
		for _, item := range grp.Items {
			if _, ok := g.groupIdx[item]; ok || edgeIDs[item] {
				continue
			}
			check(KindGroup, grp.ID, item)
		}
	}
	return out
}
