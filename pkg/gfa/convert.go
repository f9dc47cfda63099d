package gfa

import (
	"slices"

	errs "github.com/matzehuels/gfak/pkg/errors"
)

// The conversions below are best effort and not bijective. Each writes
// derived records into the sibling container, skipping records that are
// already present, and returns LOSSY_CONVERSION notes for information that
// the target representation cannot hold.

// LinksAsEdges derives one edge per link. The edge spans both segments
// completely (0 to $), carries the link overlap as its alignment and takes its
// id from the link's ID:Z tag, or "*". The ID tag itself is not copied.
func (g *Graph) LinksAsEdges() Diagnostics {
	for _, l := range g.links {
		e := g.linkToEdge(l)
		if !g.hasEdge(e) {
			g.appendEdge(e)
		}
	}
	return nil
}

func (g *Graph) linkToEdge(l Link) Edge {
	id := "*"
	tags := l.Tags.Clone()
	if f, ok := tags.Get("ID"); ok && f.Type == TypeString {
		id = f.Value
		tags.Delete("ID")
	}
	return Edge{
		ID:          id,
		Source:      l.Source,
		Sink:        l.Sink,
		SourceBegin: Position{},
		SourceEnd:   Position{Value: g.seqLength(l.Source.Name), End: true},
		SinkBegin:   Position{},
		SinkEnd:     Position{Value: g.seqLength(l.Sink.Name), End: true},
		Alignment:   orStar(l.Overlap),
		Tags:        tags,
	}
}

// EdgesAsLinks derives one link per edge. Coordinates are dropped; an edge
// that does not span both segments completely yields a LOSSY_CONVERSION note.
// A named edge without an ID tag gets ID:Z:<id> so the name survives.
func (g *Graph) EdgesAsLinks() Diagnostics {
	var notes Diagnostics
	for _, e := range g.edges {
		if !e.WholeSequence() {
			notes.addf(errs.ErrCodeLossyConversion, 0, "edge %s %s %s: ranges %s-%s / %s-%s dropped",
				orStar(e.ID), e.Source, e.Sink, e.SourceBegin, e.SourceEnd, e.SinkBegin, e.SinkEnd)
		}
		l := Link{Source: e.Source, Sink: e.Sink, Overlap: orStar(e.Alignment), Tags: e.Tags.Clone()}
		if e.ID != "*" && e.ID != "" && !l.Tags.Has("ID") {
			l.Tags.Set(Field{Key: "ID", Type: TypeString, Value: e.ID})
		}
		if !g.hasLink(l) {
			g.appendLink(l)
		}
	}
	return notes
}

// PathsAsGroups derives one ordered group per path, named after the path.
// Path overlaps have no group form and are dropped with a note.
func (g *Graph) PathsAsGroups() Diagnostics {
	var notes Diagnostics
	for _, p := range g.paths {
		if hasOverlaps(p.Overlaps) {
			notes.addf(errs.ErrCodeLossyConversion, 0, "path %s: %d overlaps dropped", p.Name, len(p.Overlaps))
		}
		grp := Group{
			ID:           p.Name,
			Ordered:      true,
			Items:        slices.Clone(p.Segments),
			Orientations: slices.Clone(p.Orientations),
			Tags:         p.Tags.Clone(),
		}
		if have, ok := g.Group(grp.ID); ok && have.Equal(grp) {
			continue
		}
		g.setGroup(grp)
	}
	return notes
}

// GroupsAsPaths derives one path per ordered group with an empty overlap
// list. An existing path with the same steps is kept as is, overlaps
// included. Unordered groups have no path form and are skipped with a note.
func (g *Graph) GroupsAsPaths() Diagnostics {
	var notes Diagnostics
	for _, grp := range g.groups {
		if !grp.Ordered {
			notes.addf(errs.ErrCodeLossyConversion, 0, "unordered group %s has no path form", grp.ID)
			continue
		}
		p := Path{
			Name:         grp.ID,
			Segments:     slices.Clone(grp.Items),
			Orientations: slices.Clone(grp.Orientations),
			Tags:         grp.Tags.Clone(),
		}
		if have, ok := g.Path(p.Name); ok && have.sameSteps(p) && have.Tags.Equal(p.Tags) {
			continue
		}
		g.setPath(p)
	}
	return notes
}

// PathsAsWalks replaces the walk steps of every path with one step per path
// segment. Step i (rank i+1) carries overlap i, or "*" past the end of the
// overlap list. Path tags have no walk form and are dropped with a note.
func (g *Graph) PathsAsWalks() Diagnostics {
	var notes Diagnostics
	for _, p := range g.paths {
		if len(p.Tags) > 0 {
			notes.addf(errs.ErrCodeLossyConversion, 0, "path %s: tags dropped", p.Name)
		}
		steps := make([]Walk, len(p.Segments))
		for i, seg := range p.Segments {
			cigar := "*"
			if i < len(p.Overlaps) {
				cigar = orStar(p.Overlaps[i])
			}
			steps[i] = Walk{
				Segment: seg,
				Path:    p.Name,
				Rank:    int64(i + 1),
				Reverse: i < len(p.Orientations) && !p.Orientations[i],
				Cigar:   cigar,
			}
		}
		if slices.EqualFunc(g.Walks(p.Name), steps, Walk.Equal) {
			continue
		}
		g.replaceWalks(p.Name, steps)
	}
	return notes
}

// WalksAsPaths builds one path per walked path name from its steps in rank
// order. Trailing "*" overlaps are trimmed. An existing path with the same
// steps and overlaps is kept, tags included.
func (g *Graph) WalksAsPaths() Diagnostics {
	var notes Diagnostics
	for _, name := range g.walkOrder() {
		steps := g.Walks(name)
		slices.SortStableFunc(steps, func(a, b Walk) int {
			switch {
			case a.Rank < b.Rank:
				return -1
			case a.Rank > b.Rank:
				return 1
			}
			return 0
		})

		p := Path{Name: name}
		for _, w := range steps {
			if len(w.Tags) > 0 {
				notes.addf(errs.ErrCodeLossyConversion, 0, "walk %s rank %d: tags dropped", name, w.Rank)
			}
			p.Segments = append(p.Segments, w.Segment)
			p.Orientations = append(p.Orientations, !w.Reverse)
			p.Overlaps = append(p.Overlaps, orStar(w.Cigar))
		}
		for len(p.Overlaps) > 0 && p.Overlaps[len(p.Overlaps)-1] == "*" {
			p.Overlaps = p.Overlaps[:len(p.Overlaps)-1]
		}
		if len(p.Overlaps) == 0 {
			p.Overlaps = nil
		}

		if have, ok := g.Path(name); ok && have.sameSteps(p) && slices.Equal(have.Overlaps, p.Overlaps) {
			continue
		}
		g.setPath(p)
	}
	return notes
}

// GFA2ize makes the GFA2 record set carry the whole graph: links become
// edges, paths become ordered groups. The graph is marked version 2 and an
// existing VN header is rewritten. Calling it again changes nothing.
func (g *Graph) GFA2ize() Diagnostics {
	notes := g.LinksAsEdges()
	notes = append(notes, g.PathsAsGroups()...)
	g.version = Version2
	g.consistency.GFA2 = true
	g.rewriteVersionHeader(Version2)
	return notes
}

// GFA1ize makes the GFA1 record set carry the whole graph: edges become
// links, ordered groups become paths. The graph is marked version 1 and an
// existing VN header is rewritten. Calling it again changes nothing.
func (g *Graph) GFA1ize() Diagnostics {
	notes := g.EdgesAsLinks()
	notes = append(notes, g.GroupsAsPaths()...)
	g.version = Version1
	g.consistency.GFA1 = true
	g.rewriteVersionHeader(Version1)
	return notes
}

func (g *Graph) rewriteVersionHeader(v Version) {
	if i, ok := g.headerIdx["VN"]; ok {
		g.headers[i].Value = v.String()
	}
}

// walkOrder lists walked path names in order of their first step.
func (g *Graph) walkOrder() []string {
	var names []string
	seen := make(map[string]bool)
	for _, w := range g.walks {
		if !seen[w.Path] {
			seen[w.Path] = true
			names = append(names, w.Path)
		}
	}
	return names
}

func hasOverlaps(overlaps []string) bool {
	for _, o := range overlaps {
		if o != "*" && o != "" {
			return true
		}
	}
	return false
}
