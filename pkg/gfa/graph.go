package gfa

import (
	"slices"
	"strings"

	errs "github.com/matzehuels/gfak/pkg/errors"
)

// Version is the GFA format version of a graph.
type Version int

const (
	// VersionUnknown means neither a VN header nor a version-exclusive
	// record has been seen.
	VersionUnknown Version = iota
	Version1
	Version2
)

// String returns the canonical VN value ("1.0", "2.0") or "unknown".
func (v Version) String() string {
	switch v {
	case Version1:
		return "1.0"
	case Version2:
		return "2.0"
	}
	return "unknown"
}

// ParseVersion maps a VN header value or a command-line version to a
// Version. GFA 0.1 and all 1.x releases share the version 1 record set.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	major, _, _ := strings.Cut(s, ".")
	switch {
	case major == "0" || major == "1":
		return Version1, nil
	case major == "2":
		return Version2, nil
	}
	return VersionUnknown, errs.New(errs.ErrCodeInvalidVersion, "unsupported GFA version %q", s)
}

// Consistency records which record set currently carries the whole graph.
// GFA1 is set by [Graph.GFA1ize] and means links and paths mirror every edge
// and ordered group; GFA2 is set by [Graph.GFA2ize] and means edges and groups
// mirror every link and path. Adding a record of one version clears the flag
// of the other.
type Consistency struct {
	GFA1 bool
	GFA2 bool
}

// Stats counts records per kind.
type Stats struct {
	Headers      int
	Comments     int
	Sequences    int
	Links        int
	Containments int
	Alignments   int
	Edges        int
	Fragments    int
	Gaps         int
	Groups       int
	Paths        int
	Walks        int
}

// Graph owns every record of one or more parsed files.
//
// Keyed records (headers, sequences, paths, groups) are unique per key; a
// later insert replaces the value but keeps the first insertion position.
// Adjacency records (links, containments, alignments, edges, fragments) are
// kept in insertion order and indexed by the name of their source segment,
// which need not be declared. Gaps form a flat list.
//
// The zero value is not usable - use [New].
type Graph struct {
	version     Version
	declared    bool
	conflict    bool
	consistency Consistency

	headerIdx map[string]int
	headers   []Header
	comments  []Comment

	seqIdx map[string]int
	seqs   []Sequence
	nextID int64

	links        []Link
	linkIdx      map[string][]int
	contained    []Containment
	containedIdx map[string][]int
	alignments   []Alignment
	alignmentIdx map[string][]int
	edges        []Edge
	edgeIdx      map[string][]int
	fragments    []Fragment
	fragmentIdx  map[string][]int
	gaps         []Gap

	pathIdx  map[string]int
	paths    []Path
	groupIdx map[string]int
	groups   []Group
	walks    []Walk
	walkIdx  map[string][]int
}

// New creates an empty graph of unknown version.
func New() *Graph {
	return &Graph{
		headerIdx:    make(map[string]int),
		seqIdx:       make(map[string]int),
		linkIdx:      make(map[string][]int),
		containedIdx: make(map[string][]int),
		alignmentIdx: make(map[string][]int),
		edgeIdx:      make(map[string][]int),
		fragmentIdx:  make(map[string][]int),
		pathIdx:      make(map[string]int),
		groupIdx:     make(map[string]int),
		walkIdx:      make(map[string][]int),
	}
}

// Version returns the declared, inferred or converted version.
func (g *Graph) Version() Version { return g.version }

// SetVersion overrides the version, for example before serializing a graph
// built by hand. It does not convert any records.
func (g *Graph) SetVersion(v Version) { g.version = v }

// Declared reports whether the version came from a VN header.
func (g *Graph) Declared() bool { return g.declared }

// Conflict reports whether records exclusive to both versions were seen.
func (g *Graph) Conflict() bool { return g.conflict }

// Consistency returns which record sets currently mirror the whole graph.
func (g *Graph) Consistency() Consistency { return g.consistency }

// =============================================================================
// Insertion
// =============================================================================

// AddHeader stores h, replacing the value of an existing header with the same
// key. Opaque headers (Type 0) are appended and written back verbatim.
func (g *Graph) AddHeader(h Header) {
	if h.Type == 0 {
		g.headers = append(g.headers, h)
		return
	}
	if i, ok := g.headerIdx[h.Key]; ok {
		g.headers[i] = h
		return
	}
	g.headerIdx[h.Key] = len(g.headers)
	g.headers = append(g.headers, h)
}

// AddComment appends a verbatim comment line.
func (g *Graph) AddComment(c Comment) { g.comments = append(g.comments, c) }

// AddSequence stores s under its name. A sequence replacing an existing one
// keeps the existing ID and position. New sequences are numbered from 1.
func (g *Graph) AddSequence(s Sequence) {
	if i, ok := g.seqIdx[s.Name]; ok {
		s.ID = g.seqs[i].ID
		g.seqs[i] = s
		return
	}
	g.nextID++
	s.ID = g.nextID
	g.seqIdx[s.Name] = len(g.seqs)
	g.seqs = append(g.seqs, s)
}

// AddLink appends l under its source segment. An empty overlap is stored
// as "*".
func (g *Graph) AddLink(l Link) {
	l.Overlap = orStar(l.Overlap)
	g.consistency.GFA2 = false
	g.appendLink(l)
}

// AddContainment appends c under its source segment.
func (g *Graph) AddContainment(c Containment) {
	g.containedIdx[c.Source.Name] = append(g.containedIdx[c.Source.Name], len(g.contained))
	g.contained = append(g.contained, c)
}

// AddAlignment appends a under its source segment.
func (g *Graph) AddAlignment(a Alignment) {
	g.alignmentIdx[a.Source] = append(g.alignmentIdx[a.Source], len(g.alignments))
	g.alignments = append(g.alignments, a)
}

// AddEdge appends e under its source segment.
func (g *Graph) AddEdge(e Edge) {
	g.consistency.GFA1 = false
	g.appendEdge(e)
}

// AddFragment appends f under its segment.
func (g *Graph) AddFragment(f Fragment) {
	g.fragmentIdx[f.Segment] = append(g.fragmentIdx[f.Segment], len(g.fragments))
	g.fragments = append(g.fragments, f)
}

// AddGap appends gap to the flat gap list.
func (g *Graph) AddGap(gap Gap) { g.gaps = append(g.gaps, gap) }

// AddGroup stores grp under its id, replacing an existing group.
func (g *Graph) AddGroup(grp Group) {
	g.consistency.GFA1 = false
	g.setGroup(grp)
}

// AddPath stores p under its name, replacing an existing path.
func (g *Graph) AddPath(p Path) {
	g.consistency.GFA2 = false
	g.setPath(p)
}

// AddWalk appends w to the steps of its path.
func (g *Graph) AddWalk(w Walk) {
	g.walkIdx[w.Path] = append(g.walkIdx[w.Path], len(g.walks))
	g.walks = append(g.walks, w)
}

func (g *Graph) appendLink(l Link) {
	g.linkIdx[l.Source.Name] = append(g.linkIdx[l.Source.Name], len(g.links))
	g.links = append(g.links, l)
}

func (g *Graph) appendEdge(e Edge) {
	g.edgeIdx[e.Source.Name] = append(g.edgeIdx[e.Source.Name], len(g.edges))
	g.edges = append(g.edges, e)
}

func (g *Graph) setGroup(grp Group) {
	if i, ok := g.groupIdx[grp.ID]; ok {
		g.groups[i] = grp
		return
	}
	g.groupIdx[grp.ID] = len(g.groups)
	g.groups = append(g.groups, grp)
}

func (g *Graph) setPath(p Path) {
	if i, ok := g.pathIdx[p.Name]; ok {
		g.paths[i] = p
		return
	}
	g.pathIdx[p.Name] = len(g.paths)
	g.paths = append(g.paths, p)
}

// replaceWalks swaps the steps of path for ws, leaving other paths' steps in
// their original order.
func (g *Graph) replaceWalks(path string, ws []Walk) {
	kept := g.walks[:0:0]
	for _, w := range g.walks {
		if w.Path != path {
			kept = append(kept, w)
		}
	}
	g.walks = append(kept, ws...)
	g.walkIdx = make(map[string][]int)
	for i, w := range g.walks {
		g.walkIdx[w.Path] = append(g.walkIdx[w.Path], i)
	}
}

// =============================================================================
// Accessors
// =============================================================================

// Header returns the header with the given key.
func (g *Graph) Header(key string) (Header, bool) {
	i, ok := g.headerIdx[key]
	if !ok {
		return Header{}, false
	}
	return g.headers[i], true
}

// Headers returns all headers in insertion order.
func (g *Graph) Headers() []Header { return slices.Clone(g.headers) }

// Comments returns all comment lines in insertion order.
func (g *Graph) Comments() []Comment { return slices.Clone(g.comments) }

// Sequence returns the sequence with the given name.
func (g *Graph) Sequence(name string) (Sequence, bool) {
	i, ok := g.seqIdx[name]
	if !ok {
		return Sequence{}, false
	}
	return g.seqs[i], true
}

// Sequences returns all sequences in insertion order.
func (g *Graph) Sequences() []Sequence { return slices.Clone(g.seqs) }

// Links returns the links whose source is the named segment, in insertion
// order. Unknown names yield nil.
func (g *Graph) Links(name string) []Link { return pick(g.links, g.linkIdx[name]) }

// Contained returns the containments whose source is the named segment.
func (g *Graph) Contained(name string) []Containment {
	return pick(g.contained, g.containedIdx[name])
}

// Alignments returns the alignments placed on the named segment.
func (g *Graph) Alignments(name string) []Alignment {
	return pick(g.alignments, g.alignmentIdx[name])
}

// Edges returns the edges whose source is the named segment.
func (g *Graph) Edges(name string) []Edge { return pick(g.edges, g.edgeIdx[name]) }

// Fragments returns the fragments aligned to the named segment.
func (g *Graph) Fragments(name string) []Fragment {
	return pick(g.fragments, g.fragmentIdx[name])
}

// Gaps returns all gaps in insertion order.
func (g *Graph) Gaps() []Gap { return slices.Clone(g.gaps) }

// AllLinks returns every link in insertion order.
func (g *Graph) AllLinks() []Link { return slices.Clone(g.links) }

// AllContained returns every containment in insertion order.
func (g *Graph) AllContained() []Containment { return slices.Clone(g.contained) }

// AllAlignments returns every alignment in insertion order.
func (g *Graph) AllAlignments() []Alignment { return slices.Clone(g.alignments) }

// AllEdges returns every edge in insertion order.
func (g *Graph) AllEdges() []Edge { return slices.Clone(g.edges) }

// AllFragments returns every fragment in insertion order.
func (g *Graph) AllFragments() []Fragment { return slices.Clone(g.fragments) }

// Path returns the path with the given name.
func (g *Graph) Path(name string) (Path, bool) {
	i, ok := g.pathIdx[name]
	if !ok {
		return Path{}, false
	}
	return g.paths[i], true
}

// Paths returns all paths in insertion order.
func (g *Graph) Paths() []Path { return slices.Clone(g.paths) }

// Walks returns the steps of the named path in insertion order.
func (g *Graph) Walks(path string) []Walk { return pick(g.walks, g.walkIdx[path]) }

// AllWalks returns every walk step in insertion order.
func (g *Graph) AllWalks() []Walk { return slices.Clone(g.walks) }

// WalkPaths returns the names of paths that have walk steps, in natural order.
func (g *Graph) WalkPaths() []string {
	names := make([]string, 0, len(g.walkIdx))
	for name, idx := range g.walkIdx {
		if len(idx) > 0 {
			names = append(names, name)
		}
	}
	SortNames(names)
	return names
}

// Group returns the group with the given id.
func (g *Graph) Group(id string) (Group, bool) {
	i, ok := g.groupIdx[id]
	if !ok {
		return Group{}, false
	}
	return g.groups[i], true
}

// Groups returns all groups in insertion order.
func (g *Graph) Groups() []Group { return slices.Clone(g.groups) }

// Owners returns, in natural order, every segment name that is declared or
// that owns at least one adjacency record or gap.
func (g *Graph) Owners() []string {
	seen := make(map[string]bool, len(g.seqs))
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, s := range g.seqs {
		add(s.Name)
	}
	for _, idx := range []map[string][]int{g.linkIdx, g.containedIdx, g.alignmentIdx, g.edgeIdx, g.fragmentIdx} {
		for name, list := range idx {
			if len(list) > 0 {
				add(name)
			}
		}
	}
	for _, gap := range g.gaps {
		add(gap.Source.Name)
	}
	SortNames(names)
	return names
}

// Stats counts records per kind.
func (g *Graph) Stats() Stats {
	return Stats{
		Headers:      len(g.headers),
		Comments:     len(g.comments),
		Sequences:    len(g.seqs),
		Links:        len(g.links),
		Containments: len(g.contained),
		Alignments:   len(g.alignments),
		Edges:        len(g.edges),
		Fragments:    len(g.fragments),
		Gaps:         len(g.gaps),
		Groups:       len(g.groups),
		Paths:        len(g.paths),
		Walks:        len(g.walks),
	}
}

// Total is the number of records of every kind.
func (s Stats) Total() int {
	return s.Headers + s.Comments + s.Sequences + s.Links + s.Containments +
		s.Alignments + s.Edges + s.Fragments + s.Gaps + s.Groups + s.Paths + s.Walks
}

// hasLink ignores tag order, since a round trip through an edge moves the ID
// tag to the end.
func (g *Graph) hasLink(l Link) bool {
	for _, i := range g.linkIdx[l.Source.Name] {
		o := g.links[i]
		if o.Source == l.Source && o.Sink == l.Sink && o.Overlap == l.Overlap && o.Tags.Same(l.Tags) {
			return true
		}
	}
	return false
}

func (g *Graph) hasEdge(e Edge) bool {
	for _, i := range g.edgeIdx[e.Source.Name] {
		if g.edges[i].Equal(e) {
			return true
		}
	}
	return false
}

func (g *Graph) seqLength(name string) uint64 {
	if s, ok := g.Sequence(name); ok {
		return s.Length
	}
	return 0
}

func pick[T any](all []T, idx []int) []T {
	if len(idx) == 0 {
		return nil
	}
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = all[j]
	}
	return out
}
