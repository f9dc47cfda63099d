package gfa

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Order selects how [Write] arranges records.
type Order int

const (
	// NaturalOrder writes each segment, in [Compare] order, followed by the
	// records hanging off it; then paths, walks and groups.
	NaturalOrder Order = iota
	// BlockOrder writes every record kind contiguously in insertion order.
	BlockOrder
)

// WriteOptions configures [Write].
type WriteOptions struct {
	Order Order
	// Version selects the S line shape and, together with the graph's
	// Consistency, which mirrored record set is written. VersionUnknown uses
	// the graph's version, or infers one from the records present.
	Version Version
	// WalksOnly omits the P line of every path that also has W steps.
	WalksOnly bool
}

// Write renders g to w. It never modifies g.
func Write(w io.Writer, g *Graph, opts WriteOptions) error {
	bw := bufio.NewWriter(w)
	r := newRenderer(g, opts.Version)
	r.walksOnly = opts.WalksOnly
	if opts.Order == BlockOrder {
		r.block(bw)
	} else {
		r.natural(bw)
	}
	return bw.Flush()
}

// String renders g in natural order.
func (g *Graph) String() string {
	var sb strings.Builder
	_ = Write(&sb, g, WriteOptions{})
	return sb.String()
}

// BlockString renders g in block order.
func (g *Graph) BlockString() string {
	var sb strings.Builder
	_ = Write(&sb, g, WriteOptions{Order: BlockOrder})
	return sb.String()
}

// WriteTo renders g in natural order, implementing io.WriterTo.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, g.String())
	return int64(n), err
}

// OutputVersion returns the version [Write] uses when none is requested.
func (g *Graph) OutputVersion() Version {
	if g.version != VersionUnknown {
		return g.version
	}
	two := len(g.edges)+len(g.fragments)+len(g.gaps)+len(g.groups) > 0
	one := len(g.links)+len(g.contained)+len(g.paths) > 0
	if two && !one {
		return Version2
	}
	return Version1
}

type renderer struct {
	g       *Graph
	version Version

	// Mirrored containers suppressed for this output version.
	skipLinks, skipPaths, skipEdges, skipOrderedGroups bool

	walksOnly bool
}

func newRenderer(g *Graph, v Version) *renderer {
	if v == VersionUnknown {
		v = g.OutputVersion()
	}
	r := &renderer{g: g, version: v}
	switch {
	case v == Version2 && g.consistency.GFA2:
		r.skipLinks, r.skipPaths = true, true
	case v == Version1 && g.consistency.GFA1:
		r.skipEdges, r.skipOrderedGroups = true, true
	}
	return r
}

func (r *renderer) natural(w *bufio.Writer) {
	g := r.g
	r.preamble(w)

	gapsBySource := make(map[string][]Gap)
	for _, gap := range g.gaps {
		gapsBySource[gap.Source.Name] = append(gapsBySource[gap.Source.Name], gap)
	}

	for _, name := range g.Owners() {
		if s, ok := g.Sequence(name); ok {
			writeLine(w, r.sequence(s))
		}
		if !r.skipLinks {
			for _, l := range g.Links(name) {
				writeLine(w, link(l))
			}
		}
		for _, c := range g.Contained(name) {
			writeLine(w, containment(c))
		}
		for _, a := range g.Alignments(name) {
			writeLine(w, alignment(a))
		}
		if !r.skipEdges {
			for _, e := range g.Edges(name) {
				writeLine(w, edge(e))
			}
		}
		for _, f := range g.Fragments(name) {
			writeLine(w, fragment(f))
		}
		for _, gap := range gapsBySource[name] {
			writeLine(w, gapLine(gap))
		}
	}

	if !r.skipPaths {
		for _, name := range sortedKeys(g.pathIdx) {
			if r.walked(name) {
				continue
			}
			p, _ := g.Path(name)
			writeLine(w, path(p))
		}
	}
	for _, name := range g.WalkPaths() {
		for _, wk := range g.Walks(name) {
			writeLine(w, walk(wk))
		}
	}
	for _, id := range sortedKeys(g.groupIdx) {
		grp, _ := g.Group(id)
		if r.skipOrderedGroups && grp.Ordered {
			continue
		}
		writeLine(w, group(grp))
	}
}

func (r *renderer) block(w *bufio.Writer) {
	g := r.g
	r.preamble(w)

	for _, s := range g.seqs {
		writeLine(w, r.sequence(s))
	}
	if !r.skipLinks {
		for _, l := range g.links {
			writeLine(w, link(l))
		}
	}
	for _, c := range g.contained {
		writeLine(w, containment(c))
	}
	for _, a := range g.alignments {
		writeLine(w, alignment(a))
	}
	if !r.skipEdges {
		for _, e := range g.edges {
			writeLine(w, edge(e))
		}
	}
	for _, f := range g.fragments {
		writeLine(w, fragment(f))
	}
	for _, gap := range g.gaps {
		writeLine(w, gapLine(gap))
	}
	if !r.skipPaths {
		for _, p := range g.paths {
			if r.walked(p.Name) {
				continue
			}
			writeLine(w, path(p))
		}
	}
	for _, wk := range g.walks {
		writeLine(w, walk(wk))
	}
	for _, grp := range g.groups {
		if r.skipOrderedGroups && grp.Ordered {
			continue
		}
		writeLine(w, group(grp))
	}
}

func (r *renderer) walked(path string) bool {
	return r.walksOnly && len(r.g.walkIdx[path]) > 0
}

func (r *renderer) preamble(w *bufio.Writer) {
	for _, h := range r.g.headers {
		writeLine(w, "H\t"+h.field().String())
	}
	for _, c := range r.g.comments {
		writeLine(w, c.Text)
	}
}

func (r *renderer) sequence(s Sequence) string {
	seq := s.Sequence
	if seq == "" {
		seq = "*"
	}
	if r.version == Version2 {
		return join("S", s.Name, strconv.FormatUint(s.Length, 10), seq) + tagSuffix(s.Tags)
	}
	tags := s.Tags
	if s.Length != s.impliedLength() && !tags.Has("LN") {
		tags = append(tags.Clone(), Field{Key: "LN", Type: TypeInt, Value: strconv.FormatUint(s.Length, 10)})
	}
	return join("S", s.Name, seq) + tagSuffix(tags)
}

func link(l Link) string {
	return join("L", l.Source.Name, orientString(l.Source.Forward), l.Sink.Name, orientString(l.Sink.Forward), orStar(l.Overlap)) + tagSuffix(l.Tags)
}

func containment(c Containment) string {
	return join("C", c.Source.Name, orientString(c.Source.Forward), c.Sink.Name, orientString(c.Sink.Forward),
		strconv.FormatUint(c.Position, 10), orStar(c.Overlap)) + tagSuffix(c.Tags)
}

func alignment(a Alignment) string {
	return join("A", a.Source, strconv.FormatUint(a.Position, 10), a.Reference, orientString(a.Forward),
		strconv.FormatUint(a.Length, 10)) + tagSuffix(a.Tags)
}

func edge(e Edge) string {
	return join("E", orStar(e.ID), e.Source.String(), e.Sink.String(),
		e.SourceBegin.String(), e.SourceEnd.String(), e.SinkBegin.String(), e.SinkEnd.String(),
		orStar(e.Alignment)) + tagSuffix(e.Tags)
}

func fragment(f Fragment) string {
	return join("F", f.Segment, f.External.String(),
		f.SegmentBegin.String(), f.SegmentEnd.String(), f.FragmentBegin.String(), f.FragmentEnd.String(),
		orStar(f.Alignment)) + tagSuffix(f.Tags)
}

func gapLine(g Gap) string {
	return join("G", orStar(g.ID), g.Source.String(), g.Sink.String(),
		strconv.FormatInt(g.Distance, 10), orStar(g.Variance)) + tagSuffix(g.Tags)
}

func path(p Path) string {
	steps := make([]string, len(p.Segments))
	for i, seg := range p.Segments {
		steps[i] = seg + orientString(i >= len(p.Orientations) || p.Orientations[i])
	}
	overlaps := "*"
	if len(p.Overlaps) > 0 {
		overlaps = strings.Join(p.Overlaps, ",")
	}
	return join("P", p.Name, strings.Join(steps, ","), overlaps) + tagSuffix(p.Tags)
}

func walk(w Walk) string {
	return join("W", w.Segment, w.Path, strconv.FormatInt(w.Rank, 10), orientString(!w.Reverse), orStar(w.Cigar)) + tagSuffix(w.Tags)
}

func group(g Group) string {
	tag := "U"
	if g.Ordered {
		tag = "O"
	}
	items := make([]string, len(g.Items))
	for i, item := range g.Items {
		if g.Ordered {
			item += orientString(i >= len(g.Orientations) || g.Orientations[i])
		}
		items[i] = item
	}
	refs := "*"
	if len(items) > 0 {
		refs = strings.Join(items, " ")
	}
	return join(tag, g.ID, refs) + tagSuffix(g.Tags)
}

func join(fields ...string) string { return strings.Join(fields, "\t") }

func tagSuffix(t Tags) string {
	if len(t) == 0 {
		return ""
	}
	return "\t" + t.String()
}

func orStar(s string) string {
	if s == "" {
		return "*"
	}
	return s
}

func writeLine(w *bufio.Writer, s string) {
	w.WriteString(s)
	w.WriteByte('\n')
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	SortNames(keys)
	return keys
}
