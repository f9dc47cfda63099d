package gfa

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	errs "github.com/matzehuels/gfak/pkg/errors"
)

// Parse reads a GFA stream into a new graph.
//
// Bad lines do not stop the parse: each is reported in the returned
// Diagnostics and skipped. The error is non-nil only when r itself fails, in
// which case the graph holds everything read before the failure.
func Parse(r io.Reader) (*Graph, Diagnostics, error) {
	g := New()
	diags, err := g.Read(r)
	return g, diags, err
}

// Read parses a GFA stream into g, merging with the records already present.
// Keyed records with colliding names replace earlier ones; adjacency records
// are appended. A version locked by an earlier read stays locked.
func (g *Graph) Read(r io.Reader) (Diagnostics, error) {
	p := &parser{g: g}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			p.line++
			p.parseLine(strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			return p.diags, nil
		}
		if err != nil {
			return p.diags, errs.Wrap(errs.ErrCodeSourceUnavailable, err, "read after line %d", p.line)
		}
	}
}

type parser struct {
	g     *Graph
	line  int
	diags Diagnostics
}

func (p *parser) parseLine(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	if strings.HasPrefix(line, "#") {
		p.g.AddComment(Comment{Text: line})
		return
	}

	f := strings.Split(line, "\t")
	var err error
	switch f[0] {
	case "H":
		err = p.header(f)
	case "S":
		err = p.sequence(f)
	case "L":
		err = p.link(f)
	case "C":
		err = p.containment(f)
	case "A":
		err = p.alignment(f)
	case "P":
		err = p.path(f)
	case "W":
		err = p.walk(f, line)
	case "E":
		err = p.edge(f)
	case "F":
		err = p.fragment(f)
	case "G":
		err = p.gap(f)
	case "O", "U":
		err = p.group(f)
	default:
		p.g.AddComment(Comment{Text: line})
	}
	if err != nil {
		p.diags.addErr(p.line, err)
	}
}

// observe locks the version on the first exclusive record and flags records
// of the other version afterwards.
func (p *parser) observe(v Version, tag string) {
	g := p.g
	switch g.version {
	case VersionUnknown:
		g.version = v
	case v:
	default:
		g.conflict = true
		p.diags.addf(errs.ErrCodeVersionConflict, p.line, "%s record belongs to GFA %s, graph is GFA %s", tag, v, g.version)
	}
}

func (p *parser) declare(value string) {
	g := p.g
	v, err := ParseVersion(value)
	if err != nil {
		p.diags.addErr(p.line, err)
		return
	}
	if g.version != VersionUnknown && g.version != v {
		g.conflict = true
		p.diags.addf(errs.ErrCodeVersionConflict, p.line, "VN:Z:%s declared after GFA %s records", value, g.version)
	}
	g.version = v
	g.declared = true
}

// tags decodes a run of optional fields. Undecodable tokens are kept opaque
// and reported.
func (p *parser) tags(tokens []string) Tags {
	if len(tokens) == 0 {
		return nil
	}
	t := make(Tags, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		f, err := ParseField(tok)
		if err != nil {
			p.diags.addErr(p.line, err)
			f = Field{Value: tok}
		}
		t.Set(f)
	}
	return t
}

func (p *parser) header(f []string) error {
	for _, tok := range f[1:] {
		if tok == "" {
			continue
		}
		fld, err := ParseField(tok)
		if err != nil {
			p.diags.addErr(p.line, err)
			p.g.AddHeader(Header{Value: tok})
			continue
		}
		if fld.Key == "VN" {
			p.declare(fld.Value)
		}
		p.g.AddHeader(Header{Key: fld.Key, Type: fld.Type, Value: fld.Value})
	}
	return nil
}

func (p *parser) sequence(f []string) error {
	if err := need(f, 3, "segment"); err != nil {
		return err
	}
	if err := validName(f[1]); err != nil {
		return err
	}

	if len(f) >= 4 && isDigits(f[2]) && !isTag(f[3]) {
		length, err := parseUint(f[2], "segment length")
		if err != nil {
			return err
		}
		p.observe(Version2, "length-carrying S")
		p.g.AddSequence(Sequence{Name: f[1], Length: length, Sequence: f[3], Tags: p.tags(f[4:])})
		return nil
	}

	if p.g.version == Version2 {
		p.observe(Version1, "GFA1 S")
	}
	s := Sequence{Name: f[1], Sequence: f[2], Tags: p.tags(f[3:])}
	s.Length = s.impliedLength()
	if ln, ok := s.Tags.Get("LN"); ok {
		n, err := ln.Int()
		if err != nil || n < 0 {
			p.diags.addf(errs.ErrCodeMalformedField, p.line, "segment %s: LN:%s:%s is not a length", s.Name, string(ln.Type), ln.Value)
		} else {
			s.Length = uint64(n)
		}
	}
	p.g.AddSequence(s)
	return nil
}

func (p *parser) link(f []string) error {
	if err := need(f, 6, "link"); err != nil {
		return err
	}
	src, sink, err := orientedPair(f[1], f[2], f[3], f[4])
	if err != nil {
		return err
	}
	p.observe(Version1, "L")
	p.g.AddLink(Link{Source: src, Sink: sink, Overlap: f[5], Tags: p.tags(f[6:])})
	return nil
}

func (p *parser) containment(f []string) error {
	if err := need(f, 7, "containment"); err != nil {
		return err
	}
	src, sink, err := orientedPair(f[1], f[2], f[3], f[4])
	if err != nil {
		return err
	}
	pos, err := parseUint(f[5], "containment position")
	if err != nil {
		return err
	}
	p.observe(Version1, "C")
	p.g.AddContainment(Containment{Source: src, Sink: sink, Position: pos, Overlap: f[6], Tags: p.tags(f[7:])})
	return nil
}

func (p *parser) alignment(f []string) error {
	if err := need(f, 6, "alignment"); err != nil {
		return err
	}
	pos, err := parseUint(f[2], "alignment position")
	if err != nil {
		return err
	}
	fwd, err := parseOrient(f[4])
	if err != nil {
		return err
	}
	length, err := parseUint(f[5], "alignment length")
	if err != nil {
		return err
	}
	p.g.AddAlignment(Alignment{Source: f[1], Position: pos, Reference: f[3], Forward: fwd, Length: length, Tags: p.tags(f[6:])})
	return nil
}

func (p *parser) path(f []string) error {
	// GFA 0.1 wrote one P line per step: P <segment> <path> <rank> <+|-> [cigar].
	if len(f) >= 5 && isDigits(f[3]) && (f[4] == "+" || f[4] == "-") {
		p.observe(Version1, "P")
		return p.step(f)
	}

	if err := need(f, 4, "path"); err != nil {
		return err
	}
	if err := validName(f[1]); err != nil {
		return err
	}
	path := Path{Name: f[1], Tags: p.tags(f[4:])}
	for _, seg := range strings.Split(f[2], ",") {
		ref, err := parseRef(seg)
		if err != nil {
			return errs.New(errs.ErrCodeLineParse, "path %s: %s", path.Name, errs.UserMessage(err))
		}
		path.Segments = append(path.Segments, ref.Name)
		path.Orientations = append(path.Orientations, ref.Forward)
	}
	if f[3] != "*" {
		path.Overlaps = strings.Split(f[3], ",")
	}
	p.observe(Version1, "P")
	p.g.AddPath(path)
	return nil
}

func (p *parser) walk(f []string, line string) error {
	if len(f) >= 7 && (strings.HasPrefix(f[6], ">") || strings.HasPrefix(f[6], "<")) {
		p.g.AddComment(Comment{Text: line})
		return errs.New(errs.ErrCodeUnsupported, "GFA 1.1 haplotype walk kept verbatim")
	}
	return p.step(f)
}

// step parses W <segment> <path> <rank> <+|-> [cigar] [tags].
func (p *parser) step(f []string) error {
	if err := need(f, 5, "walk"); err != nil {
		return err
	}
	rank, err := strconv.ParseInt(f[3], 10, 64)
	if err != nil {
		return errs.New(errs.ErrCodeLineParse, "walk rank %q is not an integer", f[3])
	}
	fwd, err := parseOrient(f[4])
	if err != nil {
		return err
	}
	w := Walk{Segment: f[1], Path: f[2], Rank: rank, Reverse: !fwd, Cigar: "*"}
	rest := f[5:]
	if len(rest) > 0 && !isTag(rest[0]) {
		w.Cigar = rest[0]
		rest = rest[1:]
	}
	w.Tags = p.tags(rest)
	p.g.AddWalk(w)
	return nil
}

func (p *parser) edge(f []string) error {
	if err := need(f, 9, "edge"); err != nil {
		return err
	}
	src, err := parseRef(f[2])
	if err != nil {
		return err
	}
	sink, err := parseRef(f[3])
	if err != nil {
		return err
	}
	var pos [4]Position
	for i := range pos {
		if pos[i], err = parsePosition(f[4+i]); err != nil {
			return err
		}
	}
	p.observe(Version2, "E")
	p.g.AddEdge(Edge{
		ID:          f[1],
		Source:      src,
		Sink:        sink,
		SourceBegin: pos[0],
		SourceEnd:   pos[1],
		SinkBegin:   pos[2],
		SinkEnd:     pos[3],
		Alignment:   f[8],
		Tags:        p.tags(f[9:]),
	})
	return nil
}

func (p *parser) fragment(f []string) error {
	if err := need(f, 8, "fragment"); err != nil {
		return err
	}
	ext, err := parseRef(f[2])
	if err != nil {
		return err
	}
	var pos [4]Position
	for i := range pos {
		if pos[i], err = parsePosition(f[3+i]); err != nil {
			return err
		}
	}
	p.observe(Version2, "F")
	p.g.AddFragment(Fragment{
		Segment:       f[1],
		External:      ext,
		SegmentBegin:  pos[0],
		SegmentEnd:    pos[1],
		FragmentBegin: pos[2],
		FragmentEnd:   pos[3],
		Alignment:     f[7],
		Tags:          p.tags(f[8:]),
	})
	return nil
}

func (p *parser) gap(f []string) error {
	if err := need(f, 5, "gap"); err != nil {
		return err
	}
	src, err := parseRef(f[2])
	if err != nil {
		return err
	}
	sink, err := parseRef(f[3])
	if err != nil {
		return err
	}
	dist, err := strconv.ParseInt(f[4], 10, 64)
	if err != nil {
		return errs.New(errs.ErrCodeLineParse, "gap distance %q is not an integer", f[4])
	}
	gap := Gap{ID: f[1], Source: src, Sink: sink, Distance: dist, Variance: "*"}
	rest := f[5:]
	if len(rest) > 0 && !isTag(rest[0]) {
		gap.Variance = rest[0]
		rest = rest[1:]
	}
	gap.Tags = p.tags(rest)
	p.observe(Version2, "G")
	p.g.AddGap(gap)
	return nil
}

func (p *parser) group(f []string) error {
	if err := need(f, 3, "group"); err != nil {
		return err
	}
	grp := Group{ID: f[1], Ordered: f[0] == "O", Tags: p.tags(f[3:])}
	if f[2] != "*" {
		for _, item := range strings.Fields(f[2]) {
			fwd := true
			if grp.Ordered {
				if ref, err := parseRef(item); err == nil {
					item, fwd = ref.Name, ref.Forward
				}
			}
			grp.Items = append(grp.Items, item)
			grp.Orientations = append(grp.Orientations, fwd)
		}
	}
	p.observe(Version2, f[0])
	p.g.AddGroup(grp)
	return nil
}

func need(f []string, n int, what string) error {
	if len(f) < n {
		return errs.New(errs.ErrCodeLineParse, "%s needs %d fields, got %d", what, n, len(f))
	}
	return nil
}

func validName(name string) error {
	if err := errs.ValidateName(name); err != nil {
		return errs.New(errs.ErrCodeLineParse, "bad record name: %s", errs.UserMessage(err))
	}
	return nil
}

func orientedPair(from, fromOrient, to, toOrient string) (Ref, Ref, error) {
	fwd1, err := parseOrient(fromOrient)
	if err != nil {
		return Ref{}, Ref{}, err
	}
	fwd2, err := parseOrient(toOrient)
	if err != nil {
		return Ref{}, Ref{}, err
	}
	return Ref{Name: from, Forward: fwd1}, Ref{Name: to, Forward: fwd2}, nil
}

func parseUint(s, what string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errs.New(errs.ErrCodeLineParse, "%s %q is not a non-negative integer", what, s)
	}
	return n, nil
}
