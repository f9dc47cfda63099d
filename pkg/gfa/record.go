package gfa

import (
	"slices"
	"strconv"
	"strings"

	errs "github.com/matzehuels/gfak/pkg/errors"
)

// Kind identifies a record kind.
type Kind int

const (
	KindHeader Kind = iota
	KindComment
	KindSequence
	KindLink
	KindContainment
	KindAlignment
	KindEdge
	KindFragment
	KindGap
	KindGroup
	KindPath
	KindWalk
)

var kindNames = [...]string{
	KindHeader:      "header",
	KindComment:     "comment",
	KindSequence:    "sequence",
	KindLink:        "link",
	KindContainment: "containment",
	KindAlignment:   "alignment",
	KindEdge:        "edge",
	KindFragment:    "fragment",
	KindGap:         "gap",
	KindGroup:       "group",
	KindPath:        "path",
	KindWalk:        "walk",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Record is implemented by every record struct in this package and nothing
// else.
type Record interface {
	Kind() Kind
	record()
}

// Ref is an oriented reference to a segment, written name+ or name-.
type Ref struct {
	Name    string
	Forward bool
}

// String renders the reference with its orientation suffix.
func (r Ref) String() string { return r.Name + orientString(r.Forward) }

func parseRef(s string) (Ref, error) {
	if len(s) < 2 {
		return Ref{}, errs.New(errs.ErrCodeLineParse, "reference %q: want name followed by + or -", s)
	}
	fwd, err := parseOrient(s[len(s)-1:])
	if err != nil {
		return Ref{}, errs.New(errs.ErrCodeLineParse, "reference %q: want name followed by + or -", s)
	}
	return Ref{Name: s[:len(s)-1], Forward: fwd}, nil
}

func parseOrient(s string) (bool, error) {
	switch s {
	case "+":
		return true, nil
	case "-":
		return false, nil
	}
	return false, errs.New(errs.ErrCodeLineParse, "orientation %q: want + or -", s)
}

func orientString(fwd bool) string {
	if fwd {
		return "+"
	}
	return "-"
}

// Position is a GFA2 coordinate. End marks the $ suffix, which asserts the
// position is the end of the sequence.
type Position struct {
	Value uint64
	End   bool
}

// String renders the position with its $ suffix when End is set.
func (p Position) String() string {
	s := strconv.FormatUint(p.Value, 10)
	if p.End {
		s += "$"
	}
	return s
}

func parsePosition(s string) (Position, error) {
	var p Position
	if strings.HasSuffix(s, "$") {
		p.End = true
		s = s[:len(s)-1]
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Position{}, errs.New(errs.ErrCodeLineParse, "position %q is not a non-negative integer", s)
	}
	p.Value = v
	return p, nil
}

// Header is one key:type:value entry of an H line. A graph keeps one Header
// per key; a later line with the same key replaces the earlier value. A header
// with Type 0 holds an undecodable token in Value.
type Header struct {
	Key   string
	Type  FieldType
	Value string
}

func (Header) Kind() Kind { return KindHeader }
func (Header) record() {}

func (h Header) field() Field { return Field{Key: h.Key, Type: h.Type, Value: h.Value} }

// Comment is a # line, or any line with an unrecognized record tag, kept
// verbatim.
type Comment struct {
	Text string
}

func (Comment) Kind() Kind { return KindComment }
func (Comment) record() {}

// Sequence is an S line. Sequence is "*" when the bases are not stored.
//
// ID is a graph-local ordinal assigned on first insertion. It is not part of
// the file and is ignored by [Sequence.Equal].
type Sequence struct {
	Name     string
	Sequence string
	Length   uint64
	ID       int64
	Tags     Tags
}

func (Sequence) Kind() Kind { return KindSequence }
func (Sequence) record() {}

// Equal compares content, ignoring ID.
func (s Sequence) Equal(o Sequence) bool {
	return s.Name == o.Name && s.Sequence == o.Sequence && s.Length == o.Length && s.Tags.Equal(o.Tags)
}

// impliedLength is the length a GFA1 S line states without an LN tag.
func (s Sequence) impliedLength() uint64 {
	if s.Sequence == "*" || s.Sequence == "" {
		return 0
	}
	return uint64(len(s.Sequence))
}

// Link is a GFA1 L line.
type Link struct {
	Source  Ref
	Sink    Ref
	Overlap string
	Tags    Tags
}

func (Link) Kind() Kind { return KindLink }
func (Link) record() {}

// Equal reports field-wise equality.
func (l Link) Equal(o Link) bool {
	return l.Source == o.Source && l.Sink == o.Sink && l.Overlap == o.Overlap && l.Tags.Equal(o.Tags)
}

// Containment is a GFA1 C line: Sink is contained in Source at Position.
type Containment struct {
	Source   Ref
	Sink     Ref
	Position uint64
	Overlap  string
	Tags     Tags
}

func (Containment) Kind() Kind { return KindContainment }
func (Containment) record() {}

// Alignment is an A line placing Reference on Source at Position.
type Alignment struct {
	Source    string
	Position  uint64
	Reference string
	Forward   bool
	Length    uint64
	Tags      Tags
}

func (Alignment) Kind() Kind { return KindAlignment }
func (Alignment) record() {}

// Edge is a GFA2 E line. ID is "*" for anonymous edges.
type Edge struct {
	ID          string
	Source      Ref
	Sink        Ref
	SourceBegin Position
	SourceEnd   Position
	SinkBegin   Position
	SinkEnd     Position
	Alignment   string
	Tags        Tags
}

func (Edge) Kind() Kind { return KindEdge }
func (Edge) record() {}

// Equal reports field-wise equality.
func (e Edge) Equal(o Edge) bool {
	return e.ID == o.ID && e.Source == o.Source && e.Sink == o.Sink &&
		e.SourceBegin == o.SourceBegin && e.SourceEnd == o.SourceEnd &&
		e.SinkBegin == o.SinkBegin && e.SinkEnd == o.SinkEnd &&
		e.Alignment == o.Alignment && e.Tags.Equal(o.Tags)
}

// WholeSequence reports whether both ends span their segment from 0 to $,
// which is the only edge shape a link can express.
func (e Edge) WholeSequence() bool {
	whole := func(b, end Position) bool { return b.Value == 0 && !b.End && end.End }
	return whole(e.SourceBegin, e.SourceEnd) && whole(e.SinkBegin, e.SinkEnd)
}

// Fragment is a GFA2 F line aligning External onto Segment.
type Fragment struct {
	Segment       string
	External      Ref
	SegmentBegin  Position
	SegmentEnd    Position
	FragmentBegin Position
	FragmentEnd   Position
	Alignment     string
	Tags          Tags
}

func (Fragment) Kind() Kind { return KindFragment }
func (Fragment) record() {}

// Gap is a GFA2 G line. Variance is "*" when unknown.
type Gap struct {
	ID       string
	Source   Ref
	Sink     Ref
	Distance int64
	Variance string
	Tags     Tags
}

func (Gap) Kind() Kind { return KindGap }
func (Gap) record() {}

// Group is a GFA2 O (Ordered) or U line. Orientations parallels Items; items
// of unordered groups are always forward.
type Group struct {
	ID           string
	Ordered      bool
	Items        []string
	Orientations []bool
	Tags         Tags
}

func (Group) Kind() Kind { return KindGroup }
func (Group) record() {}

// Equal reports field-wise equality.
func (g Group) Equal(o Group) bool {
	return g.ID == o.ID && g.Ordered == o.Ordered && slices.Equal(g.Items, o.Items) &&
		slices.Equal(g.Orientations, o.Orientations) && g.Tags.Equal(o.Tags)
}

// Path is a GFA1 P line. Orientations parallels Segments; Overlaps is empty
// when the file gives "*".
type Path struct {
	Name         string
	Segments     []string
	Orientations []bool
	Overlaps     []string
	Tags         Tags
}

func (Path) Kind() Kind { return KindPath }
func (Path) record() {}

// Equal reports field-wise equality.
func (p Path) Equal(o Path) bool {
	return p.Name == o.Name && p.sameSteps(o) && slices.Equal(p.Overlaps, o.Overlaps) && p.Tags.Equal(o.Tags)
}

func (p Path) sameSteps(o Path) bool {
	return slices.Equal(p.Segments, o.Segments) && slices.Equal(p.Orientations, o.Orientations)
}

// Walk is one step of a path: the visit of Segment at position Rank (1-based)
// of path Path. A path of n segments corresponds to n walk records.
type Walk struct {
	Segment string
	Path    string
	Rank    int64
	Reverse bool
	Cigar   string
	Tags    Tags
}

func (Walk) Kind() Kind { return KindWalk }
func (Walk) record() {}

// Equal reports field-wise equality.
func (w Walk) Equal(o Walk) bool {
	return w.Segment == o.Segment && w.Path == o.Path && w.Rank == o.Rank &&
		w.Reverse == o.Reverse && w.Cigar == o.Cigar && w.Tags.Equal(o.Tags)
}

// Interface checks.
var (
	_ Record = Header{}
	_ Record = Comment{}
	_ Record = Sequence{}
	_ Record = Link{}
	_ Record = Containment{}
	_ Record = Alignment{}
	_ Record = Edge{}
	_ Record = Fragment{}
	_ Record = Gap{}
	_ Record = Group{}
	_ Record = Path{}
	_ Record = Walk{}
)
