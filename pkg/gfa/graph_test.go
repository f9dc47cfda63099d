package gfa

import (
	"slices"
	"testing"

	errs "github.com/matzehuels/gfak/pkg/errors"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr bool
	}{
		{"1.0", Version1, false},
		{"0.1", Version1, false},
		{"1.2", Version1, false},
		{"2.0", Version2, false},
		{"2", Version2, false},
		{" 2.0 ", Version2, false},
		{"3.0", VersionUnknown, true},
		{"", VersionUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccessorsUnknownKeys(t *testing.T) {
	g := New()
	if g.Links("nope") != nil || g.Edges("nope") != nil || g.Walks("nope") != nil {
		t.Error("unknown keys should yield nil")
	}
	if _, ok := g.Sequence("nope"); ok {
		t.Error("Sequence found on empty graph")
	}
	if _, ok := g.Path("nope"); ok {
		t.Error("Path found on empty graph")
	}
	if g.String() != "" {
		t.Errorf("empty graph renders %q", g.String())
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	g := New()
	g.AddSequence(Sequence{Name: "1", Sequence: "A", Length: 1})
	seqs := g.Sequences()
	seqs[0].Name = "changed"
	if s, _ := g.Sequence("1"); s.Name != "1" {
		t.Error("Sequences exposes graph storage")
	}
}

func TestOwners(t *testing.T) {
	g := New()
	g.AddSequence(Sequence{Name: "s10"})
	g.AddSequence(Sequence{Name: "s2"})
	g.AddLink(Link{Source: Ref{"x1", true}, Sink: Ref{"s2", true}})
	g.AddGap(Gap{Source: Ref{"g", true}, Sink: Ref{"s2", true}})

	want := []string{"g", "s2", "s10", "x1"}
	if got := g.Owners(); !slices.Equal(got, want) {
		t.Errorf("Owners() = %v, want %v", got, want)
	}
}

func TestAddHeaderReplaces(t *testing.T) {
	g := New()
	g.AddHeader(Header{Key: "VN", Type: TypeString, Value: "1.0"})
	g.AddHeader(Header{Key: "TS", Type: TypeInt, Value: "100"})
	g.AddHeader(Header{Key: "VN", Type: TypeString, Value: "2.0"})

	hs := g.Headers()
	if len(hs) != 2 || hs[0].Key != "VN" || hs[0].Value != "2.0" {
		t.Errorf("headers = %+v", hs)
	}
}

func TestRecordKinds(t *testing.T) {
	tests := []struct {
		rec  Record
		want string
	}{
		{Header{}, "header"},
		{Comment{}, "comment"},
		{Sequence{}, "sequence"},
		{Link{}, "link"},
		{Containment{}, "containment"},
		{Alignment{}, "alignment"},
		{Edge{}, "edge"},
		{Fragment{}, "fragment"},
		{Gap{}, "gap"},
		{Group{}, "group"},
		{Path{}, "path"},
		{Walk{}, "walk"},
	}
	for _, tt := range tests {
		if got := tt.rec.Kind().String(); got != tt.want {
			t.Errorf("%T kind = %q, want %q", tt.rec, got, tt.want)
		}
	}
	if got := Kind(99).String(); got != "kind(99)" {
		t.Errorf("unknown kind = %q", got)
	}
}

// Reading two files into one graph yields their union. Keyed records
// collide by name and the later value wins in the earlier position;
// adjacency records are never deduplicated.
func TestMergeSemantics(t *testing.T) {
	x := "H\tVN:Z:1.0\n" +
		"S\ta\tAAAA\n" +
		"S\tb\tCCCC\n" +
		"L\ta\t+\tb\t+\t4M\n"
	y := "H\tVN:Z:1.0\tTS:i:2\n" +
		"S\tb\tGGGG\n" +
		"S\tc\tTTTT\n" +
		"L\ta\t+\tb\t+\t4M\n" +
		"L\tb\t+\tc\t+\t*\n"

	g, _ := mustParse(t, x)
	if _, err := g.Read(stringsReader(y)); err != nil {
		t.Fatal(err)
	}

	want := "H\tVN:Z:1.0\n" +
		"H\tTS:i:2\n" +
		"S\ta\tAAAA\n" +
		"L\ta\t+\tb\t+\t4M\n" +
		"L\ta\t+\tb\t+\t4M\n" +
		"S\tb\tGGGG\n" +
		"L\tb\t+\tc\t+\t*\n" +
		"S\tc\tTTTT\n"
	if got := g.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	if st := g.Stats(); st.Sequences != 3 || st.Links != 3 {
		t.Errorf("stats = %+v", st)
	}
}

func TestVerify(t *testing.T) {
	g, _ := mustParse(t, "S\ta\t4\tACGT\nS\tb\t4\tACGT\n"+
		"E\te1\ta+\tb+\t0\t4$\t0\t4$\t*\n"+
		"E\t*\ta+\tghost+\t0\t4$\t0\t0$\t*\n"+
		"O\tg1\ta+ e1+ b-\n"+
		"U\tg2\tg1 missing\n")

	got := g.Verify()
	if len(got) != 2 {
		t.Fatalf("Verify() = %v, want 2 entries", got)
	}
	if got[0].Kind != KindEdge || got[0].Name != "ghost" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Kind != KindGroup || got[1].Name != "missing" || got[1].Record != "g2" {
		t.Errorf("second = %+v", got[1])
	}
	if d := got[1].Diagnostic(); d.Code != errs.ErrCodeDanglingReference {
		t.Errorf("diagnostic code = %s", d.Code)
	}
}

func TestVerifyClean(t *testing.T) {
	g, _ := mustParse(t, gfa1Sample)
	if got := g.Verify(); len(got) != 0 {
		t.Errorf("Verify() = %v", got)
	}
}
