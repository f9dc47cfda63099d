package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	errs "github.com/matzehuels/gfak/pkg/errors"
	"github.com/matzehuels/gfak/pkg/gfa"
)

func parse(t *testing.T, text string) *gfa.Graph {
	t.Helper()
	g, _, err := gfa.Parse(strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	g := parse(t, "S\ts10\tACGT\nS\ts2\tGG\nL\ts2\t+\ts10\t-\t2M\nL\ts10\t+\tghost\t+\t*\nC\ts10\t+\ts2\t+\t1\t2M\n")

	dot := ToDOT(g, Options{Labels: true})
	for _, want := range []string{
		"digraph G {",
		`"s2" [label="s2\n2 bp"];`,
		`"s10" [label="s10\n4 bp"];`,
		`"ghost" [label="ghost", style="rounded,filled,dashed"`,
		`"s2" -> "s10" [taillabel="+", headlabel="-", label="2M"];`,
		`"s10" -> "ghost" [taillabel="+", headlabel="+"];`,
		`style=dashed, arrowhead=odiamond`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s\n%s", want, dot)
		}
	}
	if strings.Index(dot, `"s2" [`) > strings.Index(dot, `"s10" [`) {
		t.Error("nodes not in natural order")
	}

	plain := ToDOT(g, Options{})
	if strings.Contains(plain, "bp") || strings.Contains(plain, `label="2M"`) {
		t.Errorf("labels drawn without Labels option:\n%s", plain)
	}
}

func TestArrowsFollowConsistency(t *testing.T) {
	g := parse(t, "S\t1\tAC\nS\t2\tGT\nL\t1\t+\t2\t+\t*\n")

	if n := len(Arrows(g)); n != 1 {
		t.Fatalf("arrows = %d, want 1", n)
	}
	g.GFA2ize()
	arrows := Arrows(g)
	if len(arrows) != 1 {
		t.Fatalf("arrows after GFA2ize = %d, want 1 (edges only)", len(arrows))
	}
	g.GFA1ize()
	if n := len(Arrows(g)); n != 1 {
		t.Errorf("arrows after GFA1ize = %d, want 1", n)
	}

	g.AddEdge(gfa.Edge{ID: "*", Source: gfa.Ref{Name: "2", Forward: true}, Sink: gfa.Ref{Name: "1", Forward: true}})
	// Only the edge set still carries the whole graph.
	if n := len(Arrows(g)); n != 2 {
		t.Errorf("arrows after unconverted edge = %d, want 2", n)
	}

	g.AddLink(gfa.Link{Source: gfa.Ref{Name: "2", Forward: true}, Sink: gfa.Ref{Name: "2", Forward: false}, Overlap: "*"})
	// Neither side is consistent any more: links and edges are both drawn.
	if n := len(Arrows(g)); n != 4 {
		t.Errorf("arrows with no consistent side = %d, want 4", n)
	}
}

func TestCheck(t *testing.T) {
	g := parse(t, "S\t1\tA\nS\t2\tC\nL\t1\t+\t3\t+\t*\n")
	if Count(g) != 3 {
		t.Errorf("Count = %d, want 3", Count(g))
	}
	if err := Check(g, Options{}); err != nil {
		t.Errorf("unlimited: %v", err)
	}
	if err := Check(g, Options{MaxNodes: 2}); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("over limit: %v", err)
	}
}

func TestRenderSVG(t *testing.T) {
	g := parse(t, "S\tA\tACGT\nS\tB\tTTTT\nL\tA\t+\tB\t+\t4M\n")
	svg, err := RenderSVG(context.Background(), ToDOT(g, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte(`viewBox="0 0 `)) {
		t.Errorf("unexpected SVG: %.200s", svg)
	}
}

func TestRenderBadDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("expected error for truncated DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
	if out := normalizeViewBox([]byte("<svg></svg>")); string(out) != "<svg></svg>" {
		t.Errorf("no viewBox: %s", out)
	}
}
