package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gfak/pkg/cache"
	errs "github.com/matzehuels/gfak/pkg/errors"
	"github.com/matzehuels/gfak/pkg/gfa"
)

const sample = "H\tVN:Z:1.0\n" +
	"S\tA\tACGT\n" +
	"S\tB\t*\tLN:i:4\tRC:i:12\n" +
	"L\tA\t+\tB\t+\t4M\n" +
	"P\tp1\tA+,B-\t4M\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportGFA(t *testing.T) {
	path := writeFile(t, "in.gfa", sample+"L\tA\t+\n")

	g, diags, err := ImportGFA(path)
	if err != nil {
		t.Fatalf("ImportGFA: %v", err)
	}
	if len(diags) != 1 || diags[0].Line != 6 {
		t.Errorf("diagnostics = %v", diags)
	}
	if st := g.Stats(); st.Sequences != 2 || st.Links != 1 || st.Paths != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestImportGFAMissing(t *testing.T) {
	_, _, err := ImportGFA(filepath.Join(t.TempDir(), "nope.gfa"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errs.Is(err, errs.ErrCodeSourceUnavailable) {
		t.Errorf("code = %s, want %s", errs.GetCode(err), errs.ErrCodeSourceUnavailable)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("cause lost: %v", err)
	}
}

func TestImportGFAInto(t *testing.T) {
	a := writeFile(t, "a.gfa", "S\t1\tAAAA\nL\t1\t+\t2\t+\t*\n")
	b := writeFile(t, "b.gfa", "S\t1\tCC\nS\t2\tGG\nL\t1\t+\t2\t+\t*\n")

	g := gfa.New()
	for _, p := range []string{a, b} {
		if _, err := ImportGFAInto(g, p); err != nil {
			t.Fatal(err)
		}
	}
	if s, _ := g.Sequence("1"); s.Sequence != "CC" {
		t.Errorf("sequence 1 = %q, want the later file's value", s.Sequence)
	}
	if n := len(g.AllLinks()); n != 2 {
		t.Errorf("links = %d, want 2", n)
	}
}

func TestImportStdin(t *testing.T) {
	old := stdin
	defer func() { stdin = old }()
	stdin = strings.NewReader(sample)

	g, _, err := ImportGFA(Stdin)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.Sequence("A"); !ok {
		t.Error("sequence A missing")
	}
}

func TestExportGFA(t *testing.T) {
	g, _, err := gfa.Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "out.gfa")
	if err := ExportGFA(g, out, gfa.WriteOptions{Order: gfa.BlockOrder}); err != nil {
		t.Fatalf("ExportGFA: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != g.BlockString() {
		t.Errorf("file = %q, want %q", data, g.BlockString())
	}

	if err := ExportGFA(g, "", gfa.WriteOptions{}); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("empty path: %v", err)
	}
	if err := ExportGFA(g, t.TempDir()+"/", gfa.WriteOptions{}); err == nil {
		t.Error("directory path accepted")
	}
}

func TestWriteJSON(t *testing.T) {
	g, _, _ := gfa.Parse(strings.NewReader(sample + "E\te1\tA+\tB-\t1\t4$\t0\t3\t3M\n"))

	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var doc document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if doc.Version != "1.0" || len(doc.Nodes) != 2 || len(doc.Edges) != 2 || len(doc.Paths) != 1 {
		t.Fatalf("doc = %+v", doc)
	}
	if n := doc.Nodes[1]; n.Sequence != "" || n.Length != 4 || len(n.Tags) != 2 {
		t.Errorf("node B = %+v", n)
	}
	if e := doc.Edges[0]; e.Kind != "link" || e.From != "A+" || e.Overlap != "4M" || e.Range != nil {
		t.Errorf("link = %+v", e)
	}
	if e := doc.Edges[1]; e.Kind != "edge" || e.ID != "e1" || e.Range == nil || e.Range[1] != "4$" {
		t.Errorf("edge = %+v", e)
	}
	if p := doc.Paths[0]; p.Name != "p1" || strings.Join(p.Steps, ",") != "A+,B-" {
		t.Errorf("path = %+v", p)
	}
}

func TestWriteJSONGroupsAsPaths(t *testing.T) {
	g, _, _ := gfa.Parse(strings.NewReader("S\ts\t1\tA\nO\to\ts+ s-\nU\tu\ts\n"))
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		t.Fatal(err)
	}
	var doc document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Paths) != 1 || doc.Paths[0].Name != "o" || doc.Paths[0].Steps[1] != "s-" {
		t.Errorf("paths = %+v", doc.Paths)
	}
}

func TestExportJSON(t *testing.T) {
	g := gfa.New()
	g.AddSequence(gfa.Sequence{Name: "x", Sequence: "A", Length: 1})
	out := filepath.Join(t.TempDir(), "g.json")
	if err := ExportJSON(g, out); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), `"id": "x"`) || !strings.Contains(string(data), `"edges": []`) {
		t.Errorf("json = %s", data)
	}
}

func TestHashSource(t *testing.T) {
	path := writeFile(t, "x.gfa", sample)
	sum, err := HashSource(path)
	if err != nil || sum != cache.Hash([]byte(sample)) {
		t.Errorf("HashSource = %q, %v", sum, err)
	}
	if _, err := HashSource(filepath.Join(t.TempDir(), "gone")); !errs.Is(err, errs.ErrCodeSourceUnavailable) {
		t.Errorf("missing: %v", err)
	}
}

func TestSpool(t *testing.T) {
	old := stdin
	defer func() { stdin = old }()
	stdin = strings.NewReader("S\t1\tA\n")

	files, cleanup, err := Spool([]string{"a.gfa", Stdin, Stdin})
	if err != nil {
		t.Fatal(err)
	}
	if files[0] != "a.gfa" || files[1] == Stdin || files[1] != files[2] {
		t.Fatalf("files = %v", files)
	}
	data, err := os.ReadFile(files[1])
	if err != nil || string(data) != "S\t1\tA\n" {
		t.Errorf("spooled = %q, %v", data, err)
	}

	cleanup()
	if _, err := os.Stat(files[1]); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("spool file kept after cleanup: %v", err)
	}
}
