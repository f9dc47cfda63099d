package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/matzehuels/gfak/pkg/errors"
	"github.com/matzehuels/gfak/pkg/gfa"
)

type document struct {
	Version string `json:"version"`
	Nodes   []node `json:"nodes"`
	Edges   []edge `json:"edges"`
	Paths   []path `json:"paths,omitempty"`
}

type node struct {
	ID       string   `json:"id"`
	Length   uint64   `json:"length"`
	Sequence string   `json:"sequence,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

type edge struct {
	Kind    string     `json:"kind"`
	ID      string     `json:"id,omitempty"`
	From    string     `json:"from"`
	To      string     `json:"to"`
	Overlap string     `json:"overlap,omitempty"`
	Range   *[4]string `json:"range,omitempty"`
	Tags    []string   `json:"tags,omitempty"`
}

type path struct {
	Name     string   `json:"name"`
	Steps    []string `json:"steps"`
	Overlaps []string `json:"overlaps,omitempty"`
}

// WriteJSON encodes g as an indented JSON document and writes it to w.
// Sequences, links, edges and paths appear in insertion order.
func WriteJSON(g *gfa.Graph, w io.Writer) error {
	doc := document{
		Version: g.OutputVersion().String(),
		Nodes:   []node{},
		Edges:   []edge{},
	}

	for _, s := range g.Sequences() {
		n := node{ID: s.Name, Length: s.Length, Tags: tokens(s.Tags)}
		if s.Sequence != "*" {
			n.Sequence = s.Sequence
		}
		doc.Nodes = append(doc.Nodes, n)
	}
	for _, l := range g.AllLinks() {
		doc.Edges = append(doc.Edges, edge{
			Kind:    "link",
			From:    l.Source.String(),
			To:      l.Sink.String(),
			Overlap: starless(l.Overlap),
			Tags:    tokens(l.Tags),
		})
	}
	for _, e := range g.AllEdges() {
		doc.Edges = append(doc.Edges, edge{
			Kind:    "edge",
			ID:      starless(e.ID),
			From:    e.Source.String(),
			To:      e.Sink.String(),
			Overlap: starless(e.Alignment),
			Range:   &[4]string{e.SourceBegin.String(), e.SourceEnd.String(), e.SinkBegin.String(), e.SinkEnd.String()},
			Tags:    tokens(e.Tags),
		})
	}

	for _, p := range g.Paths() {
		doc.Paths = append(doc.Paths, pathSteps(p.Name, p.Segments, p.Orientations, p.Overlaps))
	}
	if len(doc.Paths) == 0 {
		for _, grp := range g.Groups() {
			if grp.Ordered {
				doc.Paths = append(doc.Paths, pathSteps(grp.ID, grp.Items, grp.Orientations, nil))
			}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *gfa.Graph, path string) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// ExportGFA writes g as GFA text to a file at path.
func ExportGFA(g *gfa.Graph, path string, opts gfa.WriteOptions) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	if err := gfa.Write(f, g, opts); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func create(path string) (*os.File, error) {
	if path == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "output path is empty")
	}
	if err := errs.ValidateOutputPath(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

func pathSteps(name string, segs []string, orients []bool, overlaps []string) path {
	p := path{Name: name, Steps: make([]string, len(segs)), Overlaps: overlaps}
	for i, seg := range segs {
		ref := gfa.Ref{Name: seg, Forward: i >= len(orients) || orients[i]}
		p.Steps[i] = ref.String()
	}
	return p
}

func tokens(t gfa.Tags) []string {
	if len(t) == 0 {
		return nil
	}
	out := make([]string, len(t))
	for i, f := range t {
		out[i] = f.String()
	}
	return out
}

func starless(s string) string {
	if s == "*" {
		return ""
	}
	return s
}
