package io

import (
	"io"
	"os"
	"slices"

	"github.com/matzehuels/gfak/pkg/cache"
	errs "github.com/matzehuels/gfak/pkg/errors"
	"github.com/matzehuels/gfak/pkg/gfa"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// stdin is swapped in tests.
var stdin io.Reader = os.Stdin

// ImportGFA parses the GFA file at path into a new graph.
//
// The error is non-nil only when the file cannot be opened or read; its code
// is SOURCE_UNAVAILABLE. Problems with individual lines are returned as
// diagnostics alongside the best-effort graph.
func ImportGFA(path string) (*gfa.Graph, gfa.Diagnostics, error) {
	g := gfa.New()
	diags, err := ImportGFAInto(g, path)
	if err != nil {
		return nil, diags, err
	}
	return g, diags, nil
}

// ImportGFAInto parses the GFA file at path into g, merging with the records
// g already holds. See [gfa.Graph.Read] for the merge rules.
func ImportGFAInto(g *gfa.Graph, path string) (gfa.Diagnostics, error) {
	if path == Stdin {
		return g.Read(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeSourceUnavailable, err, "open %s", path)
	}
	defer f.Close()
	diags, err := g.Read(f)
	if err != nil {
		return diags, errs.Wrap(errs.ErrCodeSourceUnavailable, err, "read %s", path)
	}
	return diags, nil
}

// HashSource streams the file at path through SHA-256 without holding it in
// memory. Standard input cannot be read twice; pass it through [Spool] first.
func HashSource(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeSourceUnavailable, err, "open %s", path)
	}
	defer f.Close()
	sum, err := cache.HashReader(f)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeSourceUnavailable, err, "read %s", path)
	}
	return sum, nil
}

// Spool copies standard input to a temporary file so that it can be hashed
// and then parsed like any other path. Other paths are returned unchanged;
// every "-" maps to the same file. The returned function removes it.
func Spool(paths []string) ([]string, func(), error) {
	out := slices.Clone(paths)
	tmp := ""
	cleanup := func() {
		if tmp != "" {
			os.Remove(tmp)
		}
	}
	for i, p := range out {
		if p != Stdin {
			continue
		}
		if tmp == "" {
			f, err := os.CreateTemp("", "gfak-stdin-*.gfa")
			if err != nil {
				return nil, cleanup, errs.Wrap(errs.ErrCodeSourceUnavailable, err, "spool stdin")
			}
			tmp = f.Name()
			_, err = io.Copy(f, stdin)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				cleanup()
				return nil, func() {}, errs.Wrap(errs.ErrCodeSourceUnavailable, err, "read stdin")
			}
		}
		out[i] = tmp
	}
	return out, cleanup, nil
}
