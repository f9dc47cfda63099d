// Package pipeline runs the load → convert → serialize and load → render
// flows shared by the gfak commands.
//
// # Architecture
//
// Every flow starts the same way:
//
//  1. Load: read each input path in order and parse it into one graph.
//     Several inputs merge into a single graph (see [gfa.Graph.Read]).
//  2. Convert: optionally make one version's record set carry the whole
//     graph, and optionally derive walk steps from paths.
//  3. Output: serialize as GFA text, or draw a node-link diagram.
//
// Outputs are cached by the SHA-256 of the raw inputs together with the
// options that shape them, so re-running a command on unchanged files skips
// parsing entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Convert(ctx, []string{"a.gfa"}, pipeline.Options{Version: "2"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(res.Output)
//
// # Diff
//
// [Runner.Diff] loads two or more inputs into one graph and serializes the union.
// Records keyed by name (segments, paths, groups, headers) keep the value
// from the later file; links and other adjacency records from both files are
// kept, duplicates included.
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gfak/pkg/cache"
	errs "github.com/matzehuels/gfak/pkg/errors"
	"github.com/matzehuels/gfak/pkg/gfa"
)

// Render output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatDOT = "dot"
)

// DefaultFormat is the render format when none is given.
const DefaultFormat = FormatSVG

// DefaultMaxNodes bounds the size of graphs handed to Graphviz.
const DefaultMaxNodes = 5000

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatDOT: true,
}

// Options configures a pipeline run. The zero value serializes the merged
// inputs in natural order without conversion.
type Options struct {
	// Serialize options
	Block   bool   `json:"block,omitempty"`
	Version string `json:"version,omitempty"` // "", "1" or "2"
	Walks   bool   `json:"walks,omitempty"`

	// Render options
	Format   string `json:"format,omitempty"`
	Labels   bool   `json:"labels,omitempty"`
	MaxNodes int    `json:"max_nodes,omitempty"`

	// NoCache bypasses the cache for both lookup and store.
	NoCache bool `json:"-"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the merged graph, nil when Output came from the cache.
	Graph *gfa.Graph

	// Diagnostics holds parse and conversion findings in input order.
	Diagnostics gfa.Diagnostics

	// InputHash is the content hash of all inputs.
	InputHash string

	// Output is the serialized GFA text or rendered artifact.
	Output []byte

	// CacheHit reports whether Output came from the cache.
	CacheHit bool

	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records     gfa.Stats
	LoadTime    time.Duration
	ConvertTime time.Duration
	OutputTime  time.Duration
}

// ValidateFormat checks that a render format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, dot)", format)
	}
	return nil
}

// TargetVersion maps the Version option to a [gfa.Version]. An empty option
// yields VersionUnknown, meaning no conversion.
func (o *Options) TargetVersion() (gfa.Version, error) {
	if strings.TrimSpace(o.Version) == "" {
		return gfa.VersionUnknown, nil
	}
	return gfa.ParseVersion(o.Version)
}

// ValidateForConvert checks serialize options.
func (o *Options) ValidateForConvert() error {
	if _, err := o.TargetVersion(); err != nil {
		return err
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForRender checks render options and applies defaults.
func (o *Options) ValidateForRender() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.MaxNodes == 0 {
		o.MaxNodes = DefaultMaxNodes
	}
	if o.MaxNodes < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max nodes must not be negative")
	}
	if err := o.ValidateForConvert(); err != nil {
		return err
	}
	return ValidateFormat(o.Format)
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// WriteOptions returns the serializer options.
func (o *Options) WriteOptions() gfa.WriteOptions {
	v, _ := o.TargetVersion()
	order := gfa.NaturalOrder
	if o.Block {
		order = gfa.BlockOrder
	}
	return gfa.WriteOptions{Order: order, Version: v, WalksOnly: o.Walks}
}

// ConvertKeyOpts returns cache key options for serialized output.
func (o *Options) ConvertKeyOpts() cache.ConvertKeyOpts {
	v, _ := o.TargetVersion()
	ver := ""
	if v != gfa.VersionUnknown {
		ver = v.String()
	}
	return cache.ConvertKeyOpts{Block: o.Block, Version: ver, Walks: o.Walks}
}

// ArtifactKeyOpts returns cache key options for rendered output.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	k := o.ConvertKeyOpts()
	return cache.ArtifactKeyOpts{Format: o.Format, Version: k.Version, Labels: o.Labels}
}
