package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gfak/pkg/cache"
	errs "github.com/matzehuels/gfak/pkg/errors"
	"github.com/matzehuels/gfak/pkg/gfa"
	gfaio "github.com/matzehuels/gfak/pkg/io"
	"github.com/matzehuels/gfak/pkg/observability"
	"github.com/matzehuels/gfak/pkg/render/nodelink"
)

// Cache key types reported to [observability.CacheHooks].
const (
	keyConvert  = "convert"
	keyArtifact = "artifact"
)

// Runner executes pipeline flows with caching.
//
// The Runner is stateless except for the cache and logger; it does not keep
// results between calls.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// input names the sources of one run. Inputs are hashed by streaming and
// parsed from disk only on a cache miss, so no source is held in memory whole.
type input struct {
	paths   []string // as given, for messages
	files   []string // readable paths; standard input is spooled
	hash    string
	cleanup func()
}

func (in *input) close() { in.cleanup() }

func (r *Runner) read(ctx context.Context, paths []string) (*input, error) {
	if len(paths) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "no input files")
	}
	files, cleanup, err := gfaio.Spool(paths)
	if err != nil {
		return nil, err
	}
	in := &input{paths: paths, files: files, cleanup: cleanup}
	digests := make([]string, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			in.close()
			return nil, err
		}
		sum, err := gfaio.HashSource(f)
		if err != nil {
			in.close()
			return nil, err
		}
		digests = append(digests, sum)
	}
	in.hash = cache.HashDigests(digests...)
	return in, nil
}

// Load parses every path, in order, into one graph. Diagnostics from all
// inputs are returned together and logged as warnings.
func (r *Runner) Load(ctx context.Context, paths []string) (*gfa.Graph, gfa.Diagnostics, error) {
	in, err := r.read(ctx, paths)
	if err != nil {
		return nil, nil, err
	}
	defer in.close()
	return r.parse(ctx, in)
}

func (r *Runner) parse(ctx context.Context, in *input) (g *gfa.Graph, all gfa.Diagnostics, err error) {
	start := time.Now()
	g = gfa.New()
	defer func() {
		records := 0
		if g != nil {
			records = g.Stats().Total()
		}
		observability.Pipeline().OnLoad(ctx, len(in.paths), records, len(all), time.Since(start), err)
	}()

	for i, f := range in.files {
		diags, readErr := gfaio.ImportGFAInto(g, f)
		for _, d := range diags {
			r.Logger.Warn(d.Message, "file", in.paths[i], "line", d.Line, "code", d.Code)
		}
		all = append(all, diags...)
		if readErr != nil {
			return nil, all, readErr
		}
	}
	if g.Conflict() {
		r.Logger.Warn("input mixes GFA1 and GFA2 records", "version", g.Version())
	}
	return g, all, nil
}

// Convert loads paths into one graph, applies the requested conversions and
// serializes it.
func (r *Runner) Convert(ctx context.Context, paths []string, opts Options) (*Result, error) {
	if err := opts.ValidateForConvert(); err != nil {
		return nil, err
	}

	start := time.Now()
	in, err := r.read(ctx, paths)
	if err != nil {
		return nil, err
	}
	defer in.close()
	res := &Result{InputHash: in.hash}
	key := r.Keyer.ConvertKey(in.hash, opts.ConvertKeyOpts())
	if data, ok := r.lookup(ctx, keyConvert, key, opts); ok {
		res.Output, res.CacheHit = data, true
		res.Stats.LoadTime = time.Since(start)
		r.Logger.Debug("convert cache hit", "key", key)
		return res, nil
	}

	g, diags, err := r.parse(ctx, in)
	res.Diagnostics = diags
	if err != nil {
		return res, err
	}
	res.Graph = g
	res.Stats.LoadTime = time.Since(start)
	res.Stats.Records = g.Stats()
	r.Logger.Debug("loaded inputs", "files", len(paths), "segments", res.Stats.Records.Sequences, "duration", res.Stats.LoadTime)

	start = time.Now()
	res.Diagnostics = append(res.Diagnostics, r.applyConversions(ctx, g, opts)...)
	res.Stats.ConvertTime = time.Since(start)

	start = time.Now()
	var buf bytes.Buffer
	err = gfa.Write(&buf, g, opts.WriteOptions())
	res.Stats.OutputTime = time.Since(start)
	observability.Pipeline().OnOutput(ctx, "gfa", buf.Len(), res.Stats.OutputTime, err)
	if err != nil {
		return res, errs.Wrap(errs.ErrCodeInternal, err, "serialize")
	}
	res.Output = buf.Bytes()

	r.store(ctx, keyConvert, key, res.Output, cache.ConvertTTL, opts)
	return res, nil
}

// Diff merges two or more inputs, in order, and serializes the union per
// opts. The result is never cached: diffs are usually run on files being
// edited.
func (r *Runner) Diff(ctx context.Context, paths []string, opts Options) (*Result, error) {
	if len(paths) < 2 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "diff needs at least two inputs, got %d", len(paths))
	}
	opts.NoCache = true
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	return r.Convert(ctx, paths, opts)
}

// Render loads paths into one graph and draws it in opts.Format.
func (r *Runner) Render(ctx context.Context, paths []string, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	start := time.Now()
	in, err := r.read(ctx, paths)
	if err != nil {
		return nil, err
	}
	defer in.close()
	res := &Result{InputHash: in.hash}
	key := r.Keyer.ArtifactKey(in.hash, opts.ArtifactKeyOpts())
	if data, ok := r.lookup(ctx, keyArtifact, key, opts); ok {
		res.Output, res.CacheHit = data, true
		r.Logger.Debug("render cache hit", "key", key)
		return res, nil
	}

	g, diags, err := r.parse(ctx, in)
	res.Diagnostics = diags
	if err != nil {
		return res, err
	}
	res.Graph = g
	res.Stats.LoadTime = time.Since(start)
	res.Stats.Records = g.Stats()

	res.Diagnostics = append(res.Diagnostics, r.applyConversions(ctx, g, opts)...)

	nopts := nodelink.Options{Labels: opts.Labels, MaxNodes: opts.MaxNodes}
	if err := nodelink.Check(g, nopts); err != nil {
		return res, err
	}

	start = time.Now()
	dot := nodelink.ToDOT(g, nopts)
	switch opts.Format {
	case FormatDOT:
		res.Output = []byte(dot)
	case FormatSVG:
		res.Output, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		res.Output, err = nodelink.RenderPNG(ctx, dot)
	}
	res.Stats.OutputTime = time.Since(start)
	observability.Pipeline().OnOutput(ctx, opts.Format, len(res.Output), res.Stats.OutputTime, err)
	if err != nil {
		return res, err
	}
	r.Logger.Debug("rendered graph", "format", opts.Format, "nodes", nodelink.Count(g), "duration", res.Stats.OutputTime)

	r.store(ctx, keyArtifact, key, res.Output, cache.ArtifactTTL, opts)
	return res, nil
}

// Verify loads paths and lists the dangling references of the merged graph.
func (r *Runner) Verify(ctx context.Context, paths []string) ([]gfa.DanglingReference, gfa.Diagnostics, error) {
	g, diags, err := r.Load(ctx, paths)
	if err != nil {
		return nil, diags, err
	}
	return g.Verify(), diags, nil
}

// applyConversions runs the conversions selected by opts and logs their
// notes at debug level.
func (r *Runner) applyConversions(ctx context.Context, g *gfa.Graph, opts Options) gfa.Diagnostics {
	v, _ := opts.TargetVersion()
	if v == gfa.VersionUnknown && !opts.Walks {
		return nil
	}

	start := time.Now()
	var notes gfa.Diagnostics
	switch v {
	case gfa.Version1:
		notes = append(notes, g.GFA1ize()...)
	case gfa.Version2:
		notes = append(notes, g.GFA2ize()...)
	}
	if opts.Walks {
		notes = append(notes, g.PathsAsWalks()...)
	}
	for _, n := range notes {
		r.Logger.Debug(n.Message, "code", n.Code)
	}
	observability.Pipeline().OnConvert(ctx, opts.ConvertKeyOpts().Version, len(notes), time.Since(start))
	return notes
}

// lookup treats a failing cache as a miss.
func (r *Runner) lookup(ctx context.Context, keyType, key string, opts Options) ([]byte, bool) {
	if opts.NoCache {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "error", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType)
	}
	return data, hit
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration, opts Options) {
	if opts.NoCache {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
