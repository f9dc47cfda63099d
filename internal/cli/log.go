package cli

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/gfak/pkg/errors"
	"github.com/matzehuels/gfak/pkg/gfa"
	"github.com/matzehuels/gfak/pkg/observability"
)

// newLogger returns a stderr-style logger stamped "15:04:05.00".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a step took once it finishes.
// Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs e.g. "Sorted 2 files (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext falls back to log.Default when ctx carries no logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logSummary logs one info line per diagnostic code, sorted by code. The
// runner already logged each finding individually at warn or debug level.
func logSummary(l *log.Logger, diags gfa.Diagnostics) {
	summary := diags.Summary()
	codes := make([]errs.Code, 0, len(summary))
	for code := range summary {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		l.Info("diagnostics", "code", code, "count", summary[code])
	}
}

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.CacheHooks    = logHooks{}
)

func (h logHooks) OnLoad(_ context.Context, files, records, diagnostics int, d time.Duration, err error) {
	h.logger.Debug("load", "files", files, "records", records, "diagnostics", diagnostics, "duration", d, "error", err)
}

func (h logHooks) OnConvert(_ context.Context, version string, notes int, d time.Duration) {
	h.logger.Debug("convert", "version", version, "notes", notes, "duration", d)
}

func (h logHooks) OnOutput(_ context.Context, format string, size int, d time.Duration, err error) {
	h.logger.Debug("output", "format", format, "bytes", size, "duration", d, "error", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
