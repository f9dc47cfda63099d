// Package observability lets a program watch gfak's pipeline without the
// library depending on a metrics or tracing backend.
//
// The pipeline and cache call the registered hooks; the defaults do
// nothing. Register implementations once at startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&promHooks{})
//	    observability.SetCacheHooks(&promHooks{})
//	    // ... run commands
//	}
//
// The gfak CLI registers hooks that log each event at debug level.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives one event per pipeline stage.
type PipelineHooks interface {
	// OnLoad follows parsing of all inputs. records counts every record
	// kept; diagnostics counts every finding.
	OnLoad(ctx context.Context, files, records, diagnostics int, duration time.Duration, err error)

	// OnConvert follows schema conversion. version is "" when only walks
	// were derived.
	OnConvert(ctx context.Context, version string, notes int, duration time.Duration)

	// OnOutput follows serialization or rendering. format is "gfa" for text
	// output, else the render format.
	OnOutput(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives cache lookups and writes. keyType is "convert" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoad(context.Context, int, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnConvert(context.Context, string, int, time.Duration)       {}
func (NoopPipelineHooks) OnOutput(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op hooks. Tests use it to undo registrations.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
