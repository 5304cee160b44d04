// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries call hooks with no-op defaults, so instrumentation stays optional
// and no observability backend becomes a dependency. Consumers register
// their own implementations at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetScanHooks(&myScanHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Scan().OnBuildStart(ctx, len(paths))
//	// ... scan files ...
//	observability.Scan().OnBuildComplete(ctx, files, nodes, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Scan Hooks
// =============================================================================

// ScanHooks receives events from graph building.
type ScanHooks interface {
	OnBuildStart(ctx context.Context, fileCount int)
	OnFileScanned(ctx context.Context, path, identity string, imports int)
	OnBuildComplete(ctx context.Context, files, nodes int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopScanHooks is a no-op implementation of ScanHooks.
type NoopScanHooks struct{}

func (NoopScanHooks) OnBuildStart(context.Context, int)                               {}
func (NoopScanHooks) OnFileScanned(context.Context, string, string, int)              {}
func (NoopScanHooks) OnBuildComplete(context.Context, int, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	scanHooks  ScanHooks  = NoopScanHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetScanHooks registers scan hooks and returns the previous ones, so a
// caller can restore them when its scan ends. Nil is ignored.
func SetScanHooks(h ScanHooks) (prev ScanHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	prev = scanHooks
	if h != nil {
		scanHooks = h
	}
	return prev
}

// SetCacheHooks registers cache hooks and returns the previous ones.
// Nil is ignored.
func SetCacheHooks(h CacheHooks) (prev CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	prev = cacheHooks
	if h != nil {
		cacheHooks = h
	}
	return prev
}

// Scan returns the registered scan hooks.
func Scan() ScanHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scanHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	scanHooks = NoopScanHooks{}
	cacheHooks = NoopCacheHooks{}
}
