// Package observability provides hooks for metrics and tracing.
//
// The conversion pipeline emits events through these hooks without taking a
// hard dependency on any observability backend. Consumers register
// implementations at startup; libraries call the accessors to emit events.
// Hooks observe only - they must never alter conversion results.
package observability

import (
	"context"
	"sync"
	"time"
)

// ConvertHooks receives events from the conversion pipeline.
type ConvertHooks interface {
	// OnRenderStart records the start of a rasterization.
	OnRenderStart(ctx context.Context, backend string, inputSize int)

	// OnRenderComplete records a finished rasterization.
	OnRenderComplete(ctx context.Context, backend string, outputSize int, duration time.Duration, err error)
}

// CacheHooks receives events from artifact cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, size int)
}

// NoopConvertHooks is a no-op implementation of ConvertHooks.
type NoopConvertHooks struct{}

func (NoopConvertHooks) OnRenderStart(context.Context, string, int)                          {}
func (NoopConvertHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, int) {}

var (
	convertHooks ConvertHooks = NoopConvertHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetConvertHooks registers custom conversion hooks.
// Call once at application startup before any conversions.
func SetConvertHooks(h ConvertHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		convertHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// Call once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Convert returns the registered conversion hooks.
func Convert() ConvertHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return convertHooks
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
	convertHooks = NoopConvertHooks{}
	cacheHooks = NoopCacheHooks{}
}
