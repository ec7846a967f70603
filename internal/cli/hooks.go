package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"svgpress/pkg/observability"
)

// logHooks forwards pipeline events to the CLI logger at debug level, so
// --verbose surfaces render and cache activity without a metrics backend.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnRenderStart(_ context.Context, backend string, inputSize int) {
	h.logger.Debug("render start", "backend", backend, "input_bytes", inputSize)
}

func (h logHooks) OnRenderComplete(_ context.Context, backend string, outputSize int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "backend", backend, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render complete", "backend", backend, "output_bytes", outputSize, "duration", d)
}

func (h logHooks) OnCacheHit(context.Context)  { h.logger.Debug("artifact cache hit") }
func (h logHooks) OnCacheMiss(context.Context) { h.logger.Debug("artifact cache miss") }

func (h logHooks) OnCacheSet(_ context.Context, size int) {
	h.logger.Debug("artifact cache set", "bytes", size)
}

// RegisterHooks routes pipeline events to the CLI logger. Call once at
// startup; output only appears at debug level.
func (c *CLI) RegisterHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetConvertHooks(h)
	observability.SetCacheHooks(h)
}
