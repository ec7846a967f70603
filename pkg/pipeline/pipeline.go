// Package pipeline provides the conversion pipeline shared by the CLI and
// the HTTP server.
//
// A conversion is a linear flow: read SVG bytes, rasterize to PNG, re-encode,
// write the result. The [Runner] wraps that flow with artifact caching and
// timing statistics so every entry point behaves identically.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, rasterize.Default(), logger)
//	res, err := runner.ConvertFile(ctx, "logo.svg", "", convert.Options{Scale: 2})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Path)
//
// Rendering is deterministic, so cached artifacts never expire and a cache
// hit returns byte-identical output.
package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"svgpress/pkg/cache"
	"svgpress/pkg/convert"
	"svgpress/pkg/observability"
	"svgpress/pkg/rasterize"
)

// artifactPrefix namespaces PNG artifact keys in the cache.
const artifactPrefix = "png"

// Stats reports what a conversion did and how long it took.
type Stats struct {
	InputSize  int           // SVG bytes read
	OutputSize int           // final PNG bytes
	Width      int           // output pixel width
	Height     int           // output pixel height
	RenderTime time.Duration // rasterize + re-encode (zero on cache hit)
	CacheHit   bool          // artifact served from cache
	Backend    string        // rasterizer backend name
}

// Result is the outcome of a pipeline run.
type Result struct {
	PNG   []byte // final PNG bytes
	Path  string // output file path, set by ConvertFile
	Stats Stats
}

// Runner executes conversions with caching. It is stateless apart from the
// cache and logger; one Runner may serve concurrent requests.
type Runner struct {
	Cache     cache.Cache
	Converter *convert.Converter
	Logger    *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil rasterizer
// selects the default backend, and a nil logger falls back to log.Default.
func NewRunner(c cache.Cache, r rasterize.Rasterizer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Converter: convert.New(r),
		Logger:    logger,
	}
}

// ConvertBytes converts SVG bytes to canonicalized PNG bytes, consulting the
// artifact cache first. Options must already be validated.
func (r *Runner) ConvertBytes(ctx context.Context, svg []byte, opts convert.Options) (*Result, error) {
	opts.SetDefaults()

	res := &Result{Stats: Stats{
		InputSize: len(svg),
		Backend:   r.Converter.Backend(),
	}}

	key := cache.ArtifactKey(artifactPrefix, res.Stats.Backend, svg, opts)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx)
		res.PNG = data
		res.Stats.OutputSize = len(data)
		res.Stats.CacheHit = true
		res.Stats.Width, res.Stats.Height = pngSize(data)
		r.Logger.Debug("artifact cache hit", "bytes", len(data))
		return res, nil
	}
	observability.Cache().OnCacheMiss(ctx)

	start := time.Now()
	observability.Convert().OnRenderStart(ctx, res.Stats.Backend, len(svg))
	out, err := r.Converter.Convert(ctx, svg, opts)
	observability.Convert().OnRenderComplete(ctx, res.Stats.Backend, len(out.PNG), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	res.PNG = out.PNG
	res.Stats.OutputSize = len(out.PNG)
	res.Stats.Width = out.Width
	res.Stats.Height = out.Height
	res.Stats.RenderTime = time.Since(start)

	r.Logger.Info("rendered png",
		"backend", res.Stats.Backend,
		"size", res.Stats.OutputSize,
		"duration", res.Stats.RenderTime)

	if err := r.Cache.Set(ctx, key, out.PNG, 0); err != nil {
		r.Logger.Debug("artifact cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, len(out.PNG))
	}

	return res, nil
}

// ConvertFile reads the input SVG, converts it, and writes the PNG. An empty
// outputPath allocates a uniquely named file under the system temp directory.
// On rasterization failure no output file is created.
func (r *Runner) ConvertFile(ctx context.Context, inputPath, outputPath string, opts convert.Options) (*Result, error) {
	svg, err := convert.ReadInput(inputPath)
	if err != nil {
		return nil, err
	}

	res, err := r.ConvertBytes(ctx, svg, opts)
	if err != nil {
		return nil, err
	}

	if outputPath == "" {
		res.Path, err = convert.WriteTemp(res.PNG)
	} else {
		res.Path = outputPath
		err = os.WriteFile(outputPath, res.PNG, 0644)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// pngSize decodes just the PNG header for pixel dimensions.
func pngSize(data []byte) (int, int) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
