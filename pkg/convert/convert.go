// Package convert implements the SVG to PNG conversion core.
//
// A conversion is a linear pipeline: build the rasterizer parameter set from
// [Options], render the SVG through a [rasterize.Rasterizer], then re-encode
// the result through a canonicalizing PNG encoder. The re-encode step does
// not change pixel data; it forces a deterministic, size-optimized encoding
// regardless of which backend produced the bytes.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"svgpress/pkg/rasterize"
)

// Result is the outcome of a successful conversion.
type Result struct {
	PNG    []byte // final encoded PNG bytes
	Width  int    // output pixel width
	Height int    // output pixel height
}

// Converter renders SVG bytes to PNG through a rasterizer backend.
type Converter struct {
	raster rasterize.Rasterizer
}

// New creates a converter using the given rasterizer.
// A nil rasterizer selects [rasterize.Default].
func New(r rasterize.Rasterizer) *Converter {
	if r == nil {
		r = rasterize.Default()
	}
	return &Converter{raster: r}
}

// Backend returns the name of the rasterizer in use.
func (c *Converter) Backend() string { return c.raster.Name() }

// Convert renders the SVG and returns the canonicalized PNG bytes along with
// the output pixel dimensions. Options must be pre-validated; Convert trusts
// the bounds and only applies the sizing precedence.
//
// Rasterization failure surfaces as a *RenderError. There are no retries and
// no partial output.
func (c *Converter) Convert(ctx context.Context, svg []byte, opts Options) (Result, error) {
	opts.SetDefaults()

	raw, err := c.raster.Render(ctx, svg, params(opts))
	if err != nil {
		return Result{}, &RenderError{Backend: c.raster.Name(), Err: err}
	}

	return reencode(raw)
}

// params builds the rasterizer parameter set. DPI is always included;
// background only when not the transparent sentinel; scale supersedes
// width/height.
func params(opts Options) rasterize.Params {
	p := rasterize.Params{DPI: opts.DPI}
	if !opts.Transparent() {
		p.Background = opts.Background
	}
	if opts.Scale > 0 {
		p.Scale = opts.Scale
		return p
	}
	p.Width = opts.Width
	p.Height = opts.Height
	return p
}

// reencode decodes the rasterizer's PNG output and re-encodes it with best
// compression. Pixel data is unchanged; only the encoding is canonicalized.
func reencode(raw []byte) (Result, error) {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return Result{}, fmt.Errorf("decode rasterizer output: %w", err)
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return Result{}, fmt.Errorf("encode png: %w", err)
	}

	b := img.Bounds()
	return Result{PNG: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// ReadInput reads the SVG file, wrapping failures as *InputReadError.
func ReadInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputReadError{Path: path, Err: err}
	}
	return data, nil
}

// WriteTemp writes the PNG bytes to a freshly allocated, uniquely named file
// under the system temp directory and returns its path. Old temp files are
// not cleaned up here.
func WriteTemp(data []byte) (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("svgpress-%s.png", uuid.NewString()))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	return path, nil
}
