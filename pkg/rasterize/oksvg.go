package rasterize

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// OkSVG is a pure-Go rasterizer built on oksvg and rasterx. It needs no
// system binaries, which makes it the portable fallback and the backend used
// by tests.
type OkSVG struct{}

// Name returns "oksvg".
func (OkSVG) Name() string { return "oksvg" }

// Available always reports true.
func (OkSVG) Available() bool { return true }

// Render parses the SVG, resolves the target pixel size from the parameter
// set, and rasterizes onto an RGBA canvas. The background, when given, is
// filled before vector content is drawn.
func (OkSVG) Render(ctx context.Context, svg []byte, p Params) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	natW, natH := icon.ViewBox.W, icon.ViewBox.H
	if natW <= 0 || natH <= 0 {
		return nil, fmt.Errorf("svg has no usable dimensions")
	}

	w, h := targetSize(natW, natH, p)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if p.Background != "" {
		bg, err := parseBackground(p.Background)
		if err != nil {
			return nil, err
		}
		draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// targetSize resolves output pixel dimensions. Explicit width/height win
// as-is; a missing counterpart is derived from the natural aspect ratio.
// Scale and the natural-size default are both multiplied by DPI/96.
func targetSize(natW, natH float64, p Params) (int, int) {
	density := float64(p.DPI) / 96.0

	var w, h float64
	switch {
	case p.Scale > 0:
		w, h = natW*p.Scale*density, natH*p.Scale*density
	case p.Width > 0 || p.Height > 0:
		w, h = float64(p.Width), float64(p.Height)
		if p.Width == 0 {
			w = h * natW / natH
		}
		if p.Height == 0 {
			h = w * natH / natW
		}
	default:
		w, h = natW*density, natH*density
	}

	return atLeastOne(w), atLeastOne(h)
}

func atLeastOne(v float64) int {
	px := int(math.Round(v))
	if px < 1 {
		return 1
	}
	return px
}

// parseBackground parses a hex color specifier like "#FF0000" or "#f00".
// Named CSS colors are only supported by the rsvg backend.
func parseBackground(s string) (colorful.Color, error) {
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return colorful.Color{}, fmt.Errorf("background color %q: %w (use a hex code like #RRGGBB)", s, err)
	}
	return c, nil
}

var _ Rasterizer = OkSVG{}
