// Package rasterize converts SVG markup into PNG pixel data.
//
// Two backends are provided: [RSVG] shells out to the rsvg-convert binary
// from librsvg, and [OkSVG] is a pure-Go renderer built on oksvg/rasterx.
// [Default] prefers rsvg-convert when it is installed and falls back to the
// pure-Go backend otherwise, so the tool works without system dependencies.
package rasterize

import (
	"context"
	"fmt"
)

// Params is the resolved parameter set handed to a backend. The caller has
// already applied the sizing precedence: at most one of Scale or
// Width/Height is set, and Background is empty when transparent.
type Params struct {
	DPI        int     // always set
	Scale      float64 // 0 = unset
	Width      int     // 0 = unset
	Height     int     // 0 = unset
	Background string  // "" = transparent
}

// Rasterizer renders SVG bytes to PNG bytes.
type Rasterizer interface {
	// Name identifies the backend (e.g. "rsvg", "oksvg").
	Name() string

	// Available reports whether the backend can run on this system.
	Available() bool

	// Render rasterizes the SVG. Output is sized according to p, or the
	// SVG's natural size scaled by DPI/96 when no sizing parameter is set.
	Render(ctx context.Context, svg []byte, p Params) ([]byte, error)
}

// Default returns rsvg-convert when installed, otherwise the pure-Go backend.
func Default() Rasterizer {
	if r := (RSVG{}); r.Available() {
		return r
	}
	return OkSVG{}
}

// ByName looks up a backend by name. An empty name selects [Default].
func ByName(name string) (Rasterizer, error) {
	switch name {
	case "":
		return Default(), nil
	case "rsvg":
		return RSVG{}, nil
	case "oksvg":
		return OkSVG{}, nil
	default:
		return nil, fmt.Errorf("unknown rasterizer: %s (must be 'rsvg' or 'oksvg')", name)
	}
}
