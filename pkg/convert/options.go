package convert

import (
	"fmt"
	"strings"
)

// Bounds for the rendering options. These are enforced at the caller layer
// (CLI flags, HTTP handler) before the converter runs.
const (
	MinDimension = 1
	MaxDimension = 10000
	MinScale     = 0.1
	MaxScale     = 10.0
	MinDPI       = 72
	MaxDPI       = 600

	// DefaultDPI is the pixel density assumed when none is given. At 96 DPI
	// the output matches the SVG's natural pixel size.
	DefaultDPI = 96
)

// BackgroundTransparent is the sentinel background value meaning "no
// background". Matched case-insensitively.
const BackgroundTransparent = "transparent"

// Options describes a single conversion request. The zero value with DPI
// filled in renders at natural size on a transparent background.
//
// Sizing precedence: Scale, if set, supersedes Width/Height. Width and Height
// may be set independently; setting both permits non-uniform stretching.
type Options struct {
	Width      int     // output width in pixels, 0 = unset
	Height     int     // output height in pixels, 0 = unset
	Scale      float64 // scale factor applied to natural size, 0 = unset
	DPI        int     // dots per inch, 0 = DefaultDPI
	Background string  // color specifier, "" or "transparent" = none
}

// SetDefaults fills in DPI and Background when unset.
func (o *Options) SetDefaults() {
	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	if o.Background == "" {
		o.Background = BackgroundTransparent
	}
}

// Validate checks all numeric bounds. It does not mutate the options;
// call SetDefaults first.
func (o Options) Validate() error {
	if o.Width != 0 && (o.Width < MinDimension || o.Width > MaxDimension) {
		return fmt.Errorf("width %d out of range [%d, %d]", o.Width, MinDimension, MaxDimension)
	}
	if o.Height != 0 && (o.Height < MinDimension || o.Height > MaxDimension) {
		return fmt.Errorf("height %d out of range [%d, %d]", o.Height, MinDimension, MaxDimension)
	}
	if o.Scale != 0 && (o.Scale < MinScale || o.Scale > MaxScale) {
		return fmt.Errorf("scale %g out of range [%g, %g]", o.Scale, MinScale, MaxScale)
	}
	if o.DPI < MinDPI || o.DPI > MaxDPI {
		return fmt.Errorf("dpi %d out of range [%d, %d]", o.DPI, MinDPI, MaxDPI)
	}
	if !o.Transparent() && !validHexColor(o.Background) {
		return fmt.Errorf("background %q is not a hex color (use #RGB, #RRGGBB, or 'transparent')", o.Background)
	}
	return nil
}

// validHexColor reports whether s is a #RGB or #RRGGBB color specifier.
// Named CSS colors are rejected so both rasterizer backends accept the same
// inputs.
func validHexColor(s string) bool {
	if (len(s) != 4 && len(s) != 7) || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Transparent reports whether the background is the transparent sentinel.
func (o Options) Transparent() bool {
	return o.Background == "" || strings.EqualFold(o.Background, BackgroundTransparent)
}
