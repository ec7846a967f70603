package convert

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"testing"

	"svgpress/pkg/rasterize"
)

// testSVG is a 100x50 document with a blue rectangle covering the right half.
// The left half stays uncovered so transparency and background fill are
// observable at pixel (0, 0).
const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50" viewBox="0 0 100 50">
  <rect x="50" y="0" width="50" height="50" fill="#0000FF"/>
</svg>`

func newTestConverter() *Converter {
	return New(rasterize.OkSVG{})
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestConvertNaturalSize(t *testing.T) {
	res, err := newTestConverter().Convert(context.Background(), []byte(testSVG), Options{})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	w, h := decodeSize(t, res.PNG)
	if w != 100 || h != 50 {
		t.Errorf("dimensions = %dx%d, want 100x50", w, h)
	}
	if res.Width != w || res.Height != h {
		t.Errorf("Result dims %dx%d disagree with PNG header %dx%d", res.Width, res.Height, w, h)
	}
}

func TestConvertSizing(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		wantW int
		wantH int
	}{
		{"dpi scales natural size", Options{DPI: 192}, 200, 100},
		{"scale doubles", Options{Scale: 2.0}, 200, 100},
		{"scale compounds with dpi", Options{Scale: 2.0, DPI: 192}, 400, 200},
		{"explicit width keeps aspect", Options{Width: 500}, 500, 250},
		{"explicit height keeps aspect", Options{Height: 100}, 200, 100},
		{"both stretch non-uniformly", Options{Width: 300, Height: 300}, 300, 300},
		{"scale overrides width", Options{Scale: 0.5, Width: 500}, 50, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newTestConverter().Convert(context.Background(), []byte(testSVG), tt.opts)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			w, h := decodeSize(t, res.PNG)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("dimensions = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestConvertBackground(t *testing.T) {
	ctx := context.Background()
	conv := newTestConverter()

	// Transparent default: the uncovered corner has zero alpha.
	res, err := conv.Convert(ctx, []byte(testSVG), Options{})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(res.PNG))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("transparent background: corner alpha = %d, want 0", a)
	}

	// Red background: the uncovered corner is fully opaque red.
	res, err = conv.Convert(ctx, []byte(testSVG), Options{Background: "#FF0000"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	img, err = png.Decode(bytes.NewReader(res.PNG))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if a != 0xffff || r != 0xffff || g != 0 || b != 0 {
		t.Errorf("red background: corner = (%d, %d, %d, %d), want opaque red", r, g, b, a)
	}
}

func TestConvertIdempotent(t *testing.T) {
	ctx := context.Background()
	conv := newTestConverter()
	opts := Options{Scale: 1.5, Background: "#FFFFFF"}

	first, err := conv.Convert(ctx, []byte(testSVG), opts)
	if err != nil {
		t.Fatalf("first Convert() error = %v", err)
	}
	second, err := conv.Convert(ctx, []byte(testSVG), opts)
	if err != nil {
		t.Fatalf("second Convert() error = %v", err)
	}
	if !bytes.Equal(first.PNG, second.PNG) {
		t.Error("identical input and options produced different bytes")
	}
}

func TestConvertMalformedSVG(t *testing.T) {
	tests := []struct {
		name string
		svg  string
	}{
		{"truncated xml", `<svg xmlns="http://www.w3.org/2000/svg" width="10"`},
		{"not xml", "this is not svg"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestConverter().Convert(context.Background(), []byte(tt.svg), Options{})
			if err == nil {
				t.Fatal("Convert() succeeded on malformed input")
			}
			var renderErr *RenderError
			if !errors.As(err, &renderErr) {
				t.Errorf("error type = %T, want *RenderError", err)
			}
			if renderErr != nil && renderErr.Backend == "" {
				t.Error("RenderError missing backend name")
			}
		})
	}
}

func TestReadInputMissingFile(t *testing.T) {
	_, err := ReadInput("/nonexistent/input.svg")
	if err == nil {
		t.Fatal("ReadInput() succeeded on missing file")
	}
	var readErr *InputReadError
	if !errors.As(err, &readErr) {
		t.Errorf("error type = %T, want *InputReadError", err)
	}
}

func TestWriteTemp(t *testing.T) {
	data := []byte("png-bytes")

	first, err := WriteTemp(data)
	if err != nil {
		t.Fatalf("WriteTemp() error = %v", err)
	}
	defer os.Remove(first)

	second, err := WriteTemp(data)
	if err != nil {
		t.Fatalf("WriteTemp() error = %v", err)
	}
	defer os.Remove(second)

	if first == second {
		t.Error("WriteTemp() returned the same path twice")
	}

	got, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("written bytes differ from input")
	}
}
