package svgmeta

import "testing"

func TestRead(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		wantErr     bool
		wantWidth   string
		wantHeight  string
		wantViewBox string
	}{
		{
			name:        "all attributes",
			data:        `<svg xmlns="http://www.w3.org/2000/svg" width="100px" height="50" viewBox="0 0 100 50"></svg>`,
			wantWidth:   "100px",
			wantHeight:  "50",
			wantViewBox: "0 0 100 50",
		},
		{
			name: "no attributes",
			data: `<svg xmlns="http://www.w3.org/2000/svg"></svg>`,
		},
		{
			name:        "with xml declaration and comment",
			data:        "<?xml version=\"1.0\"?><!-- logo --><svg viewBox=\"0 0 24 24\"/>",
			wantViewBox: "0 0 24 24",
		},
		{
			name:    "wrong root element",
			data:    `<html><body>not svg</body></html>`,
			wantErr: true,
		},
		{
			name:    "truncated",
			data:    `<svg width="10`,
			wantErr: true,
		},
		{
			name:    "empty",
			data:    ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Read([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Read() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if m.Width != tt.wantWidth {
				t.Errorf("Width = %q, want %q", m.Width, tt.wantWidth)
			}
			if m.Height != tt.wantHeight {
				t.Errorf("Height = %q, want %q", m.Height, tt.wantHeight)
			}
			if m.ViewBox != tt.wantViewBox {
				t.Errorf("ViewBox = %q, want %q", m.ViewBox, tt.wantViewBox)
			}
		})
	}
}

func TestPixelSize(t *testing.T) {
	tests := []struct {
		name   string
		meta   Meta
		wantW  float64
		wantH  float64
		wantOK bool
	}{
		{"plain numbers", Meta{Width: "100", Height: "50"}, 100, 50, true},
		{"px suffix", Meta{Width: "100px", Height: "50px"}, 100, 50, true},
		{"viewbox fallback", Meta{ViewBox: "0 0 24 24"}, 24, 24, true},
		{"width missing uses viewbox", Meta{Width: "100", ViewBox: "0 0 24 12"}, 24, 12, true},
		{"percent units unusable", Meta{Width: "100%", Height: "100%"}, 0, 0, false},
		{"nothing", Meta{}, 0, 0, false},
		{"malformed viewbox", Meta{ViewBox: "0 0 24"}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, ok := tt.meta.PixelSize()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("size = %gx%g, want %gx%g", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
