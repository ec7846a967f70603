package api

import (
	"bytes"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"svgpress/pkg/cache"
	"svgpress/pkg/pipeline"
	"svgpress/pkg/rasterize"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50" viewBox="0 0 100 50">
  <rect width="100" height="50" fill="#123456"/>
</svg>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(cache.NewNullCache(), rasterize.OkSVG{}, nil)
	srv := httptest.NewServer(New(runner, nil).Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestConvertRawBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/convert?scale=2", "image/svg+xml", bytes.NewBufferString(testSVG))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}

	cfg, err := png.DecodeConfig(resp.Body)
	if err != nil {
		t.Fatalf("response is not a valid PNG: %v", err)
	}
	if cfg.Width != 200 || cfg.Height != 100 {
		t.Errorf("dimensions = %dx%d, want 200x100", cfg.Width, cfg.Height)
	}
}

func TestConvertMultipart(t *testing.T) {
	srv := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "logo.svg")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(testSVG)); err != nil {
		t.Fatal(err)
	}
	if err := mw.WriteField("width", "300"); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Post(srv.URL+"/convert", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, body: %s", resp.StatusCode, b)
	}

	cfg, err := png.DecodeConfig(resp.Body)
	if err != nil {
		t.Fatalf("response is not a valid PNG: %v", err)
	}
	if cfg.Width != 300 || cfg.Height != 150 {
		t.Errorf("dimensions = %dx%d, want 300x150", cfg.Width, cfg.Height)
	}
}

func TestConvertValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"dpi below range", "?dpi=71"},
		{"dpi above range", "?dpi=601"},
		{"width too large", "?width=10001"},
		{"scale too small", "?scale=0.01"},
		{"unparseable width", "?width=abc"},
		{"named background color", "?background=red"},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/convert"+tt.query, "image/svg+xml", bytes.NewBufferString(testSVG))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestConvertMalformedSVG(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/convert", "image/svg+xml", bytes.NewBufferString("<svg truncated"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestConvertEmptyBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/convert", "image/svg+xml", bytes.NewReader(nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
