// Package api exposes the conversion pipeline over HTTP as a single-shot
// prediction endpoint, so the tool can sit behind a model-serving harness.
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"svgpress/pkg/convert"
	"svgpress/pkg/pipeline"
)

// maxUploadBytes caps the SVG upload size at 32 MiB.
const maxUploadBytes = 32 << 20

// Server handles conversion requests over HTTP.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server backed by the given pipeline runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/convert", s.handleConvert)

	return r
}

// handleHealth reports liveness and the active rasterizer backend.
func (s *Server) handleHealth(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "ok backend=%s\n", s.runner.Converter.Backend())
}

// handleConvert accepts a multipart upload (field "file") with optional form
// values width, height, scale, dpi, and background, and responds with the
// rendered PNG. Raw SVG bodies are accepted too for curl-friendly use.
func (s *Server) handleConvert(w http.ResponseWriter, req *http.Request) {
	start := time.Now()

	svg, err := readSVG(req)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	opts, err := parseOptions(req)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.runner.ConvertBytes(req.Context(), svg, opts)
	if err != nil {
		var renderErr *convert.RenderError
		if errors.As(err, &renderErr) {
			s.fail(w, http.StatusUnprocessableEntity, err)
			return
		}
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("converted",
		"request_id", middleware.GetReqID(req.Context()),
		"in", res.Stats.InputSize,
		"out", res.Stats.OutputSize,
		"cached", res.Stats.CacheHit,
		"duration", time.Since(start).Round(time.Millisecond))

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PNG)))
	_, _ = w.Write(res.PNG)
}

// readSVG extracts the SVG bytes from a multipart upload or a raw body.
func readSVG(req *http.Request) ([]byte, error) {
	req.Body = http.MaxBytesReader(nil, req.Body, maxUploadBytes)

	if strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data") {
		if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, fmt.Errorf("parse upload: %w", err)
		}
		f, _, err := req.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("missing file field: %w", err)
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	svg, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(svg) == 0 {
		return nil, fmt.Errorf("empty request body")
	}
	return svg, nil
}

// parseOptions reads rendering options from form or query values.
func parseOptions(req *http.Request) (convert.Options, error) {
	var opts convert.Options
	var err error

	get := func(name string) string {
		if v := req.FormValue(name); v != "" {
			return v
		}
		return req.URL.Query().Get(name)
	}

	if v := get("width"); v != "" {
		if opts.Width, err = strconv.Atoi(v); err != nil {
			return opts, fmt.Errorf("invalid width %q", v)
		}
	}
	if v := get("height"); v != "" {
		if opts.Height, err = strconv.Atoi(v); err != nil {
			return opts, fmt.Errorf("invalid height %q", v)
		}
	}
	if v := get("scale"); v != "" {
		if opts.Scale, err = strconv.ParseFloat(v, 64); err != nil {
			return opts, fmt.Errorf("invalid scale %q", v)
		}
	}
	if v := get("dpi"); v != "" {
		if opts.DPI, err = strconv.Atoi(v); err != nil {
			return opts, fmt.Errorf("invalid dpi %q", v)
		}
	}
	opts.Background = get("background")

	return opts, nil
}

// fail writes an error response and logs it.
func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	s.logger.Error("request failed", "status", status, "err", err)
	http.Error(w, err.Error(), status)
}
