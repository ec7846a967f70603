package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"svgpress/internal/api"
	"svgpress/pkg/cache"
	"svgpress/pkg/pipeline"
	"svgpress/pkg/rasterize"
)

// defaultAddr is the listen address when neither flag nor config sets one.
const defaultAddr = ":8080"

// serveCommand creates the serve command exposing conversion over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		raster   string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve SVG to PNG conversion over HTTP",
		Long: `Serve conversion as a single-shot prediction endpoint.

POST /convert accepts a multipart upload (field "file") or a raw SVG body,
with optional width, height, scale, dpi, and background parameters, and
responds with the rendered PNG.

With --redis, rendered artifacts are cached in Redis so multiple instances
share one cache; otherwise the local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			if addr == "" {
				addr = defaultAddr
			}
			if redisURL == "" {
				redisURL = c.Config.Serve.Redis
			}
			return c.runServe(cmd.Context(), addr, redisURL, raster, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", fmt.Sprintf("listen address (default %q)", defaultAddr))
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for shared artifact caching")
	cmd.Flags().StringVar(&raster, "raster", "", "rasterizer backend: rsvg, oksvg (default: auto)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL, rasterName string, noCache bool) error {
	store, err := c.newServeCache(ctx, redisURL, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	raster, err := rasterize.ByName(rasterName)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(store, raster, c.Logger)
	server := &http.Server{
		Addr:              addr,
		Handler:           api.New(runner, c.Logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr, "backend", runner.Converter.Backend())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// newServeCache picks the cache backend for serve mode: Redis when a URL is
// given, otherwise the same file cache the CLI uses.
func (c *CLI) newServeCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL)
	}
	return c.newCache(false)
}
