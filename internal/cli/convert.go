package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"svgpress/pkg/convert"
	"svgpress/pkg/pipeline"
	"svgpress/pkg/svgmeta"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	width      int     // output width in pixels, 0 = natural
	height     int     // output height in pixels, 0 = natural
	scale      float64 // scale factor, supersedes width/height
	dpi        int     // dots per inch
	background string  // background color, "transparent" = none
	output     string  // output path, empty = unique temp file
	raster     string  // rasterizer backend override
	noCache    bool    // disable artifact caching
	quiet      bool    // suppress decorated output
}

// convertCommand creates the convert command.
//
// Validation of the numeric ranges happens here, before the conversion core
// runs: width/height 1-10000, scale 0.1-10.0, dpi 72-600.
func (c *CLI) convertCommand() *cobra.Command {
	opts := convertOpts{
		dpi:        c.Config.Defaults.DPI,
		background: c.Config.Defaults.Background,
	}

	cmd := &cobra.Command{
		Use:   "convert [file.svg]",
		Short: "Convert an SVG file to PNG",
		Long: `Convert an SVG file to a raster PNG image.

Sizing precedence: --scale, when set, supersedes --width/--height. Width and
height may be set independently; setting both stretches without preserving
the aspect ratio. With no sizing flag the SVG's natural size applies, scaled
by dpi/96.

Without a file argument, an interactive picker lists SVG files in the
current directory.

The output is written to a uniquely named temp file unless --output is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := resolveInput(args)
			if err != nil {
				return err
			}
			return c.runConvert(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 0, "output width in pixels (1-10000, empty = SVG width)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "output height in pixels (1-10000, empty = SVG height)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "scale factor (0.1-10.0, overrides width/height)")
	cmd.Flags().IntVar(&opts.dpi, "dpi", opts.dpi, "dots per inch for rendering (72-600)")
	cmd.Flags().StringVarP(&opts.background, "background", "b", opts.background, "background color (hex code or 'transparent')")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: unique temp file)")
	cmd.Flags().StringVar(&opts.raster, "raster", "", "rasterizer backend: rsvg, oksvg (default: auto)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the output path")

	return cmd
}

// resolveInput picks the input file from args or the interactive picker.
func resolveInput(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return pickSVGFile(".")
}

// runConvert executes the conversion and narrates progress. The reporting
// layer only observes: it never alters the produced PNG bytes.
func (c *CLI) runConvert(ctx context.Context, input string, opts convertOpts) error {
	renderOpts := convert.Options{
		Width:      opts.width,
		Height:     opts.height,
		Scale:      opts.scale,
		DPI:        opts.dpi,
		Background: opts.background,
	}
	renderOpts.SetDefaults()
	if err := renderOpts.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache, opts.raster)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)

	svg, err := convert.ReadInput(input)
	if err != nil {
		return err
	}

	if !opts.quiet {
		printNewline()
		fmt.Println(StyleTitle.Render("Converting " + filepath.Base(input)))
		printInputDetails(svg, renderOpts)
		printNewline()
	}

	spinner := startSpinner(ctx, fmt.Sprintf("Rasterizing via %s...", runner.Converter.Backend()))

	res, err := runner.ConvertBytes(ctx, svg, renderOpts)
	if err != nil {
		spinner.Fail("Conversion failed")
		return err
	}
	spinner.Stop()

	path, err := writeOutput(res, opts.output)
	if err != nil {
		return err
	}

	if opts.quiet {
		fmt.Println(path)
		return nil
	}

	printSuccess("Converted %s", filepath.Base(input))
	printSummary(input, svg, res)
	printDeltaAndTiming(res, prog)
	printFile(path)
	printNewline()
	printNextStep("Inspect the source anytime", "svgpress inspect "+input)

	prog.done("Converted " + input)
	return nil
}

// writeOutput persists the PNG, allocating a temp path when none was given.
func writeOutput(res *pipeline.Result, output string) (string, error) {
	if output == "" {
		return convert.WriteTemp(res.PNG)
	}
	if err := os.WriteFile(output, res.PNG, 0644); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	return output, nil
}

// printInputDetails shows the source document's top-level attributes.
func printInputDetails(svg []byte, opts convert.Options) {
	meta, err := svgmeta.Read(svg)
	if err != nil {
		printDetail("source attributes unavailable: %v", err)
		return
	}
	if meta.Width != "" || meta.Height != "" {
		printKeyValue("source size", strings.TrimSpace(meta.Width+" × "+meta.Height))
	}
	if meta.ViewBox != "" {
		printKeyValue("viewBox", meta.ViewBox)
	}
	printKeyValue("dpi", fmt.Sprintf("%d", opts.DPI))
	switch {
	case opts.Scale > 0:
		printKeyValue("sizing", fmt.Sprintf("scale ×%g", opts.Scale))
	case opts.Width > 0 || opts.Height > 0:
		printKeyValue("sizing", dimensionLabel(opts.Width, opts.Height))
	default:
		printKeyValue("sizing", "natural")
	}
	if !opts.Transparent() {
		printKeyValue("background", opts.Background)
	}
}

// printSummary renders the input/output comparison table.
func printSummary(input string, svg []byte, res *pipeline.Result) {
	inDims := "-"
	if meta, err := svgmeta.Read(svg); err == nil {
		if w, h, ok := meta.PixelSize(); ok {
			inDims = fmt.Sprintf("%.0f × %.0f", w, h)
		}
	}
	printSummaryTable([][]string{
		{"Input", inDims, formatBytes(res.Stats.InputSize)},
		{"Output", fmt.Sprintf("%d × %d", res.Stats.Width, res.Stats.Height), formatBytes(res.Stats.OutputSize)},
	})
}

// printDeltaAndTiming reports elapsed time, cache status, and the size
// reduction percentage. The percentage is only shown when the output is
// smaller than the input.
func printDeltaAndTiming(res *pipeline.Result, prog *progress) {
	parts := []string{prog.elapsed().String()}
	if res.Stats.CacheHit {
		parts = append(parts, "cached")
	}
	if res.Stats.OutputSize < res.Stats.InputSize && res.Stats.InputSize > 0 {
		pct := (1 - float64(res.Stats.OutputSize)/float64(res.Stats.InputSize)) * 100
		parts = append(parts, fmt.Sprintf("%.1f%% smaller", pct))
	}
	printDetail("%s", strings.Join(parts, " · "))
}

// dimensionLabel formats an explicit width/height pair, using "auto" for the
// side derived from the aspect ratio.
func dimensionLabel(w, h int) string {
	ws, hs := "auto", "auto"
	if w > 0 {
		ws = fmt.Sprintf("%d", w)
	}
	if h > 0 {
		hs = fmt.Sprintf("%d", h)
	}
	return ws + " × " + hs
}
