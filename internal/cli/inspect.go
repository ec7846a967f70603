package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"svgpress/pkg/convert"
	"svgpress/pkg/svgmeta"
)

// inspectCommand creates the inspect command for showing SVG metadata.
// Only the top-level <svg> attributes are read; the document is not
// validated beyond that.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file.svg]",
		Short: "Show top-level attributes of an SVG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}
}

func runInspect(input string) error {
	svg, err := convert.ReadInput(input)
	if err != nil {
		return err
	}

	meta, err := svgmeta.Read(svg)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", input, err)
	}

	printNewline()
	fmt.Println(StyleTitle.Render(filepath.Base(input)))
	printKeyValue("file size", formatBytes(len(svg)))
	printAttr("width", meta.Width)
	printAttr("height", meta.Height)
	printAttr("viewBox", meta.ViewBox)
	if w, h, ok := meta.PixelSize(); ok {
		printKeyValue("natural px", fmt.Sprintf("%.0f × %.0f", w, h))
	} else {
		printWarning("no usable pixel size (missing width/height and viewBox)")
	}
	printNewline()
	printNextStep("Convert it", "svgpress convert "+input)
	return nil
}

// printAttr prints an attribute line, marking absent attributes.
func printAttr(name, value string) {
	if value == "" {
		value = StyleDim.Render("(not set)")
	}
	printKeyValue(name, value)
}
