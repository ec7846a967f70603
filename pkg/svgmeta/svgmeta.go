// Package svgmeta extracts top-level attributes from an SVG document for
// display purposes. It reads only as far as the opening <svg> element and
// performs no validation beyond what the token scan needs.
package svgmeta

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Meta holds the raw top-level <svg> attributes.
type Meta struct {
	Width   string // width attribute as written, may be empty
	Height  string // height attribute as written, may be empty
	ViewBox string // viewBox attribute as written, may be empty
}

// Read scans the document until the opening <svg> element and returns its
// attributes. It fails if no <svg> root is found.
func Read(data []byte) (Meta, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return Meta{}, fmt.Errorf("no <svg> root element found")
		}
		if err != nil {
			return Meta{}, fmt.Errorf("scan svg: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "svg" {
			return Meta{}, fmt.Errorf("root element is <%s>, not <svg>", start.Name.Local)
		}

		var m Meta
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "width":
				m.Width = attr.Value
			case "height":
				m.Height = attr.Value
			case "viewBox":
				m.ViewBox = attr.Value
			}
		}
		return m, nil
	}
}

// PixelSize resolves the natural pixel dimensions from the width/height
// attributes, falling back to the viewBox. Returns ok=false when neither
// yields a usable size.
func (m Meta) PixelSize() (w, h float64, ok bool) {
	w, h = parseLength(m.Width), parseLength(m.Height)
	if w > 0 && h > 0 {
		return w, h, true
	}
	if vb := strings.Fields(m.ViewBox); len(vb) == 4 {
		vw, errW := strconv.ParseFloat(vb[2], 64)
		vh, errH := strconv.ParseFloat(vb[3], 64)
		if errW == nil && errH == nil && vw > 0 && vh > 0 {
			return vw, vh, true
		}
	}
	return 0, 0, false
}

// parseLength parses a plain or px-suffixed length. Other units (%, em, pt)
// are not pixel sizes and yield 0.
func parseLength(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0
	}
	return v
}
