package floorplan

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"
)

// ============================================================
// Image Dimensions
// ============================================================

type svgRoot struct {
	XMLName xml.Name `xml:"svg"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr"`
}

// Dimensions returns the intrinsic pixel size of a floor-plan image.
func Dimensions(data []byte, mimeType string) (int, int, error) {
	if mimeType == "image/svg+xml" {
		return svgDimensions(data)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

func svgDimensions(data []byte) (int, int, error) {
	var root svgRoot
	if err := xml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		return 0, 0, fmt.Errorf("parse svg: %w", err)
	}

	w, okW := parseLength(root.Width)
	h, okH := parseLength(root.Height)
	if okW && okH {
		return w, h, nil
	}

	// viewBox="min-x min-y width height"
	fields := strings.FieldsFunc(root.ViewBox, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 4 {
		vw, errW := strconv.ParseFloat(fields[2], 64)
		vh, errH := strconv.ParseFloat(fields[3], 64)
		if errW == nil && errH == nil && vw > 0 && vh > 0 {
			return int(vw + 0.5), int(vh + 0.5), nil
		}
	}
	return 0, 0, fmt.Errorf("svg has no usable size")
}

func parseLength(v string) (int, bool) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	if v == "" || strings.HasSuffix(v, "%") {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return int(f + 0.5), true
}
