package floorplan

import (
	"fmt"
	"html"
	"strings"
)

// ============================================================
// Overlay Renderer
// ============================================================

const (
	defaultOverlaySize = 1000
	pinWidth           = 24.0
	pinHeight          = 32.0
)

type OverlayPin struct {
	ID      string
	Caption string
	At      Percent
}

type Overlay struct {
	ImageURL string
	Width    int
	Height   int
	Pins     []OverlayPin
}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render draws the floor-plan image with one marker per pin.
func (r *Renderer) Render(o *Overlay) (string, error) {
	if o == nil {
		return "", fmt.Errorf("overlay is nil")
	}

	width, height := r.size(o)
	rect := Rect{Width: width, Height: height}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(width), formatFloat(height), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	if o.ImageURL != "" {
		builder.WriteString(fmt.Sprintf(`  <image href="%s" x="0" y="0" width="%s" height="%s" preserveAspectRatio="none"/>`,
			html.EscapeString(o.ImageURL), formatFloat(width), formatFloat(height)))
		builder.WriteString("\n")
	}

	for _, pin := range o.Pins {
		builder.WriteString("  ")
		builder.WriteString(r.renderPin(pin, rect))
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

func (r *Renderer) size(o *Overlay) (float64, float64) {
	if o.Width > 0 && o.Height > 0 {
		return float64(o.Width), float64(o.Height)
	}
	return defaultOverlaySize, defaultOverlaySize
}

// renderPin draws a teardrop whose tip sits exactly on the pin position.
func (r *Renderer) renderPin(pin OverlayPin, rect Rect) string {
	x, y := PercentToPixel(pin.At, rect)
	left := x - pinWidth/2
	top := y - pinHeight

	path := fmt.Sprintf("M %s %s C %s %s %s %s %s %s C %s %s %s %s %s %s Z",
		formatFloat(x), formatFloat(y),
		formatFloat(left), formatFloat(top+pinHeight*0.55),
		formatFloat(left), formatFloat(top),
		formatFloat(x), formatFloat(top),
		formatFloat(left+pinWidth), formatFloat(top),
		formatFloat(left+pinWidth), formatFloat(top+pinHeight*0.55),
		formatFloat(x), formatFloat(y),
	)

	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<g class="pin" data-photo-id="%s">`, html.EscapeString(pin.ID)))
	if pin.Caption != "" {
		b.WriteString(fmt.Sprintf(`<title>%s</title>`, html.EscapeString(pin.Caption)))
	}
	b.WriteString(fmt.Sprintf(`<path d="%s" fill="#dc2626" stroke="#ffffff" stroke-width="2"/>`, path))
	b.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="#ffffff"/>`,
		formatFloat(x), formatFloat(top+pinHeight*0.35), formatFloat(pinWidth/5)))
	b.WriteString(`</g>`)
	return b.String()
}
