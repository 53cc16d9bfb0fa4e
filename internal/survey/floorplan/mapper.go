package floorplan

import (
	"errors"
	"math"
	"strconv"
)

// ============================================================
// Coordinate Mapper
// ============================================================

// PinAnchorTransform puts the pin's tip, not its center, on the point.
const PinAnchorTransform = "translate(-50%, -100%)"

var ErrImageNotLaidOut = errors.New("image has no layout yet")

// Rect is the live bounding box of the rendered floor-plan image.
// It already includes any zoom/pan transform applied to the container.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Percent is a position relative to the image, 0..100 on both axes.
type Percent struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PinStyle struct {
	Left      string `json:"left"`
	Top       string `json:"top"`
	Transform string `json:"transform"`
}

// PointToPercent converts a client-space click into image percentages.
func PointToPercent(clientX, clientY float64, rect Rect) (Percent, error) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return Percent{}, ErrImageNotLaidOut
	}
	return Percent{
		X: clampPercent((clientX - rect.Left) / rect.Width * 100),
		Y: clampPercent((clientY - rect.Top) / rect.Height * 100),
	}, nil
}

// PercentToStyle is the inverse used when drawing pins.
func PercentToStyle(p Percent) PinStyle {
	return PinStyle{
		Left:      formatFloat(p.X) + "%",
		Top:       formatFloat(p.Y) + "%",
		Transform: PinAnchorTransform,
	}
}

// PercentToPixel maps percentages back onto rect.
func PercentToPixel(p Percent, rect Rect) (float64, float64) {
	return rect.Left + p.X/100*rect.Width, rect.Top + p.Y/100*rect.Height
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
