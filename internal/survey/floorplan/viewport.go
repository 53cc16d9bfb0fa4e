package floorplan

import "fmt"

// ============================================================
// Zoom / Pan Viewport
// ============================================================

const (
	MinScale      = 0.5
	MaxScale      = 5.0
	buttonStep    = 1.5
	wheelOutStep  = 0.9
	wheelInStep   = 1.1
	identityScale = 1.0
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport holds the CSS transform of the floor-plan container.
type Viewport struct {
	Scale      float64
	TranslateX float64
	TranslateY float64

	dragging bool
	last     Point
	// dragged stays set until the click closing the gesture is consumed
	dragged bool
}

func NewViewport() *Viewport {
	return &Viewport{Scale: identityScale}
}

func (v *Viewport) ZoomIn() {
	v.setScale(v.Scale * buttonStep)
}

func (v *Viewport) ZoomOut() {
	v.setScale(v.Scale / buttonStep)
}

// Wheel applies one wheel event: positive deltaY zooms out.
func (v *Viewport) Wheel(deltaY float64) {
	if deltaY > 0 {
		v.setScale(v.Scale * wheelOutStep)
		return
	}
	v.setScale(v.Scale * wheelInStep)
}

// Reset returns to the identity transform and drops any drag state.
func (v *Viewport) Reset() {
	*v = Viewport{Scale: identityScale}
}

// BeginDrag opens a pointer gesture and starts panning when allowed.
// Presses on the image itself are left for pin placement.
func (v *Viewport) BeginDrag(pos Point, onImage bool) bool {
	v.dragged = false
	if v.Scale <= identityScale || onImage {
		return false
	}
	v.dragging = true
	v.dragged = true
	v.last = pos
	return true
}

func (v *Viewport) Drag(pos Point) {
	if !v.dragging {
		return
	}
	v.TranslateX += pos.X - v.last.X
	v.TranslateY += pos.Y - v.last.Y
	v.last = pos
}

func (v *Viewport) EndDrag() {
	v.dragging = false
}

func (v *Viewport) IsDragging() bool {
	return v.dragging
}

// ConsumeClick reports whether a click may place a pin and ends the gesture.
func (v *Viewport) ConsumeClick() bool {
	if v.dragged || v.dragging {
		v.dragged = false
		return false
	}
	return true
}

// Transform renders the state as a CSS transform value.
func (v *Viewport) Transform() string {
	return fmt.Sprintf("translate(%spx, %spx) scale(%s)",
		formatFloat(v.TranslateX), formatFloat(v.TranslateY), formatFloat(v.Scale))
}

func (v *Viewport) setScale(s float64) {
	switch {
	case s < MinScale:
		s = MinScale
	case s > MaxScale:
		s = MaxScale
	}
	v.Scale = s
}
