package floorplan_test

import (
	"testing"

	"facility-survey/internal/survey/floorplan"
)

func TestZoomClamp(t *testing.T) {
	tests := []struct {
		name  string
		apply func(v *floorplan.Viewport)
		want  float64
	}{
		{"20 zoom ins", func(v *floorplan.Viewport) {
			for i := 0; i < 20; i++ {
				v.ZoomIn()
			}
		}, floorplan.MaxScale},
		{"20 zoom outs", func(v *floorplan.Viewport) {
			for i := 0; i < 20; i++ {
				v.ZoomOut()
			}
		}, floorplan.MinScale},
		{"100 wheel ins", func(v *floorplan.Viewport) {
			for i := 0; i < 100; i++ {
				v.Wheel(-120)
			}
		}, floorplan.MaxScale},
		{"100 wheel outs", func(v *floorplan.Viewport) {
			for i := 0; i < 100; i++ {
				v.Wheel(120)
			}
		}, floorplan.MinScale},
		{"one zoom in", func(v *floorplan.Viewport) { v.ZoomIn() }, 1.5},
		{"one wheel out", func(v *floorplan.Viewport) { v.Wheel(1) }, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := floorplan.NewViewport()
			tt.apply(v)
			if v.Scale != tt.want {
				t.Errorf("Scale = %v, want %v", v.Scale, tt.want)
			}
		})
	}
}

func TestResetZoom(t *testing.T) {
	v := floorplan.NewViewport()
	v.ZoomIn()
	v.ZoomIn()
	v.BeginDrag(floorplan.Point{X: 10, Y: 10}, false)
	v.Drag(floorplan.Point{X: 60, Y: -15})

	v.Reset()

	if v.Scale != 1 || v.TranslateX != 0 || v.TranslateY != 0 {
		t.Errorf("got scale=%v tx=%v ty=%v, want identity", v.Scale, v.TranslateX, v.TranslateY)
	}
	if v.IsDragging() {
		t.Errorf("still dragging after reset")
	}
}

func TestBeginDragRules(t *testing.T) {
	v := floorplan.NewViewport()
	if v.BeginDrag(floorplan.Point{}, false) {
		t.Fatalf("drag started at scale 1")
	}

	v.ZoomIn()
	if v.BeginDrag(floorplan.Point{}, true) {
		t.Fatalf("drag started on the image element")
	}
	if !v.BeginDrag(floorplan.Point{}, false) {
		t.Fatalf("drag did not start when zoomed in off-image")
	}
}

func TestDragTranslatesByDelta(t *testing.T) {
	v := floorplan.NewViewport()
	v.ZoomIn()
	v.BeginDrag(floorplan.Point{X: 100, Y: 100}, false)
	v.Drag(floorplan.Point{X: 110, Y: 95})
	v.Drag(floorplan.Point{X: 130, Y: 90})
	v.EndDrag()
	v.Drag(floorplan.Point{X: 500, Y: 500})

	if v.TranslateX != 30 || v.TranslateY != -10 {
		t.Errorf("translate = (%v, %v), want (30, -10)", v.TranslateX, v.TranslateY)
	}
}

func TestClickAfterDragIsSuppressed(t *testing.T) {
	v := floorplan.NewViewport()
	v.ZoomIn()

	v.BeginDrag(floorplan.Point{X: 0, Y: 0}, false)
	v.Drag(floorplan.Point{X: 5, Y: 5})
	v.EndDrag()

	if v.ConsumeClick() {
		t.Fatalf("click after drag was accepted")
	}
	if !v.ConsumeClick() {
		t.Fatalf("next click was suppressed")
	}

	// a press that did not start a drag opens a clean gesture
	v.BeginDrag(floorplan.Point{}, true)
	if !v.ConsumeClick() {
		t.Fatalf("plain click on the image was suppressed")
	}
}

func TestTransform(t *testing.T) {
	v := floorplan.NewViewport()
	if got := v.Transform(); got != "translate(0px, 0px) scale(1)" {
		t.Errorf("Transform() = %q", got)
	}
}
