package draw

import "github.com/MonishPuttu/DRAWIFY/internal/shape"

const (
	zoomStep = 0.1
	zoomMin  = 1
	zoomMax  = 5
)

// Viewport maps device coordinates to canvas coordinates under zoom and pan.
// It belongs to exactly one board instance and is never shared or persisted.
type Viewport struct {
	zoom   float64
	center shape.Point
	offset shape.Point

	dragStart  shape.Point
	dragOffset shape.Point
	dragActive bool

	// OnChange is fired on every zoom or pan adjustment so the canvas can
	// redraw with the new transform.
	OnChange func()
}

// NewViewport builds a viewport centered on a canvas of the given size.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{
		zoom:   1,
		center: shape.Point{X: width / 2, Y: height / 2},
	}
}

func (v *Viewport) Zoom() float64 { return v.zoom }

// Offset is the effective pan: the committed offset plus any in-flight drag.
func (v *Viewport) Offset() shape.Point {
	return shape.Point{X: v.offset.X + v.dragOffset.X, Y: v.offset.Y + v.dragOffset.Y}
}

// ToCanvas converts a screen point into canvas space.
func (v *Viewport) ToCanvas(screen shape.Point) shape.Point {
	pan := v.Offset()
	return shape.Point{
		X: v.zoom * (screen.X - (v.center.X + pan.X)),
		Y: v.zoom * (screen.Y - (v.center.Y + pan.Y)),
	}
}

// ToScreen is the inverse of ToCanvas; renderers use it to place canvas-space
// geometry on the device.
func (v *Viewport) ToScreen(canvas shape.Point) shape.Point {
	pan := v.Offset()
	return shape.Point{
		X: canvas.X/v.zoom + v.center.X + pan.X,
		Y: canvas.Y/v.zoom + v.center.Y + pan.Y,
	}
}

// HandleWheel applies one zoom tick in the scroll direction, clamped to
// [zoomMin, zoomMax].
func (v *Viewport) HandleWheel(deltaY float64) {
	switch {
	case deltaY > 0:
		v.zoom += zoomStep
	case deltaY < 0:
		v.zoom -= zoomStep
	}
	if v.zoom < zoomMin {
		v.zoom = zoomMin
	}
	if v.zoom > zoomMax {
		v.zoom = zoomMax
	}
	v.changed()
}

// BeginDrag starts a pan gesture at a screen point. Bound to the middle
// mouse button so it never collides with drawing.
func (v *Viewport) BeginDrag(screen shape.Point) {
	v.dragStart = screen
	v.dragActive = true
}

// DragTo updates the live pan offset from the gesture's start point.
func (v *Viewport) DragTo(screen shape.Point) {
	if !v.dragActive {
		return
	}
	v.dragOffset = shape.Point{X: screen.X - v.dragStart.X, Y: screen.Y - v.dragStart.Y}
	v.changed()
}

// EndDrag commits the in-flight drag offset and resets the gesture.
func (v *Viewport) EndDrag() {
	if v.dragActive {
		v.offset.X += v.dragOffset.X
		v.offset.Y += v.dragOffset.Y
		v.dragStart = shape.Point{}
		v.dragOffset = shape.Point{}
		v.dragActive = false
	}
	v.changed()
}

func (v *Viewport) Dragging() bool { return v.dragActive }

func (v *Viewport) changed() {
	if v.OnChange != nil {
		v.OnChange()
	}
}
