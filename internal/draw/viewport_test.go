package draw

import (
	"math"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/MonishPuttu/DRAWIFY/internal/shape"
)

func TestZoomIsClamped(t *testing.T) {
	v := NewViewport(800, 600)

	for i := 0; i < 100; i++ {
		v.HandleWheel(-1)
	}
	assert.Equal(t, 1.0, v.Zoom())

	for i := 0; i < 100; i++ {
		v.HandleWheel(1)
	}
	assert.Equal(t, 5.0, v.Zoom())
}

func TestZoomChangeFiresCallback(t *testing.T) {
	v := NewViewport(800, 600)
	calls := 0
	v.OnChange = func() { calls++ }

	v.HandleWheel(1)
	v.HandleWheel(-1)
	assert.Equal(t, 2, calls)
}

func TestToCanvasAppliesZoomAndPan(t *testing.T) {
	v := NewViewport(800, 600)

	// zoom 1, no pan: canvas origin sits at the screen center
	p := v.ToCanvas(shape.Point{X: 400, Y: 300})
	assert.Equal(t, shape.Point{X: 0, Y: 0}, p)

	v.HandleWheel(1) // zoom 1.1
	p = v.ToCanvas(shape.Point{X: 410, Y: 300})
	if math.Abs(p.X-11) > 1e-9 {
		t.Fatalf("expected canvas x ~11, got %v", p.X)
	}

	back := v.ToScreen(p)
	if math.Abs(back.X-410) > 1e-9 {
		t.Fatalf("expected screen x ~410, got %v", back.X)
	}
}

func TestDragCommitsOnRelease(t *testing.T) {
	v := NewViewport(800, 600)
	calls := 0
	v.OnChange = func() { calls++ }

	v.BeginDrag(shape.Point{X: 100, Y: 100})
	v.DragTo(shape.Point{X: 130, Y: 90})
	assert.Equal(t, shape.Point{X: 30, Y: -10}, v.Offset())
	assert.Equal(t, true, v.Dragging())

	v.EndDrag()
	assert.Equal(t, false, v.Dragging())
	// committed offset survives, drag state is neutral
	assert.Equal(t, shape.Point{X: 30, Y: -10}, v.Offset())

	// a move without an active drag changes nothing
	v.DragTo(shape.Point{X: 500, Y: 500})
	assert.Equal(t, shape.Point{X: 30, Y: -10}, v.Offset())
	assert.Equal(t, 2, calls)
}
